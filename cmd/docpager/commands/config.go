package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/n-r-w/docpager"
	"github.com/n-r-w/docpager/pgstore"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix = "DOCPAGER"

	keyDSN        = "dsn"
	keyTable      = "table"
	keyPageSize   = "page-size"
	keyLogQueries = "log-queries"
	keyDebug      = "debug"

	defaultTable    = pgstore.DefaultTable
	defaultPageSize = 5
)

type config struct {
	DSN        string
	Table      string
	PageSize   int
	LogQueries bool
	Debug      bool
}

// loadConfig reads flags of cmd, falling back to DOCPAGER_* environment variables.
func loadConfig(cmd *cobra.Command) (config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return config{}, fmt.Errorf("bind flags: %w", err)
	}

	cfg := config{
		DSN:        v.GetString(keyDSN),
		Table:      v.GetString(keyTable),
		PageSize:   v.GetInt(keyPageSize),
		LogQueries: v.GetBool(keyLogQueries),
		Debug:      v.GetBool(keyDebug),
	}

	if cfg.DSN == "" {
		return cfg, errors.New("dsn is required, use --dsn or DOCPAGER_DSN")
	}
	if cfg.Table == "" {
		cfg.Table = defaultTable
	}
	if cfg.PageSize <= 0 {
		return cfg, fmt.Errorf("page size must be positive, got %d", cfg.PageSize)
	}

	return cfg, nil
}

func (c config) logger() docpager.ILogger {
	level := slog.LevelInfo
	if c.Debug {
		level = slog.LevelDebug
	}

	l, _ := docpager.NewSlogLogger(
		slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), "docpager")
	return l
}

// openStore starts a store described by c. The returned function stops it.
func (c config) openStore(ctx context.Context) (*pgstore.Store, func(), error) {
	opts := []pgstore.Option{
		pgstore.WithName("docpager"),
		pgstore.WithDSN(c.DSN),
		pgstore.WithTable(c.Table),
		pgstore.WithLogger(c.logger()),
	}
	if c.LogQueries {
		opts = append(opts, pgstore.WithLogQueries())
	}

	s := pgstore.New(opts...)
	if err := s.Start(ctx); err != nil {
		return nil, nil, err
	}

	return s, func() { _ = s.Stop(context.Background()) }, nil
}
