package pgstore

import (
	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/n-r-w/docpager"
	"github.com/n-r-w/docpager/filter"
)

// Option option for Store.
type Option func(*Store)

// WithPool sets connection pool when creating a Store instance.
// Start does not create a pool then, and Stop does not close it.
func WithPool(pool *pgxpool.Pool) Option {
	return func(s *Store) {
		s.pool = pool
		s.externalPool = true
	}
}

// WithName sets service name.
func WithName(name string) Option {
	return func(s *Store) {
		s.name = name
	}
}

// WithDSN sets DSN for database connection.
// If WithConfig is used, this option is ignored.
func WithDSN(dsn string) Option {
	return func(s *Store) {
		s.dsn = dsn
	}
}

// WithConfig sets connection pool configuration.
func WithConfig(cfg *pgxpool.Config) Option {
	return func(s *Store) {
		s.config = cfg
	}
}

// WithTable sets the document table. Default is "documents".
func WithTable(table string) Option {
	return func(s *Store) {
		s.table = table
	}
}

// WithColumns overrides the column names of the document table.
// If c.UpdatedAt is empty, updates only change the data column.
func WithColumns(c filter.Columns) Option {
	return func(s *Store) {
		s.columns = c
	}
}

// WithIDFunc sets the function generating document identifiers. Default is uuid.NewString.
func WithIDFunc(f func() string) Option {
	return func(s *Store) {
		s.newID = f
	}
}

// WithRestartPolicy sets service restart policy on error.
// Only works when using https://github.com/n-r-w/bootstrap
func WithRestartPolicy(policy ...backoff.RetryOption) Option {
	return func(s *Store) {
		s.restartPolicy = policy
	}
}

// WithLogQueries enables query logging.
func WithLogQueries() Option {
	return func(s *Store) {
		s.logQueries = true
	}
}

// WithLogger sets the logger.
func WithLogger(logger docpager.ILogger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}
