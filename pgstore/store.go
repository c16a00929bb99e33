// Package pgstore stores documents in a PostgreSQL table and serves keyset range queries over it.
//
// Table layout: id text primary key, created_at timestamptz, updated_at timestamptz, data jsonb.
// See CreateTableSQL.
package pgstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/n-r-w/bootstrap"
	"github.com/n-r-w/docpager"
	"github.com/n-r-w/docpager/filter"
	"github.com/n-r-w/docpager/txmgr"
	sq "github.com/n-r-w/squirrel"

	"github.com/cenkalti/backoff/v5"
)

// DefaultTable default document table.
const DefaultTable = "documents"

// Store is a PostgreSQL document store. Implements bootstrap.IService, docpager.IStore and docpager.ISnapshotter.
type Store struct {
	name          string
	restartPolicy []backoff.RetryOption
	dsn           string
	logQueries    bool
	table         string
	columns       filter.Columns
	newID         func() string

	config       *pgxpool.Config
	pool         *pgxpool.Pool
	externalPool bool

	tm     *txmgr.TransactionManager
	logger docpager.ILogger
}

var (
	_ bootstrap.IService         = (*Store)(nil)
	_ docpager.IStore            = (*Store)(nil)
	_ docpager.ISnapshotter      = (*Store)(nil)
	_ txmgr.ITransactionBeginner = (*Store)(nil)
	_ txmgr.ITransactionInformer = (*Store)(nil)
)

// New creates a new instance of Store.
func New(opt ...Option) *Store {
	s := &Store{
		table:   DefaultTable,
		columns: filter.DefaultColumns,
		newID:   uuid.NewString,
	}

	for _, o := range opt {
		o(s)
	}

	if s.name == "" {
		s.name = "pgstore"
	}

	s.logger = docpager.LoggerOrNop(s.logger)
	s.tm = txmgr.New(s, s)

	return s
}

// Start starts the service.
func (s *Store) Start(ctx context.Context) (err error) {
	if s.externalPool {
		return nil
	}

	s.logger.Debugf(ctx, "starting pgstore for database %s", s.name)

	var pool *pgxpool.Pool
	if s.config != nil {
		pool, err = pgxpool.NewWithConfig(ctx, s.config)
	} else {
		pool, err = pgxpool.New(ctx, s.dsn)
	}
	if err != nil {
		return fmt.Errorf("failed to create pgx pool for database %s: %w", s.name, err)
	}

	s.logger.Debugf(ctx, "checking connection to database %s", s.name)

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to connect to database %s: %w", s.name, err)
	}

	s.pool = pool

	s.logger.Debugf(ctx, "connected to database %s", s.name)

	return nil
}

// Stop stops the service.
func (s *Store) Stop(_ context.Context) error {
	if s.pool != nil && !s.externalPool {
		s.pool.Close()
	}

	return nil
}

// Info returns service information.
func (s *Store) Info() bootstrap.Info {
	return bootstrap.Info{
		Name:          s.name,
		RestartPolicy: s.restartPolicy,
	}
}

// Table returns the document table name.
func (s *Store) Table() string {
	return s.table
}

// Migrate creates the document table if it does not exist, together with its change notification trigger.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.connection(ctx).Exec(ctx, CreateTableSQL(s.table)+"\n"+NotifyTriggerSQL(s.table)); err != nil {
		return fmt.Errorf("migrate %s: %w", s.table, err)
	}
	return nil
}

// RangeQuery implements docpager.IStore.
func (s *Store) RangeQuery(ctx context.Context, q docpager.RangeQuery) ([]docpager.Record, error) {
	builder, err := filter.NewRangeBuilder(s.table, q, filter.WithColumns(s.columns))
	if err != nil {
		return nil, err
	}

	var res []docpager.Record
	if err := Select(ctx, s.connection(ctx), builder, &res); err != nil {
		return nil, err
	}

	return res, nil
}

// Count implements docpager.IStore.
func (s *Store) Count(ctx context.Context) (int64, error) {
	builder, err := filter.NewCountBuilder(s.table, filter.WithColumns(s.columns))
	if err != nil {
		return 0, err
	}

	var count int64
	if err := SelectOne(ctx, s.connection(ctx), builder, &count); err != nil {
		return 0, err
	}

	return count, nil
}

// Get returns the document by id.
func (s *Store) Get(ctx context.Context, id string) (docpager.Record, error) {
	builder := filter.Builder().
		Select(s.columns.Select()...).
		From(s.table).
		Where(sq.Eq{s.columns.ID: id})

	var rec docpager.Record
	if err := SelectOne(ctx, s.connection(ctx), builder, &rec); err != nil {
		if IsNoRows(err) {
			return docpager.Record{}, fmt.Errorf("get %s: %w", id, docpager.ErrNotFound)
		}
		return docpager.Record{}, err
	}

	return rec, nil
}

// Create implements docpager.IStore. CreatedAt is assigned by the database.
func (s *Store) Create(ctx context.Context, fields docpager.Fields) (docpager.Record, error) {
	data, err := marshalFields(fields)
	if err != nil {
		return docpager.Record{}, err
	}

	id := s.newID()
	builder := filter.Builder().
		Insert(s.table).
		Columns(s.columns.ID, s.columns.Data).
		Values(id, data).
		Suffix(s.returning())

	var rec docpager.Record
	if err := SelectOne(ctx, s.connection(ctx), builder, &rec); err != nil {
		if IsUniqueViolation(err) {
			return docpager.Record{}, fmt.Errorf("create %s: %w", id, ErrDuplicateID)
		}
		return docpager.Record{}, err
	}

	return rec, nil
}

// Update implements docpager.IStore. Top level fields are merged into the stored document.
func (s *Store) Update(ctx context.Context, id string, fields docpager.Fields) error {
	data, err := marshalFields(fields)
	if err != nil {
		return err
	}

	builder := filter.Builder().
		Update(s.table).
		Set(s.columns.Data, sq.Expr(s.columns.Data+" || ?::jsonb", data)).
		Where(sq.Eq{s.columns.ID: id})
	if s.columns.UpdatedAt != "" {
		builder = builder.Set(s.columns.UpdatedAt, sq.Expr("clock_timestamp()"))
	}

	tag, err := Exec(ctx, s.connection(ctx), builder)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update %s: %w", id, docpager.ErrNotFound)
	}

	return nil
}

// Delete implements docpager.IStore.
func (s *Store) Delete(ctx context.Context, id string) error {
	builder := filter.Builder().
		Delete(s.table).
		Where(sq.Eq{s.columns.ID: id})

	tag, err := Exec(ctx, s.connection(ctx), builder)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete %s: %w", id, docpager.ErrNotFound)
	}

	return nil
}

// Snapshot implements docpager.ISnapshotter with a repeatable read, read only transaction.
func (s *Store) Snapshot(ctx context.Context, f func(ctx context.Context) error) error {
	return s.tm.Snapshot(ctx, f)
}

// TransactionManager returns the transaction manager bound to the store.
func (s *Store) TransactionManager() txmgr.ITransactionManager {
	return s.tm
}

// returning is the RETURNING clause of inserts, aliased like range queries.
func (s *Store) returning() string {
	return "RETURNING " + strings.Join(s.columns.Select(), ", ")
}

func marshalFields(fields docpager.Fields) ([]byte, error) {
	if fields == nil {
		fields = docpager.Fields{}
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshal fields: %w", err)
	}

	return data, nil
}
