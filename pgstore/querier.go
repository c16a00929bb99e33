package pgstore

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"
)

var errNoPool = errors.New("pgstore is not started")

// IQuerier executes queries. Implemented by pgx.Tx, *pgxpool.Pool and the store connection wrapper.
type IQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// querier runs queries in the transaction carried by the context or directly on the pool.
type querier struct {
	s  *Store
	tx pgx.Tx
}

// connection returns a querier bound to the transaction in ctx, if any.
func (s *Store) connection(ctx context.Context) *querier {
	q := &querier{s: s}
	if t, ok := txFromContext(ctx); ok {
		q.tx = t.tx
	}
	return q
}

func (q *querier) target() (IQuerier, error) {
	if q.tx != nil {
		return q.tx, nil
	}
	if q.s.pool == nil {
		return nil, errNoPool
	}
	return q.s.pool, nil
}

// Exec executes a query without returning data.
func (q *querier) Exec(ctx context.Context, sql string, args ...any) (tag pgconn.CommandTag, err error) {
	q.log(ctx, "Exec", sql, args, func() error {
		var t IQuerier
		if t, err = q.target(); err != nil {
			return err
		}
		tag, err = t.Exec(ctx, sql, args...)
		return err
	})

	return tag, err
}

// Query executes a query and returns the result.
func (q *querier) Query(ctx context.Context, sql string, args ...any) (rows pgx.Rows, err error) {
	q.log(ctx, "Query", sql, args, func() error {
		var t IQuerier
		if t, err = q.target(); err != nil {
			return err
		}
		rows, err = t.Query(ctx, sql, args...) //nolint:sqlclosecheck // will be closed by caller
		return err
	})

	return rows, err
}

func (q *querier) log(ctx context.Context, command, sql string, args []any, f func() error) {
	if !q.s.logQueries {
		_ = f()
		return
	}

	start := time.Now()
	err := f()
	latency := time.Since(start)

	traceID := ""
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.TraceID().IsValid() {
		traceID = " trace_id=" + sc.TraceID().String()
	}

	if err != nil {
		q.s.logger.Errorf(ctx, "dbquery database=%s command=%s latency=%s query=%q args=%v%s error=%v",
			q.s.name, command, latency, TruncSQL(sql), args, traceID, err)
		return
	}

	q.s.logger.Debugf(ctx, "dbquery database=%s command=%s latency=%s query=%q args=%v%s",
		q.s.name, command, latency, TruncSQL(sql), args, traceID)
}
