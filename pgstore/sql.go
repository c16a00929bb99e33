package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	sq "github.com/n-r-w/squirrel"
)

const sqlTruncLen = 200

// TruncSQL truncates sql to 200 characters for error messages and logs.
func TruncSQL(sql string) string {
	if len(sql) > sqlTruncLen {
		return sql[0:sqlTruncLen] + "..."
	}

	return sql
}

// Select executes a query built by squirrel and scans all rows into dst.
func Select[T any](ctx context.Context, querier IQuerier, sqlizer sq.Sqlizer, dst *[]T) error {
	sql, args, err := sqlizer.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, dst, sql, args...); err != nil {
		return fmt.Errorf("sql select: %w [%s]", err, TruncSQL(sql))
	}

	return nil
}

// SelectOne executes a query built by squirrel and scans exactly one row into dst.
// Returns pgx.ErrNoRows unwrapped if there is no row.
func SelectOne[T any](ctx context.Context, querier IQuerier, sqlizer sq.Sqlizer, dst *T) error {
	sql, args, err := sqlizer.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql: %w", err)
	}

	if err := pgxscan.Get(ctx, querier, dst, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pgx.ErrNoRows
		}

		return fmt.Errorf("sql select: %w [%s]", err, TruncSQL(sql))
	}

	return nil
}

// Exec executes a modification query built by squirrel.
func Exec(ctx context.Context, querier IQuerier, sqlizer sq.Sqlizer) (pgconn.CommandTag, error) {
	sql, args, err := sqlizer.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("failed to build sql: %w", err)
	}

	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return tag, fmt.Errorf("sql exec: %w [%s]", err, TruncSQL(sql))
	}

	return tag, nil
}
