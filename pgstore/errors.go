package pgstore

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Helpers for working with Postgres errors.
// https://www.postgresql.org/docs/16/errcodes-appendix.html

// ErrDuplicateID a document with the generated id already exists.
var ErrDuplicateID = errors.New("duplicate document id")

// IsNoRows checks if the error is a "no rows" error.
func IsNoRows(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return true
	}

	if pgErr, ok := toPgError(err); ok {
		if pgErr.Code == pgerrcode.NoDataFound {
			return true
		}
	}
	return false
}

// IsUniqueViolation checks if the error is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	if pgErr, ok := toPgError(err); ok {
		if pgErr.Code == pgerrcode.UniqueViolation {
			return true
		}
	}
	return false
}

// IsTransient checks if the operation may succeed when repeated:
// lost connections, serialization failures, deadlocks and server shutdowns.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return true
	}

	if pgErr, ok := toPgError(err); ok {
		return pgerrcode.IsConnectionException(pgErr.Code) ||
			pgerrcode.IsTransactionRollback(pgErr.Code) ||
			pgerrcode.IsInsufficientResources(pgErr.Code) ||
			pgerrcode.IsOperatorIntervention(pgErr.Code)
	}

	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}

func toPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}
