package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/n-r-w/docpager/txmgr"
)

// Begin runs a function within a transaction. Implements txmgr.ITransactionBeginner.
func (s *Store) Begin(ctx context.Context, f func(ctxTr context.Context) error, opts txmgr.Options) (err error) {
	if s.pool == nil {
		return errNoPool
	}

	con, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}

	//nolint:exhaustruct // external type, only set necessary fields
	tx, err := con.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   getPgxLevel(opts.Level),
		AccessMode: getPgxMode(opts.Mode),
	})
	if err != nil {
		con.Release()
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		defer con.Release()

		if rec := recover(); rec != nil {
			_ = tx.Rollback(ctx)
			panic(rec)
		}
	}()

	defer func() {
		errRollback := tx.Rollback(ctx)
		if errRollback != nil && !errors.Is(errRollback, pgx.ErrTxClosed) {
			if err != nil {
				err = fmt.Errorf("%w (rollback error: %v)", err, errRollback) //nolint:errorlint // ok for 2 errors
			} else {
				err = errRollback
			}
		}
	}()

	if err = f(context.WithValue(ctx, txKey, &transaction{tx: tx, opts: opts})); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// InTransaction returns true if transaction is started.
func (s *Store) InTransaction(ctx context.Context) bool {
	_, ok := txFromContext(ctx)
	return ok
}

// TransactionOptions returns options of the started transaction.
func (s *Store) TransactionOptions(ctx context.Context) txmgr.Options {
	t, ok := txFromContext(ctx)
	if !ok {
		return txmgr.Options{}
	}

	return t.opts
}

// WithoutTransaction returns context without transaction.
func (s *Store) WithoutTransaction(ctx context.Context) context.Context {
	if _, ok := txFromContext(ctx); !ok {
		return ctx
	}

	return context.WithValue(ctx, txKey, nil)
}

func getPgxLevel(level txmgr.TransactionLevel) pgx.TxIsoLevel {
	switch level {
	case txmgr.TxReadUncommitted:
		return pgx.ReadUncommitted
	case txmgr.TxRepeatableRead:
		return pgx.RepeatableRead
	case txmgr.TxSerializable:
		return pgx.Serializable
	default:
		return pgx.ReadCommitted
	}
}

func getPgxMode(mode txmgr.TransactionMode) pgx.TxAccessMode {
	if mode == txmgr.TxReadOnly {
		return pgx.ReadOnly
	}

	return pgx.ReadWrite
}

type txKeyType int

const txKey txKeyType = 0

type transaction struct {
	tx   pgx.Tx
	opts txmgr.Options
}

func txFromContext(ctx context.Context) (*transaction, bool) {
	t, ok := ctx.Value(txKey).(*transaction)
	if !ok || t == nil {
		return nil, false
	}

	return t, true
}
