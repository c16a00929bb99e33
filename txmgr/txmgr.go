// Package txmgr implements a store-agnostic transaction manager.
//
// Stores use it to group reads that must observe one collection state,
// e.g. the count and the first page reloaded after a mutation.
package txmgr

import (
	"context"
	"fmt"
)

// Options represents transaction options.
type Options struct {
	// Level defines the transaction isolation level.
	Level TransactionLevel
	// Mode defines the transaction access mode.
	Mode TransactionMode
}

// normalize replaces default values with the values they stand for.
func (o Options) normalize() Options {
	if o.Level == TxLevelDefault {
		o.Level = TxReadCommitted
	}
	if o.Mode == TxModeDefault {
		o.Mode = TxReadWrite
	}
	return o
}

// Option transaction manager option function.
type Option func(*Options)

// WithTransactionLevel sets the transaction isolation level.
func WithTransactionLevel(level TransactionLevel) Option {
	return func(opts *Options) {
		opts.Level = level
	}
}

// WithTransactionMode sets the transaction mode.
func WithTransactionMode(mode TransactionMode) Option {
	return func(opts *Options) {
		opts.Mode = mode
	}
}

// SnapshotOptions options used by Snapshot.
var SnapshotOptions = Options{Level: TxRepeatableRead, Mode: TxReadOnly} //nolint:gochecknoglobals // ok

// TransactionManager handles store transactions.
type TransactionManager struct {
	tmBeginner ITransactionBeginner
	tmInformer ITransactionInformer
}

var _ ITransactionManager = (*TransactionManager)(nil)

// New creates a new TransactionManager.
func New(tmBeginner ITransactionBeginner, tmInformer ITransactionInformer) *TransactionManager {
	return &TransactionManager{
		tmBeginner: tmBeginner,
		tmInformer: tmInformer,
	}
}

// Begin starts a new transaction and executes the function.
// If a transaction is already started, f joins it when level and mode match, otherwise an error is returned.
func (tm *TransactionManager) Begin(ctx context.Context, f func(ctxTr context.Context) error, opts ...Option) error {
	tmOpts := Options{
		Level: TxLevelDefault,
		Mode:  TxModeDefault,
	}
	for _, opt := range opts {
		opt(&tmOpts)
	}

	return tm.begin(ctx, f, tmOpts)
}

// Snapshot runs f in a repeatable read, read only transaction.
func (tm *TransactionManager) Snapshot(ctx context.Context, f func(ctxTr context.Context) error) error {
	return tm.begin(ctx, f, SnapshotOptions)
}

// WithoutTransaction returns context without transaction.
func (tm *TransactionManager) WithoutTransaction(ctx context.Context) context.Context {
	return tm.tmBeginner.WithoutTransaction(ctx)
}

func (tm *TransactionManager) begin(ctx context.Context, f func(ctxTr context.Context) error, opts Options) error {
	opts = opts.normalize()

	if tm.tmInformer.InTransaction(ctx) { // transaction is already started
		cOpt := tm.tmInformer.TransactionOptions(ctx).normalize()

		// we cannot change transaction level and mode
		if cOpt.Level != opts.Level {
			return fmt.Errorf("transaction level mismatch: %s != %s", cOpt.Level, opts.Level)
		}
		if cOpt.Mode != opts.Mode {
			return fmt.Errorf("transaction mode mismatch: %s != %s", cOpt.Mode, opts.Mode)
		}

		// just execute the function
		return f(ctx)
	}

	return tm.tmBeginner.Begin(ctx, f, opts)
}
