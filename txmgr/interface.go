package txmgr

//go:generate mockgen -source interface.go -destination interface_mock.go -package txmgr

import "context"

// ITransactionInformer reports the transaction carried by a context. Implemented by store packages.
type ITransactionInformer interface {
	// InTransaction returns true if a transaction is started.
	InTransaction(ctx context.Context) bool
	// TransactionOptions returns options of the started transaction.
	TransactionOptions(ctx context.Context) Options
}

// ITransactionBeginner starts transactions. Implemented by store packages.
type ITransactionBeginner interface {
	// Begin runs f in a new transaction. The transaction is carried by the context passed to f.
	Begin(ctx context.Context, f func(ctxTr context.Context) error, opts Options) error

	// WithoutTransaction returns context without transaction.
	WithoutTransaction(ctx context.Context) context.Context
}

// ITransactionManager manages store transactions.
type ITransactionManager interface {
	// Begin starts a transaction. If a compatible transaction is already started, f joins it.
	Begin(ctx context.Context, f func(ctxTr context.Context) error, opts ...Option) error

	// Snapshot runs f in a read only transaction with repeatable reads,
	// so every query in f observes the same collection state.
	Snapshot(ctx context.Context, f func(ctxTr context.Context) error) error

	// WithoutTransaction returns context without transaction.
	WithoutTransaction(ctx context.Context) context.Context
}
