package txmgr

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// TestTransactionManager_Begin tests transaction start.
func TestTransactionManager_Begin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	mc := gomock.NewController(t)
	defer mc.Finish()

	// Transaction is not started, so Begin should be called with normalized options.
	tmBeginner := NewMockITransactionBeginner(mc)
	tmBeginner.EXPECT().
		Begin(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, f func(context.Context) error, opts Options) error {
			require.Equal(t, TxReadCommitted, opts.Level)
			require.Equal(t, TxReadWrite, opts.Mode)
			return f(ctx)
		})

	tmInformer := NewMockITransactionInformer(mc)
	tmInformer.EXPECT().InTransaction(gomock.Any()).Return(false)

	tm := New(tmBeginner, tmInformer)

	called := false
	require.NoError(t, tm.Begin(ctx, func(_ context.Context) error {
		called = true
		return nil
	}))
	require.True(t, called)
}

// TestTransactionManager_Snapshot tests that snapshots use repeatable read, read only transactions.
func TestTransactionManager_Snapshot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	mc := gomock.NewController(t)
	defer mc.Finish()

	errQuery := errors.New("query failed")

	tmBeginner := NewMockITransactionBeginner(mc)
	tmBeginner.EXPECT().
		Begin(gomock.Any(), gomock.Any(), SnapshotOptions).
		DoAndReturn(func(ctx context.Context, f func(context.Context) error, _ Options) error {
			return f(ctx)
		})

	tmInformer := NewMockITransactionInformer(mc)
	tmInformer.EXPECT().InTransaction(gomock.Any()).Return(false)

	tm := New(tmBeginner, tmInformer)

	require.ErrorIs(t, tm.Snapshot(ctx, func(_ context.Context) error {
		return errQuery
	}), errQuery)
}

// TestTransactionManager_Begin_InTransaction tests transaction start when a transaction is already in progress.
func TestTransactionManager_Begin_InTransaction(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	mc := gomock.NewController(t)
	defer mc.Finish()

	// Transaction is already started (InTransaction returns true), so Begin should not be called.
	tmBeginner := NewMockITransactionBeginner(mc)
	tmBeginner.EXPECT().Begin(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	tmInformer := NewMockITransactionInformer(mc)
	tmInformer.EXPECT().InTransaction(gomock.Any()).Return(true).Times(4)
	tmInformer.EXPECT().TransactionOptions(gomock.Any()).Return(Options{}).Times(4)

	tm := New(tmBeginner, tmInformer)

	// joining transaction with default options
	require.NoError(t, tm.Begin(ctx, func(_ context.Context) error {
		return nil
	}, WithTransactionLevel(TxReadCommitted)))

	// error when changing isolation level
	require.Error(t, tm.Begin(ctx, func(_ context.Context) error {
		return nil
	}, WithTransactionLevel(TxReadUncommitted)))

	// error when changing transaction mode
	require.Error(t, tm.Begin(ctx, func(_ context.Context) error {
		return nil
	}, WithTransactionMode(TxReadOnly)))

	// a snapshot can not join a read write transaction
	require.Error(t, tm.Snapshot(ctx, func(_ context.Context) error {
		return nil
	}))
}
