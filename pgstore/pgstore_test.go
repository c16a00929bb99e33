package pgstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/n-r-w/docpager/filter"
	"github.com/n-r-w/docpager/txmgr"
	"github.com/stretchr/testify/require"
)

func TestTruncSQL(t *testing.T) {
	t.Parallel()

	require.Equal(t, "SELECT 1", TruncSQL("SELECT 1"))

	long := strings.Repeat("x", 300)
	require.Equal(t, strings.Repeat("x", 200)+"...", TruncSQL(long))
}

func TestErrors(t *testing.T) {
	t.Parallel()

	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation})
	require.True(t, IsUniqueViolation(unique))
	require.False(t, IsTransient(unique))
	require.False(t, IsNoRows(unique))

	require.True(t, IsNoRows(fmt.Errorf("get: %w", pgx.ErrNoRows)))
	require.True(t, IsTransient(&pgconn.PgError{Code: pgerrcode.SerializationFailure}))
	require.True(t, IsTransient(&pgconn.PgError{Code: pgerrcode.AdminShutdown}))
	require.True(t, IsTransient(&pgconn.PgError{Code: pgerrcode.ConnectionFailure}))
	require.False(t, IsTransient(&pgconn.PgError{Code: pgerrcode.UndefinedTable}))
	require.False(t, IsTransient(context.Canceled))
	require.False(t, IsTransient(errors.New("boom")))
	require.False(t, IsTransient(nil))
}

func TestSchema(t *testing.T) {
	t.Parallel()

	ddl := CreateTableSQL("products")
	require.Contains(t, ddl, `CREATE TABLE IF NOT EXISTS "products"`)
	require.Contains(t, ddl, `ON "products" (created_at, id)`)

	trg := NotifyTriggerSQL("sellers")
	require.Contains(t, trg, "pg_notify('sellers_changes', TG_OP)")
	require.Contains(t, trg, `AFTER INSERT OR UPDATE OR DELETE OR TRUNCATE ON "sellers"`)
	require.Equal(t, "sellers_changes", ChannelName("sellers"))
}

func TestStore_Returning(t *testing.T) {
	t.Parallel()

	require.Equal(t, "RETURNING id, created_at, data", New().returning())
	require.Equal(t, "RETURNING pk AS id, ts AS created_at, doc AS data",
		New(WithColumns(filter.Columns{ID: "pk", CreatedAt: "ts", Data: "doc"})).returning())
}

func TestTxOptions(t *testing.T) {
	t.Parallel()

	require.Equal(t, pgx.ReadCommitted, getPgxLevel(txmgr.TxLevelDefault))
	require.Equal(t, pgx.RepeatableRead, getPgxLevel(txmgr.TxRepeatableRead))
	require.Equal(t, pgx.Serializable, getPgxLevel(txmgr.TxSerializable))
	require.Equal(t, pgx.ReadWrite, getPgxMode(txmgr.TxModeDefault))
	require.Equal(t, pgx.ReadOnly, getPgxMode(txmgr.TxReadOnly))
}

func TestStore_NotStarted(t *testing.T) {
	t.Parallel()

	s := New(WithName("idle"))
	require.Equal(t, "idle", s.Info().Name)
	require.Equal(t, DefaultTable, s.Table())

	_, err := s.Count(context.Background())
	require.ErrorIs(t, err, errNoPool)

	require.ErrorIs(t, s.Snapshot(context.Background(), func(context.Context) error { return nil }), errNoPool)
	require.NoError(t, s.Stop(context.Background()))
}
