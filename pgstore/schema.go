package pgstore

import (
	"fmt"

	"github.com/jackc/pgx/v5"
)

// CreateTableSQL returns the DDL of a document table with the default columns.
// The (created_at, id) index serves range queries in both directions.
func CreateTableSQL(table string) string {
	t := pgx.Identifier{table}.Sanitize()
	idx := pgx.Identifier{table + "_created_at_id_idx"}.Sanitize()

	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %[1]s (
	id text PRIMARY KEY,
	created_at timestamptz NOT NULL DEFAULT clock_timestamp(),
	updated_at timestamptz NOT NULL DEFAULT clock_timestamp(),
	data jsonb NOT NULL DEFAULT '{}'::jsonb
);
CREATE INDEX IF NOT EXISTS %[2]s ON %[1]s (created_at, id);`, t, idx)
}

// ChannelName returns the notification channel used by NotifyTriggerSQL for table.
func ChannelName(table string) string {
	return table + "_changes"
}

// NotifyTriggerSQL returns DDL of a trigger sending a notification to ChannelName(table)
// after every statement changing the table.
func NotifyTriggerSQL(table string) string {
	t := pgx.Identifier{table}.Sanitize()
	fn := pgx.Identifier{table + "_notify"}.Sanitize()
	trg := pgx.Identifier{table + "_notify_trg"}.Sanitize()

	return fmt.Sprintf(`CREATE OR REPLACE FUNCTION %[2]s() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify('%[4]s', TG_OP);
	RETURN NULL;
END;
$$ LANGUAGE plpgsql;
DROP TRIGGER IF EXISTS %[3]s ON %[1]s;
CREATE TRIGGER %[3]s AFTER INSERT OR UPDATE OR DELETE OR TRUNCATE ON %[1]s
	FOR EACH STATEMENT EXECUTE FUNCTION %[2]s();`, t, fn, trg, ChannelName(table))
}
