package pgstore

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/n-r-w/docpager"
	"github.com/n-r-w/docpager/filter"
)

// CreateMany inserts documents in one batch within a transaction.
// Records are returned in the order of fields, with increasing CreatedAt.
func (s *Store) CreateMany(ctx context.Context, fields []docpager.Fields) ([]docpager.Record, error) {
	if len(fields) == 0 {
		return nil, nil
	}

	batch := &pgx.Batch{}
	for _, f := range fields {
		data, err := marshalFields(f)
		if err != nil {
			return nil, err
		}

		sql, args, err := filter.Builder().
			Insert(s.table).
			Columns(s.columns.ID, s.columns.Data).
			Values(s.newID(), data).
			Suffix(s.returning()).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to build sql: %w", err)
		}

		batch.Queue(sql, args...)
	}

	res := make([]docpager.Record, 0, len(fields))

	err := s.tm.Begin(ctx, func(ctxTr context.Context) error {
		t, _ := txFromContext(ctxTr)

		var br pgx.BatchResults
		s.connection(ctxTr).log(ctxTr, "SendBatch", fmt.Sprintf("%d inserts into %s", batch.Len(), s.table), nil,
			func() error {
				br = t.tx.SendBatch(ctxTr, batch)
				return nil
			})
		defer func() { _ = br.Close() }()

		for i := range batch.Len() {
			rows, err := br.Query()
			if err != nil {
				return fmt.Errorf("batch insert at index %d: %w", i, err)
			}

			var rec docpager.Record
			if err := pgxscan.ScanOne(&rec, rows); err != nil {
				if IsUniqueViolation(err) {
					return fmt.Errorf("batch insert at index %d: %w", i, ErrDuplicateID)
				}
				return fmt.Errorf("batch insert at index %d: %w", i, err)
			}

			res = append(res, rec)
		}

		return br.Close()
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}
