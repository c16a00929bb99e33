// Package filter builds keyset range and count queries over a document table.
//
// Records are ordered by the composite key (created_at, id). A cursor is turned into a row
// comparison on that key, so a page is read with an index range scan instead of an offset skip.
package filter

import (
	"fmt"

	"github.com/n-r-w/docpager"
	sq "github.com/n-r-w/squirrel"
)

// Columns names of the document table columns.
// Selected columns are aliased to the names of DefaultColumns, so rows always scan into docpager.Record.
type Columns struct {
	ID        string
	CreatedAt string
	Data      string
	// UpdatedAt is optional, it is only written by updates.
	UpdatedAt string
}

// DefaultColumns columns of the table created by pgstore.CreateTableSQL.
var DefaultColumns = Columns{ //nolint:gochecknoglobals // ok
	ID:        "id",
	CreatedAt: "created_at",
	Data:      "data",
	UpdatedAt: "updated_at",
}

// Select returns the id, created_at and data columns aliased to their default names.
func (c Columns) Select() []string {
	return []string{
		alias(c.ID, DefaultColumns.ID),
		alias(c.CreatedAt, DefaultColumns.CreatedAt),
		alias(c.Data, DefaultColumns.Data),
	}
}

func alias(column, name string) string {
	if column == name {
		return column
	}
	return column + " AS " + name
}

type option func(f *filter)

// WithColumns overrides the column names.
func WithColumns(c Columns) option {
	return func(f *filter) {
		f.columns = c
	}
}

// WithWhere adds a condition applied to range and count queries.
// Page counts are only consistent with pages if both use the same conditions.
func WithWhere(pred sq.Sqlizer) option {
	return func(f *filter) {
		f.where = append(f.where, pred)
	}
}

type filter struct {
	table   string
	columns Columns
	where   []sq.Sqlizer
	query   docpager.RangeQuery
}

func newFilter(table string, q docpager.RangeQuery, opts ...option) (*filter, error) {
	f := &filter{
		table:   table,
		columns: DefaultColumns,
		query:   q,
	}

	for _, o := range opts {
		o(f)
	}

	return f, validateFilter(f)
}

func validateFilter(f *filter) error {
	if f.table == "" {
		return ErrNoTable
	}

	if f.columns.ID == "" || f.columns.CreatedAt == "" || f.columns.Data == "" {
		return fmt.Errorf("columns %+v: %w", f.columns, ErrNoColumn)
	}

	return nil
}

// Builder creates a statement builder with PostgreSQL placeholders.
func Builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// NewRangeBuilder returns a SELECT of id, created_at and data for q.
// The boundary cursor must be bound to q.Order, see docpager.RangeQuery.Validate.
func NewRangeBuilder(table string, q docpager.RangeQuery, opts ...option) (sq.SelectBuilder, error) {
	if err := q.Validate(); err != nil {
		return sq.Select(), err
	}

	f, err := newFilter(table, q, opts...)
	if err != nil {
		return sq.Select(), err
	}

	return newSquirrelBuilder(f).buildRange()
}

// NewCountBuilder returns a SELECT count(*) of the whole collection.
func NewCountBuilder(table string, opts ...option) (sq.SelectBuilder, error) {
	f, err := newFilter(table, docpager.RangeQuery{}, opts...)
	if err != nil {
		return sq.Select(), err
	}

	return newSquirrelBuilder(f).buildCount(), nil
}
