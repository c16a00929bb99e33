package filter

import (
	"fmt"

	"github.com/n-r-w/docpager"
	sq "github.com/n-r-w/squirrel"
)

type squirrelBuilder struct {
	f *filter
}

func newSquirrelBuilder(f *filter) *squirrelBuilder {
	return &squirrelBuilder{
		f: f,
	}
}

func (s *squirrelBuilder) buildRange() (sq.SelectBuilder, error) {
	q := s.f.query
	cols := s.f.columns

	// limit-to-last: read the near side of the cursor in reverse and restore the order outside
	scanOrder := q.Order
	if q.Mode == docpager.BoundaryBefore {
		scanOrder = q.Order.Reverse()
	}

	builder := Builder().
		Select(cols.Select()...).
		From(s.f.table)

	for _, pred := range s.f.where {
		builder = builder.Where(pred)
	}

	switch q.Mode {
	case docpager.BoundaryNone:
	case docpager.BoundaryAfter, docpager.BoundaryBefore:
		builder = builder.Where(s.keyset(scanOrder, q.Boundary))
	default:
		return builder, fmt.Errorf("boundary mode %d: %w", q.Mode, ErrUnknownMode)
	}

	order, err := orderBy(cols, scanOrder)
	if err != nil {
		return builder, err
	}

	builder = builder.OrderBy(order...).Limit(uint64(q.Limit))

	if q.Mode != docpager.BoundaryBefore {
		return builder, nil
	}

	// the subquery exposes the aliased names
	def := DefaultColumns
	if order, err = orderBy(def, q.Order); err != nil {
		return builder, err
	}

	return Builder().
		Select(def.ID, def.CreatedAt, def.Data).
		FromSelect(builder, "page").
		OrderBy(order...), nil
}

func (s *squirrelBuilder) buildCount() sq.SelectBuilder {
	builder := Builder().
		Select("count(*)").
		From(s.f.table)

	for _, pred := range s.f.where {
		builder = builder.Where(pred)
	}

	return builder
}

// keyset returns the condition selecting records strictly after c when scanning in order.
// c is a position, its own direction is ignored.
func (s *squirrelBuilder) keyset(order docpager.Order, c docpager.Cursor) sq.Sqlizer {
	op := ">"
	if order.Direction == docpager.DESC {
		op = "<"
	}

	return sq.Expr(
		fmt.Sprintf("(%s, %s) %s (?, ?)", s.f.columns.CreatedAt, s.f.columns.ID, op),
		c.CreatedAt(), c.ID(),
	)
}

func orderBy(cols Columns, order docpager.Order) ([]string, error) {
	switch order.Direction {
	case docpager.ASC, docpager.DESC:
	default:
		return nil, fmt.Errorf("direction '%d': %w", order.Direction, ErrUnknownOrderType)
	}

	dir := order.Direction.String()
	return []string{
		cols.CreatedAt + " " + dir,
		cols.ID + " " + dir,
	}, nil
}
