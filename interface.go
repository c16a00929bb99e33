package docpager

//go:generate mockgen -source interface.go -destination interface_mock.go -package docpager

import (
	"context"
	"fmt"
)

// BoundaryMode defines which side of a cursor a range query returns.
// Both modes are strict and relative to the query order.
type BoundaryMode int

const (
	// BoundaryNone starts the query at the beginning of the ordering.
	BoundaryNone BoundaryMode = iota
	// BoundaryAfter returns the first Limit records strictly after the cursor.
	BoundaryAfter
	// BoundaryBefore returns the Limit records strictly before the cursor that are closest to it,
	// still in query order.
	BoundaryBefore
)

func (m BoundaryMode) String() string {
	switch m {
	case BoundaryNone:
		return "none"
	case BoundaryAfter:
		return "after"
	case BoundaryBefore:
		return "before"
	}
	return ""
}

// RangeQuery is an ordered, bounded and limited query over the collection.
type RangeQuery struct {
	Order    Order
	Boundary Cursor
	Mode     BoundaryMode
	Limit    int
}

// Validate checks that the query is well formed and the boundary cursor matches the query order.
func (q RangeQuery) Validate() error {
	if q.Limit <= 0 {
		return fmt.Errorf("range query limit %d: %w", q.Limit, ErrInvalidQuery)
	}

	if q.Order.Field != OrderField {
		return fmt.Errorf("range query order field '%s': %w", q.Order.Field, ErrInvalidQuery)
	}

	switch q.Mode {
	case BoundaryNone:
		return nil
	case BoundaryAfter, BoundaryBefore:
		if q.Boundary.IsEmpty() {
			return fmt.Errorf("range query %s without cursor: %w", q.Mode, ErrInvalidQuery)
		}
		if q.Boundary.Order() != q.Order {
			return fmt.Errorf("cursor %s used with %s: %w", q.Boundary.Order(), q.Order, ErrOrderMismatch)
		}
		return nil
	default:
		return fmt.Errorf("range query mode %d: %w", q.Mode, ErrInvalidQuery)
	}
}

// IStore is an ordered collection store.
// Implementations return store level errors; callers classify them into error kinds.
type IStore interface {
	// RangeQuery returns records in q.Order. Implementations must call q.Validate.
	RangeQuery(ctx context.Context, q RangeQuery) ([]Record, error)
	// Count returns the size of the whole collection.
	Count(ctx context.Context) (int64, error)
	// Create stores a new document and returns it with ID and CreatedAt assigned.
	Create(ctx context.Context, fields Fields) (Record, error)
	// Update merges fields into an existing document. CreatedAt is not changed.
	Update(ctx context.Context, id string, fields Fields) error
	// Delete removes a document.
	Delete(ctx context.Context, id string) error
}

// ISnapshotter is implemented by stores that can run several reads against one consistent state.
type ISnapshotter interface {
	// Snapshot runs f with a context bound to a consistent read scope.
	Snapshot(ctx context.Context, f func(ctx context.Context) error) error
}
