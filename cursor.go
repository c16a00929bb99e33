package docpager

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Cursor is an opaque position marker: "this record, in this ordering".
// A cursor is only valid against the ordering it was produced from.
// The zero value is the empty cursor.
type Cursor struct {
	order     Order
	createdAt time.Time
	id        string
	valid     bool
}

// NewCursor returns a cursor pointing at rec under order.
func NewCursor(order Order, rec Record) Cursor {
	return Cursor{
		order:     order,
		createdAt: rec.CreatedAt,
		id:        rec.ID,
		valid:     true,
	}
}

// IsEmpty returns true for the empty cursor.
func (c Cursor) IsEmpty() bool {
	return !c.valid
}

// Order returns the ordering the cursor is bound to.
func (c Cursor) Order() Order {
	return c.order
}

// ID returns the identifier of the record the cursor points at.
func (c Cursor) ID() string {
	return c.id
}

// CreatedAt returns the ordering value of the record the cursor points at.
func (c Cursor) CreatedAt() time.Time {
	return c.createdAt
}

// Reversed returns the same position bound to the reversed ordering.
// This is the only way to use a position in a query with the opposite direction.
func (c Cursor) Reversed() Cursor {
	if !c.valid {
		return c
	}
	c.order = c.order.Reverse()
	return c
}

// Compare reports where rec lies relative to the cursor in the cursor's ordering:
// negative if rec comes before the cursor, zero at the cursor, positive after it.
func (c Cursor) Compare(rec Record) int {
	cmp := rec.CreatedAt.Compare(c.createdAt)
	if cmp == 0 {
		cmp = strings.Compare(rec.ID, c.id)
	}

	if c.order.Direction == DESC {
		return -cmp
	}
	return cmp
}

// Equal returns true if both cursors point at the same position in the same ordering.
func (c Cursor) Equal(other Cursor) bool {
	if c.valid != other.valid {
		return false
	}
	if !c.valid {
		return true
	}
	return c.order == other.order && c.id == other.id && c.createdAt.Equal(other.createdAt)
}

func (c Cursor) String() string {
	if !c.valid {
		return "<empty>"
	}
	return fmt.Sprintf("%s@%s/%s", c.order, c.createdAt.Format(time.RFC3339Nano), c.id)
}

type cursorToken struct {
	Field     string `json:"f"`
	Direction string `json:"d"`
	CreatedAt string `json:"t"`
	ID        string `json:"i"`
}

// Encode returns an opaque token for the cursor. The empty cursor encodes to "".
func (c Cursor) Encode() string {
	if !c.valid {
		return ""
	}

	b, _ := json.Marshal(cursorToken{ //nolint:errchkjson // only strings
		Field:     c.order.Field,
		Direction: c.order.Direction.String(),
		CreatedAt: c.createdAt.Format(time.RFC3339Nano),
		ID:        c.id,
	})

	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeCursor decodes a token produced by Cursor.Encode. "" decodes to the empty cursor.
func DecodeCursor(token string) (Cursor, error) {
	if token == "" {
		return Cursor{}, nil
	}

	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("decode cursor: %w", ErrInvalidCursor)
	}

	var t cursorToken
	if err := json.Unmarshal(b, &t); err != nil {
		return Cursor{}, fmt.Errorf("decode cursor: %w", ErrInvalidCursor)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, t.CreatedAt)
	if err != nil {
		return Cursor{}, fmt.Errorf("decode cursor time: %w", ErrInvalidCursor)
	}

	var dir Direction
	switch t.Direction {
	case ASC.String():
		dir = ASC
	case DESC.String():
		dir = DESC
	default:
		return Cursor{}, fmt.Errorf("decode cursor direction '%s': %w", t.Direction, ErrInvalidCursor)
	}

	if t.Field == "" || t.ID == "" {
		return Cursor{}, fmt.Errorf("decode cursor: %w", ErrInvalidCursor)
	}

	return Cursor{
		order:     Order{Field: t.Field, Direction: dir},
		createdAt: createdAt,
		id:        t.ID,
		valid:     true,
	}, nil
}
