package docpager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testRecord(id string, sec int) Record {
	return Record{
		ID:        id,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, sec, 0, time.UTC),
	}
}

func TestCursor_Empty(t *testing.T) {
	t.Parallel()

	var c Cursor
	require.True(t, c.IsEmpty())
	require.True(t, c.Reversed().IsEmpty())
	require.Empty(t, c.Encode())
	require.True(t, c.Equal(Cursor{}))

	decoded, err := DecodeCursor("")
	require.NoError(t, err)
	require.True(t, decoded.IsEmpty())
}

func TestCursor_Compare(t *testing.T) {
	t.Parallel()

	pivot := testRecord("5", 5)
	older := testRecord("4", 4)
	newer := testRecord("6", 6)

	desc := NewCursor(DefaultOrder, pivot)
	require.Positive(t, desc.Compare(older), "older records come after the cursor in descending order")
	require.Negative(t, desc.Compare(newer))
	require.Zero(t, desc.Compare(pivot))

	asc := desc.Reversed()
	require.Equal(t, Order{Field: OrderField, Direction: ASC}, asc.Order())
	require.Negative(t, asc.Compare(older))
	require.Positive(t, asc.Compare(newer))

	// same timestamp, id breaks the tie
	twin := testRecord("7", 5)
	require.Negative(t, desc.Compare(twin))
	require.Positive(t, asc.Compare(twin))
}

func TestCursor_EncodeDecode(t *testing.T) {
	t.Parallel()

	rec := Record{ID: "abc", CreatedAt: time.Date(2024, 5, 6, 7, 8, 9, 123456789, time.UTC)}
	c := NewCursor(DefaultOrder, rec)

	decoded, err := DecodeCursor(c.Encode())
	require.NoError(t, err)
	require.True(t, c.Equal(decoded))
	require.Equal(t, "abc", decoded.ID())
	require.Equal(t, DefaultOrder, decoded.Order())

	_, err = DecodeCursor("not base64 at all!")
	require.ErrorIs(t, err, ErrInvalidCursor)

	_, err = DecodeCursor("e30") // {}
	require.ErrorIs(t, err, ErrInvalidCursor)
}

func TestRangeQuery_Validate(t *testing.T) {
	t.Parallel()

	c := NewCursor(DefaultOrder, testRecord("1", 1))

	tests := []struct {
		name string
		q    RangeQuery
		err  error
	}{
		{"first page", RangeQuery{Order: DefaultOrder, Limit: 5}, nil},
		{"after", RangeQuery{Order: DefaultOrder, Boundary: c, Mode: BoundaryAfter, Limit: 5}, nil},
		{"reversed after", RangeQuery{Order: DefaultOrder.Reverse(), Boundary: c.Reversed(), Mode: BoundaryAfter, Limit: 5}, nil},
		{"zero limit", RangeQuery{Order: DefaultOrder}, ErrInvalidQuery},
		{"unknown field", RangeQuery{Order: Order{Field: "name"}, Limit: 1}, ErrInvalidQuery},
		{"missing cursor", RangeQuery{Order: DefaultOrder, Mode: BoundaryBefore, Limit: 5}, ErrInvalidQuery},
		{"mixed orderings", RangeQuery{Order: DefaultOrder.Reverse(), Boundary: c, Mode: BoundaryAfter, Limit: 5}, ErrOrderMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.q.Validate()
			if tt.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.err)
		})
	}
}
