package memstore

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/n-r-w/docpager"
	"github.com/n-r-w/docpager/mirror"
	"github.com/stretchr/testify/require"
)

// seeded returns a store with records "1".."n", record i created at second i.
func seeded(n int) *Store {
	s := New()
	for i := 1; i <= n; i++ {
		s.Seed(docpager.Record{
			ID:        strconv.Itoa(i),
			CreatedAt: time.Unix(int64(i), 0).UTC(),
			Data:      docpager.Fields{"name": "product " + strconv.Itoa(i)},
		})
	}
	return s
}

func ids(records []docpager.Record) []string {
	res := make([]string, 0, len(records))
	for _, r := range records {
		res = append(res, r.ID)
	}
	return res
}

func TestStore_RangeQuery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := seeded(12)

	desc := docpager.DefaultOrder
	asc := desc.Reverse()
	at := func(order docpager.Order, id int) docpager.Cursor {
		return docpager.NewCursor(order, docpager.Record{ID: strconv.Itoa(id), CreatedAt: time.Unix(int64(id), 0).UTC()})
	}

	tests := []struct {
		name string
		q    docpager.RangeQuery
		want []string
	}{
		{"first page", docpager.RangeQuery{Order: desc, Limit: 5}, []string{"12", "11", "10", "9", "8"}},
		{"after desc", docpager.RangeQuery{Order: desc, Boundary: at(desc, 8), Mode: docpager.BoundaryAfter, Limit: 5}, []string{"7", "6", "5", "4", "3"}},
		{"after desc short", docpager.RangeQuery{Order: desc, Boundary: at(desc, 3), Mode: docpager.BoundaryAfter, Limit: 5}, []string{"2", "1"}},
		{"after desc end", docpager.RangeQuery{Order: desc, Boundary: at(desc, 1), Mode: docpager.BoundaryAfter, Limit: 5}, []string{}},
		{"after asc", docpager.RangeQuery{Order: asc, Boundary: at(asc, 2), Mode: docpager.BoundaryAfter, Limit: 5}, []string{"3", "4", "5", "6", "7"}},
		{"before desc", docpager.RangeQuery{Order: desc, Boundary: at(desc, 2), Mode: docpager.BoundaryBefore, Limit: 5}, []string{"7", "6", "5", "4", "3"}},
		{"before asc", docpager.RangeQuery{Order: asc, Boundary: at(asc, 7), Mode: docpager.BoundaryBefore, Limit: 3}, []string{"4", "5", "6"}},
		{"before asc start", docpager.RangeQuery{Order: asc, Boundary: at(asc, 1), Mode: docpager.BoundaryBefore, Limit: 3}, []string{}},
		{"deleted cursor record", docpager.RangeQuery{Order: desc, Boundary: at(desc, 100), Mode: docpager.BoundaryAfter, Limit: 2}, []string{"12", "11"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := s.RangeQuery(ctx, tt.q)
			require.NoError(t, err)
			require.Equal(t, tt.want, ids(res))
		})
	}

	_, err := s.RangeQuery(ctx, docpager.RangeQuery{Order: asc, Boundary: at(desc, 1), Mode: docpager.BoundaryAfter, Limit: 1})
	require.ErrorIs(t, err, docpager.ErrOrderMismatch)
}

func TestStore_TieBreak(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	same := time.Unix(100, 0).UTC()

	s := New()
	s.Seed(
		docpager.Record{ID: "a", CreatedAt: same},
		docpager.Record{ID: "b", CreatedAt: same},
		docpager.Record{ID: "c", CreatedAt: same},
	)

	first, err := s.RangeQuery(ctx, docpager.RangeQuery{Order: docpager.DefaultOrder, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, []string{"c", "b"}, ids(first))

	next, err := s.RangeQuery(ctx, docpager.RangeQuery{
		Order:    docpager.DefaultOrder,
		Boundary: docpager.NewCursor(docpager.DefaultOrder, first[1]),
		Mode:     docpager.BoundaryAfter,
		Limit:    2,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, ids(next))
}

func TestStore_Mutations(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := time.Unix(10, 0).UTC()
	n := 0
	s := New(
		WithClock(func() time.Time { return clock }),
		WithIDFunc(func() string { n++; return "id" + strconv.Itoa(n) }),
	)

	r1, err := s.Create(ctx, docpager.Fields{"name": "one"})
	require.NoError(t, err)
	require.Equal(t, "id1", r1.ID)
	require.Equal(t, clock, r1.CreatedAt)

	// clock does not move: creation times stay strictly increasing
	r2, err := s.Create(ctx, docpager.Fields{"name": "two"})
	require.NoError(t, err)
	require.True(t, r2.CreatedAt.After(r1.CreatedAt))

	require.NoError(t, s.Update(ctx, r1.ID, docpager.Fields{"price": 5}))
	res, err := s.RangeQuery(ctx, docpager.RangeQuery{Order: docpager.DefaultOrder, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, []string{"id2", "id1"}, ids(res))
	require.Equal(t, "one", res[1].String("name"))
	require.Equal(t, 5, res[1].Data["price"])
	require.Equal(t, r1.CreatedAt, res[1].CreatedAt)

	require.ErrorIs(t, s.Update(ctx, "missing", nil), docpager.ErrNotFound)
	require.ErrorIs(t, s.Delete(ctx, "missing"), docpager.ErrNotFound)

	require.NoError(t, s.Delete(ctx, r1.ID))
	count, err := s.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	select {
	case <-s.Changes():
	default:
		t.Fatal("change notification expected")
	}
}

func TestStore_Snapshot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := seeded(3)

	require.NoError(t, s.Snapshot(ctx, func(ctx context.Context) error {
		// a concurrent writer outside the snapshot
		require.NoError(t, s.Delete(context.Background(), "3"))

		count, err := s.Count(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(3), count)

		res, err := s.RangeQuery(ctx, docpager.RangeQuery{Order: docpager.DefaultOrder, Limit: 5})
		require.NoError(t, err)
		require.Equal(t, []string{"3", "2", "1"}, ids(res))

		_, err = s.Create(ctx, nil)
		require.ErrorIs(t, err, ErrReadOnly)

		return s.Snapshot(ctx, func(ctx context.Context) error {
			count, err := s.Count(ctx)
			require.NoError(t, err)
			require.Equal(t, int64(3), count, "nested snapshot joins the outer one")
			return nil
		})
	}))

	count, err := s.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}

func TestStore_FailNext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := seeded(1)
	errDenied := errors.New("permission denied")

	s.FailNext(OpCount, errDenied)
	_, err := s.Count(ctx)
	require.ErrorIs(t, err, errDenied)

	_, err = s.Count(ctx)
	require.NoError(t, err)

	s.FailNext(OpDelete, errDenied)
	require.ErrorIs(t, s.Delete(ctx, "1"), errDenied)
	require.Equal(t, 1, s.Len())

	require.Equal(t, 2, s.Stats()[OpCount])
	require.Equal(t, 1, s.Stats()[OpDelete])
}

func TestStore_Labels(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New()
	seller, err := s.Create(ctx, docpager.Fields{"name": "Acme Store"})
	require.NoError(t, err)

	labels := mirror.NewLabels()
	done := make(chan error)
	go func() {
		done <- mirror.Watch(ctx, labels.Mirror, s.Labels("name"))
	}()

	// the pending notification of Create may trigger one extra reload
	require.Eventually(t, func() bool {
		name, ok := labels.Lookup(seller.ID)
		return ok && name == "Acme Store"
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, s.Update(ctx, seller.ID, docpager.Fields{"name": "Acme"}))

	require.Eventually(t, func() bool {
		name, _ := labels.Lookup(seller.ID)
		return name == "Acme"
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
