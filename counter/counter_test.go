package counter

import (
	"context"
	"errors"
	"testing"

	"github.com/n-r-w/docpager"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total    int64
		pageSize int
		want     int
	}{
		{0, 5, 1},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{12, 5, 3},
		{11, 5, 3},
		{10, 5, 2},
		{-3, 5, 1},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, Pages(tt.total, tt.pageSize), "total=%d size=%d", tt.total, tt.pageSize)
	}
}

func TestTracker_Refresh(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	mc := gomock.NewController(t)
	defer mc.Finish()

	store := docpager.NewMockIStore(mc)
	gomock.InOrder(
		store.EXPECT().Count(gomock.Any()).Return(int64(12), nil),
		store.EXPECT().Count(gomock.Any()).Return(int64(0), errors.New("quota exceeded")),
		store.EXPECT().Count(gomock.Any()).Return(int64(11), nil),
	)

	tr := New(store, 5)
	require.Equal(t, State{Pages: 1}, tr.State())

	st, err := tr.Refresh(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(12), st.Total)
	require.Equal(t, 3, st.Pages)
	require.Equal(t, uint64(1), st.Version)
	require.False(t, st.RefreshedAt.IsZero())

	// failed refresh keeps the previous state
	st, err = tr.Refresh(ctx)
	require.ErrorIs(t, err, docpager.ErrQueryFailed)
	require.Equal(t, int64(12), st.Total)
	require.Equal(t, uint64(1), tr.State().Version)

	st, err = tr.Refresh(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(11), st.Total)
	require.Equal(t, 3, st.Pages)
	require.Equal(t, uint64(2), st.Version)
}

func TestTracker_Observe(t *testing.T) {
	t.Parallel()

	tr := New(nil, 5)
	st := tr.Observe(0)
	require.Equal(t, 1, st.Pages, "empty collection still has one page")
	require.Equal(t, uint64(1), st.Version)

	st = tr.Observe(26)
	require.Equal(t, 6, st.Pages)
	require.Equal(t, st, tr.State())

	require.Panics(t, func() { New(nil, 0) })
}
