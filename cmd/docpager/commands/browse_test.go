package commands

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/n-r-w/docpager"
	"github.com/n-r-w/docpager/memstore"
	"github.com/n-r-w/docpager/mirror"
	"github.com/stretchr/testify/require"
)

func newTestStore(n int) *memstore.Store {
	s := memstore.New(memstore.WithIDFunc(func() string { return "new" }))

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= n; i++ {
		s.Seed(docpager.Record{
			ID:        strconv.Itoa(i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Data:      docpager.Fields{"name": "Product " + strconv.Itoa(i)},
		})
	}

	return s
}

func TestBrowser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(12)

	labels := mirror.NewLabels()
	labels.Publish([]mirror.Label{{ID: "s1", Name: "Acme Store"}})

	var out bytes.Buffer
	b, err := newBrowser(s, labels, &out, 5, nil)
	require.NoError(t, err)

	input := strings.Join([]string{
		"n", "n", "n", "p",
		"/product 5",
		"/",
		"d 5",
		"c Gadget s1",
		"x",
		"q",
		"n", // never read
	}, "\n")

	require.NoError(t, b.run(ctx, strings.NewReader(input)))

	text := out.String()
	require.Contains(t, text, "page 1/3, 12 documents")
	require.Contains(t, text, "page 3/3, 12 documents")
	require.Contains(t, text, "already on the last page")
	require.Contains(t, text, "created new")
	require.Contains(t, text, "Acme Store")
	require.Contains(t, text, `unknown command "x"`)

	rec, err := s.RangeQuery(ctx, docpager.RangeQuery{Order: docpager.DefaultOrder, Limit: 1})
	require.NoError(t, err)
	require.Equal(t, "new", rec[0].ID)
	require.Equal(t, "Acme Store", rec[0].String("sellerName"))

	st := b.engine.State()
	require.Equal(t, 1, st.PageIndex)
	require.Equal(t, int64(12), st.TotalCount)
	require.Empty(t, b.query)
}

func TestBrowser_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(3)

	var out bytes.Buffer
	b, err := newBrowser(s, mirror.NewLabels(), &out, 5, nil)
	require.NoError(t, err)

	require.NoError(t, b.run(ctx, strings.NewReader("p\nd missing\nu 1\nc\n")))

	text := out.String()
	require.Contains(t, text, "already on the first page")
	require.Contains(t, text, "error: ")
	require.Contains(t, text, "usage: u id name")
	require.Contains(t, text, "usage: c name [seller]")

	_, err = newBrowser(s, mirror.NewLabels(), &out, 0, nil)
	require.Error(t, err)
}

func TestSeed(t *testing.T) {
	t.Parallel()

	s := memstore.New()
	n, err := seed(context.Background(), s, 4, "Item", "s2")
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, 4, s.Len())

	s.FailNext(memstore.OpCreate, docpager.ErrMutationFailed)
	n, err = seed(context.Background(), s, 2, "Item", "")
	require.ErrorIs(t, err, docpager.ErrMutationFailed)
	require.Zero(t, n)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("DOCPAGER_DSN", "postgres://localhost/docs")
	t.Setenv("DOCPAGER_PAGE_SIZE", "7")

	cmd := NewRootCmd()
	browse, _, err := cmd.Find([]string{"browse"})
	require.NoError(t, err)
	require.NoError(t, browse.ParseFlags([]string{"--table", "products"}))

	cfg, err := loadConfig(browse)
	require.NoError(t, err)
	require.Equal(t, "postgres://localhost/docs", cfg.DSN)
	require.Equal(t, 7, cfg.PageSize)
	require.Equal(t, "products", cfg.Table)
	require.False(t, cfg.Debug)
	require.NotNil(t, cfg.logger())
}

func TestLoadConfig_NoDSN(t *testing.T) {
	t.Setenv("DOCPAGER_DSN", "")

	cmd := NewRootCmd()
	seedCmd, _, err := cmd.Find([]string{"seed"})
	require.NoError(t, err)

	_, err = loadConfig(seedCmd)
	require.ErrorContains(t, err, "dsn is required")
}
