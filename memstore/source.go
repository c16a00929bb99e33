package memstore

import (
	"context"
	"slices"

	"github.com/n-r-w/docpager"
	"github.com/n-r-w/docpager/mirror"
	"github.com/samber/lo"
)

// LabelSource exposes the store as a reference collection for mirror.Watch.
// It consumes the Changes channel, so only one source per store should be watched.
type LabelSource struct {
	store *Store
	field string
}

var _ mirror.ISource[mirror.Label] = (*LabelSource)(nil)

// Labels returns a source of labels named by the string field of every document.
func (s *Store) Labels(field string) *LabelSource {
	return &LabelSource{store: s, field: field}
}

// Load implements mirror.ISource.
func (l *LabelSource) Load(ctx context.Context) ([]mirror.Label, error) {
	records, err := l.store.read(ctx, OpRangeQuery)
	if err != nil {
		return nil, err
	}

	records = slices.Clone(records)
	slices.SortFunc(records, func(a, b docpager.Record) int {
		return compare(docpager.DefaultOrder.Reverse(), a, b)
	})

	return lo.Map(records, func(r docpager.Record, _ int) mirror.Label {
		return mirror.Label{ID: r.ID, Name: r.String(l.field)}
	}), nil
}

// Wait implements mirror.ISource.
func (l *LabelSource) Wait(ctx context.Context) error {
	select {
	case <-l.store.notify:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
