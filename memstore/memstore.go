// Package memstore implements an in-memory ordered collection store.
package memstore

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/n-r-w/docpager"
)

// Op store operation name used for fault injection.
type Op string

// Store operations.
const (
	OpRangeQuery Op = "RangeQuery"
	OpCount      Op = "Count"
	OpCreate     Op = "Create"
	OpUpdate     Op = "Update"
	OpDelete     Op = "Delete"
)

// ErrReadOnly mutation inside a snapshot.
var ErrReadOnly = errors.New("mutation inside read only snapshot")

// Option memstore option.
type Option func(*Store)

// WithClock sets the function assigning CreatedAt to new documents.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDFunc sets the function generating document identifiers.
func WithIDFunc(f func() string) Option {
	return func(s *Store) {
		s.newID = f
	}
}

// WithQueryHook sets a function called before every range query.
func WithQueryHook(f func(ctx context.Context, q docpager.RangeQuery)) Option {
	return func(s *Store) {
		s.queryHook = f
	}
}

// Stats number of calls per operation.
type Stats map[Op]int

// Store is a thread safe in-memory implementation of docpager.IStore and docpager.ISnapshotter.
type Store struct {
	now       func() time.Time
	newID     func() string
	queryHook func(ctx context.Context, q docpager.RangeQuery)

	mu       sync.RWMutex
	records  []docpager.Record
	lastTime time.Time
	failures map[Op][]error
	stats    Stats
	notify   chan struct{}
}

var (
	_ docpager.IStore       = (*Store)(nil)
	_ docpager.ISnapshotter = (*Store)(nil)
)

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
		failures: make(map[Op][]error),
		stats:    make(Stats),
		notify:   make(chan struct{}, 1),
	}

	for _, o := range opts {
		o(s)
	}

	return s
}

// Seed inserts records as is. Records keep their ID and CreatedAt.
func (s *Store) Seed(records ...docpager.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		s.records = append(s.records, r.Clone())
		if r.CreatedAt.After(s.lastTime) {
			s.lastTime = r.CreatedAt
		}
	}
	s.changed()
}

// FailNext makes the next call of op return err.
func (s *Store) FailNext(op Op, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[op] = append(s.failures[op], err)
}

// Stats returns the number of calls per operation, failed calls included.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make(Stats, len(s.stats))
	for k, v := range s.stats {
		res[k] = v
	}
	return res
}

// Len returns the number of documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

// Changes returns a channel receiving a value after the collection changes.
// Notifications are coalesced: one pending value stands for any number of changes.
func (s *Store) Changes() <-chan struct{} {
	return s.notify
}

// RangeQuery implements docpager.IStore.
func (s *Store) RangeQuery(ctx context.Context, q docpager.RangeQuery) ([]docpager.Record, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if s.queryHook != nil {
		s.queryHook(ctx, q)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := s.read(ctx, OpRangeQuery)
	if err != nil {
		return nil, err
	}

	sorted := slices.Clone(records)
	slices.SortFunc(sorted, func(a, b docpager.Record) int {
		return compare(q.Order, a, b)
	})

	var res []docpager.Record
	switch q.Mode {
	case docpager.BoundaryNone:
		res = sorted
	case docpager.BoundaryAfter:
		idx, _ := slices.BinarySearchFunc(sorted, q.Boundary, func(r docpager.Record, c docpager.Cursor) int {
			return c.Compare(r)
		})
		// skip the cursor position itself
		for idx < len(sorted) && q.Boundary.Compare(sorted[idx]) <= 0 {
			idx++
		}
		res = sorted[idx:]
	case docpager.BoundaryBefore:
		idx, _ := slices.BinarySearchFunc(sorted, q.Boundary, func(r docpager.Record, c docpager.Cursor) int {
			return c.Compare(r)
		})
		res = sorted[:idx]
		if len(res) > q.Limit {
			res = res[len(res)-q.Limit:]
		}
	}

	if len(res) > q.Limit {
		res = res[:q.Limit]
	}

	out := make([]docpager.Record, len(res))
	for i, r := range res {
		out[i] = r.Clone()
	}
	return out, nil
}

// Count implements docpager.IStore.
func (s *Store) Count(ctx context.Context) (int64, error) {
	records, err := s.read(ctx, OpCount)
	if err != nil {
		return 0, err
	}
	return int64(len(records)), nil
}

// Create implements docpager.IStore.
func (s *Store) Create(ctx context.Context, fields docpager.Fields) (docpager.Record, error) {
	if err := s.checkWritable(ctx); err != nil {
		return docpager.Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.callLocked(OpCreate); err != nil {
		return docpager.Record{}, err
	}

	createdAt := s.now()
	if !createdAt.After(s.lastTime) {
		createdAt = s.lastTime.Add(time.Nanosecond)
	}
	s.lastTime = createdAt

	rec := docpager.Record{
		ID:        s.newID(),
		CreatedAt: createdAt,
		Data:      fields.Clone(),
	}
	s.records = append(s.records, rec)
	s.changed()

	return rec.Clone(), nil
}

// Update implements docpager.IStore.
func (s *Store) Update(ctx context.Context, id string, fields docpager.Fields) error {
	if err := s.checkWritable(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.callLocked(OpUpdate); err != nil {
		return err
	}

	idx := s.indexLocked(id)
	if idx < 0 {
		return fmt.Errorf("update %s: %w", id, docpager.ErrNotFound)
	}

	data := s.records[idx].Data.Clone()
	for k, v := range fields {
		data[k] = v
	}
	s.records[idx].Data = data
	s.changed()

	return nil
}

// Delete implements docpager.IStore.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.checkWritable(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.callLocked(OpDelete); err != nil {
		return err
	}

	idx := s.indexLocked(id)
	if idx < 0 {
		return fmt.Errorf("delete %s: %w", id, docpager.ErrNotFound)
	}

	s.records = slices.Delete(s.records, idx, idx+1)
	s.changed()

	return nil
}

type snapshotKeyType struct{}

var snapshotKey snapshotKeyType //nolint:gochecknoglobals // ok

// Snapshot implements docpager.ISnapshotter. Reads inside f observe a frozen copy of the collection.
// Nested snapshots join the outer one.
func (s *Store) Snapshot(ctx context.Context, f func(ctx context.Context) error) error {
	if _, ok := ctx.Value(snapshotKey).([]docpager.Record); ok {
		return f(ctx)
	}

	s.mu.RLock()
	frozen := slices.Clone(s.records)
	s.mu.RUnlock()

	if frozen == nil {
		frozen = []docpager.Record{}
	}

	return f(context.WithValue(ctx, snapshotKey, frozen))
}

// read returns the records visible to ctx.
func (s *Store) read(ctx context.Context, op Op) ([]docpager.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.callLocked(op); err != nil {
		return nil, err
	}

	if frozen, ok := ctx.Value(snapshotKey).([]docpager.Record); ok {
		return frozen, nil
	}

	return slices.Clone(s.records), nil
}

func (s *Store) checkWritable(ctx context.Context) error {
	if _, ok := ctx.Value(snapshotKey).([]docpager.Record); ok {
		return ErrReadOnly
	}
	return ctx.Err()
}

func (s *Store) callLocked(op Op) error {
	s.stats[op]++

	if queue := s.failures[op]; len(queue) > 0 {
		err := queue[0]
		s.failures[op] = queue[1:]
		return err
	}

	return nil
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.records, func(r docpager.Record) bool {
		return r.ID == id
	})
}

func (s *Store) changed() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// compare orders records by (CreatedAt, ID) in the direction of order.
func compare(order docpager.Order, a, b docpager.Record) int {
	cmp := a.CreatedAt.Compare(b.CreatedAt)
	if cmp == 0 {
		cmp = strings.Compare(a.ID, b.ID)
	}

	if order.Direction == docpager.DESC {
		return -cmp
	}
	return cmp
}
