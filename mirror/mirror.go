// Package mirror keeps in-memory copies of small reference collections, such as categories or sellers.
//
// A mirror is written by one observer and read by any number of consumers. Readers get immutable
// snapshots and never block the writer, so a slow or failing reference source never blocks pagination.
package mirror

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/samber/lo"
)

// Snapshot is an immutable state of a mirror. Err is the last observer failure, Items keep the last good data.
type Snapshot[T any] struct {
	Items     []T
	Version   uint64
	Err       error
	UpdatedAt time.Time
}

// Mirror holds the current snapshot of a collection. Safe for concurrent use.
type Mirror[T any] struct {
	cur atomic.Pointer[Snapshot[T]]

	mu     sync.Mutex
	subs   map[uint64]func(Snapshot[T])
	nextID uint64
}

// New creates an empty mirror with version 0.
func New[T any]() *Mirror[T] {
	m := &Mirror[T]{
		subs: make(map[uint64]func(Snapshot[T])),
	}
	m.cur.Store(&Snapshot[T]{})
	return m
}

// Snapshot returns the current snapshot. Items must not be modified.
func (m *Mirror[T]) Snapshot() Snapshot[T] {
	return *m.cur.Load()
}

// Publish replaces the items and clears the error.
func (m *Mirror[T]) Publish(items []T) Snapshot[T] {
	return m.swap(func(old Snapshot[T]) Snapshot[T] {
		return Snapshot[T]{
			Items:     slices.Clip(slices.Clone(items)),
			Version:   old.Version + 1,
			UpdatedAt: time.Now(),
		}
	})
}

// Fail records an observer failure. Items and version are kept.
func (m *Mirror[T]) Fail(err error) Snapshot[T] {
	return m.swap(func(old Snapshot[T]) Snapshot[T] {
		old.Err = err
		return old
	})
}

// Subscribe registers fn to be called after every change. fn must not block.
// The returned function removes the subscription.
func (m *Mirror[T]) Subscribe(fn func(Snapshot[T])) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.subs[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		delete(m.subs, id)
	}
}

func (m *Mirror[T]) swap(f func(old Snapshot[T]) Snapshot[T]) Snapshot[T] {
	m.mu.Lock()
	s := f(m.Snapshot())
	m.cur.Store(&s)
	subs := lo.Values(m.subs)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}

	return s
}

// Label is a reference record reduced to its display name.
type Label struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

// Labels mirrors a reference collection used to resolve display names.
type Labels struct {
	*Mirror[Label]
}

// NewLabels creates an empty label mirror.
func NewLabels() *Labels {
	return &Labels{Mirror: New[Label]()}
}

// Lookup returns the name of the label with the given id.
func (l *Labels) Lookup(id string) (string, bool) {
	label, ok := lo.Find(l.Snapshot().Items, func(item Label) bool {
		return item.ID == id
	})
	return label.Name, ok
}
