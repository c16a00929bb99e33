// Package counter tracks the authoritative size of the collection.
package counter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/n-r-w/docpager"
)

// ICounter is the subset of docpager.IStore used by Tracker.
type ICounter interface {
	Count(ctx context.Context) (int64, error)
}

// State is an immutable snapshot of the count.
type State struct {
	// Total number of records in the collection.
	Total int64
	// Pages is ceil(Total/PageSize), never less than 1.
	Pages int
	// Version is incremented on every accepted refresh. Zero means never refreshed.
	Version uint64
	// RefreshedAt wall clock time of the last accepted refresh.
	RefreshedAt time.Time
}

// Tracker holds the count state. It is refreshed only explicitly and never inferred from window sizes.
type Tracker struct {
	counter  ICounter
	pageSize int
	now      func() time.Time

	mu    sync.RWMutex
	state State
}

// New creates a Tracker. Panics if pageSize is not positive.
func New(counter ICounter, pageSize int) *Tracker {
	if pageSize <= 0 {
		panic(fmt.Sprintf("counter: page size must be positive, got %d", pageSize))
	}

	return &Tracker{
		counter:  counter,
		pageSize: pageSize,
		now:      time.Now,
		state:    State{Pages: 1},
	}
}

// PageSize returns the page size used to derive the page count.
func (t *Tracker) PageSize() int {
	return t.pageSize
}

// Refresh queries the store for the collection size.
// On error the previous state is kept and the error is of kind docpager.KindQueryFailed.
func (t *Tracker) Refresh(ctx context.Context) (State, error) {
	total, err := t.Query(ctx)
	if err != nil {
		return t.State(), err
	}

	return t.Observe(total), nil
}

// Query issues the count query without changing the state.
// Used when the count must be committed together with other results.
func (t *Tracker) Query(ctx context.Context) (int64, error) {
	total, err := t.counter.Count(ctx)
	if err != nil {
		return 0, docpager.NewError(docpager.KindQueryFailed, "Count", err)
	}

	return total, nil
}

// Observe accepts a count pushed by an external observer.
func (t *Tracker) Observe(total int64) State {
	if total < 0 {
		total = 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = State{
		Total:       total,
		Pages:       Pages(total, t.pageSize),
		Version:     t.state.Version + 1,
		RefreshedAt: t.now(),
	}

	return t.state
}

// State returns the current state.
func (t *Tracker) State() State {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.state
}

// Pages returns max(1, ceil(total/pageSize)).
func Pages(total int64, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 1
	}

	size := int64(pageSize)
	return int((total + size - 1) / size)
}
