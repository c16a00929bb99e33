// Package pager navigates a store page by page, in both directions, using cursors.
//
// Forward fetches use the display order and start strictly after the last item of the window.
// Backward fetches use the reversed order, start strictly after the first item of the window,
// and the result is reversed back into display order. Only one fetch is outstanding per engine:
// navigation calls made while a fetch is in flight are rejected with OutcomeBusy.
package pager

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/n-r-w/docpager"
	"github.com/n-r-w/docpager/counter"
	"github.com/n-r-w/docpager/search"
	"github.com/n-r-w/docpager/window"
	"github.com/samber/lo"
	"golang.org/x/sync/semaphore"
)

// Outcome result of a navigation call that did not fail.
type Outcome int

const (
	// OutcomeFailed returned together with an error.
	OutcomeFailed Outcome = iota
	// OutcomeMoved the window was replaced.
	OutcomeMoved
	// OutcomeLastPage no-op: the window is already the last page.
	OutcomeLastPage
	// OutcomeFirstPage no-op: the window is already the first page.
	OutcomeFirstPage
	// OutcomeExhausted the forward fetch returned nothing. The window keeps its items and page index,
	// further LoadNext calls are no-ops.
	OutcomeExhausted
	// OutcomeBusy no-op: another fetch is in flight.
	OutcomeBusy
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFailed:
		return "failed"
	case OutcomeMoved:
		return "moved"
	case OutcomeLastPage:
		return "already on last page"
	case OutcomeFirstPage:
		return "already on first page"
	case OutcomeExhausted:
		return "no more pages"
	case OutcomeBusy:
		return "busy"
	}
	return ""
}

// State read only view of the engine.
type State struct {
	Items       []docpager.Record
	PageIndex   int
	PageSize    int
	TotalCount  int64
	TotalPages  int
	IsLoading   bool
	LastError   error
	HasNext     bool
	HasPrevious bool
}

// Engine produces page windows for one view. Safe for concurrent use.
type Engine struct {
	store        docpager.IStore
	order        docpager.Order
	pageSize     int
	logger       docpager.ILogger
	counter      *counter.Tracker
	searchFields []string

	slot    *semaphore.Weighted
	loading atomic.Bool

	mu      sync.RWMutex
	win     window.Window
	lastErr error
}

// New creates an engine with an empty window on page 1.
func New(store docpager.IStore, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, errors.New("pager: store cannot be nil")
	}

	e := &Engine{
		store:        store,
		order:        docpager.DefaultOrder,
		pageSize:     DefaultPageSize,
		searchFields: search.DefaultFields,
		slot:         semaphore.NewWeighted(1),
	}

	for _, o := range opts {
		o(e)
	}

	if e.pageSize <= 0 {
		return nil, fmt.Errorf("pager: page size must be positive, got %d", e.pageSize)
	}
	if e.order.Field != docpager.OrderField {
		return nil, fmt.Errorf("pager: unsupported order field '%s'", e.order.Field)
	}

	if e.counter == nil {
		e.counter = counter.New(store, e.pageSize)
	} else if e.counter.PageSize() != e.pageSize {
		return nil, fmt.Errorf("pager: counter page size %d does not match %d", e.counter.PageSize(), e.pageSize)
	}

	e.logger = docpager.LoggerOrNop(e.logger)
	e.win = window.New(e.pageSize)

	return e, nil
}

// Counter returns the count tracker used by the engine.
func (e *Engine) Counter() *counter.Tracker {
	return e.counter
}

// Order returns the display order.
func (e *Engine) Order() docpager.Order {
	return e.order
}

// LoadFirst loads the first page. Succeeds on an empty collection.
func (e *Engine) LoadFirst(ctx context.Context) (Outcome, error) {
	if !e.tryAcquire() {
		return OutcomeBusy, nil
	}
	defer e.release()

	return e.loadFirst(ctx)
}

// LoadFirstWait is LoadFirst that waits for the in-flight fetch instead of returning OutcomeBusy.
func (e *Engine) LoadFirstWait(ctx context.Context) (Outcome, error) {
	if err := e.acquire(ctx); err != nil {
		return OutcomeFailed, err
	}
	defer e.release()

	return e.loadFirst(ctx)
}

// LoadNext loads the page following the window.
// A short window or a window with an empty last cursor is the last page: no store call is made.
func (e *Engine) LoadNext(ctx context.Context) (Outcome, error) {
	if !e.tryAcquire() {
		return OutcomeBusy, nil
	}
	defer e.release()

	const op = "LoadNext"

	w := e.Window()
	if w.Last.IsEmpty() || !w.Full() {
		return OutcomeLastPage, nil
	}

	items, err := e.fetch(ctx, op, docpager.RangeQuery{
		Order:    e.order,
		Boundary: w.Last,
		Mode:     docpager.BoundaryAfter,
		Limit:    e.pageSize,
	})
	if err != nil {
		return OutcomeFailed, e.report(ctx, err)
	}

	if len(items) == 0 {
		e.logger.Debugf(ctx, "%s: no records after %s, page %d is the last one", op, w.Last, w.PageIndex)
		e.commit(w.WithoutLast())
		return OutcomeExhausted, nil
	}

	e.commit(w.Fill(e.order, items, w.PageIndex+1))
	return OutcomeMoved, nil
}

// LoadPrevious loads the page preceding the window.
// An empty result on a page after the first one is a docpager.KindBoundaryViolation error.
func (e *Engine) LoadPrevious(ctx context.Context) (Outcome, error) {
	if !e.tryAcquire() {
		return OutcomeBusy, nil
	}
	defer e.release()

	const op = "LoadPrevious"

	w := e.Window()
	if w.PageIndex <= 1 {
		return OutcomeFirstPage, nil
	}

	if w.First.IsEmpty() {
		return OutcomeFailed, e.report(ctx, violation(op, fmt.Errorf("empty window on page %d", w.PageIndex)))
	}

	items, err := e.fetch(ctx, op, docpager.RangeQuery{
		Order:    e.order.Reverse(),
		Boundary: w.First.Reversed(),
		Mode:     docpager.BoundaryAfter,
		Limit:    e.pageSize,
	})
	if err != nil {
		return OutcomeFailed, e.report(ctx, err)
	}

	if len(items) == 0 {
		return OutcomeFailed, e.report(ctx, violation(op, fmt.Errorf("no records before %s on page %d", w.First, w.PageIndex)))
	}

	e.commit(w.Fill(e.order, lo.Reverse(items), w.PageIndex-1))
	return OutcomeMoved, nil
}

// Reload refreshes the count and loads the first page. Both reads run in one snapshot
// if the store implements docpager.ISnapshotter. Waits for the in-flight fetch.
// On failure neither the count nor the window is changed.
func (e *Engine) Reload(ctx context.Context) error {
	if err := e.acquire(ctx); err != nil {
		return err
	}
	defer e.release()

	const op = "Reload"

	var (
		total int64
		items []docpager.Record
	)

	read := func(ctx context.Context) error {
		var err error
		if total, err = e.counter.Query(ctx); err != nil {
			return err
		}

		items, err = e.fetch(ctx, op, docpager.RangeQuery{Order: e.order, Limit: e.pageSize})
		return err
	}

	var err error
	if s, ok := e.store.(docpager.ISnapshotter); ok {
		err = s.Snapshot(ctx, read)
	} else {
		err = read(ctx)
	}

	if err != nil {
		if docpager.KindOf(err) == docpager.KindUnknown {
			err = docpager.NewError(docpager.KindQueryFailed, op, err)
		}
		return e.report(ctx, err)
	}

	st := e.counter.Observe(total)
	e.commit(e.Window().Fill(e.order, items, 1))
	e.logger.Debugf(ctx, "%s: %d records, %d pages", op, st.Total, st.Pages)

	return nil
}

// State returns a snapshot of the engine state.
func (e *Engine) State() State {
	cs := e.counter.State()

	e.mu.RLock()
	defer e.mu.RUnlock()

	w := e.win.Clone()

	return State{
		Items:       w.Items,
		PageIndex:   w.PageIndex,
		PageSize:    w.PageSize,
		TotalCount:  cs.Total,
		TotalPages:  cs.Pages,
		IsLoading:   e.loading.Load(),
		LastError:   e.lastErr,
		HasNext:     !w.Last.IsEmpty() && w.Full(),
		HasPrevious: w.PageIndex > 1,
	}
}

// Window returns a copy of the current window.
func (e *Engine) Window() window.Window {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.win.Clone()
}

// Filter returns the items of the current window matching query. See package search for the scope limitation.
func (e *Engine) Filter(query string) []docpager.Record {
	return search.Filter(e.Window().Items, query, e.searchFields...)
}

func (e *Engine) loadFirst(ctx context.Context) (Outcome, error) {
	items, err := e.fetch(ctx, "LoadFirst", docpager.RangeQuery{Order: e.order, Limit: e.pageSize})
	if err != nil {
		return OutcomeFailed, e.report(ctx, err)
	}

	e.commit(e.Window().Fill(e.order, items, 1))
	return OutcomeMoved, nil
}

// fetch runs the range query and checks that the store honored it.
func (e *Engine) fetch(ctx context.Context, op string, q docpager.RangeQuery) ([]docpager.Record, error) {
	items, err := e.store.RangeQuery(ctx, q)
	if err != nil {
		return nil, docpager.NewError(docpager.KindQueryFailed, op, err)
	}

	if err := checkRange(q, items); err != nil {
		return nil, violation(op, err)
	}

	return items, nil
}

// checkRange verifies the result size, ordering and boundary.
func checkRange(q docpager.RangeQuery, items []docpager.Record) error {
	if len(items) > q.Limit {
		return fmt.Errorf("%d records returned for limit %d", len(items), q.Limit)
	}

	for i, r := range items {
		if i > 0 && docpager.NewCursor(q.Order, items[i-1]).Compare(r) <= 0 {
			return fmt.Errorf("record %s is out of %s order", r.ID, q.Order)
		}

		if q.Mode == docpager.BoundaryAfter && q.Boundary.Compare(r) <= 0 {
			return fmt.Errorf("record %s is not after %s", r.ID, q.Boundary)
		}
	}

	return nil
}

func violation(op string, err error) error {
	return docpager.NewError(docpager.KindBoundaryViolation, op, err)
}

// report logs err and records it as the last error. The window is not changed.
func (e *Engine) report(ctx context.Context, err error) error {
	if docpager.KindOf(err) == docpager.KindBoundaryViolation {
		// the count and the live collection disagree, e.g. after an external delete
		e.logger.Warningf(ctx, "%v", err)
	} else {
		e.logger.Errorf(ctx, "%v", err)
	}

	e.mu.Lock()
	e.lastErr = err
	e.mu.Unlock()

	return err
}

// RecordError sets State().LastError without changing the window, e.g. for a rejected write.
// The next successful fetch clears it.
func (e *Engine) RecordError(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lastErr = err
}

func (e *Engine) commit(w window.Window) {
	w.Items = slices.Clip(w.Items)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.win = w
	e.lastErr = nil
}

func (e *Engine) tryAcquire() bool {
	if !e.slot.TryAcquire(1) {
		return false
	}
	e.loading.Store(true)
	return true
}

func (e *Engine) acquire(ctx context.Context) error {
	if err := e.slot.Acquire(ctx, 1); err != nil {
		return err
	}
	e.loading.Store(true)
	return nil
}

func (e *Engine) release() {
	e.loading.Store(false)
	e.slot.Release(1)
}
