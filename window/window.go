// Package window holds the in-memory state of the currently displayed page.
package window

import (
	"errors"
	"fmt"

	"github.com/n-r-w/docpager"
)

var (
	// ErrTooManyItems window holds more items than its page size.
	ErrTooManyItems = errors.New("window holds more items than page size")
	// ErrCursorMismatch boundary cursors do not point at the first and last items.
	ErrCursorMismatch = errors.New("window cursors do not match items")
	// ErrInvalidPage page index or page size out of range.
	ErrInvalidPage = errors.New("invalid page index or page size")
)

// Window is the currently materialized slice of the collection.
// Items are in display order. A window is a value: navigation replaces it as a whole.
type Window struct {
	Items     []docpager.Record
	First     docpager.Cursor
	Last      docpager.Cursor
	PageIndex int
	PageSize  int
}

// New returns an empty window on page 1. Panics if pageSize is not positive.
func New(pageSize int) Window {
	if pageSize <= 0 {
		panic(fmt.Sprintf("window: page size must be positive, got %d", pageSize))
	}

	return Window{
		PageIndex: 1,
		PageSize:  pageSize,
	}
}

// Fill returns a window with items on page pageIndex.
// Boundary cursors are bound to order, which must be the display order of items.
func (w Window) Fill(order docpager.Order, items []docpager.Record, pageIndex int) Window {
	nw := Window{
		Items:     items,
		PageIndex: pageIndex,
		PageSize:  w.PageSize,
	}

	if len(items) > 0 {
		nw.First = docpager.NewCursor(order, items[0])
		nw.Last = docpager.NewCursor(order, items[len(items)-1])
	}

	return nw
}

// WithoutLast returns the window with an empty Last cursor.
// Used when a forward fetch proved there is no successor page.
func (w Window) WithoutLast() Window {
	w.Last = docpager.Cursor{}
	return w
}

// Len returns the number of items in the window.
func (w Window) Len() int {
	return len(w.Items)
}

// Full returns true if the window holds a full page.
func (w Window) Full() bool {
	return len(w.Items) == w.PageSize
}

// IsEmpty returns true if the window holds no items.
func (w Window) IsEmpty() bool {
	return len(w.Items) == 0
}

// Clone returns a deep copy of the window.
func (w Window) Clone() Window {
	if w.Items != nil {
		items := make([]docpager.Record, len(w.Items))
		for i, r := range w.Items {
			items[i] = r.Clone()
		}
		w.Items = items
	}
	return w
}

// Validate checks window invariants against order.
// An empty Last cursor on a non-empty window is accepted: it marks an exhausted window.
func (w Window) Validate(order docpager.Order) error {
	if w.PageSize <= 0 || w.PageIndex < 1 {
		return fmt.Errorf("page %d size %d: %w", w.PageIndex, w.PageSize, ErrInvalidPage)
	}

	if len(w.Items) > w.PageSize {
		return fmt.Errorf("%d > %d: %w", len(w.Items), w.PageSize, ErrTooManyItems)
	}

	if len(w.Items) == 0 {
		if !w.First.IsEmpty() || !w.Last.IsEmpty() {
			return fmt.Errorf("empty window with cursors: %w", ErrCursorMismatch)
		}
		return nil
	}

	if !w.First.Equal(docpager.NewCursor(order, w.Items[0])) {
		return fmt.Errorf("first cursor %s: %w", w.First, ErrCursorMismatch)
	}

	if !w.Last.IsEmpty() && !w.Last.Equal(docpager.NewCursor(order, w.Items[len(w.Items)-1])) {
		return fmt.Errorf("last cursor %s: %w", w.Last, ErrCursorMismatch)
	}

	return nil
}
