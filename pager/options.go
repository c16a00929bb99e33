package pager

import (
	"github.com/n-r-w/docpager"
	"github.com/n-r-w/docpager/counter"
)

// DefaultPageSize page size of the product list view.
const DefaultPageSize = 5

// Option engine option.
type Option func(*Engine)

// WithPageSize sets the page size. Must be positive.
func WithPageSize(n int) Option {
	return func(e *Engine) {
		e.pageSize = n
	}
}

// WithOrder sets the display order. Its reverse is used for backward fetches.
func WithOrder(order docpager.Order) Option {
	return func(e *Engine) {
		e.order = order
	}
}

// WithLogger sets the logger.
func WithLogger(l docpager.ILogger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithCounter sets a shared count tracker. Its page size must match the engine page size.
// By default the engine creates its own tracker over the store.
func WithCounter(t *counter.Tracker) Option {
	return func(e *Engine) {
		e.counter = t
	}
}

// WithSearchFields sets the document fields used by Engine.Filter.
func WithSearchFields(fields ...string) Option {
	return func(e *Engine) {
		e.searchFields = fields
	}
}
