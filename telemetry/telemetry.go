// Package telemetry decorates a document store with spans and request metrics.
package telemetry

import (
	"context"
	"time"

	"github.com/n-r-w/docpager"
)

// Attribute span attribute.
type Attribute struct {
	Key   string
	Value any
}

// ISpan interface for span.
type ISpan interface {
	AddAttributes(attributes []Attribute)
	End()
}

// ITelemetry interface for telemetry.
type ITelemetry interface {
	// StartSpan starts new span. If returns nil, span is not created.
	StartSpan(ctx context.Context, name string) (context.Context, ISpan)
	// ObserveRequestDuration records request duration.
	ObserveRequestDuration(ctx context.Context, operation string, duration time.Duration)
	// ObserveRequest records request count.
	ObserveRequest(ctx context.Context, operation string)
	// ObserveRequestError records request error.
	ObserveRequestError(ctx context.Context, operation string, err error)
}

// Store store wrapper sending telemetry for every call.
type Store struct {
	parent    docpager.IStore
	telemetry ITelemetry
}

var (
	_ docpager.IStore       = (*Store)(nil)
	_ docpager.ISnapshotter = (*Store)(nil)
)

// New creates a new Store instance.
func New(parent docpager.IStore, telemetry ITelemetry) *Store {
	return &Store{
		parent:    parent,
		telemetry: telemetry,
	}
}

// RangeQuery implements docpager.IStore.
func (s *Store) RangeQuery(ctx context.Context, q docpager.RangeQuery) (res []docpager.Record, err error) {
	attrs := []Attribute{
		{"order", q.Order.String()},
		{"mode", q.Mode.String()},
		{"limit", q.Limit},
	}
	if !q.Boundary.IsEmpty() {
		attrs = append(attrs, Attribute{"boundary", q.Boundary.String()})
	}

	s.observe(ctx, "range_query", attrs, func(ctx context.Context) error {
		res, err = s.parent.RangeQuery(ctx, q)
		return err
	})

	return res, err
}

// Count implements docpager.IStore.
func (s *Store) Count(ctx context.Context) (n int64, err error) {
	s.observe(ctx, "count", nil, func(ctx context.Context) error {
		n, err = s.parent.Count(ctx)
		return err
	})

	return n, err
}

// Create implements docpager.IStore.
func (s *Store) Create(ctx context.Context, fields docpager.Fields) (rec docpager.Record, err error) {
	s.observe(ctx, "create", nil, func(ctx context.Context) error {
		rec, err = s.parent.Create(ctx, fields)
		return err
	})

	return rec, err
}

// Update implements docpager.IStore.
func (s *Store) Update(ctx context.Context, id string, fields docpager.Fields) (err error) {
	s.observe(ctx, "update", []Attribute{{"id", id}}, func(ctx context.Context) error {
		err = s.parent.Update(ctx, id, fields)
		return err
	})

	return err
}

// Delete implements docpager.IStore.
func (s *Store) Delete(ctx context.Context, id string) (err error) {
	s.observe(ctx, "delete", []Attribute{{"id", id}}, func(ctx context.Context) error {
		err = s.parent.Delete(ctx, id)
		return err
	})

	return err
}

// Snapshot implements docpager.ISnapshotter. If the parent store has no snapshots, f runs directly.
func (s *Store) Snapshot(ctx context.Context, f func(ctx context.Context) error) (err error) {
	snap, ok := s.parent.(docpager.ISnapshotter)
	if !ok {
		return f(ctx)
	}

	s.observe(ctx, "snapshot", nil, func(ctx context.Context) error {
		err = snap.Snapshot(ctx, f)
		return err
	})

	return err
}

func (s *Store) observe(ctx context.Context, operation string, attrs []Attribute, f func(ctx context.Context) error) {
	ctxSpan, span := s.telemetry.StartSpan(ctx, "docstore."+operation)
	if span != nil {
		ctx = ctxSpan
		defer span.End()

		span.AddAttributes(append([]Attribute{{"operation", operation}}, attrs...))
	}

	startTime := time.Now()

	err := f(ctx)

	s.telemetry.ObserveRequestDuration(ctx, operation, time.Since(startTime))

	s.telemetry.ObserveRequest(ctx, operation)
	if err != nil {
		s.telemetry.ObserveRequestError(ctx, operation, err)
	}
}
