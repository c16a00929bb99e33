package mirror

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/n-r-w/docpager"
	"golang.org/x/sync/errgroup"
)

// ISource is an observable reference collection.
type ISource[T any] interface {
	// Load returns the whole collection.
	Load(ctx context.Context) ([]T, error)
	// Wait blocks until the collection may have changed.
	Wait(ctx context.Context) error
}

// WatchOption Watch option.
type WatchOption func(*watchOptions)

type watchOptions struct {
	name   string
	logger docpager.ILogger
	policy []backoff.RetryOption
}

// WithName sets the mirror name used in logs.
func WithName(name string) WatchOption {
	return func(o *watchOptions) {
		o.name = name
	}
}

// WithLogger sets the logger.
func WithLogger(l docpager.ILogger) WatchOption {
	return func(o *watchOptions) {
		o.logger = l
	}
}

// WithRetryPolicy sets the retry policy for failed loads and waits.
// By default failures are retried with exponential backoff until the context is canceled.
func WithRetryPolicy(policy ...backoff.RetryOption) WatchOption {
	return func(o *watchOptions) {
		o.policy = policy
	}
}

// Watch loads source into m and reloads it after every change notification.
// Failures are published as Snapshot.Err and retried according to the retry policy.
// Returns nil when ctx is canceled, or the last error if the retry policy gives up.
func Watch[T any](ctx context.Context, m *Mirror[T], source ISource[T], opts ...WatchOption) error {
	o := watchOptions{name: "mirror"}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = docpager.LoggerOrNop(o.logger)

	policy := append([]backoff.RetryOption{
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, d time.Duration) {
			o.logger.Warningf(ctx, "%s: %v, retry in %v", o.name, err, d)
		}),
	}, o.policy...)

	pending := false
	for {
		items, err := backoff.Retry(ctx, func() ([]T, error) {
			items, err := next(ctx, source, &pending)
			if err != nil && ctx.Err() == nil {
				m.Fail(err)
			}
			return items, err
		}, policy...)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			o.logger.Errorf(ctx, "%s: giving up: %v", o.name, err)
			return err
		}

		s := m.Publish(items)
		o.logger.Debugf(ctx, "%s: version %d, %d items", o.name, s.Version, len(s.Items))
		pending = true
	}
}

// next waits for a change if pending is set, then loads the collection.
// A failed wait clears pending, so the following attempt reloads without waiting.
func next[T any](ctx context.Context, source ISource[T], pending *bool) ([]T, error) {
	if *pending {
		*pending = false
		if err := source.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for changes: %w", err)
		}
	}

	items, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return items, nil
}

// Group runs several watchers. The first watcher that gives up cancels the others.
type Group struct {
	g   *errgroup.Group
	ctx context.Context
}

// NewGroup creates a Group bound to ctx.
func NewGroup(ctx context.Context) *Group {
	g, gctx := errgroup.WithContext(ctx)
	return &Group{g: g, ctx: gctx}
}

// Go starts a watcher for m in g.
func Go[T any](g *Group, m *Mirror[T], source ISource[T], opts ...WatchOption) {
	g.g.Go(func() error {
		return Watch(g.ctx, m, source, opts...)
	})
}

// Wait waits for all watchers and returns the first error.
func (g *Group) Wait() error {
	return g.g.Wait()
}
