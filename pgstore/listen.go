package pgstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/n-r-w/docpager/filter"
	"github.com/n-r-w/docpager/mirror"
)

// Reference describes a reference table mirrored as labels, e.g. sellers or categories.
type Reference struct {
	Table       string
	IDColumn    string
	LabelColumn string
}

// ListenSource loads a reference table and waits for its change notifications.
// The table must carry the trigger created by NotifyTriggerSQL.
type ListenSource struct {
	s   *Store
	ref Reference

	mu   sync.Mutex
	conn *pgxpool.Conn
}

var _ mirror.ISource[mirror.Label] = (*ListenSource)(nil)

// Listen returns a label source for ref. Close must be called after the watch ends.
func (s *Store) Listen(ref Reference) *ListenSource {
	if ref.IDColumn == "" {
		ref.IDColumn = "id"
	}
	if ref.LabelColumn == "" {
		ref.LabelColumn = "name"
	}

	return &ListenSource{s: s, ref: ref}
}

// Load implements mirror.ISource. Errors that cannot go away on retry stop the watch.
func (l *ListenSource) Load(ctx context.Context) ([]mirror.Label, error) {
	builder := filter.Builder().
		Select(l.ref.IDColumn+" AS id", l.ref.LabelColumn+" AS name").
		From(l.ref.Table).
		OrderBy(l.ref.IDColumn)

	var labels []mirror.Label
	if err := Select(ctx, l.s.connection(ctx), builder, &labels); err != nil {
		if IsTransient(err) || ctx.Err() != nil {
			return nil, err
		}
		return nil, backoff.Permanent(err)
	}

	return labels, nil
}

// Wait implements mirror.ISource.
// The first call after (re)subscribing returns at once, since changes made before LISTEN are not delivered.
func (l *ListenSource) Wait(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.conn == nil {
		if l.s.pool == nil {
			return errNoPool
		}

		conn, err := l.s.pool.Acquire(ctx)
		if err != nil {
			return fmt.Errorf("failed to acquire connection: %w", err)
		}

		if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{ChannelName(l.ref.Table)}.Sanitize()); err != nil {
			conn.Release()
			return fmt.Errorf("listen %s: %w", ChannelName(l.ref.Table), err)
		}

		l.conn = conn
		return nil
	}

	if _, err := l.conn.Conn().WaitForNotification(ctx); err != nil {
		l.releaseLocked()
		return err
	}

	return nil
}

// Close releases the listening connection.
func (l *ListenSource) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.releaseLocked()
}

func (l *ListenSource) releaseLocked() {
	if l.conn == nil {
		return
	}

	// the session still listens, it must not return to the pool
	_ = l.conn.Conn().Close(context.Background())
	l.conn.Release()
	l.conn = nil
}
