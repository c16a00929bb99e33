// Package mutation writes documents through the store and invalidates the pager afterwards.
//
// Create and delete change the collection size: the count is refreshed and the first page reloaded.
// Update keeps the size: only the first page is reloaded. Cursor positions of the old window are not
// reused after a write, the view always returns to page 1.
package mutation

//go:generate mockgen -source mutation.go -destination mutation_mock.go -package mutation

import (
	"context"
	"errors"
	"fmt"

	"github.com/n-r-w/docpager"
	"github.com/n-r-w/docpager/pager"
)

// Kind of mutation.
type Kind int

const (
	// KindCreate creates a document.
	KindCreate Kind = iota + 1
	// KindUpdate merges fields into a document.
	KindUpdate
	// KindDelete deletes a document.
	KindDelete
)

func (k Kind) String() string {
	switch k {
	case KindCreate:
		return "create"
	case KindUpdate:
		return "update"
	case KindDelete:
		return "delete"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ErrInvalidMutation mutation can not be sent to the store.
var ErrInvalidMutation = errors.New("invalid mutation")

// Mutation is a write request. ID is ignored for create.
type Mutation struct {
	Kind   Kind
	ID     string
	Fields docpager.Fields
}

// IEngine is the part of pager.Engine driven by the coordinator.
type IEngine interface {
	Reload(ctx context.Context) error
	LoadFirstWait(ctx context.Context) (pager.Outcome, error)
	// RecordError publishes a rejected write as the engine's last error.
	RecordError(err error)
}

// ILabeler resolves a display label by a reference id.
type ILabeler interface {
	Lookup(id string) (string, bool)
}

// Coordinator applies mutations. Safe for concurrent use.
type Coordinator struct {
	engine    IEngine
	store     docpager.IStore
	logger    docpager.ILogger
	enrichers []func(docpager.Fields) docpager.Fields
}

var _ IEngine = (*pager.Engine)(nil)

// New creates a Coordinator.
func New(engine IEngine, store docpager.IStore, opts ...Option) (*Coordinator, error) {
	if engine == nil {
		return nil, errors.New("mutation: engine cannot be nil")
	}
	if store == nil {
		return nil, errors.New("mutation: store cannot be nil")
	}

	c := &Coordinator{
		engine: engine,
		store:  store,
	}

	for _, o := range opts {
		o(c)
	}

	c.logger = docpager.LoggerOrNop(c.logger)

	return c, nil
}

// Submit sends m to the store and reloads the engine.
// For create the stored record is returned, for update and delete a record holding only the id.
//
// A rejected write returns a docpager.KindMutationFailed error. The window is not touched,
// the error becomes the engine's last error.
// A failed reload after an accepted write returns a docpager.KindQueryFailed error:
// the write is not rolled back.
func (c *Coordinator) Submit(ctx context.Context, m Mutation) (docpager.Record, error) {
	op := "Submit." + m.Kind.String()

	if err := m.validate(); err != nil {
		err = docpager.NewError(docpager.KindMutationFailed, op, err)
		c.engine.RecordError(err)
		return docpager.Record{}, err
	}

	var (
		rec docpager.Record
		err error
	)

	switch m.Kind {
	case KindCreate:
		rec, err = c.store.Create(ctx, c.enrich(m.Fields))
	case KindUpdate:
		rec = docpager.Record{ID: m.ID}
		err = c.store.Update(ctx, m.ID, c.enrich(m.Fields))
	case KindDelete:
		rec = docpager.Record{ID: m.ID}
		err = c.store.Delete(ctx, m.ID)
	}

	if err != nil {
		err = docpager.NewError(docpager.KindMutationFailed, op, err)
		c.logger.Errorf(ctx, "%v", err)
		c.engine.RecordError(err)
		return docpager.Record{}, err
	}

	c.logger.Debugf(ctx, "%s %s: accepted", m.Kind, rec.ID)

	if m.Kind == KindUpdate {
		_, err = c.engine.LoadFirstWait(ctx)
	} else {
		err = c.engine.Reload(ctx)
	}

	if err != nil {
		if docpager.KindOf(err) != docpager.KindQueryFailed {
			err = docpager.NewError(docpager.KindQueryFailed, op, err)
		}
		c.logger.Warningf(ctx, "%s %s: accepted, reload failed: %v", m.Kind, rec.ID, err)
		return rec, err
	}

	return rec, nil
}

// Create is a shortcut for Submit with KindCreate.
func (c *Coordinator) Create(ctx context.Context, fields docpager.Fields) (docpager.Record, error) {
	return c.Submit(ctx, Mutation{Kind: KindCreate, Fields: fields})
}

// Update is a shortcut for Submit with KindUpdate.
func (c *Coordinator) Update(ctx context.Context, id string, fields docpager.Fields) error {
	_, err := c.Submit(ctx, Mutation{Kind: KindUpdate, ID: id, Fields: fields})
	return err
}

// Delete is a shortcut for Submit with KindDelete.
func (c *Coordinator) Delete(ctx context.Context, id string) error {
	_, err := c.Submit(ctx, Mutation{Kind: KindDelete, ID: id})
	return err
}

func (c *Coordinator) enrich(fields docpager.Fields) docpager.Fields {
	fields = fields.Clone()
	for _, f := range c.enrichers {
		fields = f(fields)
	}
	return fields
}

func (m Mutation) validate() error {
	switch m.Kind {
	case KindCreate:
		return nil
	case KindUpdate, KindDelete:
		if m.ID == "" {
			return fmt.Errorf("%s without id: %w", m.Kind, ErrInvalidMutation)
		}
		return nil
	}
	return fmt.Errorf("unknown %s: %w", m.Kind, ErrInvalidMutation)
}
