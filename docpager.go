// Package docpager implements bidirectional cursor pagination over a remote,
// append-ordered document collection.
//
// The root package holds the data model shared by all subpackages: records,
// orderings, cursors, the ordered collection store contract and error kinds.
// Navigation lives in package pager, invalidation after writes in package mutation.
package docpager

import (
	"maps"
	"time"
)

// Fields is a document body used for create and update calls.
type Fields map[string]any

// Clone returns a shallow copy of the fields.
func (f Fields) Clone() Fields {
	if f == nil {
		return Fields{}
	}
	return maps.Clone(f)
}

// Record is an externally owned document.
// CreatedAt is the ordering field, it is assigned by the store and never changes.
type Record struct {
	ID        string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	Data      Fields    `db:"data"`
}

// String returns a string field of the document. Returns "" if the field is absent or not a string.
func (r Record) String(field string) string {
	if r.Data == nil {
		return ""
	}

	s, _ := r.Data[field].(string)
	return s
}

// Clone returns a copy of the record with its own Data map.
func (r Record) Clone() Record {
	r.Data = r.Data.Clone()
	return r
}
