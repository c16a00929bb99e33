package docpager

import (
	"errors"
	"fmt"
)

var (
	// ErrQueryFailed a range or count query was rejected by the store.
	ErrQueryFailed = errors.New("query failed")
	// ErrMutationFailed create, update or delete was rejected by the store.
	ErrMutationFailed = errors.New("mutation failed")
	// ErrBoundaryViolation the store returned a response that breaks a pagination invariant,
	// e.g. no records for a previous page that must exist.
	ErrBoundaryViolation = errors.New("boundary violation")

	// ErrOrderMismatch a cursor was used with an ordering it was not produced from.
	ErrOrderMismatch = errors.New("cursor ordering mismatch")
	// ErrInvalidCursor cursor token can not be decoded.
	ErrInvalidCursor = errors.New("invalid cursor")
	// ErrInvalidQuery malformed range query.
	ErrInvalidQuery = errors.New("invalid range query")
	// ErrNotFound document does not exist.
	ErrNotFound = errors.New("document not found")
)

// Kind is the class of an error reported to callers.
type Kind int

const (
	// KindUnknown not a docpager error.
	KindUnknown Kind = iota
	// KindQueryFailed see ErrQueryFailed.
	KindQueryFailed
	// KindMutationFailed see ErrMutationFailed.
	KindMutationFailed
	// KindBoundaryViolation see ErrBoundaryViolation.
	KindBoundaryViolation
)

func (k Kind) String() string {
	switch k {
	case KindQueryFailed:
		return "QueryFailed"
	case KindMutationFailed:
		return "MutationFailed"
	case KindBoundaryViolation:
		return "BoundaryViolation"
	case KindUnknown:
	}
	return "Unknown"
}

func (k Kind) sentinel() error {
	switch k {
	case KindQueryFailed:
		return ErrQueryFailed
	case KindMutationFailed:
		return ErrMutationFailed
	case KindBoundaryViolation:
		return ErrBoundaryViolation
	case KindUnknown:
	}
	return nil
}

// Error is an error of a known kind raised by operation Op.
// errors.Is matches both the kind sentinel and the wrapped store error.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// NewError wraps err into an Error of the given kind.
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2) //nolint:mnd // sentinel and cause
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf returns the kind of err or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	switch {
	case errors.Is(err, ErrQueryFailed):
		return KindQueryFailed
	case errors.Is(err, ErrMutationFailed):
		return KindMutationFailed
	case errors.Is(err, ErrBoundaryViolation):
		return KindBoundaryViolation
	}
	return KindUnknown
}
