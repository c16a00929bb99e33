package filter

import (
	"errors"
)

var (
	// ErrUnknownOrderType unknown sort direction.
	ErrUnknownOrderType = errors.New("unknown order type")

	// ErrUnknownMode unknown boundary mode.
	ErrUnknownMode = errors.New("unknown boundary mode")

	// ErrNoTable table name is empty.
	ErrNoTable = errors.New("table name is empty")

	// ErrNoColumn a column name is empty.
	ErrNoColumn = errors.New("column name is empty")
)
