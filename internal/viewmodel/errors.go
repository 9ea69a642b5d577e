package viewmodel

import "errors"

var (
	// ErrStale is returned by a load whose result was discarded because a
	// newer load started after it.
	ErrStale = errors.New("stale load discarded")

	// ErrUnknownColumn indicates a drop onto a status that is not a board
	// column.
	ErrUnknownColumn = errors.New("unknown kanban column")

	// ErrFormClosed is returned by Submit when no form is open.
	ErrFormClosed = errors.New("no form is open")
)
