package highlight

import "errors"

// Errors returned by highlight operations.
var (
	// ErrInvalidType indicates an unknown highlight type. Passing one is
	// a programming error, never user input.
	ErrInvalidType = errors.New("invalid highlight type")

	// ErrNotFound indicates a style name with no data record.
	ErrNotFound = errors.New("highlight not found")

	// ErrNotCollapsed indicates range reconstruction was asked to start
	// from a non-collapsed selection.
	ErrNotCollapsed = errors.New("selection must be collapsed")

	// ErrNotStyleName indicates a string that is not a TYPE-N style name.
	ErrNotStyleName = errors.New("not a highlight style name")
)
