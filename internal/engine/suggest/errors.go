package suggest

import "errors"

// Errors returned by suggestion operations.
var (
	// ErrSuggestionNotFound indicates accept/reject on a style name that
	// no longer tags any character: it was already resolved, likely by a
	// stale caller.
	ErrSuggestionNotFound = errors.New("suggestion not found")

	// ErrNoSelection indicates an operation that needs a non-collapsed
	// selection was invoked with a caret.
	ErrNoSelection = errors.New("selection is collapsed")

	// ErrUnknownStyle indicates a style toggle on an inline style that
	// has no suggestion type.
	ErrUnknownStyle = errors.New("unknown inline style")

	// ErrNoLink indicates a link operation at a position that carries no
	// link entity.
	ErrNoLink = errors.New("no link at selection")
)
