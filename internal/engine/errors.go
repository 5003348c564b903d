package engine

import "errors"

// Errors returned by editor operations.
var (
	// ErrEditNotAllowed indicates the edit touches text frozen by a
	// pending suggestion: text marked for deletion, or another author's
	// suggestion.
	ErrEditNotAllowed = errors.New("edit not allowed at selection")

	// ErrReadOnly indicates a write operation on a read-only editor.
	ErrReadOnly = errors.New("editor is read-only")
)
