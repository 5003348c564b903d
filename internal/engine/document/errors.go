package document

import "errors"

// Errors returned by document operations.
var (
	// ErrBlockNotFound indicates a block key is not present in the document.
	ErrBlockNotFound = errors.New("block not found")

	// ErrOffsetOutOfRange indicates an offset is outside the valid block range.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrInvalidSelection indicates a selection referencing unknown blocks
	// or with its end before its start.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrLastBlock indicates an attempt to remove the only remaining block.
	ErrLastBlock = errors.New("cannot remove the last block")

	// ErrNoNextBlock indicates a merge was requested on the final block.
	ErrNoNextBlock = errors.New("no following block to merge")

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = errors.New("nothing to redo")
)
