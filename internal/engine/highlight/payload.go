package highlight

import (
	"time"

	"github.com/dshills/redline/internal/engine/document"
)

// Payload carries the type-specific data of a highlight record. The
// concrete type must agree with the record's Type; see Data.
type Payload interface {
	isPayload()
}

// CommentPayload is the body of a comment highlight.
type CommentPayload struct {
	Body string
}

// AnnotationPayload is the body of an annotation highlight. Kind is a
// free-form label chosen by the author ("regular", legal note, etc.).
type AnnotationPayload struct {
	Body string
	Kind string
}

// StyleTogglePayload records which inline style a toggle suggestion
// flips. Style is one of the ordinary formatting styles. OriginalStyle
// is Style when the style was already active before the toggle and
// empty otherwise, so a reject knows which direction to restore.
type StyleTogglePayload struct {
	Style         string
	OriginalStyle string
}

// BlockStylePayload records a proposed block type change and the type
// the block had before, so a reject can restore it.
type BlockStylePayload struct {
	BlockType    document.BlockType
	OriginalType document.BlockType
}

// LinkPayload records a proposed link change. From is nil for an add,
// To is nil for a removal, both are set for a change.
type LinkPayload struct {
	From *document.Entity
	To   *document.Entity
}

// SplitPayload records the block created by a proposed paragraph split.
type SplitPayload struct {
	BlockKey string
}

// MergePayload records the two blocks a merge suggestion would join.
type MergePayload struct {
	FirstKey  string
	SecondKey string
}

func (CommentPayload) isPayload()     {}
func (AnnotationPayload) isPayload()  {}
func (StyleTogglePayload) isPayload() {}
func (BlockStylePayload) isPayload()  {}
func (LinkPayload) isPayload()        {}
func (SplitPayload) isPayload()       {}
func (MergePayload) isPayload()       {}

// Data is the record stored per highlight, keyed by its style name.
type Data struct {
	Type    Type
	Author  string
	Date    time.Time
	Payload Payload
}
