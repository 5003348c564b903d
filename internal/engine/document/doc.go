// Package document implements the block-structured document model that
// the suggestion engine operates on.
//
// A Document is an ordered sequence of Blocks. Each block holds a rune
// sequence plus one style set per rune, a sparse entity map for links
// and embeds, and a free-form data map. Styles are plain strings; the
// highlight machinery layers named style tags (e.g. "ADD_SUGGESTION-3")
// on top of the ordinary inline styles (BOLD, ITALIC, ...) using the
// same per-character sets. Keeping tags on characters rather than as
// explicit intervals is what lets a highlight survive block splits and
// merges without bookkeeping: the tags travel with the characters.
//
// # Editing
//
// All mutations go through Document methods (InsertText, RemoveRange,
// SplitBlock, MergeBlocks, ...). The primitives never record undo
// history themselves; callers group the writes that make up one user
// action with Transaction, which captures a snapshot before the first
// write and pushes exactly one undo entry after the last:
//
//	err := doc.Transaction(func() error {
//	    if err := doc.InsertText(key, 4, "test", nil); err != nil {
//	        return err
//	    }
//	    return doc.ApplyStyle(sel, "ADD_SUGGESTION-1")
//	})
//
// If the function returns an error the document is restored to the
// captured snapshot, so a failed action never leaves partial writes
// behind.
//
// # Metadata
//
// Document-level metadata travels with the document through undo and
// serialization. Values stored there must be treated as immutable:
// replace the value, never mutate it in place, or snapshots taken for
// undo will observe the mutation.
package document
