// Package guard vets edit gestures against pending suggestions. Text
// somebody marked for deletion is frozen for everyone until the
// suggestion is resolved, and text inside any other author's suggestion
// may only be touched by that author.
package guard

import (
	"github.com/dshills/redline/internal/engine/document"
	"github.com/dshills/redline/internal/engine/highlight"
)

// Action is the edit gesture being vetted.
type Action int

// Edit gestures.
const (
	Insert Action = iota
	Backspace
	ForwardDelete
)

// AllowEdit reports whether author may perform action at sel. For a
// collapsed caret only the character the gesture touches matters: the
// one before it for inserts and backspace, the one after it for a
// forward delete. A range must be clear at every covered character.
func AllowEdit(d *document.Document, reg *highlight.Registry, sel document.Selection, author string, action Action) bool {
	types := highlight.SuggestionTypes()

	if sel.IsCollapsed() {
		offset := -1
		if action == ForwardDelete {
			offset = 0
		}
		return stylesAllow(reg, highlight.StylesAt(d, types, sel, offset, false), author)
	}

	// When the characters just outside both ends carry the same
	// suggestion, the range sits wholly inside it even if interior
	// characters have already lost their tags.
	before := highlight.StyleAt(d, types, sel, -1, false)
	after := highlight.StyleAt(d, types, sel, 0, true)
	if before != "" && before == after && !stylesAllow(reg, []string{before}, author) {
		return false
	}

	allowed := true
	eachChar(d, sel, func(b *document.Block, off int) bool {
		names := b.StylesAt(off).Filter(highlight.IsStyleName)
		if !stylesAllow(reg, names, author) {
			allowed = false
			return false
		}
		return true
	})
	return allowed
}

// stylesAllow applies the freeze rules to the highlight styles found at
// one position. Comments and annotations never block an edit.
func stylesAllow(reg *highlight.Registry, styles []string, author string) bool {
	for _, s := range styles {
		t, ok := highlight.TypeOfStyle(s)
		if !ok || !t.IsSuggestion() {
			continue
		}
		if t == highlight.DeleteSuggestion || t == highlight.DeleteEmptyParagraphSuggestion {
			return false
		}
		if a, err := reg.Author(s); err == nil && a != author {
			return false
		}
	}
	return true
}

func eachChar(d *document.Document, sel document.Selection, fn func(b *document.Block, off int) bool) {
	startIdx, endIdx := d.BlockIndex(sel.StartKey()), d.BlockIndex(sel.EndKey())
	if startIdx < 0 || endIdx < 0 || startIdx > endIdx {
		return
	}
	blocks := d.Blocks()
	for i := startIdx; i <= endIdx; i++ {
		b := blocks[i]
		start, end := 0, b.Len()
		if i == startIdx {
			start = sel.StartOffset()
		}
		if i == endIdx {
			end = sel.EndOffset()
		}
		for off := start; off < end; off++ {
			if !fn(b, off) {
				return
			}
		}
	}
}
