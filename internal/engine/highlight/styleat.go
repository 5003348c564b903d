package highlight

import (
	"github.com/dshills/redline/internal/engine/document"
	"github.com/dshills/redline/internal/engine/navigate"
)

// StyleAt returns the first highlight style of one of the given types
// on the character offset positions away from the selection start (or
// end, when fromEnd is set). Style sets are unordered, so "first" means
// first in sorted order; every caller sees the same winner. Returns the
// empty string when no such style is present or the position does not
// exist.
func StyleAt(d *document.Document, types []Type, sel document.Selection, offset int, fromEnd bool) string {
	styles := StylesAt(d, types, sel, offset, fromEnd)
	if len(styles) == 0 {
		return ""
	}
	return styles[0]
}

// StylesAt returns every highlight style of one of the given types on
// the character offset positions away from the selection start (or
// end), in sorted order.
func StylesAt(d *document.Document, types []Type, sel document.Selection, offset int, fromEnd bool) []string {
	block, off, ok := navigate.BlockAndOffset(d, sel, offset, fromEnd, false)
	if !ok {
		return nil
	}
	return block.StylesAt(off).Filter(func(name string) bool {
		t, ok := TypeOfStyle(name)
		if !ok {
			return false
		}
		for _, want := range types {
			if t == want {
				return true
			}
		}
		return false
	})
}

// StyleAtCursor returns the first matching highlight style at the
// document's current selection position.
func StyleAtCursor(d *document.Document, types []Type, fromEnd bool) string {
	return StyleAt(d, types, d.Selection(), 0, fromEnd)
}

// DataAt returns the data record of the first matching highlight at the
// offset position, when one exists.
func (r *Registry) DataAt(types []Type, sel document.Selection, offset int, fromEnd bool) (Data, string, bool) {
	style := StyleAt(r.doc, types, sel, offset, fromEnd)
	if style == "" {
		return Data{}, "", false
	}
	d, err := r.Data(style)
	if err != nil {
		return Data{}, "", false
	}
	return d, style, true
}

// DataAtCursor returns the data record of the first matching highlight
// at the document's current selection position.
func (r *Registry) DataAtCursor(types []Type) (Data, string, bool) {
	return r.DataAt(types, r.doc.Selection(), 0, false)
}
