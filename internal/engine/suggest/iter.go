package suggest

import (
	"github.com/dshills/redline/internal/engine/document"
	"github.com/dshills/redline/internal/engine/highlight"
)

// pos is a caret position: before the character at off, after the one
// at off-1.
type pos struct {
	key string
	off int
}

func posOf(sel document.Selection) pos {
	return pos{sel.StartKey(), sel.StartOffset()}
}

// before reports whether a sits strictly before b in document order.
// Unknown blocks compare as not-before, which terminates iteration.
func before(d *document.Document, a, b pos) bool {
	ia, ib := d.BlockIndex(a.key), d.BlockIndex(b.key)
	if ia < 0 || ib < 0 {
		return false
	}
	if ia != ib {
		return ia < ib
	}
	return a.off < b.off
}

// changeStyleAt returns the first add/delete suggestion style on the
// character offset positions from sel, with its record. ok is false
// when no such style tags the position.
func changeStyleAt(d *document.Document, reg *highlight.Registry, sel document.Selection, offset int, fromEnd bool) (string, highlight.Data, bool) {
	style := highlight.StyleAt(d, highlight.ChangeTypes(), sel, offset, fromEnd)
	if style == "" {
		return "", highlight.Data{}, false
	}
	data, err := reg.Data(style)
	if err != nil {
		return "", highlight.Data{}, false
	}
	return style, data, true
}

// stripCharStyle removes style from the single character at (key, idx)
// and retires the highlight record once no character carries it.
func stripCharStyle(d *document.Document, reg *highlight.Registry, key string, idx int, style string) {
	one := document.NewRange(key, idx, key, idx+1, false)
	_ = d.RemoveStyle(one, style)
	if !d.HasStyleAnywhere(style) {
		reg.Remove(style)
	}
}

// deleteChar physically removes the character at (key, idx). Styles
// whose last character this was are retired.
func deleteChar(d *document.Document, reg *highlight.Registry, key string, idx int) {
	b, ok := d.Block(key)
	if !ok {
		return
	}
	styles := b.StylesAt(idx).Filter(highlight.IsStyleName)
	one := document.NewRange(key, idx, key, idx+1, false)
	_ = d.RemoveRange(one)
	for _, style := range styles {
		if !d.HasStyleAnywhere(style) {
			reg.Remove(style)
		}
	}
}

// changeStyleOnChar returns the first add/delete suggestion style on
// the character at (b, idx) that has a live registry record.
func changeStyleOnChar(reg *highlight.Registry, b *document.Block, idx int) (string, highlight.Data, bool) {
	names := b.StylesAt(idx).Filter(func(n string) bool {
		t, ok := highlight.TypeOfStyle(n)
		return ok && (t == highlight.AddSuggestion || t == highlight.DeleteSuggestion)
	})
	for _, n := range names {
		if data, err := reg.Data(n); err == nil {
			return n, data, true
		}
	}
	return "", highlight.Data{}, false
}

func isEmptyParagraphStyle(name string) bool {
	t, ok := highlight.TypeOfStyle(name)
	return ok && t == highlight.DeleteEmptyParagraphSuggestion
}

// eachChar walks every character position covered by sel in document
// order, stopping early when fn returns false.
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

// clampCaret returns a collapsed selection at (key, off), pulled back
// inside the block when off runs past its end, or to the document start
// when the block itself is gone.
func clampCaret(d *document.Document, key string, off int) document.Selection {
	b, ok := d.Block(key)
	if !ok {
		return document.Collapsed(d.FirstBlock().Key(), 0)
	}
	return document.Collapsed(key, min(off, b.Len()))
}

// insertionStyles returns the formatting styles active at the caret:
// those of the character before it, or of the first character when the
// caret sits at a block start. Inserted suggestion text inherits these.
func insertionStyles(d *document.Document, sel document.Selection) document.StyleSet {
	b, ok := d.Block(sel.StartKey())
	if !ok {
		return document.NewStyleSet()
	}
	at := sel.StartOffset() - 1
	if at < 0 {
		at = 0
	}
	return document.NewStyleSet(b.StylesAt(at).Filter(document.IsFormattingStyle)...)
}

// toggleStyleOverSelection applies style to every character of sel, or
// removes it when every character already carries it.
func toggleStyleOverSelection(d *document.Document, sel document.Selection, style string) {
	if allCarry(d, sel, style) {
		_ = d.RemoveStyle(sel, style)
		return
	}
	_ = d.ApplyStyle(sel, style)
}

// allCarry reports whether every character covered by sel carries style.
func allCarry(d *document.Document, sel document.Selection, style string) bool {
	startIdx, endIdx := d.BlockIndex(sel.StartKey()), d.BlockIndex(sel.EndKey())
	if startIdx < 0 || endIdx < 0 {
		return false
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
			if !b.HasStyleAt(off, style) {
				return false
			}
		}
	}
	return true
}

// blocksInRange returns the keys of every block the selection touches,
// in document order.
func blocksInRange(d *document.Document, sel document.Selection) []string {
	startIdx, endIdx := d.BlockIndex(sel.StartKey()), d.BlockIndex(sel.EndKey())
	if startIdx < 0 || endIdx < 0 || startIdx > endIdx {
		return nil
	}
	blocks := d.Blocks()
	keys := make([]string, 0, endIdx-startIdx+1)
	for i := startIdx; i <= endIdx; i++ {
		keys = append(keys, blocks[i].Key())
	}
	return keys
}
