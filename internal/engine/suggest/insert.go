package suggest

import (
	"time"

	"github.com/dshills/redline/internal/engine/document"
	"github.com/dshills/redline/internal/engine/highlight"
	"github.com/dshills/redline/internal/engine/navigate"
)

// InsertText types text at the current selection as an insertion
// suggestion. A non-collapsed selection is first tagged for deletion,
// so typing over text proposes a replacement rather than destroying
// anything. Newlines become paragraph split suggestions.
//
// Typing a character that the same author already marked for deletion
// cancels that one deletion instead of inserting a duplicate: retyping
// over your own pending delete converges back to the original text.
func InsertText(d *document.Document, reg *highlight.Registry, text string, author string, date time.Time) error {
	sel := d.Selection()
	inline := insertionStyles(d, sel)
	if !sel.IsCollapsed() {
		if err := tagDeletion(d, reg, sel, Backspace, author, date); err != nil {
			return err
		}
		d.SetSelection(document.Collapsed(sel.StartKey(), sel.StartOffset()))
	}
	for _, ch := range text {
		if ch == '\n' {
			if err := SplitParagraph(d, reg, author, date); err != nil {
				return err
			}
			continue
		}
		if err := insertSuggestedChar(d, reg, ch, inline, author, date); err != nil {
			return err
		}
	}
	return nil
}

// insertSuggestedChar inserts one character at the caret, tagged as an
// insertion suggestion. An adjacent pending insertion by the same
// author absorbs the character; otherwise a new suggestion is opened.
func insertSuggestedChar(d *document.Document, reg *highlight.Registry, ch rune, inline document.StyleSet, author string, date time.Time) error {
	sel := d.Selection()

	curStyle, curData, curTagged := changeStyleAt(d, reg, sel, 0, false)
	if curTagged && curData.Type == highlight.DeleteSuggestion && curData.Author == author &&
		navigate.CharAt(d, sel, 0) == ch {
		cancelDeletedChar(d, reg, sel, curStyle)
		return nil
	}

	var style string
	if s, data, ok := changeStyleAt(d, reg, sel, -1, false); ok &&
		data.Type == highlight.AddSuggestion && data.Author == author {
		style = s
	} else if curTagged && curData.Type == highlight.AddSuggestion && curData.Author == author {
		style = curStyle
	} else {
		var err error
		style, err = reg.Add(sel.CollapseToStart(), highlight.AddSuggestion, author, date, nil, false)
		if err != nil {
			return err
		}
	}

	set := inline.Clone()
	set.Add(style)
	key, off := sel.StartKey(), sel.StartOffset()
	if err := d.InsertText(key, off, string(ch), set); err != nil {
		return err
	}
	d.SetSelection(document.Collapsed(key, off+1))
	return nil
}

// cancelDeletedChar clears the deletion tag from the character at the
// caret and steps past it. When the character was the suggestion's
// whole remaining extent the record goes with it.
func cancelDeletedChar(d *document.Document, reg *highlight.Registry, sel document.Selection, style string) {
	t, _, err := highlight.ParseStyleName(style)
	if err != nil {
		return
	}
	key, off := sel.StartKey(), sel.StartOffset()
	one := document.NewRange(key, off, key, off+1, false)
	before := highlight.StyleAt(d, []highlight.Type{t}, one, -1, false)
	after := highlight.StyleAt(d, []highlight.Type{t}, one, 1, false)
	if before != style && after != style {
		reg.Remove(style)
	} else {
		_ = d.RemoveStyle(one, style)
	}
	d.SetSelection(document.Collapsed(key, off+1))
}
