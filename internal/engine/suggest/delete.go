package suggest

import (
	"time"

	"github.com/dshills/redline/internal/engine/document"
	"github.com/dshills/redline/internal/engine/highlight"
	"github.com/dshills/redline/internal/engine/navigate"
)

// DeleteAction distinguishes the two delete gestures. They consume
// opposite neighbors when the caret is collapsed and leave the caret on
// opposite ends of the resulting suggestion.
type DeleteAction int

// Delete gestures.
const (
	Backspace DeleteAction = iota
	ForwardDelete
)

// Delete marks the current selection for deletion. Nothing is removed:
// the covered characters are tagged with a deletion suggestion and stay
// visible until the suggestion is resolved. A collapsed caret consumes
// one neighboring character, or proposes a paragraph merge when it sits
// against a block boundary.
func Delete(d *document.Document, reg *highlight.Registry, action DeleteAction, author string, date time.Time) error {
	sel := d.Selection()
	if sel.IsCollapsed() {
		b, ok := d.Block(sel.StartKey())
		if !ok {
			return document.ErrBlockNotFound
		}
		switch {
		case action == Backspace && sel.StartOffset() == 0:
			prev, ok := d.BlockBefore(b.Key())
			if !ok {
				return nil
			}
			return MergeParagraphs(d, reg, prev.Key(), b.Key(), author, date)
		case action == ForwardDelete && sel.StartOffset() == b.Len():
			next, ok := d.BlockAfter(b.Key())
			if !ok {
				return nil
			}
			return MergeParagraphs(d, reg, b.Key(), next.Key(), author, date)
		}
		var ok2 bool
		if action == Backspace {
			sel, ok2 = navigate.Shift(d, sel, -1, 0)
		} else {
			sel, ok2 = navigate.Shift(d, sel, 0, 1)
		}
		if !ok2 {
			return nil
		}
	}
	return tagDeletion(d, reg, sel, action, author, date)
}

// tagDeletion marks every character covered by sel for deletion.
//
// One user gesture yields one suggestion: a pending deletion by the
// same author directly adjacent to the range is extended instead of
// allocating a new id, and earlier same-author deletions swallowed by
// the range are folded into this one. The author's own pending
// insertions inside the range are removed outright, since the proposed
// text was never part of the document. Other authors' deletion tags are
// left standing.
//
// Empty blocks crossed by the range have no character to carry a tag;
// they get a visible paragraph separator tagged both with this deletion
// and with an empty-paragraph marker of its own.
func tagDeletion(d *document.Document, reg *highlight.Registry, sel document.Selection, action DeleteAction, author string, date time.Time) error {
	startKey, startOff := sel.StartKey(), sel.StartOffset()
	endKey, endOff := sel.EndKey(), sel.EndOffset()

	keys := blocksInRange(d, sel)
	emptyStyle := ""
	if len(keys) > 1 {
		for _, key := range keys {
			b, ok := d.Block(key)
			if !ok || b.Len() != 0 {
				continue
			}
			if emptyStyle == "" {
				var err error
				emptyStyle, err = reg.Add(document.Collapsed(key, 0),
					highlight.DeleteEmptyParagraphSuggestion, author, date, nil, false)
				if err != nil {
					return err
				}
			}
			if err := d.InsertText(key, 0, string(highlight.ParagraphSeparator),
				document.NewStyleSet(emptyStyle)); err != nil {
				return err
			}
			if key == endKey && endOff == 0 {
				endOff = 1
			}
		}
	}
	norm := document.NewRange(startKey, startOff, endKey, endOff, false)

	target := ""
	if s, data, ok := changeStyleAt(d, reg, norm, -1, false); ok &&
		data.Type == highlight.DeleteSuggestion && data.Author == author {
		target = s
	}
	if target == "" {
		if s, data, ok := changeStyleAt(d, reg, norm, 0, true); ok &&
			data.Type == highlight.DeleteSuggestion && data.Author == author {
			target = s
		}
	}
	if target == "" {
		var err error
		target, err = reg.Add(norm.CollapseToStart(), highlight.DeleteSuggestion, author, date, nil, false)
		if err != nil {
			return err
		}
	}

	// Walk the range backwards so physical removals never shift
	// positions still to be visited.
	start := pos{startKey, startOff}
	cur := pos{endKey, endOff}
	for before(d, start, cur) {
		if cur.off == 0 {
			prev, ok := d.BlockBefore(cur.key)
			if !ok {
				break
			}
			cur = pos{prev.Key(), prev.Len()}
			continue
		}
		idx := cur.off - 1
		b, ok := d.Block(cur.key)
		if !ok {
			break
		}
		one := document.NewRange(cur.key, idx, cur.key, idx+1, false)
		style, data, tagged := changeStyleOnChar(reg, b, idx)
		switch {
		case tagged && data.Type == highlight.AddSuggestion && data.Author == author:
			deleteChar(d, reg, cur.key, idx)
		case tagged && data.Type == highlight.DeleteSuggestion && style == target:
			// already part of this suggestion
		case tagged && data.Type == highlight.DeleteSuggestion && data.Author == author:
			stripCharStyle(d, reg, cur.key, idx, style)
			_ = d.ApplyStyle(one, target)
		case tagged && data.Type == highlight.DeleteSuggestion:
			// another author's deletion stands
		default:
			_ = d.ApplyStyle(one, target)
		}
		cur.off = idx
	}

	// The whole range may have been the author's own insertions, in
	// which case nothing carries the tag and no suggestion remains.
	if !d.HasStyleAnywhere(target) {
		reg.Remove(target)
		d.SetSelection(clampCaret(d, startKey, startOff))
		return nil
	}

	// Backspace leaves the caret at the start of the (possibly extended)
	// suggestion, forward delete at its end.
	found, ok := d.FindStyle(target)
	if !ok {
		d.SetSelection(clampCaret(d, startKey, startOff))
		return nil
	}
	span, err := highlight.Reconstruct(d, found, target)
	if err != nil {
		d.SetSelection(clampCaret(d, startKey, startOff))
		return nil
	}
	if action == Backspace {
		d.SetSelection(span.Selection.CollapseToStart())
	} else {
		d.SetSelection(span.Selection.CollapseToEnd())
	}
	return nil
}
