package suggest

import (
	"time"

	"github.com/dshills/redline/internal/engine/document"
	"github.com/dshills/redline/internal/engine/highlight"
)

// SplitParagraph proposes breaking the current block at the caret. The
// split happens immediately: the caret's block is cut in two and the
// new block is tagged, so a reject can seam it back together.
//
// Enter pressed right at a pending paragraph merge by the same author
// withdraws the merge instead of stacking a split on top of it.
func SplitParagraph(d *document.Document, reg *highlight.Registry, author string, date time.Time) error {
	sel := d.Selection()
	if !sel.IsCollapsed() {
		if err := tagDeletion(d, reg, sel, Backspace, author, date); err != nil {
			return err
		}
		sel = d.Selection()
	}

	for _, offset := range []int{-1, 0} {
		s := highlight.StyleAt(d, []highlight.Type{highlight.MergeParagraphsSuggestion}, sel, offset, false)
		if s == "" {
			continue
		}
		if a, err := reg.Author(s); err == nil && a == author {
			reg.Remove(s)
			return nil
		}
	}

	next, err := d.SplitBlock(sel.StartKey(), sel.StartOffset())
	if err != nil {
		return err
	}
	blockSel := document.NewRange(next.Key(), 0, next.Key(), next.Len(), false)
	payload := highlight.SplitPayload{BlockKey: next.Key()}
	if _, err := reg.Add(blockSel, highlight.SplitParagraphSuggestion, author, date, payload, false); err != nil {
		return err
	}
	d.SetSelection(document.Collapsed(next.Key(), 0))
	return nil
}

// MergeParagraphs proposes joining the second block onto the first.
// Unlike a split, nothing moves yet: the blocks stay separate until the
// suggestion is accepted. A character adjacent to the boundary is
// tagged so scans and the style map can see the suggestion.
func MergeParagraphs(d *document.Document, reg *highlight.Registry, firstKey, secondKey string, author string, date time.Time) error {
	first, ok := d.Block(firstKey)
	if !ok {
		return document.ErrBlockNotFound
	}
	second, ok := d.Block(secondKey)
	if !ok {
		return document.ErrBlockNotFound
	}

	// A merge already pending on this boundary is not duplicated.
	for _, s := range boundaryMergeStyles(d, first, second) {
		if data, err := reg.Data(s); err == nil {
			if p, ok := data.Payload.(highlight.MergePayload); ok &&
				p.FirstKey == firstKey && p.SecondKey == secondKey {
				d.SetSelection(document.Collapsed(secondKey, 0))
				return nil
			}
		}
	}

	payload := highlight.MergePayload{FirstKey: firstKey, SecondKey: secondKey}
	style, err := reg.Add(document.Collapsed(secondKey, 0),
		highlight.MergeParagraphsSuggestion, author, date, payload, false)
	if err != nil {
		return err
	}

	switch {
	case second.Len() > 0:
		_ = d.ApplyStyle(document.NewRange(secondKey, 0, secondKey, 1, false), style)
	case first.Len() > 0:
		_ = d.ApplyStyle(document.NewRange(firstKey, first.Len()-1, firstKey, first.Len(), false), style)
	}
	d.SetSelection(document.Collapsed(secondKey, 0))
	return nil
}

// boundaryMergeStyles collects merge suggestion styles on the two
// characters flanking the boundary between first and second.
func boundaryMergeStyles(d *document.Document, first, second *document.Block) []string {
	isMerge := func(n string) bool {
		t, ok := highlight.TypeOfStyle(n)
		return ok && t == highlight.MergeParagraphsSuggestion
	}
	var out []string
	if second.Len() > 0 {
		out = append(out, second.StylesAt(0).Filter(isMerge)...)
	}
	if first.Len() > 0 {
		out = append(out, first.StylesAt(first.Len()-1).Filter(isMerge)...)
	}
	return out
}
