package suggest

import (
	"time"

	"github.com/dshills/redline/internal/engine/document"
	"github.com/dshills/redline/internal/engine/highlight"
)

// Paste inserts prebuilt blocks at the caret as one insertion
// suggestion. Only ordinary formatting styles survive on the pasted
// characters; highlight tags and entities from the source are dropped.
// A non-collapsed selection is tagged for deletion first, so pasting
// over text proposes a replacement.
func Paste(d *document.Document, reg *highlight.Registry, blocks []*document.Block, author string, date time.Time) error {
	if len(blocks) == 0 {
		return nil
	}
	sel := d.Selection()
	if !sel.IsCollapsed() {
		if err := tagDeletion(d, reg, sel, Backspace, author, date); err != nil {
			return err
		}
		d.SetSelection(document.Collapsed(sel.StartKey(), sel.StartOffset()))
	}
	cur := d.Selection()

	style := ""
	if s, data, ok := changeStyleAt(d, reg, cur, -1, false); ok &&
		data.Type == highlight.AddSuggestion && data.Author == author {
		style = s
	}
	if style == "" {
		var err error
		style, err = reg.Add(cur, highlight.AddSuggestion, author, date, nil, false)
		if err != nil {
			return err
		}
	}

	key, off := cur.StartKey(), cur.StartOffset()
	for i, pb := range blocks {
		if i > 0 {
			next, err := d.SplitBlock(key, off)
			if err != nil {
				return err
			}
			_ = d.SetBlockType(next.Key(), pb.Type())
			key, off = next.Key(), 0
		}
		for j := 0; j < pb.Len(); j++ {
			set := document.NewStyleSet(pb.StylesAt(j).Filter(document.IsFormattingStyle)...)
			set.Add(style)
			if err := d.InsertText(key, off, string(pb.RuneAt(j)), set); err != nil {
				return err
			}
			off++
		}
	}
	d.SetSelection(document.Collapsed(key, off))
	return nil
}
