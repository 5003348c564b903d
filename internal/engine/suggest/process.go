package suggest

import (
	"time"

	"github.com/dshills/redline/internal/engine/document"
	"github.com/dshills/redline/internal/engine/highlight"
)

// Process settles the pending suggestion named styleName. Accepting
// materializes the proposed edit into plain content; rejecting rolls
// the document back to its pre-suggestion state. Either way every tag
// of the suggestion disappears, its record is retired, and the outcome
// lands in the resolved history.
//
// An add and a delete forming a replace pair are settled together, no
// matter which half styleName names.
func Process(d *document.Document, reg *highlight.Registry, styleName string, accept bool, resolver string, now time.Time) error {
	view, err := View(d, reg, styleName)
	if err != nil {
		return err
	}

	switch view.Type {
	case highlight.SplitParagraphSuggestion:
		err = processSplit(d, view, accept)
	case highlight.MergeParagraphsSuggestion:
		err = processMerge(d, view, accept)
	case highlight.BlockStyleSuggestion:
		err = processBlockStyle(d, view, accept)
	case highlight.ToggleBoldSuggestion, highlight.ToggleItalicSuggestion,
		highlight.ToggleUnderlineSuggestion, highlight.ToggleSubscriptSuggestion,
		highlight.ToggleSuperscriptSuggestion, highlight.ToggleStrikethroughSuggestion:
		err = processToggle(d, view, accept)
	case highlight.AddLinkSuggestion, highlight.RemoveLinkSuggestion, highlight.ChangeLinkSuggestion:
		err = processLink(d, view, accept)
	case highlight.DeleteEmptyParagraphSuggestion:
		err = processEmptyParagraph(d, reg, view, accept)
	default:
		err = processChange(d, reg, view, accept)
	}
	if err != nil {
		return err
	}

	reg.AppendResolved(highlight.Resolved{
		StyleName:  styleName,
		Type:       view.Type,
		Author:     view.Author,
		Date:       view.Date,
		Resolver:   resolver,
		ResolvedAt: now,
		Accepted:   accept,
		Text:       view.Text,
		OldText:    view.OldText,
	})
	reg.Remove(styleName)
	return nil
}

// View locates the pending suggestion named styleName and builds its
// display view. Paragraph suggestions over empty blocks tag no
// character, so they fall back to the block keys recorded in their
// payload.
func View(d *document.Document, reg *highlight.Registry, styleName string) (highlight.SuggestionView, error) {
	data, err := reg.Data(styleName)
	if err != nil {
		return highlight.SuggestionView{}, ErrSuggestionNotFound
	}
	if sel, ok := d.FindStyle(styleName); ok {
		return reg.SuggestionData(sel, styleName)
	}

	view := highlight.SuggestionView{
		StyleName: styleName,
		Type:      data.Type,
		Author:    data.Author,
		Date:      data.Date,
		Payload:   data.Payload,
	}
	switch p := data.Payload.(type) {
	case highlight.SplitPayload:
		if _, ok := d.Block(p.BlockKey); ok {
			view.Selection = document.Collapsed(p.BlockKey, 0)
			return view, nil
		}
	case highlight.MergePayload:
		if _, ok := d.Block(p.SecondKey); ok {
			view.Selection = document.Collapsed(p.SecondKey, 0)
			return view, nil
		}
	}
	return highlight.SuggestionView{}, ErrSuggestionNotFound
}

func processSplit(d *document.Document, view highlight.SuggestionView, accept bool) error {
	secondKey := view.Selection.StartKey()
	if p, ok := view.Payload.(highlight.SplitPayload); ok && p.BlockKey != "" {
		secondKey = p.BlockKey
	}
	if accept {
		// The blocks are already split; only the tag goes away.
		if b, ok := d.Block(secondKey); ok {
			d.SetSelection(document.Collapsed(secondKey, b.Len()))
		}
		return nil
	}
	prev, ok := d.BlockBefore(secondKey)
	if !ok {
		return nil
	}
	return d.MergeBlocks(prev.Key())
}

func processMerge(d *document.Document, view highlight.SuggestionView, accept bool) error {
	p, ok := view.Payload.(highlight.MergePayload)
	if !ok {
		return nil
	}
	if accept {
		next, ok := d.BlockAfter(p.FirstKey)
		if !ok || next.Key() != p.SecondKey {
			// The blocks drifted apart since the merge was proposed;
			// nothing sensible remains to materialize.
			return nil
		}
		return d.MergeBlocks(p.FirstKey)
	}
	if _, ok := d.Block(p.SecondKey); ok {
		d.SetSelection(document.Collapsed(p.SecondKey, 0))
	}
	return nil
}

func processBlockStyle(d *document.Document, view highlight.SuggestionView, accept bool) error {
	if !accept {
		if p, ok := view.Payload.(highlight.BlockStylePayload); ok {
			for _, key := range blocksInRange(d, view.Selection) {
				_ = d.SetBlockType(key, p.OriginalType)
			}
		}
	}
	setResolveCursor(d, view.Selection, accept)
	return nil
}

func processToggle(d *document.Document, view highlight.SuggestionView, accept bool) error {
	if !accept {
		if p, ok := view.Payload.(highlight.StyleTogglePayload); ok {
			if p.OriginalStyle == p.Style {
				_ = d.ApplyStyle(view.Selection, p.Style)
			} else {
				_ = d.RemoveStyle(view.Selection, p.Style)
			}
		}
	}
	setResolveCursor(d, view.Selection, accept)
	return nil
}

func processLink(d *document.Document, view highlight.SuggestionView, accept bool) error {
	if !accept {
		if p, ok := view.Payload.(highlight.LinkPayload); ok {
			// From is nil for an added link, which clears the entity.
			_ = d.SetEntity(view.Selection, p.From)
		}
	}
	setResolveCursor(d, view.Selection, accept)
	return nil
}

// processEmptyParagraph settles a placeholder standing in for an empty
// block inside a larger deletion. Accept removes the block; reject
// removes only the placeholder, leaving the block empty again.
func processEmptyParagraph(d *document.Document, reg *highlight.Registry, view highlight.SuggestionView, accept bool) error {
	key, idx := view.Selection.StartKey(), view.Selection.StartOffset()
	deleteChar(d, reg, key, idx)
	if accept {
		if b, ok := d.Block(key); ok && b.Len() == 0 && d.BlockCount() > 1 {
			return d.RemoveBlock(key)
		}
		return nil
	}
	d.SetSelection(document.Collapsed(key, 0))
	return nil
}

// processChange settles adds, deletes and replace pairs. Each character
// in the suggestion's extent is either kept (losing its tag) or
// physically removed, depending on its own tag and the verdict. Block
// boundaries that fell strictly inside removed text are seamed shut.
func processChange(d *document.Document, reg *highlight.Registry, view highlight.SuggestionView, accept bool) error {
	sel := view.Selection
	start := pos{sel.StartKey(), sel.StartOffset()}
	cur := pos{sel.EndKey(), sel.EndOffset()}
	keys := blocksInRange(d, sel)
	headDeleted := make(map[string]bool)
	tailDeleted := make(map[string]bool)
	var kept *pos

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
		style, data, tagged := changeStyleOnChar(reg, b, idx)
		if !tagged {
			cur.off = idx
			continue
		}
		keepChar := (data.Type == highlight.AddSuggestion) == accept
		switch {
		case keepChar && len(b.StylesAt(idx).Filter(isEmptyParagraphStyle)) > 0:
			// A surviving placeholder means the deletion around an empty
			// block was rejected: the marker goes, the block stays.
			deleteChar(d, reg, cur.key, idx)
			if kept != nil && kept.key == cur.key && idx < kept.off {
				kept.off--
			}
		case keepChar:
			stripCharStyle(d, reg, cur.key, idx, style)
			if kept == nil {
				kept = &pos{cur.key, idx + 1}
			}
		default:
			last := idx == b.Len()-1
			deleteChar(d, reg, cur.key, idx)
			if idx == 0 {
				headDeleted[cur.key] = true
			}
			if last {
				tailDeleted[cur.key] = true
			}
			if kept != nil && kept.key == cur.key && idx < kept.off {
				kept.off--
			}
		}
		cur.off = idx
	}

	mergeEmptiedBoundaries(d, keys, headDeleted, tailDeleted)

	if accept && kept != nil {
		if b, ok := d.Block(kept.key); ok {
			d.SetSelection(document.Collapsed(kept.key, min(kept.off, b.Len())))
			return nil
		}
	}
	d.SetSelection(clampCaret(d, start.key, start.off))
	return nil
}

// mergeEmptiedBoundaries joins neighboring blocks whose shared boundary
// fell strictly inside removed text: the left block lost its tail and
// the right block its head. Runs of fully emptied blocks collapse into
// the first survivor.
func mergeEmptiedBoundaries(d *document.Document, keys []string, head, tail map[string]bool) {
	if len(keys) < 2 {
		return
	}
	curKey, curTail := keys[0], tail[keys[0]]
	for _, next := range keys[1:] {
		if _, ok := d.Block(next); !ok {
			continue
		}
		if _, ok := d.Block(curKey); !ok {
			curKey, curTail = next, tail[next]
			continue
		}
		if curTail && head[next] {
			if err := d.MergeBlocks(curKey); err == nil {
				curTail = tail[next]
				continue
			}
		}
		curKey, curTail = next, tail[next]
	}
}

// setResolveCursor collapses the caret to the range start on reject and
// to the range end on accept.
func setResolveCursor(d *document.Document, sel document.Selection, accept bool) {
	if accept {
		d.SetSelection(clampCaret(d, sel.EndKey(), sel.EndOffset()))
		return
	}
	d.SetSelection(clampCaret(d, sel.StartKey(), sel.StartOffset()))
}
