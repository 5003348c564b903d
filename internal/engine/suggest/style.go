package suggest

import (
	"time"

	"github.com/dshills/redline/internal/engine/document"
	"github.com/dshills/redline/internal/engine/highlight"
)

// ToggleStyle proposes flipping an inline formatting style over the
// current selection. The style change is applied immediately so the
// reader sees the proposed look; the suggestion remembers the original
// state so a reject can restore it.
//
// Toggling the same style back over a fully covered pending toggle
// cancels it: the document returns to its original look and no
// suggestion remains.
func ToggleStyle(d *document.Document, reg *highlight.Registry, style string, author string, date time.Time) error {
	t, ok := highlight.TypeForInlineStyle(style)
	if !ok {
		return ErrUnknownStyle
	}
	sel := d.Selection()
	if sel.IsCollapsed() {
		return ErrNoSelection
	}
	sel = document.NewRange(sel.StartKey(), sel.StartOffset(), sel.EndKey(), sel.EndOffset(), false)

	originalStyle := ""
	if allCarry(d, sel, style) {
		originalStyle = style
	}

	// Strip pending toggles of the same kind from the selection before
	// tagging it anew.
	type charRef struct {
		key   string
		idx   int
		style string
	}
	var tagged []charRef
	allTagged := true
	var prevStyle string
	var prevData highlight.Data
	eachChar(d, sel, func(b *document.Block, off int) bool {
		names := b.StylesAt(off).Filter(func(n string) bool {
			tt, ok := highlight.TypeOfStyle(n)
			return ok && tt == t
		})
		if len(names) == 0 {
			allTagged = false
			return true
		}
		if prevStyle == "" {
			prevStyle = names[0]
			if data, err := reg.Data(names[0]); err == nil {
				prevData = data
			}
		}
		tagged = append(tagged, charRef{b.Key(), off, names[0]})
		return true
	})
	for _, ref := range tagged {
		stripCharStyle(d, reg, ref.key, ref.idx, ref.style)
	}

	if allTagged && prevStyle != "" && prevData.Author == author {
		if old, ok := prevData.Payload.(highlight.StyleTogglePayload); ok {
			if (old.OriginalStyle == style) != (originalStyle == style) {
				// The new toggle exactly undoes the pending one.
				toggleStyleOverSelection(d, sel, style)
				d.SetSelection(sel)
				return nil
			}
			originalStyle = old.OriginalStyle
		}
	}

	payload := highlight.StyleTogglePayload{Style: style, OriginalStyle: originalStyle}
	if _, err := reg.Add(sel, t, author, date, payload, false); err != nil {
		return err
	}
	toggleStyleOverSelection(d, sel, style)
	d.SetSelection(sel)
	return nil
}

// SetBlockType proposes changing the type of every block the selection
// touches. The new type is applied immediately; the suggestion keeps
// the first block's original type for rollback. Requesting the same
// target type again over a pending suggestion toggles it off.
func SetBlockType(d *document.Document, reg *highlight.Registry, blockType document.BlockType, author string, date time.Time) error {
	sel := d.Selection()
	startKey, endKey := sel.StartKey(), sel.EndKey()

	// A selection ending at offset 0 of a block does not really include
	// that block.
	if sel.EndOffset() == 0 && startKey != endKey {
		if prev, ok := d.BlockBefore(endKey); ok {
			endKey = prev.Key()
		}
	}
	firstBlock, ok := d.Block(startKey)
	if !ok {
		return document.ErrBlockNotFound
	}
	endBlock, ok := d.Block(endKey)
	if !ok {
		return document.ErrBlockNotFound
	}
	blockSel := document.NewRange(startKey, 0, endKey, endBlock.Len(), false)
	keys := blocksInRange(d, blockSel)
	originalType := firstBlock.Type()

	names := firstBlock.StylesAt(0).Filter(func(n string) bool {
		tt, ok := highlight.TypeOfStyle(n)
		return ok && tt == highlight.BlockStyleSuggestion
	})
	if len(names) > 0 {
		if data, err := reg.Data(names[0]); err == nil {
			if p, ok := data.Payload.(highlight.BlockStylePayload); ok {
				if p.BlockType == blockType && data.Author == author {
					reg.Remove(names[0])
					for _, key := range keys {
						_ = d.SetBlockType(key, p.OriginalType)
					}
					d.SetSelection(sel)
					return nil
				}
				// Replace the pending suggestion but keep the true
				// original type for rollback.
				originalType = p.OriginalType
				reg.Remove(names[0])
			}
		}
	}

	payload := highlight.BlockStylePayload{BlockType: blockType, OriginalType: originalType}
	if _, err := reg.Add(blockSel, highlight.BlockStyleSuggestion, author, date, payload, false); err != nil {
		return err
	}
	for _, key := range keys {
		_ = d.SetBlockType(key, blockType)
	}
	d.SetSelection(sel)
	return nil
}
