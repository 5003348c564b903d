package highlight

import (
	"strings"

	"github.com/dshills/redline/internal/engine/document"
)

// ParagraphSeparator joins block texts in reconstructed highlight text
// and stands in for the separator character in delete suggestions that
// cross empty blocks.
const ParagraphSeparator = '¶'

// Span is a highlight's reconstructed extent: the forward selection
// covering every tagged character and the text they spell, block
// boundaries rendered as ParagraphSeparator.
type Span struct {
	Selection document.Selection
	Text      string
}

// Reconstruct recovers the full extent of the highlight named style by
// scanning character tags outward from the collapsed selection sel,
// which must sit inside the highlight. The scan crosses block
// boundaries and skips empty blocks.
//
// For paragraph suggestion types no characters are tagged; the span is
// synthesized from the texts around the cursor instead: everything
// before it, the separator, and everything after it (or the next
// block's text when the cursor ends its block).
func Reconstruct(d *document.Document, sel document.Selection, style string) (Span, error) {
	if !sel.IsCollapsed() {
		return Span{}, ErrNotCollapsed
	}
	t, _, err := ParseStyleName(style)
	if err != nil {
		return Span{}, err
	}
	block, ok := d.Block(sel.StartKey())
	if !ok {
		return Span{}, document.ErrBlockNotFound
	}

	startKey, startOff, startText := scanLeft(d, block, sel.StartOffset(), style, t)
	endKey, endOff, endText := scanRight(d, block, sel.StartOffset(), style, t)

	return Span{
		Selection: document.NewRange(startKey, startOff, endKey, endOff, false),
		Text:      startText + endText,
	}, nil
}

// scanLeft walks from the cursor toward the document start collecting
// tagged characters. Preceding blocks are scanned whole as long as the
// previous block contained at least one tagged character.
func scanLeft(d *document.Document, block *document.Block, cursor int, style string, t Type) (key string, off int, text string) {
	key, off = block.Key(), cursor

	if t.IsParagraph() {
		runes := []rune(block.Text())
		end := min(cursor, len(runes))
		return key, off, string(runes[:end]) + string(ParagraphSeparator)
	}

	var sb []rune
	offset := cursor
	if offset >= block.Len() {
		offset = block.Len() - 1
	}
	newBlock := false

	for block != nil {
		if block.Len() == 0 {
			var ok bool
			block, ok = d.BlockBefore(block.Key())
			if !ok {
				break
			}
			continue
		}
		if offset < 0 {
			offset = block.Len() - 1
		}

		found := false
		for i := offset; i >= 0; i-- {
			if !block.HasStyleAt(i, style) {
				continue
			}
			if newBlock {
				sb = append([]rune{ParagraphSeparator}, sb...)
				newBlock = false
			}
			sb = append([]rune{block.RuneAt(i)}, sb...)
			key, off = block.Key(), i
			found = true
		}

		if !found {
			break
		}
		var ok bool
		block, ok = d.BlockBefore(block.Key())
		if !ok {
			break
		}
		offset = -1
		newBlock = true
	}
	return key, off, string(sb)
}

// scanRight walks from the character after the cursor toward the
// document end collecting tagged characters.
func scanRight(d *document.Document, block *document.Block, cursor int, style string, t Type) (key string, off int, text string) {
	key, off = block.Key(), cursor+1

	if t.IsParagraph() {
		runes := []rune(block.Text())
		var tail string
		if cursor+1 < len(runes) {
			tail = string(runes[cursor+1:])
		}
		if tail == "" {
			if next, ok := d.BlockAfter(block.Key()); ok {
				tail = next.Text()
			}
		}
		return key, off, tail
	}

	offset := cursor + 1
	newBlock := false
	if offset == block.Len() && offset != 0 {
		var ok bool
		block, ok = d.BlockAfter(block.Key())
		if !ok {
			return key, off, ""
		}
		offset = -1
		newBlock = true
	}

	var sb strings.Builder
	for block != nil {
		if block.Len() == 0 {
			var ok bool
			block, ok = d.BlockAfter(block.Key())
			if !ok {
				break
			}
			continue
		}
		if offset < 0 {
			offset = 0
		}

		found := false
		for i := offset; i < block.Len(); i++ {
			if !block.HasStyleAt(i, style) {
				continue
			}
			if newBlock {
				sb.WriteRune(ParagraphSeparator)
				newBlock = false
			}
			sb.WriteRune(block.RuneAt(i))
			key, off = block.Key(), i+1
			found = true
		}

		if !found {
			break
		}
		var ok bool
		block, ok = d.BlockAfter(block.Key())
		if !ok {
			break
		}
		offset = -1
		newBlock = true
	}
	return key, off, sb.String()
}
