package navigate

import "github.com/dshills/redline/internal/engine/document"

// BlockAndOffset resolves the position delta characters away from the
// selection's start (or end, when fromEnd is set). Walking past a block
// edge moves into the neighboring block, counting the boundary as one
// separator character. ok is false when the walk runs off either end of
// the document.
//
// When singleBlock is set the result is clamped to the starting block
// instead of crossing boundaries: negative offsets clamp to 0 and, when
// walking from the end, offsets beyond the block clamp to its length.
func BlockAndOffset(d *document.Document, sel document.Selection, delta int, fromEnd, singleBlock bool) (*document.Block, int, bool) {
	var key string
	var offset int
	if fromEnd {
		key, offset = sel.EndKey(), sel.EndOffset()+delta
	} else {
		key, offset = sel.StartKey(), sel.StartOffset()+delta
	}

	block, ok := d.Block(key)
	if !ok {
		return nil, 0, false
	}

	if singleBlock {
		if fromEnd {
			return block, min(offset, block.Len()), true
		}
		return block, max(offset, 0), true
	}

	for offset < 0 {
		block, ok = d.BlockBefore(block.Key())
		if !ok {
			return nil, 0, false
		}
		offset += block.Len() + 1
	}
	for offset > block.Len() {
		offset -= block.Len() + 1
		block, ok = d.BlockAfter(block.Key())
		if !ok {
			return nil, 0, false
		}
	}
	return block, offset, true
}

// CharAt returns the character delta positions away from the selection
// start, or 0 when the position is unreachable or sits on a block end.
func CharAt(d *document.Document, sel document.Selection, delta int) rune {
	block, offset, ok := BlockAndOffset(d, sel, delta, false, false)
	if !ok {
		return 0
	}
	return block.RuneAt(offset)
}
