package navigate

import "github.com/dshills/redline/internal/engine/document"

// Resize stretches the selection's two ends independently: the start
// moves left by stretchLeft characters and the end moves right by
// stretchRight, crossing block boundaries as needed. Negative values
// shrink instead. An end that would walk past the document keeps its
// original position, so resizing never escapes the document edges.
// Gesture direction is preserved.
func Resize(d *document.Document, sel document.Selection, stretchLeft, stretchRight int, singleBlock bool) document.Selection {
	startKey, startOff := sel.StartKey(), sel.StartOffset()
	endKey, endOff := sel.EndKey(), sel.EndOffset()

	if block, off, ok := BlockAndOffset(d, sel, -stretchLeft, false, singleBlock); ok {
		startKey, startOff = block.Key(), off
	}
	if block, off, ok := BlockAndOffset(d, sel, stretchRight, true, singleBlock); ok {
		endKey, endOff = block.Key(), off
	}

	return document.NewRange(startKey, startOff, endKey, endOff, sel.Backward)
}

// Shift rebuilds the selection with its start moved by startDelta and
// its end moved by endDelta, both measured in characters and crossing
// block boundaries. The result is always forward. ok is false (and the
// selection returned unchanged) when either end cannot be resolved.
func Shift(d *document.Document, sel document.Selection, startDelta, endDelta int) (document.Selection, bool) {
	startBlock, startOff, ok := BlockAndOffset(d, sel, startDelta, false, false)
	if !ok {
		return sel, false
	}
	endBlock, endOff, ok := BlockAndOffset(d, sel, endDelta, true, false)
	if !ok {
		return sel, false
	}
	return document.NewRange(startBlock.Key(), startOff, endBlock.Key(), endOff, false), true
}
