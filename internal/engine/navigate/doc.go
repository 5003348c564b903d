// Package navigate provides the position arithmetic every higher layer
// of the engine uses to reason about "N characters away" in a
// block-structured document.
//
// Positions are (block, offset) pairs. Walking a signed delta crosses
// block boundaries, with the boundary itself counting as one implicit
// separator character, so offset len(block)+1 of one block is offset 0
// of the next. BlockAndOffset is the single primitive; Resize and
// Shift build selections on top of it.
package navigate
