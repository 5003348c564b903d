// Package highlight manages named, data-bearing style overlays on a
// document: comments, annotations, and the suggestion tags the
// suggestion engine builds on.
//
// A highlight is identified by a style name of the form TYPE-N, where N
// is allocated from a per-type monotonic counter stored in document
// metadata alongside the highlight's data record. The style name tags
// individual characters through the document model's per-character
// style sets; no interval is stored anywhere. Reconstruct recovers a
// highlight's full extent (and covered text) by scanning the character
// tags outward from a cursor position, crossing block boundaries.
//
// Registry state lives in document metadata, so it travels with saved
// content and participates in undo snapshots. The derived render style
// map is regenerated from the data records on demand and is never
// persisted; see StyleMap.
package highlight
