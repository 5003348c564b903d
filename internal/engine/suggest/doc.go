// Package suggest implements suggesting mode: edits that record
// proposals instead of mutating text outright.
//
// Inserted text stays in the document tagged ADD_SUGGESTION; doomed
// text stays in the document tagged DELETE_SUGGESTION; structural and
// formatting changes get their own tag types. Accepting a suggestion
// materializes the proposed change and rejecting rolls it back, in both
// cases stripping the tags and retiring the highlight record.
//
// Adjacent suggestions by the same author share one highlight; adjacent
// suggestions by different authors never do. A delete and an add by the
// same author sitting back to back read as a single replace.
//
// Callers run every operation inside a document transaction so one user
// action lands as one undo entry. The functions here mutate freely and
// rely on the transaction for atomicity.
package suggest
