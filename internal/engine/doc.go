// Package engine is the facade over the suggestion-tracking editor
// core. It owns a document, its highlight registry and the suggesting
// mode flag, and exposes the gesture-level API the shell and transports
// build on.
//
// # Modes
//
// With suggesting off, edit gestures mutate the document directly.
// With suggesting on, every gesture becomes a pending suggestion: typed
// text is inserted but tagged, deleted text is kept but tagged, style
// and structure changes are applied but remembered for rollback.
// Suggestions are later settled per style name with Accept or Reject.
//
// # Freeze rules
//
// Regardless of mode, edits touching text inside a pending deletion are
// refused for everyone, and edits inside any other author's pending
// suggestion are refused for all but that author. See the guard
// package.
//
// # Atomicity
//
// Each gesture runs as one document transaction: a failed gesture
// leaves no trace, a successful one is a single undo entry, and undo
// restores the caret to its pre-gesture position.
//
// # Basic usage
//
//	e := engine.New(engine.WithContent("paragraph1"), engine.WithSuggesting())
//	e.Select(document.Collapsed(e.Document().FirstBlock().Key(), 10))
//	_ = e.InsertText("alice", " and more")
//
//	for _, s := range e.Suggestions() {
//		_ = e.Accept("bob", s.StyleName)
//	}
package engine
