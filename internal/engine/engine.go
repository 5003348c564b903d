package engine

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/redline/internal/engine/document"
	"github.com/dshills/redline/internal/engine/guard"
	"github.com/dshills/redline/internal/engine/highlight"
	"github.com/dshills/redline/internal/engine/navigate"
	"github.com/dshills/redline/internal/engine/suggest"
)

// Editor is the facade over a document, its highlight registry and the
// suggestion machinery. It routes each edit gesture either directly
// into the document or through the suggestion layer, depending on the
// suggesting mode, and gates every edit on the pending-suggestion
// freeze rules.
//
// All operations are safe for concurrent use.
type Editor struct {
	mu         sync.RWMutex
	doc        *document.Document
	reg        *highlight.Registry
	suggesting bool
	readOnly   bool
	now        func() time.Time
}

// New creates an editor with the given options.
func New(opts ...Option) *Editor {
	o := newOptions()
	for _, opt := range opts {
		opt(&o)
	}
	doc := document.New(
		document.WithText(o.content),
		document.WithMaxUndoEntries(o.maxUndoEntries),
	)
	return &Editor{
		doc:        doc,
		reg:        highlight.NewRegistry(doc),
		suggesting: o.suggesting,
		readOnly:   o.readOnly,
		now:        o.now,
	}
}

// FromRawJSON creates an editor from a persisted raw document,
// including its highlight state and resolved history.
func FromRawJSON(data []byte, opts ...Option) (*Editor, error) {
	o := newOptions()
	for _, opt := range opts {
		opt(&o)
	}
	doc, err := document.UnmarshalRaw(data)
	if err != nil {
		return nil, err
	}
	return &Editor{
		doc:        doc,
		reg:        highlight.NewRegistry(doc),
		suggesting: o.suggesting,
		readOnly:   o.readOnly,
		now:        o.now,
	}, nil
}

// SetSuggesting switches suggesting mode on or off. Pending
// suggestions survive the switch; only new edits are affected.
func (e *Editor) SetSuggesting(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.suggesting = on
}

// Suggesting reports whether suggesting mode is active.
func (e *Editor) Suggesting() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.suggesting
}

// Select replaces the active selection.
func (e *Editor) Select(sel document.Selection) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc.SetSelection(sel)
}

// Selection returns the active selection.
func (e *Editor) Selection() document.Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.Selection()
}

// InsertText types text at the current selection as author. In
// suggesting mode the text becomes an insertion suggestion; otherwise
// it is inserted directly, inheriting the formatting at the caret.
func (e *Editor) InsertText(author, text string) error {
	return e.edit(author, guard.Insert, func() error {
		if e.suggesting {
			return suggest.InsertText(e.doc, e.reg, text, author, e.now())
		}
		return e.insertDirect(text)
	})
}

// Delete applies a delete gesture at the current selection as author.
// In suggesting mode the covered text is tagged for deletion instead of
// being removed.
func (e *Editor) Delete(author string, action suggest.DeleteAction) error {
	ga := guard.Backspace
	if action == suggest.ForwardDelete {
		ga = guard.ForwardDelete
	}
	return e.edit(author, ga, func() error {
		if e.suggesting {
			return suggest.Delete(e.doc, e.reg, action, author, e.now())
		}
		return e.deleteDirect(action)
	})
}

// ToggleStyle flips an inline formatting style over the selection.
func (e *Editor) ToggleStyle(author, style string) error {
	return e.edit(author, guard.Insert, func() error {
		if e.suggesting {
			return suggest.ToggleStyle(e.doc, e.reg, style, author, e.now())
		}
		sel := e.doc.Selection()
		if sel.IsCollapsed() {
			return suggest.ErrNoSelection
		}
		return e.doc.Transaction(func() error {
			toggleDirect(e.doc, sel, style)
			return nil
		})
	})
}

// SetBlockType changes the block type of every block the selection
// touches.
func (e *Editor) SetBlockType(author string, t document.BlockType) error {
	return e.edit(author, guard.Insert, func() error {
		if e.suggesting {
			return suggest.SetBlockType(e.doc, e.reg, t, author, e.now())
		}
		return e.doc.Transaction(func() error {
			sel := e.doc.Selection()
			startIdx, endIdx := e.doc.BlockIndex(sel.StartKey()), e.doc.BlockIndex(sel.EndKey())
			blocks := e.doc.Blocks()
			for i := startIdx; i >= 0 && i <= endIdx; i++ {
				if err := e.doc.SetBlockType(blocks[i].Key(), t); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

// SplitParagraph breaks the current block at the caret.
func (e *Editor) SplitParagraph(author string) error {
	return e.edit(author, guard.Insert, func() error {
		if e.suggesting {
			return suggest.SplitParagraph(e.doc, e.reg, author, e.now())
		}
		return e.doc.Transaction(func() error {
			sel := e.doc.Selection()
			_, err := e.doc.SplitBlock(sel.StartKey(), sel.StartOffset())
			return err
		})
	})
}

// AddLink links the selected text to href.
func (e *Editor) AddLink(author, href string) error {
	return e.edit(author, guard.Insert, func() error {
		if e.suggesting {
			return suggest.AddLink(e.doc, e.reg, href, author, e.now())
		}
		return e.doc.Transaction(func() error {
			sel := e.doc.Selection()
			if sel.IsCollapsed() {
				return suggest.ErrNoSelection
			}
			return e.doc.SetEntity(sel, &document.Entity{Kind: document.EntityLink, Href: href})
		})
	})
}

// RemoveLink removes the link under the selection.
func (e *Editor) RemoveLink(author string) error {
	return e.edit(author, guard.Insert, func() error {
		if e.suggesting {
			return suggest.RemoveLink(e.doc, e.reg, author, e.now())
		}
		return e.doc.Transaction(func() error {
			return e.doc.SetEntity(e.doc.Selection(), nil)
		})
	})
}

// ChangeLink retargets the link under the selection to href.
func (e *Editor) ChangeLink(author, href string) error {
	return e.edit(author, guard.Insert, func() error {
		if e.suggesting {
			return suggest.ChangeLink(e.doc, e.reg, href, author, e.now())
		}
		return e.doc.Transaction(func() error {
			return e.doc.SetEntity(e.doc.Selection(), &document.Entity{Kind: document.EntityLink, Href: href})
		})
	})
}

// Paste inserts prebuilt blocks at the selection.
func (e *Editor) Paste(author string, blocks []*document.Block) error {
	return e.edit(author, guard.Insert, func() error {
		if e.suggesting {
			return suggest.Paste(e.doc, e.reg, blocks, author, e.now())
		}
		return e.doc.Transaction(func() error {
			return e.pasteDirect(blocks)
		})
	})
}

// AddComment attaches a comment to the selected text.
func (e *Editor) AddComment(author, body string) error {
	if e.readOnly {
		return ErrReadOnly
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	sel := e.doc.Selection()
	if sel.IsCollapsed() {
		return suggest.ErrNoSelection
	}
	return e.doc.Transaction(func() error {
		_, err := e.reg.Add(sel, highlight.Comment, author, e.now(),
			highlight.CommentPayload{Body: body}, false)
		return err
	})
}

// AddAnnotation attaches an annotation to the selected text.
func (e *Editor) AddAnnotation(author, body, kind string) error {
	if e.readOnly {
		return ErrReadOnly
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	sel := e.doc.Selection()
	if sel.IsCollapsed() {
		return suggest.ErrNoSelection
	}
	return e.doc.Transaction(func() error {
		_, err := e.reg.Add(sel, highlight.Annotation, author, e.now(),
			highlight.AnnotationPayload{Body: body, Kind: kind}, false)
		return err
	})
}

// Accept materializes the pending suggestion named styleName.
func (e *Editor) Accept(resolver, styleName string) error {
	return e.resolve(resolver, styleName, true)
}

// Reject rolls back the pending suggestion named styleName.
func (e *Editor) Reject(resolver, styleName string) error {
	return e.resolve(resolver, styleName, false)
}

func (e *Editor) resolve(resolver, styleName string, accept bool) error {
	if e.readOnly {
		return ErrReadOnly
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Transaction(func() error {
		return suggest.Process(e.doc, e.reg, styleName, accept, resolver, e.now())
	})
}

// ResolveAll settles every pending suggestion the same way, oldest
// style name first. Replace pairs are settled once.
func (e *Editor) ResolveAll(resolver string, accept bool) error {
	if e.readOnly {
		return ErrReadOnly
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for {
		names := e.reg.Styles(highlight.SuggestionTypes()...)
		if len(names) == 0 {
			return nil
		}
		sort.Strings(names)
		err := e.doc.Transaction(func() error {
			return suggest.Process(e.doc, e.reg, names[0], accept, resolver, e.now())
		})
		if err != nil {
			// A vanished record (the peer of an already settled replace
			// pair) is expected; anything else aborts.
			if err == suggest.ErrSuggestionNotFound {
				e.reg.Remove(names[0])
				continue
			}
			return err
		}
	}
}

// Suggestions returns the view of every pending suggestion, sorted by
// style name. The two halves of a replace pair collapse into a single
// view.
func (e *Editor) Suggestions() []highlight.SuggestionView {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := e.reg.Styles(highlight.SuggestionTypes()...)
	sort.Strings(names)

	var out []highlight.SuggestionView
	for _, name := range names {
		view, err := suggest.View(e.doc, e.reg, name)
		if err != nil {
			continue
		}
		if view.Type == highlight.ReplaceSuggestion && containsReplace(out, view) {
			continue
		}
		out = append(out, view)
	}
	return out
}

func containsReplace(views []highlight.SuggestionView, v highlight.SuggestionView) bool {
	for _, have := range views {
		if have.Type == highlight.ReplaceSuggestion && have.Selection.SameRange(v.Selection) {
			return true
		}
	}
	return false
}

// Suggestion returns the view of one pending suggestion.
func (e *Editor) Suggestion(styleName string) (highlight.SuggestionView, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return suggest.View(e.doc, e.reg, styleName)
}

// Resolved returns the resolved-suggestion history, oldest first.
func (e *Editor) Resolved() []highlight.Resolved {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.reg.Resolved()
}

// StyleMap returns the render style of every live highlight.
func (e *Editor) StyleMap() map[string]highlight.RenderStyle {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.reg.StyleMap()
}

// Count returns the id counter for a highlight type: how many
// highlights of that type were ever created.
func (e *Editor) Count(t highlight.Type) (int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.reg.Count(t)
}

// Text returns the plain document text, blocks joined by newlines.
func (e *Editor) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.Text()
}

// Stats returns user-perceived text counters.
func (e *Editor) Stats() document.Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.ComputeStats()
}

// MarshalRaw serializes the document, highlight state included, to its
// persisted JSON form.
func (e *Editor) MarshalRaw() ([]byte, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.MarshalRaw()
}

// PrepareForExport lifts comment bodies into portable document metadata.
func (e *Editor) PrepareForExport() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reg.PrepareForExport()
}

// Undo rewinds the most recent action.
func (e *Editor) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Undo()
}

// Redo reapplies the most recently undone action.
func (e *Editor) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Redo()
}

// CanUndo reports whether an undo entry is available.
func (e *Editor) CanUndo() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.CanUndo()
}

// CanRedo reports whether a redo entry is available.
func (e *Editor) CanRedo() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.CanRedo()
}

// Document exposes the underlying document for read-only inspection.
// Mutations must go through the editor.
func (e *Editor) Document() *document.Document {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc
}

// edit runs one edit gesture as a single undoable action, after the
// freeze rules have cleared it.
func (e *Editor) edit(author string, action guard.Action, fn func() error) error {
	if e.readOnly {
		return ErrReadOnly
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !guard.AllowEdit(e.doc, e.reg, e.doc.Selection(), author, action) {
		return ErrEditNotAllowed
	}
	return e.doc.Transaction(fn)
}

// insertDirect inserts text at the caret without suggestion tagging,
// replacing any selected range first.
func (e *Editor) insertDirect(text string) error {
	sel := e.doc.Selection()
	styles := insertStyles(e.doc, sel)
	if !sel.IsCollapsed() {
		if err := e.doc.RemoveRange(sel); err != nil {
			return err
		}
		sel = e.doc.Selection()
	}
	key, off := sel.StartKey(), sel.StartOffset()
	for _, ch := range text {
		if ch == '\n' {
			next, err := e.doc.SplitBlock(key, off)
			if err != nil {
				return err
			}
			key, off = next.Key(), 0
			continue
		}
		if err := e.doc.InsertText(key, off, string(ch), styles); err != nil {
			return err
		}
		off++
	}
	e.doc.SetSelection(document.Collapsed(key, off))
	return nil
}

// deleteDirect removes the selected range, or one character (merging
// blocks at boundaries) when the caret is collapsed.
func (e *Editor) deleteDirect(action suggest.DeleteAction) error {
	sel := e.doc.Selection()
	if !sel.IsCollapsed() {
		return e.doc.RemoveRange(sel)
	}
	b, ok := e.doc.Block(sel.StartKey())
	if !ok {
		return document.ErrBlockNotFound
	}
	switch {
	case action == suggest.Backspace && sel.StartOffset() == 0:
		prev, ok := e.doc.BlockBefore(b.Key())
		if !ok {
			return nil
		}
		return e.doc.MergeBlocks(prev.Key())
	case action == suggest.ForwardDelete && sel.StartOffset() == b.Len():
		if _, ok := e.doc.BlockAfter(b.Key()); !ok {
			return nil
		}
		return e.doc.MergeBlocks(b.Key())
	}
	var ok2 bool
	if action == suggest.Backspace {
		sel, ok2 = navigate.Shift(e.doc, sel, -1, 0)
	} else {
		sel, ok2 = navigate.Shift(e.doc, sel, 0, 1)
	}
	if !ok2 {
		return nil
	}
	return e.doc.RemoveRange(sel)
}

// pasteDirect inserts sanitized blocks at the caret without tagging.
func (e *Editor) pasteDirect(blocks []*document.Block) error {
	if len(blocks) == 0 {
		return nil
	}
	sel := e.doc.Selection()
	if !sel.IsCollapsed() {
		if err := e.doc.RemoveRange(sel); err != nil {
			return err
		}
		sel = e.doc.Selection()
	}
	key, off := sel.StartKey(), sel.StartOffset()
	for i, pb := range blocks {
		if i > 0 {
			next, err := e.doc.SplitBlock(key, off)
			if err != nil {
				return err
			}
			_ = e.doc.SetBlockType(next.Key(), pb.Type())
			key, off = next.Key(), 0
		}
		for j := 0; j < pb.Len(); j++ {
			set := document.NewStyleSet(pb.StylesAt(j).Filter(document.IsFormattingStyle)...)
			if err := e.doc.InsertText(key, off, string(pb.RuneAt(j)), set); err != nil {
				return err
			}
			off++
		}
	}
	e.doc.SetSelection(document.Collapsed(key, off))
	return nil
}

// toggleDirect flips style over sel: removed when every covered
// character carries it, applied otherwise.
func toggleDirect(d *document.Document, sel document.Selection, style string) {
	all := true
	startIdx, endIdx := d.BlockIndex(sel.StartKey()), d.BlockIndex(sel.EndKey())
	blocks := d.Blocks()
	for i := startIdx; all && i >= 0 && i <= endIdx; i++ {
		b := blocks[i]
		start, end := 0, b.Len()
		if i == startIdx {
			start = sel.StartOffset()
		}
		if i == endIdx {
			end = sel.EndOffset()
		}
		for off := start; off < end; off++ {
			if !b.HasStyleAt(off, style) {
				all = false
				break
			}
		}
	}
	if all {
		_ = d.RemoveStyle(sel, style)
	} else {
		_ = d.ApplyStyle(sel, style)
	}
}

// insertStyles returns the formatting styles directly typed text
// inherits at the caret.
func insertStyles(d *document.Document, sel document.Selection) document.StyleSet {
	b, ok := d.Block(sel.StartKey())
	if !ok {
		return document.NewStyleSet()
	}
	at := sel.StartOffset() - 1
	if at < 0 {
		at = 0
	}
	return document.NewStyleSet(b.StylesAt(at).Filter(document.IsFormattingStyle)...)
}
