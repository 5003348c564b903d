package engine

import (
	"testing"
	"time"

	"github.com/dshills/redline/internal/engine/document"
	"github.com/dshills/redline/internal/engine/highlight"
	"github.com/dshills/redline/internal/engine/suggest"
)

var testDate = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

func newEditor(t *testing.T, content string, opts ...Option) *Editor {
	t.Helper()
	opts = append(opts, WithContent(content), WithClock(func() time.Time { return testDate }))
	return New(opts...)
}

func firstKey(e *Editor) string {
	return e.Document().FirstBlock().Key()
}

func TestDirectInsert(t *testing.T) {
	e := newEditor(t, "hello world")
	e.Select(document.Collapsed(firstKey(e), 5))

	if err := e.InsertText("bob", " there"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if e.Text() != "hello there world" {
		t.Errorf("expected direct insertion, got %q", e.Text())
	}
	if len(e.Suggestions()) != 0 {
		t.Error("direct edits create no suggestions")
	}
}

func TestSuggestingInsert(t *testing.T) {
	e := newEditor(t, "hello world", WithSuggesting())
	e.Select(document.Collapsed(firstKey(e), 5))

	if err := e.InsertText("bob", " there"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	views := e.Suggestions()
	if len(views) != 1 || views[0].Type != highlight.AddSuggestion {
		t.Fatalf("expected one insertion suggestion, got %v", views)
	}
	if views[0].Text != " there" {
		t.Errorf("unexpected suggested text %q", views[0].Text)
	}
}

func TestModeSwitchKeepsPendingSuggestions(t *testing.T) {
	e := newEditor(t, "hello world", WithSuggesting())
	e.Select(document.Collapsed(firstKey(e), 5))
	_ = e.InsertText("bob", "!")

	e.SetSuggesting(false)
	if e.Suggesting() {
		t.Error("mode should be off")
	}
	if len(e.Suggestions()) != 1 {
		t.Error("pending suggestions survive the mode switch")
	}
}

func TestDirectDeleteRange(t *testing.T) {
	e := newEditor(t, "hello world")
	key := firstKey(e)
	e.Select(document.NewRange(key, 5, key, 11, false))

	if err := e.Delete("bob", suggest.Backspace); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if e.Text() != "hello" {
		t.Errorf("expected direct removal, got %q", e.Text())
	}
}

func TestDirectBackspaceAtBlockStartMerges(t *testing.T) {
	e := newEditor(t, "first\nsecond")
	second := e.Document().Blocks()[1]
	e.Select(document.Collapsed(second.Key(), 0))

	if err := e.Delete("bob", suggest.Backspace); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if e.Text() != "firstsecond" {
		t.Errorf("expected merged blocks, got %q", e.Text())
	}
}

func TestSuggestingDeleteTagsOnly(t *testing.T) {
	e := newEditor(t, "hello world", WithSuggesting())
	key := firstKey(e)
	e.Select(document.NewRange(key, 5, key, 11, false))

	if err := e.Delete("bob", suggest.Backspace); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if e.Text() != "hello world" {
		t.Errorf("suggesting mode removes nothing, got %q", e.Text())
	}
	views := e.Suggestions()
	if len(views) != 1 || views[0].Type != highlight.DeleteSuggestion {
		t.Fatalf("expected one deletion suggestion, got %v", views)
	}
}

func TestGuardBlocksForeignEdit(t *testing.T) {
	e := newEditor(t, "hello world", WithSuggesting())
	key := firstKey(e)
	e.Select(document.Collapsed(key, 5))
	_ = e.InsertText("bob", "!!!")

	// Carol tries to type inside bob's pending insertion.
	e.Select(document.Collapsed(key, 7))
	if err := e.InsertText("carol", "x"); err != ErrEditNotAllowed {
		t.Errorf("expected ErrEditNotAllowed, got %v", err)
	}
	// Bob himself may continue.
	if err := e.InsertText("bob", "x"); err != nil {
		t.Errorf("the suggestion author may keep editing: %v", err)
	}
}

func TestReadOnlyEditor(t *testing.T) {
	e := newEditor(t, "hello", WithReadOnly())
	e.Select(document.Collapsed(firstKey(e), 0))

	if err := e.InsertText("bob", "x"); err != ErrReadOnly {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
	if err := e.Accept("ann", "ADD_SUGGESTION-1"); err != ErrReadOnly {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
	if err := e.AddComment("ann", "note"); err != ErrReadOnly {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
}

func TestGestureIsOneUndoEntry(t *testing.T) {
	e := newEditor(t, "hello", WithSuggesting())
	e.Select(document.Collapsed(firstKey(e), 5))

	if err := e.InsertText("bob", " world"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := e.Undo(); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if e.Text() != "hello" {
		t.Errorf("one undo should rewind the whole gesture, got %q", e.Text())
	}
	if len(e.Suggestions()) != 0 {
		t.Error("the suggestion record should rewind with the text")
	}
	if !e.CanRedo() {
		t.Error("the gesture should be redoable")
	}
}

func TestAcceptSuggestion(t *testing.T) {
	e := newEditor(t, "hello", WithSuggesting())
	e.Select(document.Collapsed(firstKey(e), 5))
	_ = e.InsertText("bob", " world")

	if err := e.Accept("ann", "ADD_SUGGESTION-1"); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if e.Text() != "hello world" {
		t.Errorf("unexpected text %q", e.Text())
	}
	if len(e.Suggestions()) != 0 {
		t.Error("nothing should stay pending")
	}
	history := e.Resolved()
	if len(history) != 1 || !history[0].Accepted || history[0].Resolver != "ann" {
		t.Errorf("unexpected history %v", history)
	}
}

func TestRejectSuggestion(t *testing.T) {
	e := newEditor(t, "hello", WithSuggesting())
	e.Select(document.Collapsed(firstKey(e), 5))
	_ = e.InsertText("bob", " world")

	if err := e.Reject("ann", "ADD_SUGGESTION-1"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if e.Text() != "hello" {
		t.Errorf("unexpected text %q", e.Text())
	}
	if history := e.Resolved(); len(history) != 1 || history[0].Accepted {
		t.Errorf("unexpected history %v", history)
	}
}

func TestResolveAllSettlesReplacePairOnce(t *testing.T) {
	e := newEditor(t, "cat and dog", WithSuggesting())
	key := firstKey(e)

	// A replace pair plus an independent deletion.
	e.Select(document.NewRange(key, 0, key, 3, false))
	_ = e.InsertText("bob", "fox")
	// The document now reads "foxcat and dog"; mark " dog" too.
	e.Select(document.NewRange(key, 10, key, 14, false))
	_ = e.Delete("bob", suggest.Backspace)

	if err := e.ResolveAll("ann", true); err != nil {
		t.Fatalf("resolve all failed: %v", err)
	}
	if e.Text() != "fox and" {
		t.Errorf("expected %q, got %q", "fox and", e.Text())
	}
	if len(e.Suggestions()) != 0 {
		t.Errorf("everything should settle, got %v", e.Suggestions())
	}
	for _, entry := range e.Resolved() {
		if !entry.Accepted {
			t.Errorf("entry %q should be accepted", entry.StyleName)
		}
	}
}

func TestSuggestionsCollapseReplacePair(t *testing.T) {
	e := newEditor(t, "cat", WithSuggesting())
	key := firstKey(e)
	e.Select(document.NewRange(key, 0, key, 3, false))
	_ = e.InsertText("bob", "dog")

	views := e.Suggestions()
	if len(views) != 1 {
		t.Fatalf("a replace pair lists once, got %d views", len(views))
	}
	if views[0].Type != highlight.ReplaceSuggestion {
		t.Errorf("expected a replace view, got %q", views[0].Type)
	}
}

func TestCommentOnSelection(t *testing.T) {
	e := newEditor(t, "hello world")
	key := firstKey(e)
	e.Select(document.NewRange(key, 0, key, 5, false))

	if err := e.AddComment("ann", "rephrase?"); err != nil {
		t.Fatalf("comment failed: %v", err)
	}
	if n, _ := e.Count(highlight.Comment); n != 1 {
		t.Errorf("expected one comment, got %d", n)
	}
	// Comments are not suggestions and never list as pending.
	if len(e.Suggestions()) != 0 {
		t.Error("comments should not list as suggestions")
	}
}

func TestCommentNeedsSelection(t *testing.T) {
	e := newEditor(t, "hello")
	e.Select(document.Collapsed(firstKey(e), 2))
	if err := e.AddComment("ann", "note"); err != suggest.ErrNoSelection {
		t.Errorf("expected ErrNoSelection, got %v", err)
	}
}

func TestRoundTripThroughRawJSON(t *testing.T) {
	e := newEditor(t, "hello", WithSuggesting())
	e.Select(document.Collapsed(firstKey(e), 5))
	_ = e.InsertText("bob", " world")

	data, err := e.MarshalRaw()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	loaded, err := FromRawJSON(data, WithSuggesting(), WithClock(func() time.Time { return testDate }))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Text() != "hello world" {
		t.Errorf("unexpected text %q", loaded.Text())
	}
	views := loaded.Suggestions()
	if len(views) != 1 || views[0].StyleName != "ADD_SUGGESTION-1" {
		t.Fatalf("pending suggestions should survive persistence, got %v", views)
	}
	if err := loaded.Accept("ann", "ADD_SUGGESTION-1"); err != nil {
		t.Errorf("the reloaded suggestion should resolve: %v", err)
	}
}

func TestStats(t *testing.T) {
	e := newEditor(t, "hello world\nsecond line")
	s := e.Stats()
	if s.Blocks != 2 || s.Words != 4 {
		t.Errorf("unexpected stats %+v", s)
	}
}

func TestDirectToggleStyle(t *testing.T) {
	e := newEditor(t, "hello")
	key := firstKey(e)
	e.Select(document.NewRange(key, 0, key, 5, false))

	if err := e.ToggleStyle("bob", document.StyleBold); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !e.Document().FirstBlock().HasStyleAt(0, document.StyleBold) {
		t.Error("direct toggle applies the style")
	}
	e.Select(document.NewRange(key, 0, key, 5, false))
	if err := e.ToggleStyle("bob", document.StyleBold); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if e.Document().FirstBlock().HasStyleAt(0, document.StyleBold) {
		t.Error("a second direct toggle removes it")
	}
}
