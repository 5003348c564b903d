package highlight

import (
	"testing"
	"time"
)

func TestAppendResolved(t *testing.T) {
	_, reg := newTestDoc(t, "hello")

	if got := reg.Resolved(); got != nil {
		t.Errorf("fresh document has no history, got %v", got)
	}

	reg.AppendResolved(Resolved{
		StyleName: "ADD_SUGGESTION-1", Type: AddSuggestion,
		Author: "bob", Date: testDate,
		Resolver: "ann", ResolvedAt: testDate.Add(time.Hour),
		Accepted: true, Text: "new words",
	})
	reg.AppendResolved(Resolved{
		StyleName: "DELETE_SUGGESTION-1", Type: DeleteSuggestion,
		Author: "bob", Date: testDate,
		Resolver: "ann", ResolvedAt: testDate.Add(2 * time.Hour),
		Accepted: false, Text: "cut this",
	})

	got := reg.Resolved()
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].StyleName != "ADD_SUGGESTION-1" || got[1].StyleName != "DELETE_SUGGESTION-1" {
		t.Error("history should keep append order, oldest first")
	}
	if !got[0].Accepted || got[1].Accepted {
		t.Error("verdicts should be recorded per entry")
	}
	if got[0].Resolver != "ann" {
		t.Errorf("expected resolver ann, got %q", got[0].Resolver)
	}
}

func TestResolvedHistorySurvivesUndoOfLaterEdits(t *testing.T) {
	d, reg := newTestDoc(t, "hello")
	key := d.FirstBlock().Key()

	_ = d.Transaction(func() error {
		reg.AppendResolved(Resolved{StyleName: "ADD_SUGGESTION-1", Type: AddSuggestion, Accepted: true})
		return nil
	})
	_ = d.Transaction(func() error {
		return d.InsertText(key, 0, "x", nil)
	})

	_ = d.Undo()
	if len(reg.Resolved()) != 1 {
		t.Error("undoing a later edit should not drop earlier history")
	}
}
