package suggest

import (
	"testing"

	"github.com/dshills/redline/internal/engine/document"
	"github.com/dshills/redline/internal/engine/highlight"
)

func TestSplitParagraphSplitsAndTags(t *testing.T) {
	d, reg := newSuggestDoc(t, "hello world")
	key := d.FirstBlock().Key()
	d.SetSelection(document.Collapsed(key, 5))

	if err := SplitParagraph(d, reg, "bob", testDate); err != nil {
		t.Fatalf("split failed: %v", err)
	}

	blocks := d.Blocks()
	if len(blocks) != 2 || blocks[0].Text() != "hello" || blocks[1].Text() != " world" {
		t.Fatalf("unexpected blocks %v", d.Text())
	}
	next := blocks[1]
	for i := 0; i < next.Len(); i++ {
		if !next.HasStyleAt(i, "SPLIT_PARAGRAPH_SUGGESTION-1") {
			t.Errorf("character %d of the new block should be tagged", i)
		}
	}
	data, err := reg.Data("SPLIT_PARAGRAPH_SUGGESTION-1")
	if err != nil {
		t.Fatalf("record missing: %v", err)
	}
	if p := data.Payload.(highlight.SplitPayload); p.BlockKey != next.Key() {
		t.Errorf("payload should name the new block, got %+v", p)
	}
	if d.Selection() != document.Collapsed(next.Key(), 0) {
		t.Errorf("caret should land at the start of the new block, got %v", d.Selection())
	}
}

func TestSplitParagraphWithdrawsPendingMerge(t *testing.T) {
	d, reg := newSuggestDoc(t, "first\nsecond")
	blocks := d.Blocks()

	if err := MergeParagraphs(d, reg, blocks[0].Key(), blocks[1].Key(), "bob", testDate); err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if err := SplitParagraph(d, reg, "bob", testDate); err != nil {
		t.Fatalf("split failed: %v", err)
	}

	if d.BlockCount() != 2 {
		t.Errorf("pressing enter on a pending merge should not split, got %d blocks", d.BlockCount())
	}
	if len(reg.Styles()) != 0 {
		t.Errorf("the merge should be withdrawn, got %v", reg.Styles())
	}
}

func TestMergeParagraphsDefersTheJoin(t *testing.T) {
	d, reg := newSuggestDoc(t, "first\nsecond")
	blocks := d.Blocks()

	if err := MergeParagraphs(d, reg, blocks[0].Key(), blocks[1].Key(), "bob", testDate); err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	if d.BlockCount() != 2 {
		t.Error("the blocks stay separate until the suggestion is accepted")
	}
	second := d.Blocks()[1]
	if !second.HasStyleAt(0, "MERGE_PARAGRAPHS_SUGGESTION-1") {
		t.Error("the boundary character should be tagged")
	}
	if second.HasStyleAt(1, "MERGE_PARAGRAPHS_SUGGESTION-1") {
		t.Error("only the boundary character is tagged")
	}
	data, _ := reg.Data("MERGE_PARAGRAPHS_SUGGESTION-1")
	p := data.Payload.(highlight.MergePayload)
	if p.FirstKey != blocks[0].Key() || p.SecondKey != blocks[1].Key() {
		t.Errorf("payload should name both blocks, got %+v", p)
	}
	if d.Selection() != document.Collapsed(blocks[1].Key(), 0) {
		t.Errorf("caret should sit at the boundary, got %v", d.Selection())
	}
}

func TestMergeParagraphsNotDuplicated(t *testing.T) {
	d, reg := newSuggestDoc(t, "first\nsecond")
	blocks := d.Blocks()

	_ = MergeParagraphs(d, reg, blocks[0].Key(), blocks[1].Key(), "bob", testDate)
	if err := MergeParagraphs(d, reg, blocks[0].Key(), blocks[1].Key(), "bob", testDate); err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	if n := len(reg.Styles()); n != 1 {
		t.Errorf("the same boundary should carry one merge suggestion, got %d", n)
	}
}

func TestMergeParagraphsEmptySecondBlock(t *testing.T) {
	d, reg := newSuggestDoc(t, "first\n")
	blocks := d.Blocks()
	if len(blocks) != 2 || blocks[1].Len() != 0 {
		t.Fatalf("setup needs a trailing empty block, got %v", d.Text())
	}

	if err := MergeParagraphs(d, reg, blocks[0].Key(), blocks[1].Key(), "bob", testDate); err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	first := d.Blocks()[0]
	if !first.HasStyleAt(first.Len()-1, "MERGE_PARAGRAPHS_SUGGESTION-1") {
		t.Error("with nothing after the boundary, the character before it is tagged")
	}
}

func TestMergeParagraphsUnknownBlock(t *testing.T) {
	d, reg := newSuggestDoc(t, "first\nsecond")
	blocks := d.Blocks()

	err := MergeParagraphs(d, reg, blocks[0].Key(), "missing", "bob", testDate)
	if err != document.ErrBlockNotFound {
		t.Errorf("expected ErrBlockNotFound, got %v", err)
	}
}
