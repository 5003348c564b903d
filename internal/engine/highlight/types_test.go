package highlight

import (
	"testing"

	"github.com/dshills/redline/internal/engine/document"
)

func TestStyleName(t *testing.T) {
	if got := StyleName(AddSuggestion, 3); got != "ADD_SUGGESTION-3" {
		t.Errorf("expected ADD_SUGGESTION-3, got %q", got)
	}
	if got := StyleName(Comment, 1); got != "COMMENT-1" {
		t.Errorf("expected COMMENT-1, got %q", got)
	}
}

func TestParseStyleName(t *testing.T) {
	tt, id, err := ParseStyleName("DELETE_EMPTY_PARAGRAPH_SUGGESTION-12")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if tt != DeleteEmptyParagraphSuggestion || id != 12 {
		t.Errorf("got type=%q id=%d", tt, id)
	}
}

func TestParseStyleNameRejects(t *testing.T) {
	cases := []string{"", "BOLD", "NOT_A_TYPE-1", "ADD_SUGGESTION-x", "ADD_SUGGESTION--1"}
	for _, name := range cases {
		if _, _, err := ParseStyleName(name); err == nil {
			t.Errorf("%q should not parse", name)
		}
	}
}

func TestIsStyleName(t *testing.T) {
	if !IsStyleName("COMMENT-2") {
		t.Error("COMMENT-2 is a style name")
	}
	if IsStyleName(document.StyleBold) {
		t.Error("BOLD is a formatting style, not a highlight style name")
	}
	if IsStyleName("REPLACE_SUGGESTION-1") {
		t.Error("the synthetic replace type is never stored, so its names are invalid")
	}
}

func TestTypeForInlineStyle(t *testing.T) {
	tt, ok := TypeForInlineStyle(document.StyleBold)
	if !ok || tt != ToggleBoldSuggestion {
		t.Errorf("expected toggle-bold, got %q ok=%v", tt, ok)
	}
	if _, ok := TypeForInlineStyle("CODE"); ok {
		t.Error("unknown inline style should not map to a toggle type")
	}

	style, ok := InlineStyleForType(ToggleStrikethroughSuggestion)
	if !ok || style != document.StyleStrikethrough {
		t.Errorf("expected STRIKETHROUGH, got %q", style)
	}
}

func TestSuggestionTypesExcludeCommentary(t *testing.T) {
	for _, tt := range SuggestionTypes() {
		if tt == Comment || tt == Annotation {
			t.Errorf("%q should not be a suggestion type", tt)
		}
		if !tt.IsSuggestion() {
			t.Errorf("%q should report IsSuggestion", tt)
		}
	}
	if Comment.IsSuggestion() || Annotation.IsSuggestion() {
		t.Error("comments and annotations are not suggestions")
	}
}

func TestIsParagraph(t *testing.T) {
	if !SplitParagraphSuggestion.IsParagraph() || !MergeParagraphsSuggestion.IsParagraph() {
		t.Error("split and merge are paragraph types")
	}
	if DeleteEmptyParagraphSuggestion.IsParagraph() {
		t.Error("delete-empty tags real characters; it is not a paragraph type")
	}
}
