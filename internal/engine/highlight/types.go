package highlight

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/redline/internal/engine/document"
)

// Type is one of the closed set of highlight kinds.
type Type string

// Highlight types.
const (
	Comment    Type = "COMMENT"
	Annotation Type = "ANNOTATION"

	AddSuggestion    Type = "ADD_SUGGESTION"
	DeleteSuggestion Type = "DELETE_SUGGESTION"

	ToggleBoldSuggestion          Type = "TOGGLE_BOLD_SUGGESTION"
	ToggleItalicSuggestion        Type = "TOGGLE_ITALIC_SUGGESTION"
	ToggleUnderlineSuggestion     Type = "TOGGLE_UNDERLINE_SUGGESTION"
	ToggleSubscriptSuggestion     Type = "TOGGLE_SUBSCRIPT_SUGGESTION"
	ToggleSuperscriptSuggestion   Type = "TOGGLE_SUPERSCRIPT_SUGGESTION"
	ToggleStrikethroughSuggestion Type = "TOGGLE_STRIKETHROUGH_SUGGESTION"

	BlockStyleSuggestion           Type = "BLOCK_STYLE_SUGGESTION"
	SplitParagraphSuggestion       Type = "SPLIT_PARAGRAPH_SUGGESTION"
	MergeParagraphsSuggestion      Type = "MERGE_PARAGRAPHS_SUGGESTION"
	DeleteEmptyParagraphSuggestion Type = "DELETE_EMPTY_PARAGRAPH_SUGGESTION"

	AddLinkSuggestion    Type = "ADD_LINK_SUGGESTION"
	RemoveLinkSuggestion Type = "REMOVE_LINK_SUGGESTION"
	ChangeLinkSuggestion Type = "CHANGE_LINK_SUGGESTION"

	// ReplaceSuggestion is synthetic: never stored, only reported when a
	// delete and an add form a peer pair. See SuggestionData.
	ReplaceSuggestion Type = "REPLACE_SUGGESTION"
)

// allTypes is the closed set of storable types, in a fixed order so
// counter maps and persisted output stay deterministic.
var allTypes = []Type{
	Comment,
	Annotation,
	AddSuggestion,
	DeleteSuggestion,
	ToggleBoldSuggestion,
	ToggleItalicSuggestion,
	ToggleUnderlineSuggestion,
	ToggleSubscriptSuggestion,
	ToggleSuperscriptSuggestion,
	ToggleStrikethroughSuggestion,
	BlockStyleSuggestion,
	SplitParagraphSuggestion,
	MergeParagraphsSuggestion,
	DeleteEmptyParagraphSuggestion,
	AddLinkSuggestion,
	RemoveLinkSuggestion,
	ChangeLinkSuggestion,
}

// Types returns the closed set of storable highlight types.
func Types() []Type {
	return append([]Type(nil), allTypes...)
}

// ChangeTypes are the two suggestion types that add or remove text.
// Extension and peer scans consider only these.
func ChangeTypes() []Type {
	return []Type{AddSuggestion, DeleteSuggestion}
}

// StyleToggleTypes are the inline-style suggestion types.
func StyleToggleTypes() []Type {
	return []Type{
		ToggleBoldSuggestion,
		ToggleItalicSuggestion,
		ToggleUnderlineSuggestion,
		ToggleSubscriptSuggestion,
		ToggleSuperscriptSuggestion,
		ToggleStrikethroughSuggestion,
	}
}

// ParagraphTypes are the suggestion types whose unit is the block
// separator rather than a character run.
func ParagraphTypes() []Type {
	return []Type{SplitParagraphSuggestion, MergeParagraphsSuggestion}
}

// SuggestionTypes returns every type that represents a pending edit
// (everything except comments and annotations).
func SuggestionTypes() []Type {
	var out []Type
	for _, t := range allTypes {
		if t != Comment && t != Annotation {
			out = append(out, t)
		}
	}
	return out
}

// Valid reports whether t is a storable highlight type.
func (t Type) Valid() bool {
	for _, known := range allTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsSuggestion reports whether t represents a pending edit.
func (t Type) IsSuggestion() bool {
	return t.Valid() && t != Comment && t != Annotation
}

// IsParagraph reports whether t is a paragraph suggestion type.
func (t Type) IsParagraph() bool {
	return t == SplitParagraphSuggestion || t == MergeParagraphsSuggestion
}

var toggleTypeByStyle = map[string]Type{
	document.StyleBold:          ToggleBoldSuggestion,
	document.StyleItalic:        ToggleItalicSuggestion,
	document.StyleUnderline:     ToggleUnderlineSuggestion,
	document.StyleSubscript:     ToggleSubscriptSuggestion,
	document.StyleSuperscript:   ToggleSuperscriptSuggestion,
	document.StyleStrikethrough: ToggleStrikethroughSuggestion,
}

// TypeForInlineStyle maps an inline formatting style to its toggle
// suggestion type.
func TypeForInlineStyle(style string) (Type, bool) {
	t, ok := toggleTypeByStyle[style]
	return t, ok
}

// InlineStyleForType maps a toggle suggestion type back to the inline
// style it toggles.
func InlineStyleForType(t Type) (string, bool) {
	for style, tt := range toggleTypeByStyle {
		if tt == t {
			return style, true
		}
	}
	return "", false
}

// StyleName formats the TYPE-N name of highlight id within type t.
func StyleName(t Type, id int) string {
	return string(t) + "-" + strconv.Itoa(id)
}

// ParseStyleName splits a TYPE-N style name into its type and id.
func ParseStyleName(name string) (Type, int, error) {
	i := strings.LastIndex(name, "-")
	if i < 0 {
		return "", 0, fmt.Errorf("%w: %q", ErrNotStyleName, name)
	}
	t := Type(name[:i])
	if !t.Valid() {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidType, name[:i])
	}
	id, err := strconv.Atoi(name[i+1:])
	if err != nil || id < 0 {
		return "", 0, fmt.Errorf("%w: %q", ErrNotStyleName, name)
	}
	return t, id, nil
}

// TypeOfStyle returns the highlight type of a style name, when it is one.
func TypeOfStyle(name string) (Type, bool) {
	t, _, err := ParseStyleName(name)
	if err != nil {
		return "", false
	}
	return t, true
}

// IsStyleName reports whether name is a valid TYPE-N highlight style name.
func IsStyleName(name string) bool {
	_, ok := TypeOfStyle(name)
	return ok
}
