package highlight

import "github.com/dshills/redline/internal/engine/document"

// RenderStyle describes how a highlight's characters should be drawn.
type RenderStyle struct {
	Background     string
	Color          string
	TextDecoration string
}

// renderStyles is the fixed per-type appearance table. The style map is
// always derived from it and from the live data records, never stored:
// storing it would freeze the appearance of old highlights.
var renderStyles = map[Type]RenderStyle{
	Comment:    {Background: "#ffe66b"},
	Annotation: {TextDecoration: "underline dotted"},

	AddSuggestion:    {Color: "#2e7d32", TextDecoration: "underline"},
	DeleteSuggestion: {Color: "#c62828", TextDecoration: "line-through"},

	ToggleBoldSuggestion:          {Color: "#1565c0"},
	ToggleItalicSuggestion:        {Color: "#1565c0"},
	ToggleUnderlineSuggestion:     {Color: "#1565c0"},
	ToggleSubscriptSuggestion:     {Color: "#1565c0"},
	ToggleSuperscriptSuggestion:   {Color: "#1565c0"},
	ToggleStrikethroughSuggestion: {Color: "#1565c0"},

	BlockStyleSuggestion:           {Color: "#6a1b9a"},
	SplitParagraphSuggestion:       {Color: "#2e7d32", TextDecoration: "underline"},
	MergeParagraphsSuggestion:      {Color: "#c62828", TextDecoration: "line-through"},
	DeleteEmptyParagraphSuggestion: {Color: "#c62828", TextDecoration: "line-through"},

	AddLinkSuggestion:    {Color: "#00838f", TextDecoration: "underline"},
	RemoveLinkSuggestion: {Color: "#00838f", TextDecoration: "line-through"},
	ChangeLinkSuggestion: {Color: "#00838f", TextDecoration: "underline"},
}

// RenderStyleForType returns the appearance of highlights of type t.
func RenderStyleForType(t Type) (RenderStyle, bool) {
	rs, ok := renderStyles[t]
	return rs, ok
}

// StyleMap returns the derived render style for every live highlight,
// keyed by style name.
func (r *Registry) StyleMap() map[string]RenderStyle {
	st := r.state()
	m := make(map[string]RenderStyle, len(st.Data))
	for name, d := range st.Data {
		if rs, ok := renderStyles[d.Type]; ok {
			m[name] = rs
		}
	}
	return m
}

// TextForStyleInRaw reconstructs a highlight's text from a raw document
// without materializing blocks: the style ranges naming the highlight
// are concatenated in document order, separated by ParagraphSeparator
// at block boundaries.
func TextForStyleInRaw(raw *document.RawDocument, styleName string) string {
	var text string
	for _, b := range raw.Blocks {
		runes := []rune(b.Text)
		for _, sr := range b.InlineStyleRanges {
			if sr.Style != styleName {
				continue
			}
			start := min(sr.Offset, len(runes))
			end := min(sr.Offset+sr.Length, len(runes))
			part := string(runes[start:end])
			if text != "" {
				text += string(ParagraphSeparator)
			}
			text += part
		}
	}
	return text
}
