package highlight

import (
	"time"

	"github.com/dshills/redline/internal/engine/document"
)

// SuggestionView is everything a caller needs to display or resolve one
// suggestion: its record, its reconstructed extent and text, and, for a
// replace pair, the text being replaced.
type SuggestionView struct {
	StyleName string
	Type      Type
	Author    string
	Date      time.Time
	Payload   Payload

	// Selection covers the suggestion's full extent. For a replace pair
	// it spans both the deleted and the inserted text.
	Selection document.Selection

	// Text is the suggested text: inserted characters for an add,
	// characters marked for removal for a delete.
	Text string

	// OldText is set only for replace pairs: the text the suggestion
	// removes.
	OldText string
}

// SuggestionData builds the view of the suggestion named styleName,
// reconstructing its extent from the collapsed selection sel (which
// must sit inside it).
//
// When an add and a delete by the same author sit back to back they
// form a replace pair: the view reports type REPLACE_SUGGESTION, the
// combined selection, the added text as Text and the deleted text as
// OldText, regardless of which half styleName names.
func (r *Registry) SuggestionData(sel document.Selection, styleName string) (SuggestionView, error) {
	data, err := r.Data(styleName)
	if err != nil {
		return SuggestionView{}, err
	}
	span, err := Reconstruct(r.doc, sel, styleName)
	if err != nil {
		return SuggestionView{}, err
	}

	view := SuggestionView{
		StyleName: styleName,
		Type:      data.Type,
		Author:    data.Author,
		Date:      data.Date,
		Payload:   data.Payload,
		Selection: span.Selection,
		Text:      span.Text,
	}

	if data.Type != AddSuggestion && data.Type != DeleteSuggestion {
		return view, nil
	}

	// A peer sits directly at the span's end, or failing that directly
	// before its start.
	afterPeer := true
	peerStyle := StyleAt(r.doc, ChangeTypes(), span.Selection, 0, true)
	if !r.isPeer(peerStyle, data.Type, data.Author) {
		peerStyle = StyleAt(r.doc, ChangeTypes(), span.Selection, -1, false)
		if !r.isPeer(peerStyle, data.Type, data.Author) {
			return view, nil
		}
		afterPeer = false
	}

	var peerCursor document.Selection
	if afterPeer {
		peerCursor = span.Selection.CollapseToEnd()
	} else {
		peerCursor = span.Selection.CollapseToStart()
	}
	peerSpan, err := Reconstruct(r.doc, peerCursor, peerStyle)
	if err != nil {
		return SuggestionView{}, err
	}

	if afterPeer {
		view.Selection = document.NewRange(
			span.Selection.StartKey(), span.Selection.StartOffset(),
			peerSpan.Selection.EndKey(), peerSpan.Selection.EndOffset(), false)
	} else {
		view.Selection = document.NewRange(
			peerSpan.Selection.StartKey(), peerSpan.Selection.StartOffset(),
			span.Selection.EndKey(), span.Selection.EndOffset(), false)
	}

	view.Type = ReplaceSuggestion
	if data.Type == AddSuggestion {
		view.OldText = peerSpan.Text
	} else {
		view.Text = peerSpan.Text
		view.OldText = span.Text
	}
	return view, nil
}

// isPeer reports whether style names the complementary half of a
// replace pair: the opposite change type, same author.
func (r *Registry) isPeer(style string, t Type, author string) bool {
	if style == "" {
		return false
	}
	st, ok := TypeOfStyle(style)
	if !ok || st == t {
		return false
	}
	a, err := r.Author(style)
	return err == nil && a == author
}
