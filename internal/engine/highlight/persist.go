package highlight

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/redline/internal/engine/document"
)

// The persisted state JSON is heterogeneous: each highlightsData record
// carries different fields depending on its type. Records are built and
// picked apart path-wise with sjson/gjson instead of declaring a struct
// per shape.

// MarshalJSON encodes the state in its persisted wire form:
//
//	{"lastHighlightIds": {"COMMENT": 2, ...},
//	 "highlightsData": {"COMMENT-1": {"type": "COMMENT", ...}, ...}}
//
// Output is deterministic: counters in declaration order, records in
// sorted style-name order.
func (s *State) MarshalJSON() ([]byte, error) {
	out := []byte(`{"lastHighlightIds":{},"highlightsData":{}}`)
	var err error

	for _, t := range allTypes {
		out, err = sjson.SetBytes(out, "lastHighlightIds."+string(t), s.LastIDs[t])
		if err != nil {
			return nil, err
		}
	}

	names := make([]string, 0, len(s.Data))
	for name := range s.Data {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		d := s.Data[name]
		base := "highlightsData." + name
		out, err = sjson.SetBytes(out, base+".type", string(d.Type))
		if err != nil {
			return nil, err
		}
		if out, err = sjson.SetBytes(out, base+".author", d.Author); err != nil {
			return nil, err
		}
		if out, err = sjson.SetBytes(out, base+".date", d.Date.Format(time.RFC3339)); err != nil {
			return nil, err
		}
		if out, err = setPayload(out, base, d.Payload); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func setPayload(out []byte, base string, p Payload) ([]byte, error) {
	var err error
	switch p := p.(type) {
	case nil:
		return out, nil
	case CommentPayload:
		return sjson.SetBytes(out, base+".body", p.Body)
	case AnnotationPayload:
		if out, err = sjson.SetBytes(out, base+".body", p.Body); err != nil {
			return nil, err
		}
		return sjson.SetBytes(out, base+".annotationType", p.Kind)
	case StyleTogglePayload:
		if out, err = sjson.SetBytes(out, base+".style", p.Style); err != nil {
			return nil, err
		}
		return sjson.SetBytes(out, base+".originalStyle", p.OriginalStyle)
	case BlockStylePayload:
		if out, err = sjson.SetBytes(out, base+".blockType", string(p.BlockType)); err != nil {
			return nil, err
		}
		return sjson.SetBytes(out, base+".originalType", string(p.OriginalType))
	case LinkPayload:
		if p.From != nil {
			if out, err = sjson.SetBytes(out, base+".from.href", p.From.Href); err != nil {
				return nil, err
			}
		}
		if p.To != nil {
			if out, err = sjson.SetBytes(out, base+".to.href", p.To.Href); err != nil {
				return nil, err
			}
		}
		return out, nil
	case SplitPayload:
		return sjson.SetBytes(out, base+".blockKey", p.BlockKey)
	case MergePayload:
		if out, err = sjson.SetBytes(out, base+".firstKey", p.FirstKey); err != nil {
			return nil, err
		}
		return sjson.SetBytes(out, base+".secondKey", p.SecondKey)
	default:
		return out, nil
	}
}

// DecodeState parses the persisted wire form back into a State.
// Unknown types and malformed records are dropped rather than failing
// the whole document.
func DecodeState(raw json.RawMessage) (*State, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidType
	}
	st := NewState()

	gjson.GetBytes(raw, "lastHighlightIds").ForEach(func(key, value gjson.Result) bool {
		t := Type(key.String())
		if t.Valid() {
			st.LastIDs[t] = int(value.Int())
		}
		return true
	})

	gjson.GetBytes(raw, "highlightsData").ForEach(func(key, value gjson.Result) bool {
		t := Type(value.Get("type").String())
		if !t.Valid() {
			return true
		}
		d := Data{
			Type:    t,
			Author:  value.Get("author").String(),
			Payload: decodePayload(t, value),
		}
		if parsed, err := time.Parse(time.RFC3339, value.Get("date").String()); err == nil {
			d.Date = parsed
		}
		st.Data[key.String()] = d
		return true
	})
	return st, nil
}

func decodePayload(t Type, value gjson.Result) Payload {
	switch t {
	case Comment:
		return CommentPayload{Body: value.Get("body").String()}
	case Annotation:
		return AnnotationPayload{
			Body: value.Get("body").String(),
			Kind: value.Get("annotationType").String(),
		}
	case ToggleBoldSuggestion, ToggleItalicSuggestion, ToggleUnderlineSuggestion,
		ToggleSubscriptSuggestion, ToggleSuperscriptSuggestion, ToggleStrikethroughSuggestion:
		return StyleTogglePayload{
			Style:         value.Get("style").String(),
			OriginalStyle: value.Get("originalStyle").String(),
		}
	case BlockStyleSuggestion:
		return BlockStylePayload{
			BlockType:    document.BlockType(value.Get("blockType").String()),
			OriginalType: document.BlockType(value.Get("originalType").String()),
		}
	case AddLinkSuggestion, RemoveLinkSuggestion, ChangeLinkSuggestion:
		var p LinkPayload
		if from := value.Get("from"); from.Exists() {
			p.From = &document.Entity{Kind: document.EntityLink, Href: from.Get("href").String()}
		}
		if to := value.Get("to"); to.Exists() {
			p.To = &document.Entity{Kind: document.EntityLink, Href: to.Get("href").String()}
		}
		return p
	case SplitParagraphSuggestion:
		return SplitPayload{BlockKey: value.Get("blockKey").String()}
	case MergeParagraphsSuggestion:
		return MergePayload{
			FirstKey:  value.Get("firstKey").String(),
			SecondKey: value.Get("secondKey").String(),
		}
	default:
		return nil
	}
}
