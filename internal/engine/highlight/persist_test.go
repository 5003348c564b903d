package highlight

import (
	"encoding/json"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/dshills/redline/internal/engine/document"
)

func TestStateWireFormat(t *testing.T) {
	st := NewState()
	st.LastIDs[Comment] = 2
	st.Data["COMMENT-2"] = Data{
		Type: Comment, Author: "ann", Date: testDate,
		Payload: CommentPayload{Body: "needs a source"},
	}

	out, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	if got := gjson.GetBytes(out, "lastHighlightIds.COMMENT").Int(); got != 2 {
		t.Errorf("expected counter 2, got %d", got)
	}
	if got := gjson.GetBytes(out, "lastHighlightIds.ADD_SUGGESTION").Int(); got != 0 {
		t.Errorf("untouched counters persist as 0, got %d", got)
	}
	rec := gjson.GetBytes(out, "highlightsData.COMMENT-2")
	if rec.Get("type").String() != "COMMENT" {
		t.Errorf("unexpected type %q", rec.Get("type").String())
	}
	if rec.Get("author").String() != "ann" {
		t.Errorf("unexpected author %q", rec.Get("author").String())
	}
	if rec.Get("body").String() != "needs a source" {
		t.Errorf("unexpected body %q", rec.Get("body").String())
	}
}

func TestStateRoundTripPayloads(t *testing.T) {
	st := NewState()
	st.LastIDs[ToggleBoldSuggestion] = 1
	st.LastIDs[BlockStyleSuggestion] = 1
	st.LastIDs[ChangeLinkSuggestion] = 1
	st.LastIDs[MergeParagraphsSuggestion] = 1
	st.Data["TOGGLE_BOLD_SUGGESTION-1"] = Data{
		Type: ToggleBoldSuggestion, Author: "bob", Date: testDate,
		Payload: StyleTogglePayload{Style: document.StyleBold, OriginalStyle: document.StyleBold},
	}
	st.Data["BLOCK_STYLE_SUGGESTION-1"] = Data{
		Type: BlockStyleSuggestion, Author: "bob", Date: testDate,
		Payload: BlockStylePayload{BlockType: document.HeaderTwo, OriginalType: document.Unstyled},
	}
	st.Data["CHANGE_LINK_SUGGESTION-1"] = Data{
		Type: ChangeLinkSuggestion, Author: "bob", Date: testDate,
		Payload: LinkPayload{
			From: &document.Entity{Kind: document.EntityLink, Href: "https://old.example.com"},
			To:   &document.Entity{Kind: document.EntityLink, Href: "https://new.example.com"},
		},
	}
	st.Data["MERGE_PARAGRAPHS_SUGGESTION-1"] = Data{
		Type: MergeParagraphsSuggestion, Author: "bob", Date: testDate,
		Payload: MergePayload{FirstKey: "k1", SecondKey: "k2"},
	}

	out, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	got, err := DecodeState(out)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	toggle := got.Data["TOGGLE_BOLD_SUGGESTION-1"].Payload.(StyleTogglePayload)
	if toggle.Style != document.StyleBold || toggle.OriginalStyle != document.StyleBold {
		t.Errorf("unexpected toggle payload %+v", toggle)
	}
	block := got.Data["BLOCK_STYLE_SUGGESTION-1"].Payload.(BlockStylePayload)
	if block.BlockType != document.HeaderTwo || block.OriginalType != document.Unstyled {
		t.Errorf("unexpected block payload %+v", block)
	}
	link := got.Data["CHANGE_LINK_SUGGESTION-1"].Payload.(LinkPayload)
	if link.From == nil || link.From.Href != "https://old.example.com" {
		t.Errorf("unexpected link.From %+v", link.From)
	}
	if link.To == nil || link.To.Href != "https://new.example.com" {
		t.Errorf("unexpected link.To %+v", link.To)
	}
	merge := got.Data["MERGE_PARAGRAPHS_SUGGESTION-1"].Payload.(MergePayload)
	if merge.FirstKey != "k1" || merge.SecondKey != "k2" {
		t.Errorf("unexpected merge payload %+v", merge)
	}
	if !got.Data["TOGGLE_BOLD_SUGGESTION-1"].Date.Equal(testDate) {
		t.Error("dates should survive the round trip")
	}
}

func TestDecodeStateDropsUnknownTypes(t *testing.T) {
	raw := []byte(`{"lastHighlightIds":{"COMMENT":1,"BANNER":7},` +
		`"highlightsData":{"COMMENT-1":{"type":"COMMENT","author":"a","date":"2025-03-14T10:30:00Z","body":"x"},` +
		`"BANNER-1":{"type":"BANNER","author":"a"}}}`)

	st, err := DecodeState(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(st.Data) != 1 {
		t.Errorf("unknown-typed records should be dropped, got %d records", len(st.Data))
	}
	if _, ok := st.LastIDs[Type("BANNER")]; ok {
		t.Error("unknown counter types should be dropped")
	}
}

func TestDecodeStateInvalidJSON(t *testing.T) {
	if _, err := DecodeState([]byte("{nope")); err == nil {
		t.Error("invalid JSON should fail")
	}
}

func TestRegistryStateSurvivesRawRoundTrip(t *testing.T) {
	d, reg := newTestDoc(t, "hello world")
	key := d.FirstBlock().Key()
	name, _ := reg.Add(document.NewRange(key, 0, key, 5, false), DeleteSuggestion, "bob", testDate, nil, false)

	data, err := d.MarshalRaw()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	loaded, err := document.UnmarshalRaw(data)
	if err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	reg2 := NewRegistry(loaded)
	rec, err := reg2.Data(name)
	if err != nil {
		t.Fatalf("record should survive: %v", err)
	}
	if rec.Author != "bob" || rec.Type != DeleteSuggestion {
		t.Errorf("unexpected record %+v", rec)
	}
	if n, _ := reg2.Count(DeleteSuggestion); n != 1 {
		t.Errorf("counter should survive, got %d", n)
	}
	if !loaded.HasStyleAnywhere(name) {
		t.Error("character tags should survive via style ranges")
	}
}
