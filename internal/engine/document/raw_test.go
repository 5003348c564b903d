package document

import (
	"encoding/json"
	"testing"
)

func TestRawRoundTrip(t *testing.T) {
	d := New(WithText("hello world\nsecond line"))
	blocks := d.Blocks()
	key := blocks[0].Key()

	_ = d.ApplyStyle(NewRange(key, 0, key, 5, false), StyleBold)
	_ = d.ApplyStyle(NewRange(key, 3, key, 8, false), StyleItalic)
	_ = d.SetEntity(NewRange(key, 6, key, 11, false), &Entity{Kind: EntityLink, Href: "https://example.com"})
	_ = d.SetBlockType(blocks[1].Key(), HeaderTwo)
	d.SetMetadata("custom", map[string]string{"k": "v"})

	data, err := d.MarshalRaw()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	got, err := UnmarshalRaw(data)
	if err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if got.Text() != d.Text() {
		t.Errorf("text changed: %q vs %q", got.Text(), d.Text())
	}
	gb := got.FirstBlock()
	if gb.Key() != key {
		t.Error("block keys must survive the round trip")
	}
	for i := 0; i < 5; i++ {
		if !gb.HasStyleAt(i, StyleBold) {
			t.Errorf("character %d should carry BOLD", i)
		}
	}
	for i := 3; i < 8; i++ {
		if !gb.HasStyleAt(i, StyleItalic) {
			t.Errorf("character %d should carry ITALIC", i)
		}
	}
	if gb.HasStyleAt(5, StyleBold) {
		t.Error("BOLD should stop at offset 5")
	}
	if e, ok := gb.EntityAt(7); !ok || e.Href != "https://example.com" {
		t.Error("link entity should survive the round trip")
	}
	if got.Blocks()[1].Type() != HeaderTwo {
		t.Error("block type should survive the round trip")
	}
	if _, ok := got.Metadata("custom"); !ok {
		t.Error("document data should survive the round trip")
	}
}

func TestToRawDisjointStyleRuns(t *testing.T) {
	d := New(WithText("abcdef"))
	key := d.FirstBlock().Key()
	_ = d.ApplyStyle(NewRange(key, 0, key, 2, false), "MARK")
	_ = d.ApplyStyle(NewRange(key, 4, key, 6, false), "MARK")

	raw, err := d.ToRaw()
	if err != nil {
		t.Fatalf("ToRaw failed: %v", err)
	}
	ranges := raw.Blocks[0].InlineStyleRanges
	if len(ranges) != 2 {
		t.Fatalf("expected 2 ranges for disjoint runs, got %d", len(ranges))
	}
	if ranges[0].Offset != 0 || ranges[0].Length != 2 {
		t.Errorf("unexpected first range %+v", ranges[0])
	}
	if ranges[1].Offset != 4 || ranges[1].Length != 2 {
		t.Errorf("unexpected second range %+v", ranges[1])
	}
}

func TestFromRawDefaultsBlockType(t *testing.T) {
	data := []byte(`{"blocks":[{"key":"k1","type":"","text":"hi","inlineStyleRanges":[]}]}`)
	d, err := UnmarshalRaw(data)
	if err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if d.FirstBlock().Type() != Unstyled {
		t.Errorf("empty type should default to unstyled, got %q", d.FirstBlock().Type())
	}
}

func TestFromRawRejectsUnknownBlockType(t *testing.T) {
	data := []byte(`{"blocks":[{"key":"k1","type":"banner","text":"hi","inlineStyleRanges":[]}]}`)
	if _, err := UnmarshalRaw(data); err == nil {
		t.Error("unknown block type should be rejected")
	}
}

func TestRawMetadataKeptAsRawMessage(t *testing.T) {
	data := []byte(`{"blocks":[{"key":"k1","type":"unstyled","text":"hi","inlineStyleRanges":[]}],` +
		`"data":{"multipleHighlights":{"lastHighlightIds":{"COMMENT":2}}}}`)
	d, err := UnmarshalRaw(data)
	if err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	v, ok := d.Metadata("multipleHighlights")
	if !ok {
		t.Fatal("metadata key should be present")
	}
	if _, ok := v.(json.RawMessage); !ok {
		t.Errorf("metadata should stay raw until a typed consumer decodes it, got %T", v)
	}
}
