package document

import (
	"encoding/json"
	"fmt"
	"sort"
)

// RawDocument is the persisted JSON form of a document: block texts with
// inline style ranges instead of per-character sets, plus document data.
type RawDocument struct {
	Blocks []RawBlock                 `json:"blocks"`
	Data   map[string]json.RawMessage `json:"data,omitempty"`
}

// RawBlock is one block in the persisted form.
type RawBlock struct {
	Key               string           `json:"key"`
	Type              BlockType        `json:"type"`
	Text              string           `json:"text"`
	InlineStyleRanges []RawStyleRange  `json:"inlineStyleRanges"`
	EntityRanges      []RawEntityRange `json:"entityRanges,omitempty"`
	Data              map[string]any   `json:"data,omitempty"`
}

// RawStyleRange marks [Offset, Offset+Length) as carrying Style.
type RawStyleRange struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Style  string `json:"style"`
}

// RawEntityRange marks [Offset, Offset+Length) as referencing an entity.
type RawEntityRange struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Kind   string `json:"kind"`
	Href   string `json:"href,omitempty"`
}

// ToRaw converts the document to its persisted form. Per-character
// style sets are compacted into ranges; a style appearing in several
// disjoint runs produces several ranges.
func (d *Document) ToRaw() (*RawDocument, error) {
	raw := &RawDocument{Blocks: make([]RawBlock, 0, len(d.blocks))}

	for _, b := range d.blocks {
		rb := RawBlock{
			Key:               b.key,
			Type:              b.blockType,
			Text:              b.Text(),
			InlineStyleRanges: styleRanges(b),
			EntityRanges:      entityRanges(b),
		}
		if len(b.data) > 0 {
			rb.Data = b.data
		}
		raw.Blocks = append(raw.Blocks, rb)
	}

	if len(d.meta) > 0 {
		raw.Data = make(map[string]json.RawMessage, len(d.meta))
		for k, v := range d.meta {
			enc, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("encoding document data %q: %w", k, err)
			}
			raw.Data[k] = enc
		}
	}
	return raw, nil
}

// FromRaw rebuilds a document from its persisted form. Document data
// values are kept as json.RawMessage; typed consumers (the highlight
// registry) decode the keys they own on first access.
func FromRaw(raw *RawDocument) (*Document, error) {
	blocks := make([]*Block, 0, len(raw.Blocks))
	for _, rb := range raw.Blocks {
		t := rb.Type
		if t == "" {
			t = Unstyled
		}
		if !t.Valid() {
			return nil, fmt.Errorf("block %q: unknown block type %q", rb.Key, rb.Type)
		}
		b := NewBlockWithKey(rb.Key, t, rb.Text)
		for _, sr := range rb.InlineStyleRanges {
			b.applyStyle(sr.Offset, sr.Offset+sr.Length, sr.Style)
		}
		for _, er := range rb.EntityRanges {
			b.setEntity(er.Offset, er.Offset+er.Length, &Entity{Kind: er.Kind, Href: er.Href})
		}
		for k, v := range rb.Data {
			b.data[k] = v
		}
		blocks = append(blocks, b)
	}

	d := FromBlocks(blocks)
	for k, v := range raw.Data {
		d.meta[k] = v
	}
	return d, nil
}

// MarshalRaw serializes the document to raw JSON.
func (d *Document) MarshalRaw() ([]byte, error) {
	raw, err := d.ToRaw()
	if err != nil {
		return nil, err
	}
	return json.Marshal(raw)
}

// UnmarshalRaw parses raw JSON into a document.
func UnmarshalRaw(data []byte) (*Document, error) {
	var raw RawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing raw document: %w", err)
	}
	return FromRaw(&raw)
}

func styleRanges(b *Block) []RawStyleRange {
	var ranges []RawStyleRange
	open := make(map[string]int) // style → range start

	for i := 0; i <= b.Len(); i++ {
		var current StyleSet
		if i < b.Len() {
			current = b.styles[i]
		}
		for style, start := range open {
			if !current.Has(style) {
				ranges = append(ranges, RawStyleRange{Offset: start, Length: i - start, Style: style})
				delete(open, style)
			}
		}
		for style := range current {
			if _, ok := open[style]; !ok {
				open[style] = i
			}
		}
	}

	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].Offset != ranges[j].Offset {
			return ranges[i].Offset < ranges[j].Offset
		}
		return ranges[i].Style < ranges[j].Style
	})
	return ranges
}

func entityRanges(b *Block) []RawEntityRange {
	var ranges []RawEntityRange
	for i := 0; i < b.Len(); {
		e, ok := b.entities[i]
		if !ok {
			i++
			continue
		}
		start := i
		for i < b.Len() && b.entities[i] == e {
			i++
		}
		ranges = append(ranges, RawEntityRange{Offset: start, Length: i - start, Kind: e.Kind, Href: e.Href})
	}
	return ranges
}
