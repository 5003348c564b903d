package document

import "github.com/google/uuid"

// BlockType identifies the structural role of a block. The values match
// the wire names used in the raw document format.
type BlockType string

// Block types.
const (
	Unstyled          BlockType = "unstyled"
	HeaderOne         BlockType = "header-one"
	HeaderTwo         BlockType = "header-two"
	HeaderThree       BlockType = "header-three"
	HeaderFour        BlockType = "header-four"
	HeaderFive        BlockType = "header-five"
	HeaderSix         BlockType = "header-six"
	Blockquote        BlockType = "blockquote"
	OrderedListItem   BlockType = "ordered-list-item"
	UnorderedListItem BlockType = "unordered-list-item"
	CodeBlock         BlockType = "code-block"
	Atomic            BlockType = "atomic"
)

// Valid reports whether t is a known block type.
func (t BlockType) Valid() bool {
	switch t {
	case Unstyled, HeaderOne, HeaderTwo, HeaderThree, HeaderFour,
		HeaderFive, HeaderSix, Blockquote, OrderedListItem,
		UnorderedListItem, CodeBlock, Atomic:
		return true
	}
	return false
}

// Entity is an inline object attached to a character range: a link
// target or an embed placeholder.
type Entity struct {
	Kind string // "LINK" or "EMBED"
	Href string // link target for LINK entities
}

// EntityLink is the entity kind for hyperlinks.
const EntityLink = "LINK"

// Block is one unit of the document: a run of characters with one style
// set per character, sparse entity references, and a data map.
//
// Invariant: len(styles) == len(text) at all times.
type Block struct {
	key       string
	blockType BlockType
	text      []rune
	styles    []StyleSet
	entities  map[int]*Entity
	data      map[string]any
}

// NewBlock creates a block with a generated key.
func NewBlock(t BlockType, text string) *Block {
	return NewBlockWithKey(uuid.NewString(), t, text)
}

// NewBlockWithKey creates a block with an explicit key. Used when
// decoding persisted documents, where keys must be stable.
func NewBlockWithKey(key string, t BlockType, text string) *Block {
	runes := []rune(text)
	styles := make([]StyleSet, len(runes))
	for i := range styles {
		styles[i] = NewStyleSet()
	}
	return &Block{
		key:       key,
		blockType: t,
		text:      runes,
		styles:    styles,
		entities:  make(map[int]*Entity),
		data:      make(map[string]any),
	}
}

// Key returns the block's stable opaque id.
func (b *Block) Key() string { return b.key }

// Type returns the block type.
func (b *Block) Type() BlockType { return b.blockType }

// Len returns the number of characters in the block.
func (b *Block) Len() int { return len(b.text) }

// Text returns the block text.
func (b *Block) Text() string { return string(b.text) }

// RuneAt returns the character at offset, or 0 if out of range.
func (b *Block) RuneAt(offset int) rune {
	if offset < 0 || offset >= len(b.text) {
		return 0
	}
	return b.text[offset]
}

// StylesAt returns the style set of the character at offset. Out of
// range offsets yield an empty set, never nil panics: callers probe one
// past block ends while scanning.
func (b *Block) StylesAt(offset int) StyleSet {
	if offset < 0 || offset >= len(b.styles) {
		return NewStyleSet()
	}
	return b.styles[offset]
}

// HasStyleAt reports whether the character at offset carries the style.
func (b *Block) HasStyleAt(offset int, style string) bool {
	if offset < 0 || offset >= len(b.styles) {
		return false
	}
	return b.styles[offset].Has(style)
}

// EntityAt returns the entity at offset, if any.
func (b *Block) EntityAt(offset int) (*Entity, bool) {
	e, ok := b.entities[offset]
	return e, ok
}

// EntityRange returns the maximal contiguous [start, end) range around
// offset whose characters reference the same entity. ok is false when
// no entity is present at offset.
func (b *Block) EntityRange(offset int) (start, end int, ok bool) {
	e, ok := b.entities[offset]
	if !ok {
		return 0, 0, false
	}
	start, end = offset, offset+1
	for start > 0 && b.entities[start-1] == e {
		start--
	}
	for end < len(b.text) && b.entities[end] == e {
		end++
	}
	return start, end, true
}

// Data returns the value stored under key in the block data map.
func (b *Block) Data(key string) (any, bool) {
	v, ok := b.data[key]
	return v, ok
}

// SetData stores a value in the block data map.
func (b *Block) SetData(key string, value any) {
	b.data[key] = value
}

// AppendText appends text to the block, giving every appended
// character an independent copy of styles. Used by builders assembling
// blocks outside a document.
func (b *Block) AppendText(text string, styles StyleSet) {
	b.insertText(b.Len(), text, styles)
}

// SetEntityRange attaches e to the characters in [start, end). Used by
// builders assembling blocks outside a document.
func (b *Block) SetEntityRange(start, end int, e *Entity) {
	b.setEntity(start, end, e)
}

// Clone returns a deep copy of the block. Entities are shared: they are
// treated as immutable values and replaced, never mutated.
func (b *Block) Clone() *Block {
	c := &Block{
		key:       b.key,
		blockType: b.blockType,
		text:      append([]rune(nil), b.text...),
		styles:    make([]StyleSet, len(b.styles)),
		entities:  make(map[int]*Entity, len(b.entities)),
		data:      make(map[string]any, len(b.data)),
	}
	for i, s := range b.styles {
		c.styles[i] = s.Clone()
	}
	for off, e := range b.entities {
		c.entities[off] = e
	}
	for k, v := range b.data {
		c.data[k] = v
	}
	return c
}

// insertText inserts text at offset, giving every inserted character an
// independent copy of styles. Entities at or after offset shift right.
func (b *Block) insertText(offset int, text string, styles StyleSet) {
	runes := []rune(text)
	if len(runes) == 0 {
		return
	}
	newStyles := make([]StyleSet, len(runes))
	for i := range newStyles {
		if styles == nil {
			newStyles[i] = NewStyleSet()
		} else {
			newStyles[i] = styles.Clone()
		}
	}

	b.text = append(b.text[:offset], append(runes, b.text[offset:]...)...)
	b.styles = append(b.styles[:offset], append(newStyles, b.styles[offset:]...)...)
	b.shiftEntities(offset, len(runes))
}

// removeRange removes characters in [start, end). Entities within the
// range are dropped; entities after it shift left.
func (b *Block) removeRange(start, end int) {
	if start >= end {
		return
	}
	b.text = append(b.text[:start], b.text[end:]...)
	b.styles = append(b.styles[:start], b.styles[end:]...)

	shifted := make(map[int]*Entity, len(b.entities))
	for off, e := range b.entities {
		switch {
		case off < start:
			shifted[off] = e
		case off >= end:
			shifted[off-(end-start)] = e
		}
	}
	b.entities = shifted
}

// shiftEntities moves entity offsets at or beyond from by delta.
func (b *Block) shiftEntities(from, delta int) {
	shifted := make(map[int]*Entity, len(b.entities))
	for off, e := range b.entities {
		if off >= from {
			shifted[off+delta] = e
		} else {
			shifted[off] = e
		}
	}
	b.entities = shifted
}

// applyStyle adds style to every character in [start, end).
func (b *Block) applyStyle(start, end int, style string) {
	for i := max(start, 0); i < min(end, len(b.styles)); i++ {
		b.styles[i].Add(style)
	}
}

// removeStyle removes style from every character in [start, end).
func (b *Block) removeStyle(start, end int, style string) {
	for i := max(start, 0); i < min(end, len(b.styles)); i++ {
		b.styles[i].Remove(style)
	}
}

// setEntity attaches e to every character in [start, end).
func (b *Block) setEntity(start, end int, e *Entity) {
	for i := max(start, 0); i < min(end, len(b.text)); i++ {
		if e == nil {
			delete(b.entities, i)
		} else {
			b.entities[i] = e
		}
	}
}
