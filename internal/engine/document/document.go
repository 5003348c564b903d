package document

import "strings"

// Document is an ordered sequence of blocks plus document-level
// metadata and the active selection. At least one block always exists.
type Document struct {
	blocks  []*Block
	index   map[string]int
	meta    map[string]any
	sel     Selection
	history *History
}

// Option configures a Document.
type Option func(*options)

type options struct {
	text           string
	maxUndoEntries int
}

// WithText seeds the document with unstyled blocks, one per line.
func WithText(text string) Option {
	return func(o *options) { o.text = text }
}

// WithMaxUndoEntries bounds the undo stack depth.
func WithMaxUndoEntries(n int) Option {
	return func(o *options) { o.maxUndoEntries = n }
}

// New creates a document. Without options it contains a single empty
// unstyled block.
func New(opts ...Option) *Document {
	o := options{maxUndoEntries: DefaultMaxUndoEntries}
	for _, opt := range opts {
		opt(&o)
	}

	var blocks []*Block
	if o.text == "" {
		blocks = []*Block{NewBlock(Unstyled, "")}
	} else {
		for _, line := range strings.Split(o.text, "\n") {
			blocks = append(blocks, NewBlock(Unstyled, line))
		}
	}
	d := FromBlocks(blocks)
	d.history = NewHistory(o.maxUndoEntries)
	return d
}

// FromBlocks creates a document from prebuilt blocks. An empty slice
// yields a single empty block. The selection starts collapsed at the
// beginning of the first block.
func FromBlocks(blocks []*Block) *Document {
	if len(blocks) == 0 {
		blocks = []*Block{NewBlock(Unstyled, "")}
	}
	d := &Document{
		blocks:  blocks,
		meta:    make(map[string]any),
		history: NewHistory(DefaultMaxUndoEntries),
	}
	d.reindex()
	d.sel = Collapsed(blocks[0].Key(), 0)
	return d
}

func (d *Document) reindex() {
	d.index = make(map[string]int, len(d.blocks))
	for i, b := range d.blocks {
		d.index[b.Key()] = i
	}
}

// BlockCount returns the number of blocks.
func (d *Document) BlockCount() int { return len(d.blocks) }

// Blocks returns the blocks in document order. The slice is a copy; the
// blocks are not.
func (d *Document) Blocks() []*Block {
	return append([]*Block(nil), d.blocks...)
}

// Block returns the block with the given key.
func (d *Document) Block(key string) (*Block, bool) {
	i, ok := d.index[key]
	if !ok {
		return nil, false
	}
	return d.blocks[i], true
}

// BlockIndex returns the position of the block in document order, or -1.
func (d *Document) BlockIndex(key string) int {
	i, ok := d.index[key]
	if !ok {
		return -1
	}
	return i
}

// FirstBlock returns the first block.
func (d *Document) FirstBlock() *Block { return d.blocks[0] }

// LastBlock returns the last block.
func (d *Document) LastBlock() *Block { return d.blocks[len(d.blocks)-1] }

// BlockBefore returns the block preceding key in document order.
func (d *Document) BlockBefore(key string) (*Block, bool) {
	i, ok := d.index[key]
	if !ok || i == 0 {
		return nil, false
	}
	return d.blocks[i-1], true
}

// BlockAfter returns the block following key in document order.
func (d *Document) BlockAfter(key string) (*Block, bool) {
	i, ok := d.index[key]
	if !ok || i == len(d.blocks)-1 {
		return nil, false
	}
	return d.blocks[i+1], true
}

// Selection returns the active selection.
func (d *Document) Selection() Selection { return d.sel }

// SetSelection replaces the active selection. Positions referencing
// unknown blocks are left untouched so a stale caller cannot detach the
// caret from the document.
func (d *Document) SetSelection(sel Selection) {
	if _, ok := d.index[sel.AnchorKey]; !ok {
		return
	}
	if _, ok := d.index[sel.FocusKey]; !ok {
		return
	}
	d.sel = sel
}

// Metadata returns the document-level metadata value stored under key.
func (d *Document) Metadata(key string) (any, bool) {
	v, ok := d.meta[key]
	return v, ok
}

// SetMetadata stores a document-level metadata value. Values must be
// treated as immutable once stored; see the package documentation.
func (d *Document) SetMetadata(key string, value any) {
	d.meta[key] = value
}

// DeleteMetadata removes a document-level metadata value.
func (d *Document) DeleteMetadata(key string) {
	delete(d.meta, key)
}

// MetadataKeys returns the metadata keys currently present.
func (d *Document) MetadataKeys() []string {
	keys := make([]string, 0, len(d.meta))
	for k := range d.meta {
		keys = append(keys, k)
	}
	return keys
}

// Text returns the plain text of the document, blocks joined by newlines.
func (d *Document) Text() string {
	var sb strings.Builder
	for i, b := range d.blocks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(b.Text())
	}
	return sb.String()
}

// orderedRange resolves a selection to block indexes and offsets in
// document order.
func (d *Document) orderedRange(sel Selection) (startIdx, startOff, endIdx, endOff int, err error) {
	startIdx, ok := d.index[sel.StartKey()]
	if !ok {
		return 0, 0, 0, 0, ErrInvalidSelection
	}
	endIdx, ok = d.index[sel.EndKey()]
	if !ok {
		return 0, 0, 0, 0, ErrInvalidSelection
	}
	startOff, endOff = sel.StartOffset(), sel.EndOffset()
	if startIdx > endIdx || (startIdx == endIdx && startOff > endOff) {
		return 0, 0, 0, 0, ErrInvalidSelection
	}
	return startIdx, startOff, endIdx, endOff, nil
}
