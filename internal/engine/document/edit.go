package document

// InsertText inserts text into the block at offset. Every inserted
// character receives an independent copy of styles (nil for none). The
// selection is not adjusted; callers position the caret explicitly.
func (d *Document) InsertText(key string, offset int, text string, styles StyleSet) error {
	b, ok := d.Block(key)
	if !ok {
		return ErrBlockNotFound
	}
	if offset < 0 || offset > b.Len() {
		return ErrOffsetOutOfRange
	}
	b.insertText(offset, text, styles)
	return nil
}

// RemoveRange deletes every character covered by sel. When the
// selection spans blocks, the partial start and end blocks are merged
// into one and fully covered interior blocks are dropped. The merged
// block keeps the start block's key and type.
func (d *Document) RemoveRange(sel Selection) error {
	startIdx, startOff, endIdx, endOff, err := d.orderedRange(sel)
	if err != nil {
		return err
	}

	start := d.blocks[startIdx]
	if startIdx == endIdx {
		start.removeRange(startOff, endOff)
		d.sel = Collapsed(start.Key(), min(startOff, start.Len()))
		return nil
	}

	end := d.blocks[endIdx]
	start.removeRange(startOff, start.Len())

	// Append the tail of the end block onto the start block, styles,
	// entities and all.
	for i := endOff; i < end.Len(); i++ {
		at := start.Len()
		start.insertText(at, string(end.text[i]), end.styles[i])
		if e, ok := end.entities[i]; ok {
			start.entities[at] = e
		}
	}

	d.blocks = append(d.blocks[:startIdx+1], d.blocks[endIdx+1:]...)
	d.reindex()
	d.sel = Collapsed(start.Key(), startOff)
	return nil
}

// ApplyStyle adds style to every character covered by sel.
func (d *Document) ApplyStyle(sel Selection, style string) error {
	return d.eachBlockRange(sel, func(b *Block, start, end int) {
		b.applyStyle(start, end, style)
	})
}

// RemoveStyle removes style from every character covered by sel.
func (d *Document) RemoveStyle(sel Selection, style string) error {
	return d.eachBlockRange(sel, func(b *Block, start, end int) {
		b.removeStyle(start, end, style)
	})
}

// RemoveStyleEverywhere strips style from every character in the
// document. A style can tag multiple disjoint ranges (after splits and
// merges), so removal is always a full scan.
func (d *Document) RemoveStyleEverywhere(style string) {
	for _, b := range d.blocks {
		b.removeStyle(0, b.Len(), style)
	}
}

// HasStyleAnywhere reports whether any character carries style.
func (d *Document) HasStyleAnywhere(style string) bool {
	for _, b := range d.blocks {
		for i := 0; i < b.Len(); i++ {
			if b.styles[i].Has(style) {
				return true
			}
		}
	}
	return false
}

// FindStyle returns a collapsed selection at the first character in
// document order that carries style.
func (d *Document) FindStyle(style string) (Selection, bool) {
	for _, b := range d.blocks {
		for i := 0; i < b.Len(); i++ {
			if b.styles[i].Has(style) {
				return Collapsed(b.Key(), i), true
			}
		}
	}
	return Selection{}, false
}

// SetBlockType changes the type of a single block.
func (d *Document) SetBlockType(key string, t BlockType) error {
	b, ok := d.Block(key)
	if !ok {
		return ErrBlockNotFound
	}
	b.blockType = t
	return nil
}

// SplitBlock splits the block at offset. The characters at and after
// offset move into a freshly keyed block of the same type inserted
// immediately after, and the caret moves to its start.
func (d *Document) SplitBlock(key string, offset int) (*Block, error) {
	i, ok := d.index[key]
	if !ok {
		return nil, ErrBlockNotFound
	}
	b := d.blocks[i]
	if offset < 0 || offset > b.Len() {
		return nil, ErrOffsetOutOfRange
	}

	next := NewBlock(b.blockType, "")
	for j := offset; j < b.Len(); j++ {
		at := next.Len()
		next.insertText(at, string(b.text[j]), b.styles[j])
		if e, ok := b.entities[j]; ok {
			next.entities[at] = e
		}
	}
	b.removeRange(offset, b.Len())

	d.blocks = append(d.blocks[:i+1], append([]*Block{next}, d.blocks[i+1:]...)...)
	d.reindex()
	d.sel = Collapsed(next.Key(), 0)
	return next, nil
}

// MergeBlocks merges the block following key into it. The following
// block's characters are appended with their styles and entities, and
// its key disappears from the document.
func (d *Document) MergeBlocks(key string) error {
	i, ok := d.index[key]
	if !ok {
		return ErrBlockNotFound
	}
	if i == len(d.blocks)-1 {
		return ErrNoNextBlock
	}
	b, next := d.blocks[i], d.blocks[i+1]
	joint := b.Len()

	for j := 0; j < next.Len(); j++ {
		at := b.Len()
		b.insertText(at, string(next.text[j]), next.styles[j])
		if e, ok := next.entities[j]; ok {
			b.entities[at] = e
		}
	}

	d.blocks = append(d.blocks[:i+1], d.blocks[i+2:]...)
	d.reindex()
	d.sel = Collapsed(b.Key(), joint)
	return nil
}

// RemoveBlock deletes the block from the document. The last remaining
// block cannot be removed; a document always has at least one block.
func (d *Document) RemoveBlock(key string) error {
	i, ok := d.index[key]
	if !ok {
		return ErrBlockNotFound
	}
	if len(d.blocks) == 1 {
		return ErrLastBlock
	}
	d.blocks = append(d.blocks[:i], d.blocks[i+1:]...)
	d.reindex()

	// Reanchor the caret if it referenced the removed block.
	if d.sel.AnchorKey == key || d.sel.FocusKey == key {
		if i >= len(d.blocks) {
			i = len(d.blocks) - 1
		}
		d.sel = Collapsed(d.blocks[i].Key(), 0)
	}
	return nil
}

// SetEntity attaches e to every character covered by sel. Passing nil
// clears entities over the range.
func (d *Document) SetEntity(sel Selection, e *Entity) error {
	return d.eachBlockRange(sel, func(b *Block, start, end int) {
		b.setEntity(start, end, e)
	})
}

// eachBlockRange invokes fn once per block the selection touches with
// the block-local [start, end) character range.
func (d *Document) eachBlockRange(sel Selection, fn func(b *Block, start, end int)) error {
	startIdx, startOff, endIdx, endOff, err := d.orderedRange(sel)
	if err != nil {
		return err
	}
	for i := startIdx; i <= endIdx; i++ {
		b := d.blocks[i]
		start, end := 0, b.Len()
		if i == startIdx {
			start = startOff
		}
		if i == endIdx {
			end = endOff
		}
		fn(b, start, end)
	}
	return nil
}
