package highlight

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/dshills/redline/internal/engine/document"
	"github.com/dshills/redline/internal/engine/navigate"
)

// Metadata keys used in document metadata.
const (
	// MetadataKey holds the registry state: per-type id counters plus
	// the data record of every live highlight.
	MetadataKey = "multipleHighlights"

	// ResolvedKey holds the append-only history of resolved suggestions.
	ResolvedKey = "resolvedSuggestions"
)

// State is the registry's persistent state. It lives in document
// metadata under MetadataKey, so it rides along with undo snapshots and
// saved documents. Treat stored instances as immutable; mutators clone.
type State struct {
	LastIDs map[Type]int
	Data    map[string]Data
}

// NewState returns a fresh state with every counter seeded at zero, so
// the first highlight of any type gets id 1.
func NewState() *State {
	s := &State{
		LastIDs: make(map[Type]int, len(allTypes)),
		Data:    make(map[string]Data),
	}
	for _, t := range allTypes {
		s.LastIDs[t] = 0
	}
	return s
}

// Clone returns an independent copy of the state.
func (s *State) Clone() *State {
	c := &State{
		LastIDs: make(map[Type]int, len(s.LastIDs)),
		Data:    make(map[string]Data, len(s.Data)),
	}
	for t, id := range s.LastIDs {
		c.LastIDs[t] = id
	}
	for name, d := range s.Data {
		c.Data[name] = d
	}
	return c
}

// Registry manages highlight records and counters for one document.
// It holds no state of its own: everything lives in document metadata,
// so undo and persistence see registry changes for free.
type Registry struct {
	doc *document.Document
}

// NewRegistry returns a registry bound to d.
func NewRegistry(d *document.Document) *Registry {
	return &Registry{doc: d}
}

// state returns the current registry state, decoding lazily when the
// document was loaded from its raw form and the metadata still holds
// raw JSON. Never returns nil.
func (r *Registry) state() *State {
	v, ok := r.doc.Metadata(MetadataKey)
	if !ok {
		return NewState()
	}
	switch st := v.(type) {
	case *State:
		return st
	case json.RawMessage:
		decoded, err := DecodeState(st)
		if err != nil {
			return NewState()
		}
		return decoded
	default:
		return NewState()
	}
}

func (r *Registry) setState(s *State) {
	r.doc.SetMetadata(MetadataKey, s)
}

// State returns the current registry state. Callers must not mutate it.
func (r *Registry) State() *State {
	return r.state()
}

// Add allocates the next id for t, stores the data record, and tags
// every character in sel with the new TYPE-N style. Collapsed
// selections allocate and record without tagging any character; the
// caller tags characters itself (suggestion inserts style text as it
// goes).
//
// With single set, a selection already fully covered by highlights of
// type t is left untouched and the empty string is returned.
func (r *Registry) Add(sel document.Selection, t Type, author string, date time.Time, payload Payload, single bool) (string, error) {
	if !t.Valid() {
		return "", ErrInvalidType
	}
	if single && r.selectionHasType(sel, t) {
		return "", nil
	}

	st := r.state().Clone()
	id := st.LastIDs[t] + 1
	styleName := StyleName(t, id)
	st.LastIDs[t] = id
	st.Data[styleName] = Data{Type: t, Author: author, Date: date, Payload: payload}
	r.setState(st)

	if !sel.IsCollapsed() {
		if err := r.doc.ApplyStyle(sel, styleName); err != nil {
			return "", err
		}
	}
	return styleName, nil
}

// Remove strips styleName from every character in the document and
// deletes its data record. The type counter is left untouched so freed
// ids are never reused. Removing an unknown style is a no-op.
func (r *Registry) Remove(styleName string) {
	st := r.state()
	if _, ok := st.Data[styleName]; !ok {
		return
	}
	next := st.Clone()
	delete(next.Data, styleName)
	r.setState(next)
	r.doc.RemoveStyleEverywhere(styleName)
}

// UpdateData replaces the data record of an existing highlight.
func (r *Registry) UpdateData(styleName string, d Data) error {
	st := r.state()
	if _, ok := st.Data[styleName]; !ok {
		return ErrNotFound
	}
	next := st.Clone()
	next.Data[styleName] = d
	r.setState(next)
	return nil
}

// Data returns the record stored for styleName.
func (r *Registry) Data(styleName string) (Data, error) {
	st := r.state()
	d, ok := st.Data[styleName]
	if !ok {
		return Data{}, ErrNotFound
	}
	return d, nil
}

// Author returns the author of the highlight named styleName.
func (r *Registry) Author(styleName string) (string, error) {
	d, err := r.Data(styleName)
	if err != nil {
		return "", err
	}
	return d.Author, nil
}

// Count returns the id counter for t: the number of highlights of that
// type ever created, not the number currently live.
func (r *Registry) Count(t Type) (int, error) {
	if !t.Valid() {
		return 0, ErrInvalidType
	}
	return r.state().LastIDs[t], nil
}

// TotalCount returns the sum of all type counters.
func (r *Registry) TotalCount() int {
	var total int
	for _, id := range r.state().LastIDs {
		total += id
	}
	return total
}

// Styles returns the style names of all live highlights whose type is
// in types (all types when types is empty), in no particular order.
func (r *Registry) Styles(types ...Type) []string {
	var out []string
	for name, d := range r.state().Data {
		if len(types) == 0 {
			out = append(out, name)
			continue
		}
		for _, t := range types {
			if d.Type == t {
				out = append(out, name)
				break
			}
		}
	}
	return out
}

// CanAdd reports whether a highlight of type t can be added over sel.
// Collapsed selections cannot take a highlight, and neither can a
// selection directly adjacent to an existing highlight of the same
// type: the selection is stretched one character each way (within its
// edge blocks) and the stretched range must be free of type t.
func (r *Registry) CanAdd(sel document.Selection, t Type) bool {
	if !t.Valid() || sel.IsCollapsed() {
		return false
	}
	resized := navigate.Resize(r.doc, sel, 1, 1, true)

	clear := true
	r.eachChar(resized, func(b *document.Block, off int) bool {
		for _, name := range b.StylesAt(off).List() {
			if tt, ok := TypeOfStyle(name); ok && tt == t {
				clear = false
				return false
			}
		}
		return true
	})
	return clear
}

// ResetForSelection removes style from the current selection. When the
// selection covers the style's whole extent (no character of it remains
// on either side), the highlight is removed entirely, record and all.
func (r *Registry) ResetForSelection(sel document.Selection, style string) error {
	t, _, err := ParseStyleName(style)
	if err != nil {
		return err
	}
	block, ok := r.doc.Block(sel.StartKey())
	if !ok {
		return document.ErrBlockNotFound
	}
	offset := 0
	if sel.StartOffset() == block.Len()-1 {
		offset = 1
	}
	before := StyleAt(r.doc, []Type{t}, sel, -1, false)
	after := StyleAt(r.doc, []Type{t}, sel, offset, true)

	if before != style && after != style {
		r.Remove(style)
		return nil
	}
	return r.doc.RemoveStyle(sel, style)
}

// selectionHasType reports whether every character in sel already
// carries a highlight of type t.
func (r *Registry) selectionHasType(sel document.Selection, t Type) bool {
	prefix := string(t) + "-"
	all := true
	r.eachChar(sel, func(b *document.Block, off int) bool {
		found := false
		for name := range b.StylesAt(off) {
			if strings.HasPrefix(name, prefix) {
				found = true
				break
			}
		}
		if !found {
			all = false
			return false
		}
		return true
	})
	return all
}

// eachChar walks every character position covered by sel in document
// order, stopping early when fn returns false.
func (r *Registry) eachChar(sel document.Selection, fn func(b *document.Block, off int) bool) {
	startIdx := r.doc.BlockIndex(sel.StartKey())
	endIdx := r.doc.BlockIndex(sel.EndKey())
	if startIdx < 0 || endIdx < 0 || startIdx > endIdx {
		return
	}
	blocks := r.doc.Blocks()
	for i := startIdx; i <= endIdx; i++ {
		b := blocks[i]
		start, end := 0, b.Len()
		if i == startIdx {
			start = sel.StartOffset()
		}
		if i == endIdx {
			end = sel.EndOffset()
		}
		for off := start; off < end; off++ {
			if !fn(b, off) {
				return
			}
		}
	}
}
