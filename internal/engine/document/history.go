package document

// DefaultMaxUndoEntries bounds the undo stack when no option overrides it.
const DefaultMaxUndoEntries = 1000

// Snapshot is a full copy of the document state: blocks, metadata and
// selection. Metadata values are shared between snapshots, which is
// safe because they are replaced rather than mutated (see package doc).
type Snapshot struct {
	blocks []*Block
	meta   map[string]any
	sel    Selection
}

// History holds undo/redo snapshots. One snapshot is pushed per user
// action, capturing the state (and caret) from before the action, so a
// single undo rewinds the whole action and restores the caret.
type History struct {
	undo       []*Snapshot
	redo       []*Snapshot
	maxEntries int
}

// NewHistory creates a history with the given depth bound.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxUndoEntries
	}
	return &History{maxEntries: maxEntries}
}

// Snapshot captures the current document state.
func (d *Document) Snapshot() *Snapshot {
	blocks := make([]*Block, len(d.blocks))
	for i, b := range d.blocks {
		blocks[i] = b.Clone()
	}
	meta := make(map[string]any, len(d.meta))
	for k, v := range d.meta {
		meta[k] = v
	}
	return &Snapshot{blocks: blocks, meta: meta, sel: d.sel}
}

// Restore replaces the document state with the snapshot's.
func (d *Document) Restore(s *Snapshot) {
	blocks := make([]*Block, len(s.blocks))
	for i, b := range s.blocks {
		blocks[i] = b.Clone()
	}
	d.blocks = blocks
	d.reindex()
	d.meta = make(map[string]any, len(s.meta))
	for k, v := range s.meta {
		d.meta[k] = v
	}
	d.sel = s.sel
}

// Transaction runs fn as one atomic user action. A snapshot is taken
// before the first write; on error the document is restored to it and
// nothing is recorded, otherwise it becomes a single undo entry. The
// snapshot carries the pre-action selection, so undoing returns the
// caret to where the user had it.
func (d *Document) Transaction(fn func() error) error {
	before := d.Snapshot()
	if err := fn(); err != nil {
		d.Restore(before)
		return err
	}
	d.history.push(before)
	return nil
}

// Undo rewinds the most recent action.
func (d *Document) Undo() error {
	if len(d.history.undo) == 0 {
		return ErrNothingToUndo
	}
	current := d.Snapshot()
	last := d.history.undo[len(d.history.undo)-1]
	d.history.undo = d.history.undo[:len(d.history.undo)-1]
	d.Restore(last)
	d.history.redo = append(d.history.redo, current)
	return nil
}

// Redo reapplies the most recently undone action.
func (d *Document) Redo() error {
	if len(d.history.redo) == 0 {
		return ErrNothingToRedo
	}
	current := d.Snapshot()
	last := d.history.redo[len(d.history.redo)-1]
	d.history.redo = d.history.redo[:len(d.history.redo)-1]
	d.Restore(last)
	d.history.undo = append(d.history.undo, current)
	return nil
}

// CanUndo reports whether an undo entry is available.
func (d *Document) CanUndo() bool { return len(d.history.undo) > 0 }

// CanRedo reports whether a redo entry is available.
func (d *Document) CanRedo() bool { return len(d.history.redo) > 0 }

// UndoCount returns the number of undo entries.
func (d *Document) UndoCount() int { return len(d.history.undo) }

// ClearHistory drops all undo/redo entries.
func (d *Document) ClearHistory() {
	d.history.undo = nil
	d.history.redo = nil
}

func (h *History) push(s *Snapshot) {
	h.undo = append(h.undo, s)
	h.redo = nil
	if len(h.undo) > h.maxEntries {
		excess := len(h.undo) - h.maxEntries
		h.undo = h.undo[excess:]
	}
}
