package highlight

import (
	"encoding/json"
	"time"
)

// Resolved is one entry in the resolved-suggestion history: enough to
// audit who proposed what and how it was settled, after the highlight
// itself is gone.
type Resolved struct {
	StyleName  string    `json:"styleName"`
	Type       Type      `json:"type"`
	Author     string    `json:"author"`
	Date       time.Time `json:"date"`
	Resolver   string    `json:"resolvedBy"`
	ResolvedAt time.Time `json:"resolvedAt"`
	Accepted   bool      `json:"accepted"`
	Text       string    `json:"suggestionText,omitempty"`
	OldText    string    `json:"oldText,omitempty"`
}

// Resolved returns the resolved-suggestion history, oldest first.
func (r *Registry) Resolved() []Resolved {
	v, ok := r.doc.Metadata(ResolvedKey)
	if !ok {
		return nil
	}
	switch h := v.(type) {
	case []Resolved:
		return h
	case json.RawMessage:
		var decoded []Resolved
		if err := json.Unmarshal(h, &decoded); err != nil {
			return nil
		}
		return decoded
	default:
		return nil
	}
}

// AppendResolved records a settled suggestion. The history is
// append-only; stored slices are replaced, never mutated, so undo
// snapshots sharing the metadata map stay intact.
func (r *Registry) AppendResolved(entry Resolved) {
	prev := r.Resolved()
	next := make([]Resolved, 0, len(prev)+1)
	next = append(next, prev...)
	next = append(next, entry)
	r.doc.SetMetadata(ResolvedKey, next)
}
