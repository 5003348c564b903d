package highlight

import (
	"sort"
	"time"
)

// CommentsExportKey is the document metadata key consumers outside the
// editor read comment bodies from. Highlight internals (style names,
// counters) stay private to MetadataKey.
const CommentsExportKey = "__PUBLIC_API__comments"

// ExportedComment is one comment in the public export shape.
type ExportedComment struct {
	Author string `json:"author"`
	Date   string `json:"date"`
	Body   string `json:"body"`
}

// PrepareForExport lifts comment bodies into the public metadata key so
// downstream consumers never have to understand registry state. Called
// before persisting a document for external use.
func (r *Registry) PrepareForExport() {
	st := r.state()
	var comments []ExportedComment
	for _, name := range sortedNames(st.Data) {
		d := st.Data[name]
		if d.Type != Comment {
			continue
		}
		body := ""
		if p, ok := d.Payload.(CommentPayload); ok {
			body = p.Body
		}
		comments = append(comments, ExportedComment{
			Author: d.Author,
			Date:   d.Date.UTC().Format(time.RFC3339),
			Body:   body,
		})
	}
	r.doc.SetMetadata(CommentsExportKey, comments)
}

func sortedNames(data map[string]Data) []string {
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
