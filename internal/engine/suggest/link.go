package suggest

import (
	"time"

	"github.com/dshills/redline/internal/engine/document"
	"github.com/dshills/redline/internal/engine/highlight"
)

// AddLink proposes linking the selected text to href. The entity is
// attached immediately; rejecting the suggestion detaches it again.
func AddLink(d *document.Document, reg *highlight.Registry, href string, author string, date time.Time) error {
	sel := d.Selection()
	if sel.IsCollapsed() {
		return ErrNoSelection
	}
	sel = document.NewRange(sel.StartKey(), sel.StartOffset(), sel.EndKey(), sel.EndOffset(), false)

	e := &document.Entity{Kind: document.EntityLink, Href: href}
	if err := d.SetEntity(sel, e); err != nil {
		return err
	}
	_, err := reg.Add(sel, highlight.AddLinkSuggestion, author, date,
		highlight.LinkPayload{To: e}, false)
	return err
}

// RemoveLink proposes removing the link under the selection. A
// collapsed caret resolves to the full extent of the link it sits on.
func RemoveLink(d *document.Document, reg *highlight.Registry, author string, date time.Time) error {
	sel, from, err := linkRange(d, d.Selection())
	if err != nil {
		return err
	}
	if err := d.SetEntity(sel, nil); err != nil {
		return err
	}
	_, err = reg.Add(sel, highlight.RemoveLinkSuggestion, author, date,
		highlight.LinkPayload{From: from}, false)
	return err
}

// ChangeLink proposes retargeting the link under the selection to href.
func ChangeLink(d *document.Document, reg *highlight.Registry, href string, author string, date time.Time) error {
	sel, from, err := linkRange(d, d.Selection())
	if err != nil {
		return err
	}
	to := &document.Entity{Kind: document.EntityLink, Href: href}
	if err := d.SetEntity(sel, to); err != nil {
		return err
	}
	_, err = reg.Add(sel, highlight.ChangeLinkSuggestion, author, date,
		highlight.LinkPayload{From: from, To: to}, false)
	return err
}

// linkRange resolves the selection and entity a link operation acts on:
// the existing selection when it covers text, otherwise the contiguous
// entity run around the caret.
func linkRange(d *document.Document, sel document.Selection) (document.Selection, *document.Entity, error) {
	b, ok := d.Block(sel.StartKey())
	if !ok {
		return sel, nil, document.ErrBlockNotFound
	}
	if !sel.IsCollapsed() {
		forward := document.NewRange(sel.StartKey(), sel.StartOffset(), sel.EndKey(), sel.EndOffset(), false)
		e, ok := b.EntityAt(sel.StartOffset())
		if !ok {
			return forward, nil, ErrNoLink
		}
		return forward, e, nil
	}
	off := sel.StartOffset()
	if _, ok := b.EntityAt(off); !ok && off > 0 {
		off--
	}
	e, ok := b.EntityAt(off)
	if !ok || e.Kind != document.EntityLink {
		return sel, nil, ErrNoLink
	}
	start, end, _ := b.EntityRange(off)
	return document.NewRange(b.Key(), start, b.Key(), end, false), e, nil
}
