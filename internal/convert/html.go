package convert

import (
	"bytes"
	"html"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	xhtml "golang.org/x/net/html"

	"github.com/dshills/redline/internal/engine/document"
)

// HTML attributes used for session round-tripping.
const (
	// SessionAttr carries the editing session id on the export wrapper.
	SessionAttr = "data-redline-session"

	// stylesAttr carries a character run's full style set, highlight
	// tags included.
	stylesAttr = "data-styles"
)

// ExportHTML renders the document as HTML. The wrapper div carries the
// session id and every styled run carries its full style set, so
// content pasted back into the same session reconstructs suggestion
// tags exactly.
func ExportHTML(d *document.Document, sessionID string) string {
	var sb strings.Builder
	sb.WriteString(`<div ` + SessionAttr + `="` + html.EscapeString(sessionID) + `">`)

	blocks := d.Blocks()
	openList := ""
	for _, b := range blocks {
		list := listTag(b.Type())
		if list != openList {
			if openList != "" {
				sb.WriteString("</" + openList + ">")
			}
			if list != "" {
				sb.WriteString("<" + list + ">")
			}
			openList = list
		}
		tag := blockTag(b.Type())
		sb.WriteString("<" + tag + ">")
		writeRuns(&sb, b)
		sb.WriteString("</" + tag + ">")
	}
	if openList != "" {
		sb.WriteString("</" + openList + ">")
	}
	sb.WriteString("</div>")
	return sb.String()
}

// writeRuns emits the block's text as maximal runs of identical style
// set and entity.
func writeRuns(sb *strings.Builder, b *document.Block) {
	for i := 0; i < b.Len(); {
		styles := b.StylesAt(i).List()
		entity, _ := b.EntityAt(i)
		j := i + 1
		for j < b.Len() && sameRun(b, j, styles, entity) {
			j++
		}
		text := html.EscapeString(string([]rune(b.Text())[i:j]))

		if entity != nil && entity.Kind == document.EntityLink {
			sb.WriteString(`<a href="` + html.EscapeString(entity.Href) + `">`)
		}
		if len(styles) > 0 {
			sb.WriteString(`<span ` + stylesAttr + `="` + html.EscapeString(strings.Join(styles, " ")) + `">`)
			sb.WriteString(text)
			sb.WriteString("</span>")
		} else {
			sb.WriteString(text)
		}
		if entity != nil && entity.Kind == document.EntityLink {
			sb.WriteString("</a>")
		}
		i = j
	}
}

func sameRun(b *document.Block, i int, styles []string, entity *document.Entity) bool {
	e, _ := b.EntityAt(i)
	if e != entity {
		return false
	}
	have := b.StylesAt(i).List()
	if len(have) != len(styles) {
		return false
	}
	sort.Strings(have)
	for k := range have {
		if have[k] != styles[k] {
			return false
		}
	}
	return true
}

// ImportHTML parses HTML into blocks suitable for pasting. When the
// content carries this session's marker the embedded style sets are
// trusted and restored, suggestion tags included. Foreign content is
// sanitized first: only structure, basic formatting and links survive.
func ImportHTML(src []byte, sessionID string) ([]*document.Block, error) {
	root, err := xhtml.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}

	trusted := sessionID != "" && findSessionRoot(root, sessionID) != nil
	if trusted {
		hb := &htmlBuilder{trusted: true}
		hb.walk(findSessionRoot(root, sessionID), walkCtx{})
		return hb.finish(), nil
	}

	clean := bluemonday.UGCPolicy().SanitizeBytes(src)
	root, err = xhtml.Parse(bytes.NewReader(clean))
	if err != nil {
		return nil, err
	}
	hb := &htmlBuilder{}
	hb.walk(root, walkCtx{})
	return hb.finish(), nil
}

func findSessionRoot(n *xhtml.Node, sessionID string) *xhtml.Node {
	if n.Type == xhtml.ElementNode {
		for _, a := range n.Attr {
			if a.Key == SessionAttr && a.Val == sessionID {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findSessionRoot(c, sessionID); found != nil {
			return found
		}
	}
	return nil
}

type walkCtx struct {
	styles []string
	entity *document.Entity
	list   document.BlockType // set inside ol/ul
}

type htmlBuilder struct {
	trusted bool
	blocks  []*document.Block
	cur     *document.Block
}

func (hb *htmlBuilder) finish() []*document.Block {
	if len(hb.blocks) == 0 {
		return []*document.Block{document.NewBlock(document.Unstyled, "")}
	}
	return hb.blocks
}

func (hb *htmlBuilder) open(t document.BlockType) {
	hb.cur = document.NewBlock(t, "")
	hb.blocks = append(hb.blocks, hb.cur)
}

func (hb *htmlBuilder) text(text string, ctx walkCtx) {
	if text == "" {
		return
	}
	if hb.cur == nil {
		hb.open(document.Unstyled)
	}
	start := hb.cur.Len()
	hb.cur.AppendText(text, document.NewStyleSet(ctx.styles...))
	if ctx.entity != nil {
		hb.cur.SetEntityRange(start, hb.cur.Len(), ctx.entity)
	}
}

func (hb *htmlBuilder) walk(n *xhtml.Node, ctx walkCtx) {
	switch n.Type {
	case xhtml.TextNode:
		hb.text(collapseSpace(n.Data), ctx)
		return
	case xhtml.ElementNode:
		switch n.Data {
		case "p", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "pre":
			if t, ok := blockTypeForTag(n.Data); ok {
				hb.open(t)
			}
		case "li":
			t := ctx.list
			if t == "" {
				t = document.UnorderedListItem
			}
			hb.open(t)
		case "ol":
			ctx.list = document.OrderedListItem
		case "ul":
			ctx.list = document.UnorderedListItem
		case "br":
			if hb.cur != nil {
				hb.open(hb.cur.Type())
			}
		case "strong", "b":
			ctx.styles = appendStyle(ctx.styles, document.StyleBold)
		case "em", "i":
			ctx.styles = appendStyle(ctx.styles, document.StyleItalic)
		case "u":
			ctx.styles = appendStyle(ctx.styles, document.StyleUnderline)
		case "s", "del", "strike":
			ctx.styles = appendStyle(ctx.styles, document.StyleStrikethrough)
		case "sub":
			ctx.styles = appendStyle(ctx.styles, document.StyleSubscript)
		case "sup":
			ctx.styles = appendStyle(ctx.styles, document.StyleSuperscript)
		case "a":
			if href := attr(n, "href"); href != "" {
				ctx.entity = &document.Entity{Kind: document.EntityLink, Href: href}
			}
		case "span":
			if hb.trusted {
				if styles := attr(n, stylesAttr); styles != "" {
					ctx.styles = append(ctx.styles[:len(ctx.styles):len(ctx.styles)],
						strings.Fields(styles)...)
				}
			}
		case "script", "style", "head":
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		hb.walk(c, ctx)
	}
}

func appendStyle(styles []string, style string) []string {
	return append(styles[:len(styles):len(styles)], style)
}

func attr(n *xhtml.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// collapseSpace folds HTML whitespace runs into single spaces and
// drops runs that are only whitespace. Boundary whitespace keeps one
// space so adjacent inline elements stay separated.
func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	out := strings.Join(fields, " ")
	if strings.TrimLeft(s, " \t\n\r") != s {
		out = " " + out
	}
	if strings.TrimRight(s, " \t\n\r") != s {
		out += " "
	}
	return out
}

func blockTag(t document.BlockType) string {
	switch t {
	case document.HeaderOne:
		return "h1"
	case document.HeaderTwo:
		return "h2"
	case document.HeaderThree:
		return "h3"
	case document.HeaderFour:
		return "h4"
	case document.HeaderFive:
		return "h5"
	case document.HeaderSix:
		return "h6"
	case document.Blockquote:
		return "blockquote"
	case document.CodeBlock:
		return "pre"
	case document.OrderedListItem, document.UnorderedListItem:
		return "li"
	default:
		return "p"
	}
}

func listTag(t document.BlockType) string {
	switch t {
	case document.OrderedListItem:
		return "ol"
	case document.UnorderedListItem:
		return "ul"
	default:
		return ""
	}
}

func blockTypeForTag(tag string) (document.BlockType, bool) {
	switch tag {
	case "p":
		return document.Unstyled, true
	case "h1":
		return document.HeaderOne, true
	case "h2":
		return document.HeaderTwo, true
	case "h3":
		return document.HeaderThree, true
	case "h4":
		return document.HeaderFour, true
	case "h5":
		return document.HeaderFive, true
	case "h6":
		return document.HeaderSix, true
	case "blockquote":
		return document.Blockquote, true
	case "pre":
		return document.CodeBlock, true
	}
	return "", false
}
