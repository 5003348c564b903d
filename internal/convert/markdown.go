package convert

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"

	"github.com/dshills/redline/internal/engine/document"
)

// ImportMarkdown parses markdown into a document. Headings, paragraphs,
// blockquotes, lists and code blocks map onto block types; emphasis,
// strong emphasis and links map onto inline styles and entities.
func ImportMarkdown(src []byte) (*document.Document, error) {
	md := goldmark.New()
	root := md.Parser().Parse(gtext.NewReader(src))

	mb := &markdownBuilder{src: src}
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		mb.block(n)
	}

	d := document.FromBlocks(mb.blocks)
	for _, span := range mb.links {
		sel := document.NewRange(span.key, span.start, span.key, span.end, false)
		if err := d.SetEntity(sel, span.entity); err != nil {
			return nil, err
		}
	}
	return d, nil
}

type linkSpan struct {
	key        string
	start, end int
	entity     *document.Entity
}

type markdownBuilder struct {
	src    []byte
	blocks []*document.Block
	links  []linkSpan
}

func (mb *markdownBuilder) block(n ast.Node) {
	switch v := n.(type) {
	case *ast.Heading:
		mb.inlineBlock(headingType(v.Level), n)
	case *ast.Paragraph, *ast.TextBlock:
		mb.inlineBlock(document.Unstyled, n)
	case *ast.Blockquote:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			mb.inlineBlock(document.Blockquote, c)
		}
	case *ast.List:
		t := document.UnorderedListItem
		if v.IsOrdered() {
			t = document.OrderedListItem
		}
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			for c := item.FirstChild(); c != nil; c = c.NextSibling() {
				mb.inlineBlock(t, c)
			}
		}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		mb.codeBlock(n)
	case *ast.ThematicBreak:
		mb.blocks = append(mb.blocks, document.NewBlock(document.Unstyled, ""))
	default:
		mb.inlineBlock(document.Unstyled, n)
	}
}

func (mb *markdownBuilder) inlineBlock(t document.BlockType, n ast.Node) {
	b := document.NewBlock(t, "")
	mb.inline(b, n, nil, nil)
	mb.blocks = append(mb.blocks, b)
}

// codeBlock emits one code-block per source line, since blocks hold a
// single line of text.
func (mb *markdownBuilder) codeBlock(n ast.Node) {
	lines := n.Lines()
	if lines.Len() == 0 {
		mb.blocks = append(mb.blocks, document.NewBlock(document.CodeBlock, ""))
		return
	}
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		text := string(seg.Value(mb.src))
		for len(text) > 0 && (text[len(text)-1] == '\n' || text[len(text)-1] == '\r') {
			text = text[:len(text)-1]
		}
		mb.blocks = append(mb.blocks, document.NewBlock(document.CodeBlock, text))
	}
}

// inline appends n's inline content to b, carrying the styles and link
// entity accumulated on the way down.
func (mb *markdownBuilder) inline(b *document.Block, n ast.Node, styles []string, entity *document.Entity) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			mb.appendText(b, string(v.Segment.Value(mb.src)), styles, entity)
			if v.SoftLineBreak() || v.HardLineBreak() {
				mb.appendText(b, " ", styles, entity)
			}
		case *ast.String:
			mb.appendText(b, string(v.Value), styles, entity)
		case *ast.Emphasis:
			style := document.StyleItalic
			if v.Level >= 2 {
				style = document.StyleBold
			}
			mb.inline(b, c, append(styles[:len(styles):len(styles)], style), entity)
		case *ast.CodeSpan:
			mb.inline(b, c, styles, entity)
		case *ast.Link:
			e := &document.Entity{Kind: document.EntityLink, Href: string(v.Destination)}
			mb.inline(b, c, styles, e)
		case *ast.AutoLink:
			url := string(v.URL(mb.src))
			e := &document.Entity{Kind: document.EntityLink, Href: url}
			mb.appendText(b, string(v.Label(mb.src)), styles, e)
		default:
			mb.inline(b, c, styles, entity)
		}
	}
}

func (mb *markdownBuilder) appendText(b *document.Block, text string, styles []string, entity *document.Entity) {
	if text == "" {
		return
	}
	start := b.Len()
	b.AppendText(text, document.NewStyleSet(styles...))
	if entity != nil {
		mb.links = append(mb.links, linkSpan{key: b.Key(), start: start, end: b.Len(), entity: entity})
	}
}

func headingType(level int) document.BlockType {
	switch level {
	case 1:
		return document.HeaderOne
	case 2:
		return document.HeaderTwo
	case 3:
		return document.HeaderThree
	case 4:
		return document.HeaderFour
	case 5:
		return document.HeaderFive
	default:
		return document.HeaderSix
	}
}
