package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dshills/redline/internal/engine/document"
	"github.com/dshills/redline/internal/engine/highlight"
)

func newRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <file.json>",
		Short: "Preview a document in the terminal",
		Long: `Render a raw JSON document to the terminal, with formatting and
pending suggestions shown in color: insertions green and underlined,
deletions red and struck through, and so on.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0])
		},
	}
	return cmd
}

func runRender(cmd *cobra.Command, path string) error {
	ed, err := loadEditor(path)
	if err != nil {
		return err
	}

	styleMap := ed.StyleMap()
	d := ed.Document()
	out := cmd.OutOrStdout()
	for _, b := range d.Blocks() {
		fmt.Fprint(out, blockPrefix(b.Type()))
		writeStyledRuns(out, b, styleMap)
		fmt.Fprintln(out)
	}
	return nil
}

func blockPrefix(t document.BlockType) string {
	switch t {
	case document.HeaderOne:
		return "# "
	case document.HeaderTwo:
		return "## "
	case document.HeaderThree:
		return "### "
	case document.HeaderFour:
		return "#### "
	case document.HeaderFive:
		return "##### "
	case document.HeaderSix:
		return "###### "
	case document.Blockquote:
		return "│ "
	case document.OrderedListItem:
		return "  1. "
	case document.UnorderedListItem:
		return "  • "
	case document.CodeBlock:
		return "    "
	default:
		return ""
	}
}

// writeStyledRuns prints the block text as maximal runs of identical
// style set, each run styled for the terminal.
func writeStyledRuns(out io.Writer, b *document.Block, styleMap map[string]highlight.RenderStyle) {
	runes := []rune(b.Text())
	for i := 0; i < b.Len(); {
		styles := b.StylesAt(i).List()
		j := i + 1
		for j < b.Len() && sameStyles(b.StylesAt(j).List(), styles) {
			j++
		}
		text := string(runes[i:j])
		fmt.Fprint(out, terminalStyle(styles, styleMap).Render(text))
		i = j
	}
}

func sameStyles(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// terminalStyle maps a character's style set onto a lipgloss style,
// folding in the highlight render style of any suggestion tags.
func terminalStyle(styles []string, styleMap map[string]highlight.RenderStyle) lipgloss.Style {
	st := lipgloss.NewStyle()
	for _, s := range styles {
		switch s {
		case document.StyleBold:
			st = st.Bold(true)
		case document.StyleItalic:
			st = st.Italic(true)
		case document.StyleUnderline:
			st = st.Underline(true)
		case document.StyleStrikethrough:
			st = st.Strikethrough(true)
		case document.StyleSubscript, document.StyleSuperscript:
			st = st.Faint(true)
		default:
			rs, ok := styleMap[s]
			if !ok {
				continue
			}
			if rs.Color != "" {
				st = st.Foreground(lipgloss.Color(rs.Color))
			}
			if rs.Background != "" {
				st = st.Background(lipgloss.Color(rs.Background))
			}
			if strings.Contains(rs.TextDecoration, "underline") {
				st = st.Underline(true)
			}
			if strings.Contains(rs.TextDecoration, "line-through") {
				st = st.Strikethrough(true)
			}
		}
	}
	return st
}
