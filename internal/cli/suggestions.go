package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dshills/redline/internal/engine/highlight"
)

type suggestionsFlags struct {
	asJSON   bool
	resolved bool
}

func newSuggestionsCommand() *cobra.Command {
	flags := &suggestionsFlags{}

	cmd := &cobra.Command{
		Use:   "suggestions <file.json>",
		Short: "List pending suggestions in a document",
		Long: `List the pending suggestions in a raw JSON document.

Each line shows the suggestion's style name, type, author, and the text
it would add or remove. Pass --resolved to list the resolution history
instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuggestions(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "output as JSON")
	cmd.Flags().BoolVar(&flags.resolved, "resolved", false, "list resolved suggestions instead of pending ones")

	return cmd
}

// suggestionRecord is the JSON shape of one pending suggestion.
type suggestionRecord struct {
	StyleName string         `json:"styleName"`
	Type      highlight.Type `json:"type"`
	Author    string         `json:"author"`
	Date      time.Time      `json:"date"`
	Text      string         `json:"suggestionText,omitempty"`
	OldText   string         `json:"oldText,omitempty"`
}

func runSuggestions(cmd *cobra.Command, path string, flags *suggestionsFlags) error {
	ed, err := loadEditor(path)
	if err != nil {
		return err
	}

	if flags.resolved {
		return listResolved(cmd, ed.Resolved(), flags.asJSON)
	}

	views := ed.Suggestions()
	if flags.asJSON {
		records := make([]suggestionRecord, 0, len(views))
		for _, v := range views {
			records = append(records, suggestionRecord{
				StyleName: v.StyleName,
				Type:      v.Type,
				Author:    v.Author,
				Date:      v.Date,
				Text:      v.Text,
				OldText:   v.OldText,
			})
		}
		return printJSON(cmd, records)
	}

	if len(views) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no pending suggestions")
		return nil
	}
	for _, v := range views {
		fmt.Fprintln(cmd.OutOrStdout(), formatSuggestion(v))
	}
	return nil
}

func listResolved(cmd *cobra.Command, entries []highlight.Resolved, asJSON bool) error {
	if asJSON {
		return printJSON(cmd, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no resolved suggestions")
		return nil
	}
	for _, r := range entries {
		verdict := "rejected"
		if r.Accepted {
			verdict = "accepted"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s by %s  %s\n",
			nameStyle.Render(r.StyleName), verdict, r.Resolver, summarizeTexts(r.Text, r.OldText))
	}
	return nil
}

var (
	nameStyle   = lipgloss.NewStyle().Bold(true)
	authorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	addedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	removedText = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Strikethrough(true)
)

func formatSuggestion(v highlight.SuggestionView) string {
	return fmt.Sprintf("%s  %s  %s",
		nameStyle.Render(v.StyleName),
		authorStyle.Render(v.Author),
		summarizeTexts(v.Text, v.OldText))
}

func summarizeTexts(text, oldText string) string {
	switch {
	case text != "" && oldText != "":
		return removedText.Render(oldText) + " " + addedStyle.Render(text)
	case oldText != "":
		return removedText.Render(oldText)
	case text != "":
		return addedStyle.Render(text)
	default:
		return ""
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
