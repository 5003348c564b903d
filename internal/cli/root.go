// Package cli provides the Cobra command structure for redline.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/dshills/redline/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root redline command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "redline",
		Short: "Track suggested edits in rich-text documents",
		Long: `redline tracks suggested edits in rich-text documents.

Edits made in suggesting mode become named suggestions instead of
changing the text outright: insertions, deletions, formatting changes,
paragraph splits and merges, and link edits are all recorded in place
and can later be accepted or rejected, individually or all at once.

Documents are stored as raw JSON. The import and export commands move
content between that format, markdown, and HTML.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newSuggestionsCommand())
	rootCmd.AddCommand(newResolveCommand())
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newStatsCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
