package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats <file.json>",
		Short: "Print document statistics",
		Long:  `Print block, character, and word counts for a raw JSON document.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, err := loadEditor(args[0])
			if err != nil {
				return err
			}
			stats := ed.Stats()
			if asJSON {
				return printJSON(cmd, stats)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "blocks: %d\ncharacters: %d\nwords: %d\npending suggestions: %d\n",
				stats.Blocks, stats.Characters, stats.Words, len(ed.Suggestions()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	return cmd
}
