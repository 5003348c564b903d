package cli

import (
	"github.com/spf13/cobra"

	"github.com/dshills/redline/internal/convert"
	"github.com/dshills/redline/internal/logging"
)

type exportFlags struct {
	session string
	clean   bool
	output  string
}

func newExportCommand() *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export <file.json>",
		Short: "Export a raw JSON document as HTML",
		Long: `Export a raw JSON document as HTML.

The output carries a session marker and per-run style annotations, so
content pasted back into the same session keeps its suggestion tags.
Pass --clean to strip editing state first and produce plain HTML.

Examples:
  redline export notes.json -o notes.html
  redline export notes.json --clean --session review-42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.session, "session", "", "session id embedded in the output")
	cmd.Flags().BoolVar(&flags.clean, "clean", false, "strip editing state before export")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func runExport(cmd *cobra.Command, path string, flags *exportFlags) error {
	logger := logging.Default()

	ed, err := loadEditor(path)
	if err != nil {
		return err
	}
	if flags.clean {
		ed.PrepareForExport()
	}

	out := convert.ExportHTML(ed.Document(), flags.session)

	logger.Debug("exported",
		logging.FieldInput, path,
		logging.FieldSession, flags.session,
	)

	return writeOutput(cmd, flags.output, []byte(out))
}
