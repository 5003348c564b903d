package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/redline/internal/convert"
	"github.com/dshills/redline/internal/engine/document"
	"github.com/dshills/redline/internal/logging"
)

type importFlags struct {
	format string
	output string
}

func newImportCommand() *cobra.Command {
	flags := &importFlags{}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import markdown or HTML into a raw JSON document",
		Long: `Import a markdown or HTML file and write it as a raw JSON document.

The source format is inferred from the file extension unless --format
is given.

Examples:
  redline import notes.md -o notes.json
  redline import page.html --format html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "", "source format: markdown, html (default: by extension)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func runImport(cmd *cobra.Command, path string, flags *importFlags) error {
	logger := logging.Default()

	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	format := flags.format
	if format == "" {
		format = formatForExtension(path)
	}

	var d *document.Document
	switch format {
	case "markdown", "md":
		d, err = convert.ImportMarkdown(src)
	case "html":
		var blocks []*document.Block
		blocks, err = convert.ImportHTML(src, "")
		if err == nil {
			d = document.FromBlocks(blocks)
		}
	default:
		return fmt.Errorf("unknown format %q (want markdown or html)", format)
	}
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}

	data, err := d.MarshalRaw()
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	logger.Debug("imported",
		logging.FieldInput, path,
		logging.FieldFormat, format,
		logging.FieldBlocks, d.BlockCount(),
	)

	return writeOutput(cmd, flags.output, data)
}

func formatForExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return "html"
	default:
		return "markdown"
	}
}
