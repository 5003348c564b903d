package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/redline/internal/logging"
)

type resolveFlags struct {
	accept   bool
	reject   bool
	all      bool
	resolver string
	output   string
}

func newResolveCommand() *cobra.Command {
	flags := &resolveFlags{}

	cmd := &cobra.Command{
		Use:   "resolve <file.json> [style-name]",
		Short: "Accept or reject suggestions",
		Long: `Accept or reject a suggestion by its style name, or all pending
suggestions with --all. The document is rewritten in place unless
--output names another file.

Examples:
  redline resolve notes.json ADD_SUGGESTION-3 --accept --by editor
  redline resolve notes.json --all --reject --by editor`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.accept, "accept", false, "accept the suggestion")
	cmd.Flags().BoolVar(&flags.reject, "reject", false, "reject the suggestion")
	cmd.Flags().BoolVar(&flags.all, "all", false, "resolve every pending suggestion")
	cmd.Flags().StringVar(&flags.resolver, "by", "", "name recorded as the resolver")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: rewrite input)")

	return cmd
}

func runResolve(cmd *cobra.Command, args []string, flags *resolveFlags) error {
	logger := logging.Default()

	if flags.accept == flags.reject {
		return errors.New("exactly one of --accept and --reject is required")
	}
	if flags.all == (len(args) == 2) {
		return errors.New("name one suggestion or pass --all, not both")
	}
	if flags.resolver == "" {
		return errors.New("--by is required")
	}

	path := args[0]
	ed, err := loadEditor(path)
	if err != nil {
		return err
	}

	if flags.all {
		err = ed.ResolveAll(flags.resolver, flags.accept)
	} else if flags.accept {
		err = ed.Accept(flags.resolver, args[1])
	} else {
		err = ed.Reject(flags.resolver, args[1])
	}
	if err != nil {
		return fmt.Errorf("resolve: %w", err)
	}

	logger.Debug("resolved",
		logging.FieldResolver, flags.resolver,
		logging.FieldAccepted, flags.accept,
		logging.FieldPending, len(ed.Suggestions()),
	)

	data, err := ed.MarshalRaw()
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	out := flags.output
	if out == "" {
		out = path
	}
	return writeOutput(cmd, out, data)
}
