package cli

import (
	"github.com/spf13/cobra"
)

// BetweenResult is the JSON payload of the between command.
type BetweenResult struct {
	First  string `json:"first"`
	Second string `json:"second"`
	Rank   string `json:"rank"`
}

// NewBetweenCommand creates the between command.
func NewBetweenCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "between <first> <second>",
		Short: "Generate a rank between two neighbors",
		Long: `Generate a rank strictly between first and second.

Second must sort after first once both are padded to the same length.

Exit codes:
  0 - Rank generated
  1 - Invalid order or invalid rank
  2 - Command error (bad profile, etc.)

Examples:
  lexrank between a b
  lexrank between eir iri --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBetween(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runBetween(opts *RootOptions, first, second string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	r, err := opts.ranker(cmd, f)
	if err != nil {
		return err
	}

	mid, err := r.Between(first, second)
	if err != nil {
		return reportError(f, "between failed", err)
	}

	return f.Emit(BetweenResult{First: first, Second: second, Rank: mid}, mid)
}
