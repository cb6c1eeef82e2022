package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

// CompareResult is the JSON payload of the compare command.
type CompareResult struct {
	A      string `json:"a"`
	B      string `json:"b"`
	Result int    `json:"result"`
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Compare two ranks",
		Long: `Compare two ranks after padding and print -1, 0 or 1.

Ranks that differ only by trailing zero symbols compare equal. Empty ranks
and ranks with symbols outside the profile alphabet are rejected.

Examples:
  lexrank compare a b
  lexrank compare b ba`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runCompare(opts *RootOptions, a, b string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	r, err := opts.ranker(cmd, f)
	if err != nil {
		return err
	}

	c, err := r.CompareRanks(a, b)
	if err != nil {
		return reportError(f, "compare failed", err)
	}
	return f.Emit(CompareResult{A: a, B: b, Result: c}, strconv.Itoa(c))
}
