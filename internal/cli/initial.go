package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// InitialResult is the JSON payload of the initial command.
type InitialResult struct {
	Count int      `json:"count"`
	Ranks []string `json:"ranks"`
}

// NewInitialCommand creates the initial command.
func NewInitialCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "initial <count>",
		Short: "Seed evenly spaced ranks",
		Long: `Generate count evenly spaced fixed-width ranks, one per line.

Exit codes:
  0 - Ranks generated
  1 - The fixed-width space cannot hold count distinct ranks
  2 - Command error (bad count, bad profile, etc.)

Examples:
  lexrank initial 5
  lexrank initial 100 --profile ./digits.cue`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInitial(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runInitial(opts *RootOptions, countArg string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	count, err := strconv.Atoi(countArg)
	if err != nil {
		return reportError(f, "invalid count", fmt.Errorf("count must be an integer, got %q", countArg))
	}

	r, err := opts.ranker(cmd, f)
	if err != nil {
		return err
	}

	ranks, err := r.Initial(count)
	if err != nil {
		return reportError(f, "initial failed", err)
	}

	return f.Emit(InitialResult{Count: count, Ranks: ranks}, strings.Join(ranks, "\n"))
}
