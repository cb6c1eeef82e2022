package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/lexrank/internal/rank"
)

// SubdivideOptions holds flags for the subdivide command.
type SubdivideOptions struct {
	*RootOptions
	Times  int
	Toward string
}

// SubdivideResult is the JSON payload of the subdivide command.
type SubdivideResult struct {
	First  string   `json:"first"`
	Second string   `json:"second"`
	Times  int      `json:"times"`
	Toward string   `json:"toward"`
	Ranks  []string `json:"ranks"`
}

// NewSubdivideCommand creates the subdivide command.
func NewSubdivideCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SubdivideOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "subdivide <first> <second>",
		Short: "Insert repeatedly into the same gap",
		Long: `Insert into the gap between first and second --times times in a row.

With --toward second each new rank replaces first, so the chain climbs
toward second. With --toward first each new rank replaces second.

Examples:
  lexrank subdivide a b --times 10
  lexrank subdivide a b --times 10 --toward first`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubdivide(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Times, "times", 1, "number of consecutive inserts")
	cmd.Flags().StringVar(&opts.Toward, "toward", string(rank.TowardSecond), "bound the chain moves toward (first|second)")

	return cmd
}

func runSubdivide(opts *SubdivideOptions, first, second string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	toward, err := rank.ParseDirection(opts.Toward)
	if err != nil {
		return reportError(f, "invalid direction", err)
	}

	r, err := opts.ranker(cmd, f)
	if err != nil {
		return err
	}

	ranks, err := r.Subdivide(first, second, opts.Times, toward)
	if err != nil {
		return reportError(f, "subdivide failed", err)
	}

	return f.Emit(SubdivideResult{
		First:  first,
		Second: second,
		Times:  opts.Times,
		Toward: string(toward),
		Ranks:  ranks,
	}, strings.Join(ranks, "\n"))
}
