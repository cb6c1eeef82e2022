package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/lexrank/internal/profile"
	"github.com/roach88/lexrank/internal/rank"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Profile string // optional path to a profile.cue
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the lexrank CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "lexrank",
		Short: "lexrank - lexicographic fractional ranks",
		Long: `Generate and compare lexicographic fractional ranks.

A rank is a string of alphabet symbols whose byte-wise order is the item
order. New ranks are always found between two neighbors, so reordering
an item never rewrites any other item.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Profile, "profile", "", "path to a profile.cue (default: lowercase, width 3, bijective)")

	// Add subcommands
	cmd.AddCommand(NewBetweenCommand(opts))
	cmd.AddCommand(NewInitialCommand(opts))
	cmd.AddCommand(NewCompareCommand(opts))
	cmd.AddCommand(NewSubdivideCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewTraceCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// formatter builds the output formatter for a command invocation.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// logger returns a debug-level text logger on stderr in verbose mode and a
// discarding logger otherwise.
func (o *RootOptions) logger(cmd *cobra.Command) *slog.Logger {
	if !o.Verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// loadProfile returns the --profile profile, or the default one.
func (o *RootOptions) loadProfile() (*profile.Profile, error) {
	if o.Profile == "" {
		return profile.Default(), nil
	}
	return profile.Load(o.Profile)
}

// ranker builds the ranker the engine commands run against. Failures are
// reported through f.
func (o *RootOptions) ranker(cmd *cobra.Command, f *OutputFormatter) (*rank.Ranker, error) {
	prof, err := o.loadProfile()
	if err != nil {
		return nil, reportError(f, "failed to load profile", err)
	}
	r, err := prof.Ranker(o.logger(cmd))
	if err != nil {
		return nil, reportError(f, "failed to build ranker", err)
	}
	f.VerboseLog("Profile: %d symbols, width %d, strategy %s", r.Alphabet().Radix(), r.Width(), r.Strategy())
	return r, nil
}
