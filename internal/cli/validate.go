package cli

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/roach88/lexrank/internal/profile"
)

// ProfileSummary describes a valid profile.
type ProfileSummary struct {
	Symbols  string `json:"symbols"`
	Radix    int    `json:"radix"`
	Width    int    `json:"width"`
	Strategy string `json:"strategy"`
	Capacity int    `json:"capacity"`
}

// ValidationError is one problem found in a profile.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool              `json:"valid"`
	Profile *ProfileSummary   `json:"profile,omitempty"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <profile.cue>",
		Short: "Validate a ranking profile",
		Long: `Validate a CUE ranking profile against the profile schema.

Checks syntax, field types and ranges, and that the symbols form a
usable alphabet (strictly increasing bytes, at least two symbols).

Exit codes:
  0 - Profile valid
  1 - Profile invalid
  2 - Command error (file not found or unreadable)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	formatter.VerboseLog("Validating profile: %s", path)

	prof, err := profile.Load(path)
	if err != nil {
		var le *profile.LoadError
		if !errors.As(err, &le) {
			return outputValidateError(formatter, ErrCodeGeneric, err.Error(), nil)
		}
		switch le.Code {
		case profile.ErrCodeNotFound, profile.ErrCodeLoadFailed:
			return outputValidateError(formatter, le.Code, le.Message, nil)
		}
		line := 0
		if le.Pos.IsValid() {
			line = le.Pos.Line()
		}
		return outputValidationErrors(formatter, []ValidationError{{Code: le.Code, Message: le.Message, Line: line}})
	}

	r, err := prof.Ranker(opts.logger(cmd))
	if err != nil {
		return outputValidationErrors(formatter, []ValidationError{{Code: ErrCodeGeneric, Message: err.Error()}})
	}

	return outputValidateSuccess(formatter, &ProfileSummary{
		Symbols:  prof.Symbols,
		Radix:    r.Alphabet().Radix(),
		Width:    r.Width(),
		Strategy: string(r.Strategy()),
		Capacity: r.Capacity(),
	})
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, summary *ProfileSummary) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Profile: summary})
	}

	fmt.Fprintf(formatter.Writer, "✓ Profile valid: %d symbols, width %d, strategy %s, capacity %d\n",
		summary.Radix, summary.Width, summary.Strategy, summary.Capacity)
	return nil
}

// outputValidateError outputs a single command-level error.
func outputValidateError(formatter *OutputFormatter, code, message string, details interface{}) error {
	_ = formatter.Error(code, message, details)
	// Unreadable input is a command error (exit code 2)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputValidationErrors outputs profile validation failures.
func outputValidationErrors(formatter *OutputFormatter, errs []ValidationError) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: errs},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d\n", err.Line)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", err.Code, err.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
