package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/roach88/lexrank/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	RunToken string // optional - show one run in detail
}

// RunSummary describes one recorded harness run.
type RunSummary struct {
	Token    string `json:"token"`
	Scenario string `json:"scenario"`
	Symbols  string `json:"symbols"`
	Width    int    `json:"width"`
	Strategy string `json:"strategy"`
	Digest   string `json:"digest,omitempty"`
	Pass     bool   `json:"pass"`
	Finished bool   `json:"finished"`
}

// TraceEvent represents a single recorded event.
type TraceEvent struct {
	Seq     int64           `json:"seq"`
	Kind    string          `json:"kind"` // "invocation" or "completion"
	Op      string          `json:"op"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// TraceResult holds the detail of one run.
type TraceResult struct {
	Run    RunSummary   `json:"run"`
	Events []TraceEvent `json:"events"`
	Ranks  []string     `json:"ranks"` // distinct generated ranks in store order
}

// RunList holds every recorded run.
type RunList struct {
	Runs []RunSummary `json:"runs"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Inspect recorded harness runs",
		Long: `Inspect harness runs recorded with 'lexrank test --db'.

Without --run, lists every run with its scenario, verdict and digest.
With --run, prints that run's event timeline and the ranks it generated
in the store's byte-wise order.

Examples:
  lexrank trace --db ./runs.db
  lexrank trace --db ./runs.db --run 0192f0c4-...
  lexrank trace --db ./runs.db --run 0192f0c4-... --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite trace store (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.RunToken, "run", "", "run token to show in detail")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)

	// Opening would create a missing file, so check first.
	if _, err := os.Stat(opts.Database); os.IsNotExist(err) {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("database not found: %s", opts.Database), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("failed to open database: %s does not exist", opts.Database))
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	if opts.RunToken == "" {
		return listRuns(ctx, st, opts, cmd)
	}
	return showRun(ctx, st, opts, cmd)
}

func listRuns(ctx context.Context, st *store.Store, opts *TraceOptions, cmd *cobra.Command) error {
	runs, err := st.ListRuns(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	list := RunList{Runs: make([]RunSummary, 0, len(runs))}
	for _, r := range runs {
		list.Runs = append(list.Runs, toRunSummary(r))
	}

	if opts.Format == "json" {
		return outputTraceJSON(cmd, list, "")
	}

	w := cmd.OutOrStdout()
	if len(list.Runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}
	for _, r := range list.Runs {
		fmt.Fprintf(w, "%s  %-4s  %s  (%s, width %d)  %s\n",
			r.Token, runStatus(r), r.Scenario, r.Strategy, r.Width, truncateDigest(r.Digest))
	}
	return nil
}

func showRun(ctx context.Context, st *store.Store, opts *TraceOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	run, err := st.ReadRun(ctx, opts.RunToken)
	if errors.Is(err, store.ErrRunNotFound) {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("run not found: %s", opts.RunToken), nil)
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	events, err := st.ReadEvents(ctx, run.Token)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read events", err)
	}
	ranks, err := st.RanksInOrder(ctx, run.Token)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read ranks", err)
	}

	result := TraceResult{
		Run:    toRunSummary(run),
		Events: make([]TraceEvent, 0, len(events)),
		Ranks:  ranks,
	}
	for _, e := range events {
		te := TraceEvent{Seq: e.Seq, Kind: e.Kind, Op: e.Op}
		if e.Payload != "" {
			te.Payload = json.RawMessage(e.Payload)
		}
		result.Events = append(result.Events, te)
	}

	if opts.Format == "json" {
		return outputTraceJSON(cmd, result, run.Token)
	}

	outputTraceText(cmd.OutOrStdout(), result)
	return nil
}

func toRunSummary(r store.Run) RunSummary {
	return RunSummary{
		Token:    r.Token,
		Scenario: r.Scenario,
		Symbols:  r.Symbols,
		Width:    r.Width,
		Strategy: r.Strategy,
		Digest:   r.Digest,
		Pass:     r.Pass,
		Finished: r.Finished,
	}
}

// outputTraceJSON outputs a trace payload as JSON, tagged with runToken
// when it describes a single run.
func outputTraceJSON(cmd *cobra.Command, data interface{}, runToken string) error {
	response := CLIResponse{
		Status:  "ok",
		Data:    data,
		TraceID: runToken,
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// outputTraceText outputs one run as text.
func outputTraceText(w io.Writer, result TraceResult) {
	fmt.Fprintf(w, "Run: %s\n", result.Run.Token)
	fmt.Fprintf(w, "Scenario: %s\n", result.Run.Scenario)
	fmt.Fprintf(w, "Profile: %q, width %d, %s\n", result.Run.Symbols, result.Run.Width, result.Run.Strategy)
	fmt.Fprintf(w, "Status: %s\n", runStatus(result.Run))
	if result.Run.Digest != "" {
		fmt.Fprintf(w, "Digest: %s\n", result.Run.Digest)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Timeline ===")
	if len(result.Events) == 0 {
		fmt.Fprintln(w, "  (no events)")
	}
	for _, e := range result.Events {
		fmt.Fprintf(w, "  [%d] %-10s %-9s %s\n", e.Seq, e.Kind, e.Op, string(e.Payload))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Ranks ===")
	if len(result.Ranks) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, r := range result.Ranks {
		fmt.Fprintf(w, "  %s\n", r)
	}
}

// runStatus returns "pass", "fail", or "open" for an unfinished run.
func runStatus(r RunSummary) string {
	switch {
	case !r.Finished:
		return "open"
	case r.Pass:
		return "pass"
	default:
		return "fail"
	}
}

// truncateDigest shortens a digest for list output.
func truncateDigest(d string) string {
	if len(d) <= 12 {
		return d
	}
	return d[:12]
}
