package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"

	"github.com/roach88/lexrank/internal/profile"
	"github.com/roach88/lexrank/internal/rank"
	"github.com/roach88/lexrank/internal/store"
	"github.com/roach88/lexrank/internal/testutil"
)

// Harness is the scenario execution engine.
// It runs steps against one ranker with a deterministic clock and records
// every invocation and completion in the trace store.
type Harness struct {
	ranker *rank.Ranker
	store  *store.Store
	clock  *testutil.DeterministicClock
	token  string
	logger *slog.Logger
}

// Options configures RunWithOptions. The zero value matches Run.
type Options struct {
	// Store receives the run's trace. If nil, a fresh in-memory store is
	// opened for the run and closed afterwards.
	Store *store.Store

	// Profile is used when the scenario names no profile file.
	// If nil, the default lowercase profile is used.
	Profile *profile.Profile

	// Tokens generates the run token. If nil, the scenario's run_token is
	// used; without one, runs into a shared Store get a UUIDv7 token and
	// isolated runs get testutil.DefaultRunToken. A token already recorded
	// in the Store is rejected.
	Tokens TokenGenerator

	// Logger receives step and run logs. If nil, logs are discarded.
	Logger *slog.Logger
}

// completion is the outcome of executing one step.
type completion struct {
	Case   string
	Result any
	Ranks  []string
}

// Run executes a scenario in an isolated in-memory store and returns the
// result.
//
// Execution flow:
// 1. Validate the scenario, resolve the profile and build a ranker
// 2. Record the run in the trace store
// 3. Execute steps, checking expect clauses
// 4. Evaluate assertions
// 5. Digest the trace and finish the run
func Run(scenario *Scenario) (*Result, error) {
	return RunWithOptions(context.Background(), scenario, Options{})
}

// RunWithOptions executes a scenario with the given options.
// A returned error means the scenario could not be executed at all; failed
// expectations and assertions are reported in Result.Errors instead.
func RunWithOptions(ctx context.Context, scenario *Scenario, opts Options) (*Result, error) {
	if err := ValidateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	prof, err := resolveProfile(scenario, opts.Profile)
	if err != nil {
		return nil, err
	}
	ranker, err := prof.Ranker(logger)
	if err != nil {
		return nil, err
	}

	st := opts.Store
	if st == nil {
		st, err = store.Open(":memory:")
		if err != nil {
			return nil, fmt.Errorf("failed to create in-memory store: %w", err)
		}
		defer st.Close()
	}

	var tokens TokenGenerator = testutil.NewFixedTokenGenerator(scenario.RunToken)
	switch {
	case opts.Tokens != nil:
		tokens = opts.Tokens
	case opts.Store != nil && scenario.RunToken == "":
		// A shared store outlives the run; the fixed default would collide.
		tokens = UUIDv7Generator{}
	}

	h := &Harness{
		ranker: ranker,
		store:  st,
		clock:  testutil.NewDeterministicClock(),
		token:  tokens.Generate(),
		logger: logger.With("scenario", scenario.Name),
	}

	if opts.Store != nil {
		_, err := st.ReadRun(ctx, h.token)
		if err == nil {
			return nil, fmt.Errorf("run token %q already recorded in store", h.token)
		}
		if !errors.Is(err, store.ErrRunNotFound) {
			return nil, fmt.Errorf("failed to check run token: %w", err)
		}
	}

	err = st.WriteRun(ctx, store.Run{
		Token:    h.token,
		Scenario: scenario.Name,
		Symbols:  prof.Symbols,
		Width:    prof.Width,
		Strategy: string(prof.Strategy),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}

	result := NewResult()
	result.RunToken = h.token

	if err := h.executeSteps(ctx, scenario.Steps, result); err != nil {
		return nil, fmt.Errorf("failed to execute steps: %w", err)
	}

	actx := &AssertionContext{
		Ctx:      ctx,
		Store:    st,
		Ranker:   ranker,
		RunToken: h.token,
	}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	result.Digest, err = Digest(result.Trace)
	if err != nil {
		return nil, err
	}
	if err := st.FinishRun(ctx, h.token, result.Digest, result.Pass); err != nil {
		return nil, fmt.Errorf("failed to finish run: %w", err)
	}

	h.logger.Info("scenario finished",
		"run_token", h.token,
		"pass", result.Pass,
		"steps", len(scenario.Steps),
		"digest", result.Digest,
	)
	return result, nil
}

func resolveProfile(scenario *Scenario, fallback *profile.Profile) (*profile.Profile, error) {
	if scenario.Profile != "" {
		p, err := profile.Load(scenario.Profile)
		if err != nil {
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}
		return p, nil
	}
	if fallback != nil {
		return fallback, nil
	}
	return profile.Default(), nil
}

// executeSteps runs all steps in order and validates expect clauses.
//
// Each step:
// 1. Stamps and records the invocation
// 2. Executes the operation against the ranker
// 3. Stamps and records the completion and the ranks it produced
// 4. Compares the completion with the expect clause
func (h *Harness) executeSteps(ctx context.Context, steps []Step, result *Result) error {
	for i, step := range steps {
		invSeq := h.clock.Next()
		if err := h.record(ctx, invSeq, EventInvocation, step.Op, step.Args); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		result.AddInvocationTrace(step.Op, step.Args, invSeq)

		comp, err := h.execute(step)
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}

		compSeq := h.clock.Next()
		payload := map[string]any{"case": comp.Case, "result": comp.Result}
		if err := h.record(ctx, compSeq, EventCompletion, step.Op, payload); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if err := h.store.WriteRanks(ctx, h.token, compSeq, comp.Ranks); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		result.AddCompletionTrace(comp.Case, comp.Result, compSeq)
		result.Steps = append(result.Steps, StepOutcome{
			Op:    step.Op,
			Args:  step.Args,
			Case:  comp.Case,
			Ranks: comp.Ranks,
		})

		checkExpect(i, step, comp, result)

		h.logger.Debug("step completed",
			"step", i,
			"op", step.Op,
			"case", comp.Case,
			"seq", compSeq,
		)
	}
	return nil
}

func (h *Harness) record(ctx context.Context, seq int64, kind, op string, payload any) error {
	data, err := MarshalCanonical(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", kind, err)
	}
	err = h.store.WriteEvent(ctx, store.Event{
		RunToken: h.token,
		Seq:      seq,
		Kind:     kind,
		Op:       op,
		Payload:  string(data),
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", kind, err)
	}
	return nil
}

// execute runs one operation. Engine precondition errors become completion
// cases; any other error aborts the run. Args were checked by
// ValidateScenario, so lookups do not fail here.
func (h *Harness) execute(step Step) (completion, error) {
	switch step.Op {
	case OpBetween:
		first, _ := stringArg(step.Args, "first")
		second, _ := stringArg(step.Args, "second")
		mid, err := h.ranker.Between(first, second)
		if err != nil {
			return failed(err)
		}
		return completion{Case: CaseOK, Result: mid, Ranks: []string{mid}}, nil

	case OpInitial:
		count, _ := intArg(step.Args, "count")
		ranks, err := h.ranker.Initial(count)
		if err != nil {
			return failed(err)
		}
		return completion{Case: CaseOK, Result: toAnySlice(ranks), Ranks: ranks}, nil

	case OpCompare:
		a, _ := stringArg(step.Args, "a")
		b, _ := stringArg(step.Args, "b")
		c, err := h.ranker.CompareRanks(a, b)
		if err != nil {
			return failed(err)
		}
		return completion{Case: CaseOK, Result: c}, nil

	case OpSubdivide:
		first, _ := stringArg(step.Args, "first")
		second, _ := stringArg(step.Args, "second")
		times, _ := intArg(step.Args, "times")
		toward, err := directionArg(step.Args)
		if err != nil {
			return completion{}, err
		}
		ranks, err := h.ranker.Subdivide(first, second, times, toward)
		if err != nil {
			return failed(err)
		}
		return completion{Case: CaseOK, Result: toAnySlice(ranks), Ranks: ranks}, nil
	}
	return completion{}, fmt.Errorf("unknown op %q", step.Op)
}

// failed maps an engine error to its completion case.
func failed(err error) (completion, error) {
	var re *rank.Error
	if !errors.As(err, &re) {
		return completion{}, err
	}

	var c string
	switch re.Code {
	case rank.ErrCodeInvalidOrder:
		c = CaseInvalidOrder
	case rank.ErrCodeRangeExceeded:
		c = CaseRangeExceeded
	case rank.ErrCodeInvalidRank:
		c = CaseInvalidRank
	default:
		return completion{}, err
	}
	return completion{
		Case:   c,
		Result: map[string]any{"code": string(re.Code), "message": re.Message},
	}, nil
}

func checkExpect(index int, step Step, comp completion, result *Result) {
	want := CaseOK
	if step.Expect != nil {
		want = step.Expect.Case
	}
	if comp.Case != want {
		result.AddError(fmt.Sprintf("step %d (%s): expected case %s, got %s: %v",
			index, step.Op, want, comp.Case, comp.Result))
		return
	}
	if step.Expect != nil && step.Expect.Result != nil && !reflect.DeepEqual(comp.Result, step.Expect.Result) {
		result.AddError(fmt.Sprintf("step %d (%s): expected result %v, got %v",
			index, step.Op, step.Expect.Result, comp.Result))
	}
}

func toAnySlice(ranks []string) []any {
	out := make([]any, len(ranks))
	for i, r := range ranks {
		out[i] = r
	}
	return out
}
