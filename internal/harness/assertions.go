package harness

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/lexrank/internal/rank"
	"github.com/roach88/lexrank/internal/store"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for i, event := range e.Trace {
			if event.Type == EventInvocation {
				fmt.Fprintf(&buf, "  [%d] %s %v\n", i+1, event.Op, event.Args)
			}
		}
	}

	return buf.String()
}

// AssertionContext provides what assertions need beyond the result.
type AssertionContext struct {
	Ctx      context.Context
	Store    *store.Store
	Ranker   *rank.Ranker
	RunToken string
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertStrictlyBetween:
			err = assertStrictlyBetween(result, assertion, actx.Ranker)
		case AssertLengthMonotonic:
			err = assertLengthMonotonic(result, assertion, actx.Ranker)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, assertion)
		case AssertStoreOrder:
			err = assertStoreOrder(actx)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	return errs
}

// stepRanks returns the ranks of the asserted step, failing if the step did
// not complete ok.
func stepRanks(result *Result, assertion Assertion) (StepOutcome, error) {
	n := *assertion.Step
	if n >= len(result.Steps) {
		return StepOutcome{}, fmt.Errorf("%s: step %d was not executed", assertion.Type, n)
	}
	step := result.Steps[n]
	if step.Case != CaseOK {
		return StepOutcome{}, &AssertionError{
			Type:     assertion.Type,
			Expected: fmt.Sprintf("step %d completes ok", n),
			Actual:   fmt.Sprintf("case %s", step.Case),
			Trace:    result.Trace,
		}
	}
	return step, nil
}

// assertStrictlyBetween checks every rank of a between or subdivide step
// against the step's original bounds.
func assertStrictlyBetween(result *Result, assertion Assertion, r *rank.Ranker) error {
	step, err := stepRanks(result, assertion)
	if err != nil {
		return err
	}
	first, _ := stringArg(step.Args, "first")
	second, _ := stringArg(step.Args, "second")

	for _, got := range step.Ranks {
		if r.Compare(first, got) < 0 && r.Compare(got, second) < 0 {
			continue
		}
		return &AssertionError{
			Type:     assertion.Type,
			Expected: fmt.Sprintf("rank strictly between %q and %q", first, second),
			Actual:   fmt.Sprintf("%q", got),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertLengthMonotonic checks that a subdivide chain never gets shorter
// and never repeats a position.
func assertLengthMonotonic(result *Result, assertion Assertion, r *rank.Ranker) error {
	step, err := stepRanks(result, assertion)
	if err != nil {
		return err
	}

	for i := 1; i < len(step.Ranks); i++ {
		prev, cur := step.Ranks[i-1], step.Ranks[i]
		if len(cur) < len(prev) {
			return &AssertionError{
				Type:     assertion.Type,
				Expected: fmt.Sprintf("rank %d no shorter than %q", i, prev),
				Actual:   fmt.Sprintf("%q", cur),
				Trace:    result.Trace,
			}
		}
		for _, earlier := range step.Ranks[:i] {
			if r.Compare(earlier, cur) == 0 {
				return &AssertionError{
					Type:     assertion.Type,
					Expected: "no repeated positions",
					Actual:   fmt.Sprintf("%q repeats %q", cur, earlier),
					Trace:    result.Trace,
				}
			}
		}
	}
	return nil
}

// assertTraceCount checks that op is invoked exactly the specified number of times.
func assertTraceCount(trace []TraceEvent, assertion Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Type == EventInvocation && event.Op == assertion.Op {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d invocations of %s", assertion.Count, assertion.Op),
			Actual:   fmt.Sprintf("%d invocations", count),
			Trace:    trace,
		}
	}
	return nil
}

// assertStoreOrder reads the run's ranks back in BINARY collation order and
// checks that Compare sorts them identically, with no two ranks at the same
// position.
func assertStoreOrder(actx *AssertionContext) error {
	stored, err := actx.Store.RanksInOrder(actx.Ctx, actx.RunToken)
	if err != nil {
		return fmt.Errorf("%s: %w", AssertStoreOrder, err)
	}

	sorted := slices.Clone(stored)
	slices.SortStableFunc(sorted, actx.Ranker.Compare)
	if !slices.Equal(stored, sorted) {
		return &AssertionError{
			Type:     AssertStoreOrder,
			Expected: fmt.Sprintf("rank order %v", sorted),
			Actual:   fmt.Sprintf("store order %v", stored),
		}
	}

	for i := 1; i < len(sorted); i++ {
		if actx.Ranker.Compare(sorted[i-1], sorted[i]) == 0 {
			return &AssertionError{
				Type:     AssertStoreOrder,
				Expected: "distinct positions",
				Actual:   fmt.Sprintf("%q and %q are equivalent", sorted[i-1], sorted[i]),
			}
		}
	}
	return nil
}
