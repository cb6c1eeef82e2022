package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/lexrank/internal/rank"
)

// Scenario is a conformance script: a list of rank operations with
// expected outcomes, plus assertions over the whole run.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Profile is an optional CUE profile path, relative to the scenario file.
	// Empty means the lowercase default profile.
	Profile string `yaml:"profile,omitempty"`

	// RunToken pins the run token for deterministic tests.
	// If empty, defaults to "test-run-default".
	RunToken string `yaml:"run_token,omitempty"`

	// Steps are executed in order, each producing an invocation and a
	// completion in the trace.
	Steps []Step `yaml:"steps"`

	// Assertions validate the finished run.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step invokes one rank operation.
type Step struct {
	// Op is one of between, initial, compare, subdivide.
	Op string `yaml:"op"`

	// Args holds the operation's arguments:
	//   - between: first, second
	//   - initial: count
	//   - compare: a, b
	//   - subdivide: first, second, times, toward (first|second, default second)
	Args map[string]any `yaml:"args"`

	// Expect specifies the expected completion. If nil, the step must
	// complete with case ok.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies expected completion behavior.
type ExpectClause struct {
	// Case is the expected output case: ok, invalid_order, range_exceeded
	// or invalid_rank.
	Case string `yaml:"case"`

	// Result is the expected ok result: a rank for between, a list of ranks
	// for initial and subdivide, -1/0/1 for compare. If nil, only the case
	// is validated.
	Result any `yaml:"result,omitempty"`
}

// Assertion validates a finished run.
type Assertion struct {
	// Type specifies the assertion type:
	// - "strictly_between": the step's ranks lie strictly between its bounds
	// - "length_monotonic": a subdivide step's ranks never shrink or repeat
	// - "trace_count": op is invoked exactly Count times
	// - "store_order": ranks read back from the store sort like Compare
	Type string `yaml:"type"`

	// Step is the zero-based step index (strictly_between, length_monotonic).
	Step *int `yaml:"step,omitempty"`

	// Op is the operation name (trace_count).
	Op string `yaml:"op,omitempty"`

	// Count is the expected number of invocations (trace_count).
	Count int `yaml:"count,omitempty"`
}

// Operation names.
const (
	OpBetween   = "between"
	OpInitial   = "initial"
	OpCompare   = "compare"
	OpSubdivide = "subdivide"
)

// Assertion type constants.
const (
	AssertStrictlyBetween = "strictly_between"
	AssertLengthMonotonic = "length_monotonic"
	AssertTraceCount      = "trace_count"
	AssertStoreOrder      = "store_order"
)

var (
	validOps   = []string{OpBetween, OpInitial, OpCompare, OpSubdivide}
	validCases = []string{CaseOK, CaseInvalidOrder, CaseRangeExceeded, CaseInvalidRank}
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// A relative profile path is resolved against the scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Profile != "" && !filepath.IsAbs(scenario.Profile) {
		scenario.Profile = filepath.Join(filepath.Dir(path), scenario.Profile)
	}

	if err := ValidateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// ValidateScenario checks that required fields are present and valid.
func ValidateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if s.Profile != "" {
		if _, err := os.Stat(s.Profile); os.IsNotExist(err) {
			return fmt.Errorf("profile file not found: %s", s.Profile)
		}
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion, s.Steps); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(index int, step *Step) error {
	if step.Op == "" {
		return fmt.Errorf("steps[%d]: op is required", index)
	}
	if !slices.Contains(validOps, step.Op) {
		return fmt.Errorf("steps[%d]: unknown op %q", index, step.Op)
	}
	if step.Args == nil {
		return fmt.Errorf("steps[%d]: args is required", index)
	}

	var err error
	switch step.Op {
	case OpBetween:
		err = requireStrings(step.Args, "first", "second")
	case OpInitial:
		_, err = intArg(step.Args, "count")
	case OpCompare:
		err = requireStrings(step.Args, "a", "b")
	case OpSubdivide:
		err = requireStrings(step.Args, "first", "second")
		if err == nil {
			var times int
			times, err = intArg(step.Args, "times")
			if err == nil && times < 0 {
				err = fmt.Errorf("times must be non-negative")
			}
		}
		if err == nil {
			_, err = directionArg(step.Args)
		}
	}
	if err != nil {
		return fmt.Errorf("steps[%d] (%s): %w", index, step.Op, err)
	}

	if step.Expect != nil {
		if step.Expect.Case == "" {
			return fmt.Errorf("steps[%d].expect: case is required", index)
		}
		if !slices.Contains(validCases, step.Expect.Case) {
			return fmt.Errorf("steps[%d].expect: unknown case %q", index, step.Expect.Case)
		}
	}

	return nil
}

func validateAssertion(index int, a *Assertion, steps []Step) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertStrictlyBetween:
		return requireStepOp(index, a, steps, OpBetween, OpSubdivide)
	case AssertLengthMonotonic:
		return requireStepOp(index, a, steps, OpSubdivide)
	case AssertTraceCount:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertStoreOrder:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

func requireStepOp(index int, a *Assertion, steps []Step, ops ...string) error {
	if a.Step == nil {
		return fmt.Errorf("assertions[%d]: step is required for %s", index, a.Type)
	}
	n := *a.Step
	if n < 0 || n >= len(steps) {
		return fmt.Errorf("assertions[%d]: step %d out of range", index, n)
	}
	if !slices.Contains(ops, steps[n].Op) {
		return fmt.Errorf("assertions[%d]: %s does not apply to %s step %d", index, a.Type, steps[n].Op, n)
	}
	return nil
}

func requireStrings(args map[string]any, keys ...string) error {
	for _, k := range keys {
		if _, err := stringArg(args, k); err != nil {
			return err
		}
	}
	return nil
}

func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing arg %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("arg %q must be a string (quote numeric ranks), got %T", key, v)
	}
	return s, nil
}

func intArg(args map[string]any, key string) (int, error) {
	v, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing arg %q", key)
	}
	n, ok := v.(int)
	if !ok {
		return 0, fmt.Errorf("arg %q must be an integer, got %T", key, v)
	}
	return n, nil
}

func directionArg(args map[string]any) (rank.Direction, error) {
	if _, ok := args["toward"]; !ok {
		return rank.TowardSecond, nil
	}
	name, err := stringArg(args, "toward")
	if err != nil {
		return "", err
	}
	return rank.ParseDirection(name)
}
