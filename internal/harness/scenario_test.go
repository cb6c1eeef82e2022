package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, t.TempDir(), `
name: test_scenario
description: "Test scenario for validation"
steps:
  - op: between
    args: {first: a, second: b}
    expect: {case: ok, result: an}
  - op: initial
    args: {count: 3}
assertions:
  - type: strictly_between
    step: 0
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Len(t, scenario.Steps, 2)
	assert.Equal(t, OpBetween, scenario.Steps[0].Op)
	assert.Equal(t, "a", scenario.Steps[0].Args["first"])
	assert.Equal(t, "an", scenario.Steps[0].Expect.Result)
	assert.Equal(t, 3, scenario.Steps[1].Args["count"])
	assert.Nil(t, scenario.Steps[1].Expect)
	require.Len(t, scenario.Assertions, 1)
	require.NotNil(t, scenario.Assertions[0].Step)
	assert.Equal(t, 0, *scenario.Assertions[0].Step)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, t.TempDir(), `
name: typo
description: "typo in steps"
step:
  - op: between
    args: {first: a, second: b}
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_ResolvesProfile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "profiles"), 0755))
	profilePath := filepath.Join(dir, "profiles", "p.cue")
	require.NoError(t, os.WriteFile(profilePath, []byte(`profile: {}`), 0644))

	path := writeScenario(t, dir, `
name: with_profile
description: "relative profile"
profile: profiles/p.cue
steps:
  - op: compare
    args: {a: a, b: b}
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, profilePath, scenario.Profile)
}

func TestLoadScenario_MissingProfile(t *testing.T) {
	path := writeScenario(t, t.TempDir(), `
name: bad_profile
description: "profile does not exist"
profile: nowhere.cue
steps:
  - op: compare
    args: {a: a, b: b}
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile file not found")
}

func TestValidateScenario_Errors(t *testing.T) {
	one := 1
	seven := 7

	valid := func() *Scenario {
		return &Scenario{
			Name:        "s",
			Description: "d",
			Steps: []Step{
				{Op: OpBetween, Args: map[string]any{"first": "a", "second": "b"}},
				{Op: OpSubdivide, Args: map[string]any{"first": "a", "second": "b", "times": 2}},
			},
		}
	}

	tests := []struct {
		name   string
		mutate func(s *Scenario)
		want   string
	}{
		{"missing name", func(s *Scenario) { s.Name = "" }, "name is required"},
		{"missing description", func(s *Scenario) { s.Description = "" }, "description is required"},
		{"no steps", func(s *Scenario) { s.Steps = nil }, "steps list is required"},
		{"missing op", func(s *Scenario) { s.Steps[0].Op = "" }, "op is required"},
		{"unknown op", func(s *Scenario) { s.Steps[0].Op = "median" }, `unknown op "median"`},
		{"missing args", func(s *Scenario) { s.Steps[0].Args = nil }, "args is required"},
		{"missing second", func(s *Scenario) { delete(s.Steps[0].Args, "second") }, `missing arg "second"`},
		{"numeric rank", func(s *Scenario) { s.Steps[0].Args["first"] = 0 }, "must be a string"},
		{"count not int", func(s *Scenario) {
			s.Steps[0] = Step{Op: OpInitial, Args: map[string]any{"count": "five"}}
		}, "must be an integer"},
		{"negative times", func(s *Scenario) { s.Steps[1].Args["times"] = -1 }, "times must be non-negative"},
		{"bad direction", func(s *Scenario) { s.Steps[1].Args["toward"] = "up" }, "unknown direction"},
		{"empty expect case", func(s *Scenario) { s.Steps[0].Expect = &ExpectClause{} }, "case is required"},
		{"unknown expect case", func(s *Scenario) { s.Steps[0].Expect = &ExpectClause{Case: "Success"} }, `unknown case "Success"`},
		{"assertion without type", func(s *Scenario) { s.Assertions = []Assertion{{}} }, "type is required"},
		{"unknown assertion", func(s *Scenario) { s.Assertions = []Assertion{{Type: "final_state"}} }, "unknown assertion type"},
		{"assertion without step", func(s *Scenario) {
			s.Assertions = []Assertion{{Type: AssertStrictlyBetween}}
		}, "step is required"},
		{"assertion step out of range", func(s *Scenario) {
			s.Assertions = []Assertion{{Type: AssertStrictlyBetween, Step: &seven}}
		}, "out of range"},
		{"monotonic on between", func(s *Scenario) {
			zero := 0
			s.Assertions = []Assertion{{Type: AssertLengthMonotonic, Step: &zero}}
		}, "does not apply to between"},
		{"trace_count without op", func(s *Scenario) {
			s.Assertions = []Assertion{{Type: AssertTraceCount, Count: 1}}
		}, "op is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			require.NoError(t, ValidateScenario(s))

			tt.mutate(s)
			err := ValidateScenario(s)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("monotonic on subdivide", func(t *testing.T) {
		s := valid()
		s.Assertions = []Assertion{{Type: AssertLengthMonotonic, Step: &one}}
		assert.NoError(t, ValidateScenario(s))
	})
}
