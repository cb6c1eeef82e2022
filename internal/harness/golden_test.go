package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_SimpleBetween(t *testing.T) {
	scenario := &Scenario{
		Name:        "simple_between",
		Description: "Test a single midpoint",
		RunToken:    "golden-token-001",
		Steps:       []Step{betweenStep("a", "b", nil)},
		Assertions:  []Assertion{{Type: AssertTraceCount, Op: OpBetween, Count: 1}},
	}

	// To regenerate: go test ./internal/harness -run TestRunWithGolden_SimpleBetween -update
	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
}

func TestAssertGolden_FromResult(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "subdivide.yaml"))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)

	require.NoError(t, AssertGolden(t, scenario.Name, result))
}

func TestSnapshot_OmitsUnpinnedToken(t *testing.T) {
	scenario := &Scenario{
		Name:        "unpinned",
		Description: "generated token",
		Steps:       []Step{betweenStep("a", "b", nil)},
	}
	result, err := Run(scenario)
	require.NoError(t, err)
	result.RunToken = "0192f0c4-0000-7000-8000-000000000000"

	data, err := Snapshot(scenario, result)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "run_token")
	assert.Contains(t, string(data), `"scenario_name":"unpinned"`)

	scenario.RunToken = "pinned"
	data, err = Snapshot(scenario, result)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"run_token":"pinned"`)
}
