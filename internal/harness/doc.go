// Package harness provides conformance testing for the rank engine.
//
// A scenario is a YAML script of rank operations with expected outcomes.
// The harness executes each step against a ranker built from the scenario's
// profile, records the trace, and evaluates assertions over the whole run.
//
// # Scenario Format
//
//	name: subdivide_upward
//	description: "Repeated inserts at the end of a gap"
//	profile: profiles/digits.cue   # optional, relative to this file
//	run_token: fixed-token          # optional
//	steps:
//	  - op: between
//	    args: {first: a, second: b}
//	    expect:
//	      case: ok
//	      result: an
//	  - op: subdivide
//	    args: {first: a, second: b, times: 6, toward: second}
//	  - op: between
//	    args: {first: b, second: a}
//	    expect: {case: invalid_order}
//	assertions:
//	  - type: length_monotonic
//	    step: 1
//	  - type: store_order
//
// Ranks made only of digits must be quoted so YAML keeps them strings.
//
// # Output Cases
//
//   - ok: the operation returned a result
//   - invalid_order: second was not greater than first
//   - range_exceeded: too many seed ranks for the width
//   - invalid_rank: an input was empty or used a symbol outside the alphabet
//
// A step without expect must complete ok.
//
// # Assertion Types
//
//   - strictly_between: a between/subdivide step's ranks lie strictly
//     between its bounds
//   - length_monotonic: a subdivide step's ranks never shrink or repeat
//   - trace_count: an op is invoked exactly N times
//   - store_order: the run's ranks, read back from SQLite in BINARY order,
//     sort identically under Compare and occupy distinct positions
//
// # Deterministic Testing
//
// Every run uses a deterministic logical clock and, unless Options.Tokens is
// set, a fixed run token. Traces are encoded as canonical JSON for golden
// snapshots and digested with BLAKE3; identical steps under an identical
// profile always yield identical bytes.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/literals.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
package harness
