package harness

// Output cases a step can complete with.
const (
	CaseOK            = "ok"
	CaseInvalidOrder  = "invalid_order"
	CaseRangeExceeded = "range_exceeded"
	CaseInvalidRank   = "invalid_rank"
)

// Trace event types.
const (
	EventInvocation = "invocation"
	EventCompletion = "completion"
)

// TraceEvent is one entry of a run's trace: either the invocation of a
// step or its completion.
type TraceEvent struct {
	Type   string         `json:"type"`
	Op     string         `json:"op,omitempty"`
	Args   map[string]any `json:"args,omitempty"`
	Case   string         `json:"case,omitempty"`
	Result any            `json:"result,omitempty"`
	Seq    int64          `json:"seq"`
}

// StepOutcome is what a step produced, kept for assertions.
type StepOutcome struct {
	Op    string
	Args  map[string]any
	Case  string
	Ranks []string
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expect clause and assertion held.
	Pass bool `json:"pass"`

	// RunToken identifies the run in the trace store.
	RunToken string `json:"run_token"`

	// Digest is the BLAKE3 digest of the canonical trace.
	Digest string `json:"digest"`

	// Trace contains all invocations and completions in seq order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expect and assertion failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Steps holds per-step outcomes in scenario order.
	Steps []StepOutcome `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddInvocationTrace adds an invocation to the trace.
func (r *Result) AddInvocationTrace(op string, args map[string]any, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type: EventInvocation,
		Op:   op,
		Args: args,
		Seq:  seq,
	})
}

// AddCompletionTrace adds a completion to the trace.
func (r *Result) AddCompletionTrace(outputCase string, result any, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:   EventCompletion,
		Case:   outputCase,
		Result: result,
		Seq:    seq,
	})
}
