package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrace() []TraceEvent {
	r := NewResult()
	r.AddInvocationTrace(OpBetween, map[string]any{"first": "a", "second": "b"}, 1)
	r.AddCompletionTrace(CaseOK, "an", 2)
	return r.Trace
}

func TestDigest_Stable(t *testing.T) {
	d1, err := Digest(sampleTrace())
	require.NoError(t, err)
	d2, err := Digest(sampleTrace())
	require.NoError(t, err)

	assert.Equal(t, d1, d2)
	assert.Len(t, d1, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", d1)
}

func TestDigest_SensitiveToContent(t *testing.T) {
	base, err := Digest(sampleTrace())
	require.NoError(t, err)

	changed := sampleTrace()
	changed[1].Result = "am"
	d, err := Digest(changed)
	require.NoError(t, err)
	assert.NotEqual(t, base, d)

	reseq := sampleTrace()
	reseq[1].Seq = 3
	d, err = Digest(reseq)
	require.NoError(t, err)
	assert.NotEqual(t, base, d)
}

func TestDigest_Empty(t *testing.T) {
	d, err := Digest(nil)
	require.NoError(t, err)
	assert.Len(t, d, 64)
}

func TestDigest_RejectsFloat(t *testing.T) {
	trace := sampleTrace()
	trace[0].Args["first"] = 0.5

	_, err := Digest(trace)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "digest trace")
}
