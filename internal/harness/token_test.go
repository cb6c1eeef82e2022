package harness

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lexrank/internal/testutil"
)

func TestUUIDv7Generator(t *testing.T) {
	var gen TokenGenerator = UUIDv7Generator{}

	a := gen.Generate()
	b := gen.Generate()
	assert.NotEqual(t, a, b)

	id, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}

func TestFixedTokenGenerator_IsTokenGenerator(t *testing.T) {
	var gen TokenGenerator = testutil.NewFixedTokenGenerator("pinned")
	assert.Equal(t, "pinned", gen.Generate())
}
