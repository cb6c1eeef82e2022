package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubdivide_TowardSecond(t *testing.T) {
	got, err := Subdivide("a", "b", 6, TowardSecond)
	require.NoError(t, err)
	assert.Equal(t, []string{"an", "at", "aw", "ay", "az", "azn"}, got)
}

func TestSubdivide_TowardFirst(t *testing.T) {
	got, err := Subdivide("a", "b", 5, TowardFirst)
	require.NoError(t, err)
	assert.Equal(t, []string{"an", "ag", "ad", "ab", "aan"}, got)
}

func TestSubdivide_FiftyNoCollisions(t *testing.T) {
	for _, dir := range []Direction{TowardFirst, TowardSecond} {
		t.Run(string(dir), func(t *testing.T) {
			lo, hi := "a", "b"
			got, err := Subdivide(lo, hi, 50, dir)
			require.NoError(t, err)
			require.Len(t, got, 50)

			seen := make(map[string]bool)
			prevLen := 0
			for i, r := range got {
				assert.False(t, seen[r], "duplicate rank %q at %d", r, i)
				seen[r] = true

				assert.GreaterOrEqual(t, len(r), prevLen, "length shrank at %d", i)
				prevLen = len(r)

				assert.Equal(t, -1, Compare(lo, r), "%q not above %q", r, lo)
				assert.Equal(t, -1, Compare(r, hi), "%q not below %q", r, hi)
				if dir == TowardSecond {
					lo = r
				} else {
					hi = r
				}
			}
		})
	}
}

func TestSubdivide_Zero(t *testing.T) {
	got, err := Subdivide("a", "b", 0, TowardSecond)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSubdivide_Errors(t *testing.T) {
	_, err := Subdivide("a", "b", -1, TowardSecond)
	require.Error(t, err)

	_, err = Subdivide("a", "b", 1, Direction("sideways"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown direction")

	got, err := Subdivide("b", "a", 3, TowardFirst)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, IsInvalidOrder(err))
	assert.Contains(t, err.Error(), "subdivide step 0")
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("first")
	require.NoError(t, err)
	assert.Equal(t, TowardFirst, d)

	d, err = ParseDirection("second")
	require.NoError(t, err)
	assert.Equal(t, TowardSecond, d)

	_, err = ParseDirection("up")
	assert.Error(t, err)
}
