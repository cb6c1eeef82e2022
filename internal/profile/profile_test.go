package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lexrank/internal/rank"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.cue")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	p := Default()
	assert.Equal(t, rank.LowercaseSymbols, p.Symbols)
	assert.Equal(t, 3, p.Width)
	assert.Equal(t, rank.StrategyBijective, p.Strategy)
	assert.Same(t, rank.Lowercase, p.Alphabet())

	r, err := p.Ranker(nil)
	require.NoError(t, err)
	got, err := r.Between("a", "z")
	require.NoError(t, err)
	assert.Equal(t, "m", got)
}

func TestLoad_AllDefaults(t *testing.T) {
	path := writeProfile(t, `profile: {}`)

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, rank.LowercaseSymbols, p.Symbols)
	assert.Equal(t, 3, p.Width)
	assert.Equal(t, rank.StrategyBijective, p.Strategy)
	assert.Equal(t, path, p.Source)
}

func TestLoad_Custom(t *testing.T) {
	path := writeProfile(t, `
profile: {
	symbols:  "0123456789"
	width:    2
	strategy: "subtractive"
}
`)

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", p.Symbols)
	assert.Equal(t, 2, p.Width)
	assert.Equal(t, rank.StrategySubtractive, p.Strategy)
	assert.Equal(t, 10, p.Alphabet().Radix())

	r, err := p.Ranker(nil)
	require.NoError(t, err)
	assert.Equal(t, 100, r.Capacity())

	got, err := r.Between("0", "9")
	require.NoError(t, err)
	// bijective 1 and 10 average to 5, the fifth symbol
	assert.Equal(t, "4", got)

	seeds, err := r.Initial(3)
	require.NoError(t, err)
	// span 99, step 24
	assert.Equal(t, []string{"24", "48", "72"}, seeds)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    string
	}{
		{"syntax error", `profile: {`, ErrCodeBuildFailed},
		{"missing profile", `other: 1`, ErrCodeMissing},
		{"width too large", `profile: width: 9`, ErrCodeInvalid},
		{"width zero", `profile: width: 0`, ErrCodeInvalid},
		{"unknown strategy", `profile: strategy: "median"`, ErrCodeInvalid},
		{"unknown field", `profile: radix: 26`, ErrCodeInvalid},
		{"non-printable symbols", `profile: symbols: "a b"`, ErrCodeInvalid},
		{"unordered symbols", `profile: symbols: "ba"`, ErrCodeAlphabet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeProfile(t, tt.content)

			_, err := Load(path)
			require.Error(t, err)

			var le *LoadError
			require.True(t, errors.As(err, &le), "unexpected error type %T: %v", err, err)
			assert.Equal(t, tt.code, le.Code, le.Error())
		})
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.cue"))
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, ErrCodeNotFound, le.Code)
}

func TestLoadError_Position(t *testing.T) {
	path := writeProfile(t, "profile: {\n\twidth: 42\n}\n")

	_, err := Load(path)
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	if le.Pos.IsValid() {
		assert.Contains(t, le.Error(), ":")
		assert.Greater(t, le.Pos.Line(), 0)
	}
}
