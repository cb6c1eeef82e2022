package cli

import (
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateValidProfile(t *testing.T) {
	path := writeProfile(t, `profile: {symbols: "0123456789", width: 2, strategy: "subtractive"}`)

	out, err := execute(t, NewValidateCommand, &RootOptions{Format: "text"}, path)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Profile valid: 10 symbols, width 2, strategy subtractive, capacity 100")
}

func TestValidateValidProfileJSON(t *testing.T) {
	path := writeProfile(t, `profile: {}`)

	out, err := execute(t, NewValidateCommand, &RootOptions{Format: "json"}, path)
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	require.NotNil(t, resp.Data.Profile)
	assert.Equal(t, ProfileSummary{
		Symbols:  "abcdefghijklmnopqrstuvwxyz",
		Radix:    26,
		Width:    3,
		Strategy: "bijective",
		Capacity: 17576,
	}, *resp.Data.Profile)
}

func TestValidateNonExistentFile(t *testing.T) {
	out, err := execute(t, NewValidateCommand, &RootOptions{Format: "text"}, filepath.Join(t.TempDir(), "missing.cue"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]")
}

func TestValidateInvalidProfile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    string
	}{
		{"syntax error", `profile: {`, "E006"},
		{"missing profile", `other: 1`, "E301"},
		{"width too large", `profile: width: 9`, "E302"},
		{"unknown strategy", `profile: strategy: "median"`, "E302"},
		{"unordered symbols", `profile: symbols: "ba"`, "E303"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewValidateCommand, &RootOptions{Format: "text"}, writeProfile(t, tt.content))
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))
			assert.Contains(t, out, "✗ Validation failed")
			assert.Contains(t, out, tt.code)
		})
	}
}

func TestValidateInvalidProfileJSON(t *testing.T) {
	out, err := execute(t, NewValidateCommand, &RootOptions{Format: "json"}, writeProfile(t, `profile: width: 0`))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
		Error  *CLIError        `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.False(t, resp.Data.Valid)
	require.Len(t, resp.Data.Errors, 1)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E302", resp.Error.Code)
}

func TestValidateMissingArgs(t *testing.T) {
	_, err := execute(t, NewValidateCommand, &RootOptions{Format: "text"})
	require.Error(t, err)
}
