package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs a command built by newCmd and returns its stdout.
func execute(t *testing.T, newCmd func(*RootOptions) *cobra.Command, opts *RootOptions, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := newCmd(opts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.cue")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestBetween(t *testing.T) {
	tests := []struct {
		first, second string
		want          string
	}{
		{"a", "b", "an\n"},
		{"eir", "iri", "gmz\n"},
		{"an", "b", "at\n"},
	}

	for _, tt := range tests {
		t.Run(tt.first+"_"+tt.second, func(t *testing.T) {
			out, err := execute(t, NewBetweenCommand, &RootOptions{Format: "text"}, tt.first, tt.second)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestBetweenJSON(t *testing.T) {
	out, err := execute(t, NewBetweenCommand, &RootOptions{Format: "json"}, "a", "b")
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   BetweenResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, BetweenResult{First: "a", Second: "b", Rank: "an"}, resp.Data)
}

func TestBetweenEngineErrors(t *testing.T) {
	tests := []struct {
		name          string
		first, second string
		code          string
		message       string
	}{
		{"reversed", "b", "a", ErrCodeInvalidOrder, "second rank must be greater than first rank"},
		{"equal after padding", "b", "ba", ErrCodeInvalidOrder, "second rank must be greater than first rank"},
		{"empty rank", "", "a", ErrCodeInvalidRank, "invalid rank"},
		{"foreign symbol", "a", "B", ErrCodeInvalidRank, "not in the alphabet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewBetweenCommand, &RootOptions{Format: "text"}, tt.first, tt.second)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))
			assert.Contains(t, out, "Error ["+tt.code+"]")
			assert.Contains(t, out, tt.message)
		})
	}
}

func TestBetweenEngineErrorJSON(t *testing.T) {
	out, err := execute(t, NewBetweenCommand, &RootOptions{Format: "json"}, "b", "a")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvalidOrder, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, `"a" is not greater than "b"`)
}

func TestBetweenWithProfile(t *testing.T) {
	path := writeProfile(t, `profile: {symbols: "0123456789", width: 2, strategy: "subtractive"}`)

	out, err := execute(t, NewBetweenCommand, &RootOptions{Format: "text", Profile: path}, "0", "9")
	require.NoError(t, err)
	assert.Equal(t, "4\n", out)
}

func TestBetweenBadProfile(t *testing.T) {
	tests := []struct {
		name    string
		profile string
		code    string
	}{
		{"missing", filepath.Join(t.TempDir(), "missing.cue"), "E005"},
		{"invalid", writeProfile(t, `profile: width: 9`), "E302"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewBetweenCommand, &RootOptions{Format: "text", Profile: tt.profile}, "a", "b")
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, "Error ["+tt.code+"]")
		})
	}
}

func TestBetweenMissingArgs(t *testing.T) {
	_, err := execute(t, NewBetweenCommand, &RootOptions{Format: "text"}, "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}
