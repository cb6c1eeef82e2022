package profile

import (
	"fmt"

	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Error codes reported by the profile loader. They share the CLI's numbering.
const (
	ErrCodeLoadFailed  = "E004" // file unreadable
	ErrCodeNotFound    = "E005" // file does not exist
	ErrCodeBuildFailed = "E006" // CUE syntax or evaluation error
	ErrCodeMissing     = "E301" // no top-level profile field
	ErrCodeInvalid     = "E302" // profile violates the schema
	ErrCodeAlphabet    = "E303" // symbols are not a usable alphabet
)

// LoadError represents an error that occurred while loading a profile.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// fromCUEError converts the first CUE error into a LoadError with position info.
func fromCUEError(code string, err error) *LoadError {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: code, Message: err.Error()}
	}

	first := errs[0]
	le := &LoadError{Code: code, Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}
