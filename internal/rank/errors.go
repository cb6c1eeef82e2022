package rank

import (
	"errors"
	"fmt"
)

// Error represents a precondition violation detected by the rank engine.
//
// Engine errors are never transient. They indicate that the caller supplied
// neighbors in the wrong order, asked for more seed ranks than the fixed
// width can hold, or passed a string that is not a rank.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Details contains additional context (inputs, limits).
	Details map[string]string
}

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	// ErrCodeInvalidOrder indicates second is not strictly greater than first.
	ErrCodeInvalidOrder ErrorCode = "INVALID_ORDER"

	// ErrCodeRangeExceeded indicates the fixed-width space cannot hold the
	// requested number of distinct ranks.
	ErrCodeRangeExceeded ErrorCode = "RANGE_EXCEEDED"

	// ErrCodeInvalidRank indicates an empty rank or a symbol outside the alphabet.
	ErrCodeInvalidRank ErrorCode = "INVALID_RANK"
)

// Sentinels for errors.Is matching. An *Error matches the sentinel with the
// same code.
var (
	ErrInvalidOrder  = &Error{Code: ErrCodeInvalidOrder, Message: "second rank must be greater than first rank"}
	ErrRangeExceeded = &Error{Code: ErrCodeRangeExceeded, Message: "rank space exceeded"}
	ErrInvalidRank   = &Error{Code: ErrCodeInvalidRank, Message: "invalid rank"}
)

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// IsInvalidOrder returns true if the error is an invalid order error.
// Uses errors.As to handle wrapped errors.
func IsInvalidOrder(err error) bool {
	return hasCode(err, ErrCodeInvalidOrder)
}

// IsRangeExceeded returns true if the error is a range exceeded error.
func IsRangeExceeded(err error) bool {
	return hasCode(err, ErrCodeRangeExceeded)
}

// IsInvalidRank returns true if the error is an invalid rank error.
func IsInvalidRank(err error) bool {
	return hasCode(err, ErrCodeInvalidRank)
}

func hasCode(err error, code ErrorCode) bool {
	var re *Error
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}

// NewInvalidOrderError creates an Error for a second rank that does not sort
// after the first.
func NewInvalidOrderError(first, second string) *Error {
	return &Error{
		Code:    ErrCodeInvalidOrder,
		Message: fmt.Sprintf("second rank must be greater than first rank: %q is not greater than %q", second, first),
		Details: map[string]string{
			"first":  first,
			"second": second,
		},
	}
}

// NewRangeExceededError creates an Error for a seed request the fixed-width
// space cannot satisfy.
func NewRangeExceededError(count, limit int, reason string) *Error {
	return &Error{
		Code:    ErrCodeRangeExceeded,
		Message: fmt.Sprintf("ranks can not be generated for %d items: %s", count, reason),
		Details: map[string]string{
			"count": fmt.Sprintf("%d", count),
			"limit": fmt.Sprintf("%d", limit),
		},
	}
}

// NewInvalidRankError creates an Error for a malformed rank string.
func NewInvalidRankError(value, reason string) *Error {
	return &Error{
		Code:    ErrCodeInvalidRank,
		Message: fmt.Sprintf("invalid rank %q: %s", value, reason),
		Details: map[string]string{
			"rank": value,
		},
	}
}
