package cli

import (
	"errors"

	"github.com/roach88/lexrank/internal/profile"
	"github.com/roach88/lexrank/internal/rank"
)

// Error codes for CLI output.
const (
	ErrCodeGeneric     = "E001" // Generic error
	ErrCodeScanFailed  = "E002" // Failed to scan directory
	ErrCodeNoFiles     = "E003" // No scenario files found
	ErrCodeLoadFailed  = "E004" // Failed to read a scenario
	ErrCodeNotFound    = "E005" // Path, database or run not found
	ErrCodeWriteFailed = "E007" // Failed to write a golden file

	ErrCodeInvalidOrder  = "E201" // second is not greater than first
	ErrCodeRangeExceeded = "E202" // rank space exhausted
	ErrCodeInvalidRank   = "E203" // empty rank or foreign symbol

	ErrCodeTestFailed = "E_TEST_FAILED"
)

var engineCodes = map[rank.ErrorCode]string{
	rank.ErrCodeInvalidOrder:  ErrCodeInvalidOrder,
	rank.ErrCodeRangeExceeded: ErrCodeRangeExceeded,
	rank.ErrCodeInvalidRank:   ErrCodeInvalidRank,
}

// reportError writes err through the formatter and returns the ExitError the
// command should return. Engine errors exit 1, everything else exits 2.
func reportError(f *OutputFormatter, message string, err error) error {
	var re *rank.Error
	if errors.As(err, &re) {
		code, ok := engineCodes[re.Code]
		if !ok {
			code = ErrCodeGeneric
		}
		var details interface{}
		if len(re.Details) > 0 {
			details = re.Details
		}
		if outErr := f.Error(code, re.Message, details); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitFailure, message, err)
	}

	code, msg := ErrCodeGeneric, err.Error()
	var le *profile.LoadError
	if errors.As(err, &le) {
		code, msg = le.Code, le.Message
	}
	if outErr := f.Error(code, msg, nil); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitCommandError, message, err)
}
