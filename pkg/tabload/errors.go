package tabload

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure taxonomy. Callers distinguish them with
// errors.Is(); every error raised by the core wraps exactly one of these
// together with the operation name and the offending identifier.
//
// Example usage:
//
//	err := svc.Query(ctx, criteria, sort)
//	if errors.Is(err, tabload.ErrUnknownColumn) {
//	    // Caller supplied a column outside the employees schema.
//	}
var (
	// ErrConfigInvalid indicates a missing or malformed configuration field.
	// Surfaced before any work starts; fatal to the run.
	ErrConfigInvalid = errors.New("invalid configuration")

	// ErrSourceRead indicates the delimited source file could not be read or
	// parsed (missing file, bad delimiter, header mismatch). Never retried.
	ErrSourceRead = errors.New("source read failed")

	// ErrUnknownColumn indicates a criteria or sort column outside the
	// employees schema. Raised at compile time, before any query executes.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrUnsupportedMode indicates a load mode outside {append, replace}.
	ErrUnsupportedMode = errors.New("unsupported load mode")

	// ErrEmptyCriteriaValue indicates a membership criteria entry with an
	// empty value list. Rejected rather than compiled into malformed SQL.
	ErrEmptyCriteriaValue = errors.New("empty criteria value list")

	// ErrSinkWrite indicates the backend rejected a write. The wrapped error
	// carries the backend's diagnostic message. No automatic retry is
	// performed, and partial writes from a failed mid-batch load are not
	// rolled back.
	ErrSinkWrite = errors.New("sink write failed")

	// ErrConnectionFailed indicates the database connection could not be
	// established or verified.
	ErrConnectionFailed = errors.New("connection failed")
)

// UnknownColumnf wraps ErrUnknownColumn with the operation and identifier.
func UnknownColumnf(op, column string) error {
	return fmt.Errorf("%s: %w: %q is not an employees column", op, ErrUnknownColumn, column)
}

// ExitCodeForError returns the exit code for an error. Nil maps to
// ExitSuccess, each sentinel to its semantic code, and anything else to
// ExitGeneralError.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrConfigInvalid):
		return ExitConfigError
	case errors.Is(err, ErrSourceRead):
		return ExitSourceError
	case errors.Is(err, ErrUnknownColumn),
		errors.Is(err, ErrUnsupportedMode),
		errors.Is(err, ErrEmptyCriteriaValue):
		return ExitBadRequest
	case errors.Is(err, ErrSinkWrite):
		return ExitSinkError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	}

	// Driver errors that bypass the sink wrapping still deserve the
	// connection exit code when they are clearly connection-shaped.
	errStr := err.Error()
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
