// Package errors defines the stable error code system for advent.
package errors

import (
	"errors"
	"fmt"
	"io"
)

// Code is a stable error code string.
type Code string

// Error codes. Stable public contract.
const (
	EUsage    Code = "E_USAGE"
	EInternal Code = "E_INTERNAL"

	// Configuration
	EInvalidConfig Code = "E_INVALID_CONFIG"
	EConfigExists  Code = "E_CONFIG_EXISTS"
	EPersistFailed Code = "E_PERSIST_FAILED"
	EToolNotFound  Code = "E_TOOL_NOT_FOUND"

	// Scaffolding
	ELocked         Code = "E_LOCKED"
	EDayExists      Code = "E_DAY_EXISTS"
	EYearDirFailed  Code = "E_YEAR_DIR_FAILED"
	EGenerateFailed Code = "E_GENERATE_FAILED"
	EFetchFailed    Code = "E_FETCH_FAILED"
	EFetchTimeout   Code = "E_FETCH_TIMEOUT"
	ERollbackFailed Code = "E_ROLLBACK_FAILED"
	ECleanupFailed  Code = "E_CLEANUP_FAILED"
	ECommandFailed  Code = "E_COMMAND_FAILED"
)

// AdventError is the standard error type for advent errors.
type AdventError struct {
	Code    Code
	Msg     string
	Cause   error
	Details map[string]string // optional structured context
}

// Error returns the stable error format: "CODE: message".
func (e *AdventError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *AdventError) Unwrap() error {
	return e.Cause
}

// New creates a new AdventError with the given code and message.
func New(code Code, msg string) error {
	return &AdventError{Code: code, Msg: msg}
}

// NewWithDetails creates a new AdventError with code, message, and details.
// The details map is copied (nil if empty).
func NewWithDetails(code Code, msg string, details map[string]string) error {
	return &AdventError{Code: code, Msg: msg, Details: copyDetails(details)}
}

// Wrap creates a new AdventError wrapping an underlying error.
func Wrap(code Code, msg string, err error) error {
	return &AdventError{Code: code, Msg: msg, Cause: err}
}

// WrapWithDetails creates a new AdventError wrapping an underlying error with details.
// The details map is copied (nil if empty).
func WrapWithDetails(code Code, msg string, err error, details map[string]string) error {
	return &AdventError{Code: code, Msg: msg, Cause: err, Details: copyDetails(details)}
}

// GetCode extracts the error code from an error, or empty string if not an AdventError.
func GetCode(err error) Code {
	var ae *AdventError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// AsAdventError returns (*AdventError, true) if err is or wraps an AdventError.
func AsAdventError(err error) (*AdventError, bool) {
	var ae *AdventError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func copyDetails(details map[string]string) map[string]string {
	if len(details) == 0 {
		return nil
	}
	cp := make(map[string]string, len(details))
	for k, v := range details {
		cp[k] = v
	}
	return cp
}

// ExitCode returns the appropriate exit code for an error.
// Returns 0 if err is nil, 2 for E_USAGE, 1 for all other errors.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if GetCode(err) == EUsage {
		return 2
	}
	return 1
}

// Print writes the error to w in the stable stderr format:
//
//	error_code: <CODE>
//	<message>
func Print(w io.Writer, err error) {
	if err == nil {
		return
	}
	var ae *AdventError
	if errors.As(err, &ae) {
		fmt.Fprintf(w, "error_code: %s\n", ae.Code)
		fmt.Fprintln(w, ae.Msg)
	} else {
		fmt.Fprintln(w, err.Error())
	}
}
