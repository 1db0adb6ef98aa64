// Package errors provides structured error types for freqplot.
//
// This package defines error codes and types that enable:
//   - Consistent error handling between the pipeline and the CLI
//   - Machine-readable error codes for programmatic handling
//   - User-facing remediation hints for environment problems
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The codes mirror the failure taxonomy of the chart pipeline:
//   - IO_ERROR: an input file cannot be opened or its stream fails
//   - PARSE_ERROR: the integer dataset is missing or malformed
//   - ROW_SKIPPED: a coordinate row was dropped (never fatal)
//   - RENDER_IO_ERROR: a rendered chart cannot be written
//   - INVALID_*: option and configuration validation failures
//   - INTERNAL_ERROR: unexpected encoder or rasterizer failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeParse, "column %d: %q is not a non-negative integer", col, field)
//	if errors.Is(err, errors.ErrCodeParse) {
//	    // Handle malformed input
//	}
//
//	// Wrap existing errors and attach a hint
//	err := errors.Wrap(errors.ErrCodeRenderIO, origErr, "write %s", path).
//	    WithHint("ensure the output directory exists")
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeIO    Code = "IO_ERROR"
	ErrCodeParse Code = "PARSE_ERROR"

	// Recoverable row-level problem in the coordinate dataset
	ErrCodeRowSkipped Code = "ROW_SKIPPED"

	// Output errors
	ErrCodeRenderIO Code = "RENDER_IO_ERROR"

	// Validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Hint    string // Remediation hint shown to the user (optional)
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.Hint != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Hint)
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithHint attaches a remediation hint and returns the same error.
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetHint returns the first remediation hint found in the error chain.
func GetHint(err error) string {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return ""
		}
		if e.Hint != "" {
			return e.Hint
		}
		err = e.Cause
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message (and hint) without the code prefix.
// Context added around an *Error with fmt.Errorf("stage: %w") is kept.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}

	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %s", msg, UserMessage(e.Cause))
	}
	if e.Hint != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Hint)
	}

	if full, inner := err.Error(), e.Error(); full != inner {
		if i := strings.Index(full, inner); i > 0 {
			msg = full[:i] + msg
		}
	}
	return msg
}
