// Package errors provides structured error types for graphkit.
//
// Every failure raised by the graph engine carries one of three codes so
// callers can branch on the kind of failure instead of its message:
//
//   - INVALID_ARGUMENTS: malformed call shape (bad arity, non-map attributes,
//     malformed serialized payloads)
//   - NOT_FOUND: a node or edge key that does not exist
//   - USAGE: a well-formed call that violates the graph's configuration
//     (wrong edge type, disallowed self-loop, duplicate edge, key collision)
//
// The remaining codes are used by the I/O, rendering and serving layers.
//
// # Usage
//
//	_, err := g.AddEdge("a", "b", nil)
//	if errors.Is(err, errors.ErrCodeNotFound) {
//	    // one endpoint is missing
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Engine error codes.
const (
	ErrCodeInvalidArguments Code = "INVALID_ARGUMENTS"
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeUsage            Code = "USAGE"
)

// Outer layer error codes.
const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidKey    Code = "INVALID_KEY"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"
	ErrCodeNetwork       Code = "NETWORK_ERROR"
	ErrCodeInternal      Code = "INTERNAL_ERROR"
	ErrCodeUnsupported   Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
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

// InvalidArguments is shorthand for New(ErrCodeInvalidArguments, ...).
func InvalidArguments(format string, args ...any) *Error {
	return New(ErrCodeInvalidArguments, format, args...)
}

// NotFound is shorthand for New(ErrCodeNotFound, ...).
func NotFound(format string, args ...any) *Error {
	return New(ErrCodeNotFound, format, args...)
}

// Usage is shorthand for New(ErrCodeUsage, ...).
func Usage(format string, args ...any) *Error {
	return New(ErrCodeUsage, format, args...)
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

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
