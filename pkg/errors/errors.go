// Package errors provides structured error types for coursefinder.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, TUI and web dashboard
//   - Machine-readable error codes for programmatic handling
//   - User-friendly banner messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The catalog taxonomy maps onto three codes:
//   - NETWORK_ERROR: connection or transport failure
//   - HTTP_ERROR: the catalog answered with a non-2xx status
//   - PARSE_ERROR: malformed JSON or an unexpected response shape
//
// A 404 carries NOT_FOUND instead of HTTP_ERROR but still wraps an
// [HTTPError], so [IsHTTP] holds for both.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "invalid semester: %s", code)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "GET %s", url)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidSemester Code = "INVALID_SEMESTER"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Catalog errors
	ErrCodeNetwork  Code = "NETWORK_ERROR"
	ErrCodeHTTP     Code = "HTTP_ERROR"
	ErrCodeParse    Code = "PARSE_ERROR"
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
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
// For *Error types, returns the message without the code prefix, followed
// by the HTTP status when one is known.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		var he *HTTPError
		if errors.As(err, &he) {
			return fmt.Sprintf("%s (%d %s)", e.Message, he.StatusCode, http.StatusText(he.StatusCode))
		}
		return e.Message
	}
	return err.Error()
}

// HTTPError describes a non-2xx response from the catalog.
type HTTPError struct {
	StatusCode int
	URL        string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// IsHTTP reports whether err wraps an [HTTPError].
func IsHTTP(err error) bool {
	var he *HTTPError
	return errors.As(err, &he)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}
