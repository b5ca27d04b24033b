// Package errors provides structured error types for foilsweep.
//
// Every failure that crosses a package boundary carries a machine-readable
// [Code] so the CLI and library callers can branch on the category without
// string matching:
//
//   - GEOMETRY_NOT_FOUND: no coordinate provider resolved a name
//   - COORDINATE_PARSE: a coordinate file is malformed
//   - SOLVER_INVOCATION: one solver run failed or did not converge
//   - INVALID_*: input validation failures (sweep ranges, names, paths)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidSweep, "alpha step must be non-zero")
//	if errors.Is(err, errors.ErrCodeInvalidSweep) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeCoordinateParse, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidName   Code = "INVALID_NAME"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidSweep  Code = "INVALID_SWEEP"

	// Geometry errors
	ErrCodeGeometryNotFound Code = "GEOMETRY_NOT_FOUND"
	ErrCodeCoordinateParse  Code = "COORDINATE_PARSE"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Solver errors
	ErrCodeSolverInvocation Code = "SOLVER_INVOCATION"
	ErrCodeSolverMissing    Code = "SOLVER_MISSING"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// NotFoundError reports that no coordinate provider could resolve Name.
// Tried lists the providers consulted, in order.
type NotFoundError struct {
	Name  string
	Tried []string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if len(e.Tried) == 0 {
		return fmt.Sprintf("airfoil %q had no coordinates assigned", e.Name)
	}
	return fmt.Sprintf("airfoil %q had no coordinates assigned (tried %v)", e.Name, e.Tried)
}

// Code returns the error code for this error type.
func (e *NotFoundError) Code() Code {
	return ErrCodeGeometryNotFound
}

// GeometryNotFound builds the coded error returned when resolution fails.
func GeometryNotFound(name string, tried []string) *Error {
	nf := &NotFoundError{Name: name, Tried: tried}
	return Wrap(ErrCodeGeometryNotFound, nf, "no provider resolved %q", name)
}
