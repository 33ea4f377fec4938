// Package dErrors provides coded domain errors. Services return these instead
// of transport errors so handlers can map codes to HTTP statuses in one place.
package dErrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error for transport mapping and retry decisions.
type Code string

const (
	CodeBadRequest          Code = "bad_request"
	CodeValidation          Code = "validation"
	CodeInvalidInput        Code = "invalid_input"
	CodeMissingConsent      Code = "missing_consent"
	CodeNotFound            Code = "not_found"
	CodeConflict            Code = "conflict"
	CodeProviderUnavailable Code = "provider_unavailable"
	CodeInvariantViolation  Code = "invariant_violation"
	CodeInternal            Code = "internal"
)

// FieldViolation carries field-level validation detail back to the caller.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Error is a domain error with a code, an operator-facing message, and
// optional field violations for validation failures.
type Error struct {
	Code       Code
	Message    string
	Violations []FieldViolation
	cause      error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates an underlying error with a domain code. A nil err returns nil.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// WithViolations attaches field violations to a validation error.
func (e *Error) WithViolations(violations ...FieldViolation) *Error {
	e.Violations = append(e.Violations, violations...)
	return e
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the domain code from err, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ViolationsOf extracts field violations from err, if any.
func ViolationsOf(err error) []FieldViolation {
	var de *Error
	if errors.As(err, &de) {
		return de.Violations
	}
	return nil
}

// IsRetryable reports whether the caller may retry the operation. Only
// provider outages qualify; validation and conflict errors never do.
func IsRetryable(err error) bool {
	return HasCode(err, CodeProviderUnavailable)
}
