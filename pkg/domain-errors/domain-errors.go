package domainerrors

import (
	"errors"
	"strings"
)

// Code is a registry-level error category. Codes describe what went wrong in
// domain terms so adapters can map them without string matching.
type Code string

const (
	CodeValidation   Code = "validation_failed"
	CodeInvalidInput Code = "invalid_input"
	CodeNotFound     Code = "not_found"
	CodeInvalidState Code = "invalid_state"
	CodeConflict     Code = "conflict"
	CodeInternal     Code = "internal_error"
)

// Error carries a stable code, a human message and an optional cause.
type Error struct {
	Code    Code
	Message string
	// Details holds per-field or per-rule messages for validation failures.
	Details []string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches domain errors by code so callers can write
// errors.Is(err, domainerrors.New(CodeValidation, "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a domain error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Validation builds a CodeValidation error that keeps every violation.
// The message joins the details so logs stay readable.
func Validation(details ...string) error {
	if len(details) == 0 {
		return &Error{Code: CodeValidation, Message: "validation failed"}
	}
	return &Error{
		Code:    CodeValidation,
		Message: strings.Join(details, "; "),
		Details: append([]string(nil), details...),
	}
}

// Wrap attaches a code and message to err. An existing domain code wins.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Message: msg, Details: existing.Details, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode reports whether err is a domain error carrying code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// DetailsOf returns the validation details attached to err, if any.
func DetailsOf(err error) []string {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}
