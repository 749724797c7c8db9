// Package domainerrors defines the error vocabulary shared by services and the
// HTTP layer. Services return these; transport translates them to status codes
// without inspecting error strings.
package domainerrors

import "fmt"

// Code identifies a class of failure independent of transport.
type Code string

const (
	CodeBadRequest       Code = "bad_request"
	CodeValidation       Code = "validation_error"
	CodeNotFound         Code = "not_found"
	CodeInsufficientData Code = "insufficient_data"
	CodeInternal         Code = "internal_error"
)

// Error carries a code plus a human-readable description. The description of
// internal errors is never surfaced to clients.
type Error struct {
	Code    Code
	Message string
	wrapped error
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches an underlying cause while keeping the domain code.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, wrapped: err}
}

func (e *Error) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.wrapped
}

// CodeOf extracts the domain code from err, defaulting to internal.
func CodeOf(err error) Code {
	if de, ok := err.(*Error); ok {
		return de.Code
	}
	return CodeInternal
}
