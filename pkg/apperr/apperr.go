// Package apperr defines a small, composable error model with canonical
// codes, an optional HTTP status, and fluent helpers for building
// structured errors returned by the client packages.
package apperr

import (
	"errors"
	"fmt"
)

// Suggestion is a per-field hint attached to validation errors.
type Suggestion struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is the canonical error shape returned across the module.
type AppError struct {
	Code        string       `json:"code"`
	Message     string       `json:"message"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
	// HTTPStatus is the status code observed on the wire, when one exists.
	HTTPStatus int   `json:"status,omitempty"`
	cause      error `json:"-"`
}

// New creates a new AppError from an ErrorCode.
func New(ec *ErrorCode) *AppError {
	if ec == nil {
		ec = ErrorCodeInternal
	}
	return &AppError{
		Code:       ec.Code(),
		Message:    ec.Message(),
		HTTPStatus: ec.HTTPStatus(),
	}
}

// Newf creates an AppError with a formatted message.
func Newf(ec *ErrorCode, format string, args ...any) *AppError {
	a := New(ec)
	a.Message = fmt.Sprintf(format, args...)
	return a
}

// FromError returns err as an AppError, wrapping unknown errors as internal.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return New(ErrorCodeInternal).Wrap(err)
}

// AddSuggestion appends a field suggestion (fluent).
func (a *AppError) AddSuggestion(field, message string) *AppError {
	if a == nil {
		a = New(ErrorCodeInternal)
	}
	a.Suggestions = append(a.Suggestions, Suggestion{
		Field:   field,
		Message: message,
	})
	return a
}

func (a *AppError) Error() string {
	if a == nil {
		return "<nil>"
	}
	if a.cause != nil {
		return fmt.Sprintf("%s: %v", a.Message, a.cause)
	}
	return a.Message
}

// WithStatus sets the HTTP status and returns the same AppError for chaining.
func (a *AppError) WithStatus(status int) *AppError {
	if a == nil {
		return New(ErrorCodeInternal).WithStatus(status)
	}
	a.HTTPStatus = status
	return a
}

// WithMessage overrides the message and returns the same AppError for chaining.
func (a *AppError) WithMessage(msg string) *AppError {
	if a == nil {
		return New(ErrorCodeInternal).WithMessage(msg)
	}
	a.Message = msg
	return a
}

// Wrap sets the underlying cause and returns the same AppError.
func (a *AppError) Wrap(err error) *AppError {
	if a == nil {
		a = New(ErrorCodeInternal)
	}
	a.cause = err
	return a
}

// Unwrap returns the underlying cause, allowing errors.Unwrap/Is/As to work.
func (a *AppError) Unwrap() error { return a.cause }

// Is reports whether target is an AppError with the same code, so
// package-level sentinels match any instance of their kind.
func (a *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok || a == nil || t == nil {
		return false
	}
	return a.Code == t.Code
}

// HasCode reports whether err is, or wraps, an AppError built from ec.
func HasCode(err error, ec *ErrorCode) bool {
	if ec == nil {
		return false
	}
	var ae *AppError
	if !errors.As(err, &ae) {
		return false
	}
	return ae.Code == ec.Code()
}

// HasError returns true if the error is not nil and is not an empty AppError.
func HasError(err error) bool {
	if err == nil {
		return false
	}
	if ae, ok := err.(*AppError); ok {
		return ae.Code != "" || ae.Message != ""
	}
	return true
}

// HasErrors returns true if the AppError has a code, message, or suggestions.
func (a *AppError) HasErrors() bool {
	if a == nil {
		return false
	}
	return a.Code != "" || a.Message != "" || len(a.Suggestions) > 0
}
