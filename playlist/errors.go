package playlist

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures across the generation, resolution and export steps.
type ErrorKind string

const (
	GenerationError    ErrorKind = "generation_error"
	NoMatch            ErrorKind = "no_match"
	ServiceUnavailable ErrorKind = "service_unavailable"
	ExportFailed       ErrorKind = "export_failed"
	ValidationError    ErrorKind = "validation_error"
)

// Error is a typed failure carrying its kind and the underlying cause.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with the given kind.
func NewError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Validationf builds a ValidationError from a formatted message.
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: ValidationError, Err: fmt.Errorf(format, args...)}
}

// IsKind reports whether err is, or wraps, an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
