package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every layer.
var (
	ErrNotFound       = errors.New("entry not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrValidation     = errors.New("validation error")
	ErrUnavailable    = errors.New("storage unavailable")
)

// FieldError describes a rule violation on a single field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError carries every violated field of one request.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Messages returns the human readable messages in field order.
func (e *ValidationError) Messages() []string {
	out := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		out = append(out, fe.Message)
	}
	return out
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}
