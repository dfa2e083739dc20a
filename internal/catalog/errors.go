// internal/catalog/errors.go
package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors for the catalog. The typed errors below match them with errors.Is.
var (
	ErrNotFound       = errors.New("book not found")
	ErrInvalidStatus  = errors.New("invalid book status")
	ErrInvalidField   = errors.New("invalid book field")
	ErrValidation     = errors.New("validation failed")
	ErrInvalidCommand = errors.New("invalid command usage")
)

// NotFoundError reports a missing book id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("book with id %s not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvalidStatusError reports a status outside the known set.
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid book status %q", e.Status)
}

func (e *InvalidStatusError) Is(target error) bool {
	return target == ErrInvalidStatus
}

// InvalidFieldError reports a search on an unknown field.
type InvalidFieldError struct {
	Field string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid book field %q", e.Field)
}

func (e *InvalidFieldError) Is(target error) bool {
	return target == ErrInvalidField
}

// ValidationError represents a rejected input value.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}
