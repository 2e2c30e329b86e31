package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrContentDefect marks a gap in authored material: a catalog that fails
	// validation, or an introduction step no generator can serve.
	ErrContentDefect = errors.New("content defect")

	// ErrPrecondition marks a caller or programmer error, e.g. asking the
	// sampler for more items than it has.
	ErrPrecondition = errors.New("precondition violated")

	// ErrInvalidState marks a grade that is not applicable to an atom's
	// current retention state.
	ErrInvalidState = errors.New("invalid retention state")

	// ErrExhausted means neither a review nor an introduction is available.
	ErrExhausted = errors.New("no activity available")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError contains a list of field-level validation errors.
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

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// ContentError describes a single problem found in a language's catalog.
type ContentError struct {
	Lang   string
	Where  string
	Reason string
}

// ContentDefectError collects every problem found while validating a catalog
// so authors can fix them in one pass.
type ContentDefectError struct {
	Problems []ContentError
}

func (e *ContentDefectError) Error() string {
	if len(e.Problems) == 1 {
		p := e.Problems[0]
		return fmt.Sprintf("content defect [%s] %s: %s", p.Lang, p.Where, p.Reason)
	}
	return fmt.Sprintf("content defect: %d problems", len(e.Problems))
}

func (e *ContentDefectError) Unwrap() error { return ErrContentDefect }
