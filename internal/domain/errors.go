package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
	ErrGone          = errors.New("gone")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
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

// Fields returns the names of all offending fields in order, without duplicates.
func (e *ValidationError) Fields() []string {
	seen := make(map[string]bool, len(e.Errors))
	out := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		if seen[fe.Field] {
			continue
		}
		seen[fe.Field] = true
		out = append(out, fe.Field)
	}
	return out
}

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

// MissingFieldsError reports required envelope fields that were left empty.
// It is a ValidationError whose entries all carry the message "required".
func MissingFieldsError(fieldIDs []string) *ValidationError {
	errs := make([]FieldError, len(fieldIDs))
	for i, id := range fieldIDs {
		errs[i] = FieldError{Field: id, Message: "required"}
	}
	return &ValidationError{Errors: errs}
}

// MissingFieldIDs extracts the field ids of "required" entries from err.
// Returns nil if err is not a ValidationError.
func MissingFieldIDs(err error) []string {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return nil
	}
	var ids []string
	for _, fe := range ve.Errors {
		if strings.EqualFold(fe.Message, "required") {
			ids = append(ids, fe.Field)
		}
	}
	return ids
}
