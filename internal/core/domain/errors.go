package domain

import "fmt"

// FieldError describes a structural problem with a single field of a domain
// entity. Services wrap it with apperrors.ErrValidation before returning it
// to callers.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewFieldError builds a FieldError for the given field.
func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}
