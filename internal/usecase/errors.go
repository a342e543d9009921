package usecase

import (
	"errors"
	"fmt"

	"catalog_service/internal/domain"
)

// ResourceNotFoundError means the requested id is absent from the store.
type ResourceNotFoundError struct {
	Msg string
	Err error
}

func (e *ResourceNotFoundError) Error() string { return e.Msg }
func (e *ResourceNotFoundError) Unwrap() error { return e.Err }

// DatabaseError means the store rejected a write because of a constraint.
type DatabaseError struct {
	Msg string
	Err error
}

func (e *DatabaseError) Error() string { return e.Msg }
func (e *DatabaseError) Unwrap() error { return e.Err }

type FieldMessage struct {
	FieldName string `json:"fieldName"`
	Message   string `json:"message"`
}

// ValidationError carries one message per rejected field.
type ValidationError struct {
	Msg    string
	Errors []FieldMessage
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s %s", e.Msg, e.Errors[0].FieldName, e.Errors[0].Message)
}

func (e *ValidationError) AddError(field, message string) {
	e.Errors = append(e.Errors, FieldMessage{FieldName: field, Message: message})
}

func NewValidationError(field, message string) *ValidationError {
	v := &ValidationError{Msg: "Validation error"}
	v.AddError(field, message)
	return v
}

// translateWriteError turns the store's sentinel errors for a write on id into
// the caller-facing kinds. A missing referenced row of another entity keeps its
// own name in the message.
func translateWriteError(err error, entity string, id int64) error {
	var nf *domain.NotFoundError
	switch {
	case errors.As(err, &nf) && nf.Entity != entity:
		return &ResourceNotFoundError{Msg: fmt.Sprintf("%s not found: id %d", capitalize(nf.Entity), nf.ID), Err: err}
	case errors.Is(err, domain.ErrNotFound):
		return &ResourceNotFoundError{Msg: fmt.Sprintf("Id not found %d", id), Err: err}
	case errors.Is(err, domain.ErrIntegrityViolation):
		return &DatabaseError{Msg: "Integrity violation", Err: err}
	default:
		return err
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
