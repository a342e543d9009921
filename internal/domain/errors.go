package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("entity not found")
	ErrIntegrityViolation = errors.New("integrity violation")
)

// NotFoundError names the missing row. It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func NewNotFoundError(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}
