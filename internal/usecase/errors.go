package usecase

import (
	"errors"
	"fmt"

	"movies-service/pkg/utils"
)

var (
	// ErrNotFound matches every *NotFoundError.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput marks malformed ids or filters.
	ErrInvalidInput = errors.New("invalid input")
	// ErrAlreadyExists matches every *DuplicateError.
	ErrAlreadyExists = errors.New("already exists")
)

// NotFoundError reports an update aimed at an id that does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found for the given %s ID %s", e.Entity, e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DuplicateError reports a create whose supplied id is already taken.
type DuplicateError struct {
	Entity string
	ID     string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s already exists for the given %s ID %s", e.Entity, e.Entity, e.ID)
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ValidationError carries the sorted constraint-violation messages of a
// rejected payload.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return utils.FormatValidationErrors(e.Messages)
}

func validate(data any) error {
	if msgs := utils.ValidateStruct(data); len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}
