package store

import (
	"errors"
	"fmt"
)

// ValidationError is returned when input fails a precondition the store
// enforces itself, such as an empty type list.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError is returned when a pokemon id doesn't match any row.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("pokemon %d not found", e.ID)
}

// PersistenceError wraps a failure of the underlying database, including
// context cancellation and deadline expiry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsValidation returns a boolean indicating whether the error is a validation error.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsNotFound returns a boolean indicating whether the error is a not found error.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsPersistence returns a boolean indicating whether the error came from the database.
func IsPersistence(err error) bool {
	var e *PersistenceError
	return errors.As(err, &e)
}

func persistenceErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}
