package store

import (
	"errors"
)

// Common store errors used across all store implementations.
var (
	// ErrDuplicate is returned when an operation would violate a unique constraint.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when the database rejects a row because it
	// violates a NOT NULL, CHECK or foreign key constraint.
	ErrInvalidEntity = errors.New("invalid entity")
)

// Error is a storage failure tagged with a classification.
//
// Its message is the driver's error text unchanged: clients receive it verbatim,
// so the classification is only observable through errors.Is.
type Error struct {
	Kind error // ErrDuplicate, ErrInvalidEntity, or nil when unclassified
	Err  error // Original driver error
}

// NewError tags err with kind. It returns nil when err is nil.
func NewError(kind error, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// Error implements the error interface and returns the driver's message.
func (e *Error) Error() string {
	return e.Err.Error()
}

// Unwrap exposes both the classification and the original error to errors.Is/errors.As.
func (e *Error) Unwrap() []error {
	if e.Kind == nil {
		return []error{e.Err}
	}
	return []error{e.Kind, e.Err}
}

// IsDuplicateError checks if the error is a unique constraint violation.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// IsConstraintError checks if the error is any constraint violation the
// database reported for a single row.
func IsConstraintError(err error) bool {
	return errors.Is(err, ErrDuplicate) || errors.Is(err, ErrInvalidEntity)
}
