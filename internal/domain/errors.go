// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrInvalidID is returned when a task ID in a request path is not an integer.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidFormat is returned when a request body cannot be decoded into
	// the expected shape.
	ErrInvalidFormat = errors.New("invalid format")
)
