package tree

import "errors"

var (
	// ErrNotFound is returned when a mutation references an id that does not resolve
	ErrNotFound = errors.New("not found")
	// ErrCapacityExceeded is returned when a room is already at capacity for its type
	ErrCapacityExceeded = errors.New("room capacity exceeded")
	// ErrValidation is returned for a missing or invalid required field
	ErrValidation = errors.New("validation failed")
)
