package repositories

import "errors"

var (
	// ErrNotFound is returned when no record matches the given identifier or key.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidID is returned when an identifier is not syntactically valid for the store.
	ErrInvalidID = errors.New("invalid identifier")
	// ErrDuplicate is returned when a unique constraint would be violated.
	ErrDuplicate = errors.New("duplicate record")
)
