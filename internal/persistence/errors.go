package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicateKey is returned when an insert collides with a natural key.
	ErrDuplicateKey = errors.New("persistence: duplicate key")
	// ErrReferenceNotFound is returned when a row references a session or
	// participant that does not exist.
	ErrReferenceNotFound = errors.New("persistence: referenced record not found")
)
