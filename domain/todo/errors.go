package todo

import "errors"

var (
	// ErrNotFound is returned when no todo has the requested identifier.
	ErrNotFound = errors.New("todo not found")

	// ErrStorageUnavailable is returned when the backing store cannot serve the operation.
	ErrStorageUnavailable = errors.New("todo storage unavailable")
)
