package repositories

import "errors"

var (
	// ErrNotFound is returned when no document matches the lookup.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when an insert violates the unique
	// email index, whether detected by a pre-check or by a racing insert.
	ErrDuplicateEmail = errors.New("email already registered")
)
