package library

import "errors"

var (
	// ErrNotFound is returned when an index or id does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrEmptyName is returned when a name or title is blank.
	ErrEmptyName = errors.New("name must not be empty")
	// ErrInvalidFormat is returned when imported data is not a library.
	ErrInvalidFormat = errors.New("invalid file format")
)
