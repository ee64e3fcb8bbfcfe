package catalog

import "errors"

var (
	// ErrNotFound is returned for lookups of a missing product identifier.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned for incomplete or invalid product input;
	// nothing is committed when it is returned.
	ErrValidation = errors.New("validation failed")
)
