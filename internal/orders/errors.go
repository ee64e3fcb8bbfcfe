package orders

import "errors"

var (
	// ErrNotFound is returned for lookups of a missing order, and for
	// owner-scoped operations on an order the caller does not own.
	ErrNotFound = errors.New("order not found")
	// ErrValidation is returned for an invalid checkout request; no order
	// is created.
	ErrValidation = errors.New("validation failed")
	// ErrNotCancellable is returned when a customer tries to cancel an
	// order that is no longer pending.
	ErrNotCancellable = errors.New("order can no longer be cancelled")
)
