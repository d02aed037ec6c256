package types

import "errors"

// Item invariant errors. These are reported to the immediate caller; the
// quantity is never clamped.
var (
	ErrInvalidQuantity      = errors.New("quantity must not be negative")
	ErrInvalidAmount        = errors.New("amount must not be negative")
	ErrInsufficientQuantity = errors.New("cannot remove more items than exist")
	ErrQuantityOverflow     = errors.New("quantity out of range")
	ErrInvalidDescription   = errors.New("description must be a non-empty single line")
)

// Inventory operation errors.
var (
	ErrNotFound        = errors.New("item not found")
	ErrInvalidName     = errors.New("inventory name must be a single line")
	ErrMalformedRecord = errors.New("malformed inventory record")
	ErrIOFailure       = errors.New("storage unavailable")
)
