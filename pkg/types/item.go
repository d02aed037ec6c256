// Item entity: a description with a non-negative quantity.
package types

import (
	"fmt"
	"math"
	"strings"
)

// Item is a description/quantity record tracked by an Inventory.
// The description is fixed at construction; only the quantity changes.
type Item struct {
	description string
	quantity    int
}

// NewItem creates an item with the given description and quantity.
// Returns ErrInvalidQuantity if quantity is negative and
// ErrInvalidDescription if the description is empty or spans lines.
func NewItem(description string, quantity int) (*Item, error) {
	if description == "" || strings.ContainsAny(description, "\r\n") {
		return nil, ErrInvalidDescription
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	return &Item{description: description, quantity: quantity}, nil
}

// Description returns the item description as it was first entered.
func (i *Item) Description() string {
	return i.description
}

// Quantity returns the current count.
func (i *Item) Quantity() int {
	return i.quantity
}

// Increase adds amount to the quantity.
// Returns ErrInvalidAmount if amount is negative.
func (i *Item) Increase(amount int) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	if amount > math.MaxInt-i.quantity {
		return ErrQuantityOverflow
	}
	i.quantity += amount
	return nil
}

// Decrease removes amount from the quantity.
// Returns ErrInvalidAmount if amount is negative and
// ErrInsufficientQuantity if amount exceeds the current quantity.
// The quantity is unchanged on error.
func (i *Item) Decrease(amount int) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	if amount > i.quantity {
		return ErrInsufficientQuantity
	}
	i.quantity -= amount
	return nil
}

// Reset sets the quantity to zero.
func (i *Item) Reset() {
	i.quantity = 0
}

// String renders the two-line form used by search results.
func (i *Item) String() string {
	return fmt.Sprintf("Item info: %s\nQuantity: %d", i.description, i.quantity)
}
