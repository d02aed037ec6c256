// Package types defines the Item and Inventory entities, the ChangeLog
// interface, configuration, and standard errors for Stockroom.
//
// An Inventory is a named collection of items keyed by case-folded
// description. Adding an item whose description already exists merges the
// quantities instead of creating a second record. Quantities never go below
// zero; operations that would violate that return ErrInvalidQuantity,
// ErrInvalidAmount or ErrInsufficientQuantity and leave the item unchanged.
package types
