// Inventory aggregate: a named set of items unique by case-folded description.
package types

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// MergeMode selects how AddItem treats a description that already exists.
type MergeMode string

// Supported merge modes.
const (
	// MergeAccumulate adds the incoming item's quantity to the existing item.
	MergeAccumulate MergeMode = "accumulate"
	// MergeIncrement adds a flat 1 regardless of the incoming quantity.
	MergeIncrement MergeMode = "increment"
)

// Inventory is a named collection of items. Lookups compare descriptions
// case-insensitively; at most one item exists per key.
type Inventory struct {
	name  string
	items map[string]*Item
	log   ChangeLog
	merge MergeMode
}

// Option configures an Inventory at construction.
type Option func(*Inventory)

// WithChangeLog routes mutation records to log.
func WithChangeLog(log ChangeLog) Option {
	return func(inv *Inventory) {
		if log != nil {
			inv.log = log
		}
	}
}

// WithMergeMode sets the duplicate-add behavior. An empty mode keeps the
// default (MergeAccumulate).
func WithMergeMode(mode MergeMode) Option {
	return func(inv *Inventory) {
		if mode != "" {
			inv.merge = mode
		}
	}
}

func newInventory(name string, opts ...Option) *Inventory {
	inv := &Inventory{
		name:  name,
		items: make(map[string]*Item),
		log:   NopChangeLog{},
		merge: MergeAccumulate,
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// NewInventory creates an empty inventory named name.
// Returns ErrInvalidName if name spans lines.
func NewInventory(name string, opts ...Option) (*Inventory, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	inv := newInventory(name, opts...)
	inv.log.Record(fmt.Sprintf("'%s' inventory created.", name))
	return inv, nil
}

// validateName rejects names the file format cannot hold on one line.
func validateName(name string) error {
	if strings.ContainsAny(name, "\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Decode builds an inventory from its persisted lines: the name line
// followed by description/quantity pairs. Returns ErrMalformedRecord if
// lines is empty or the pairs are malformed.
func Decode(lines []string, opts ...Option) (*Inventory, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: missing inventory name", ErrMalformedRecord)
	}
	if err := validateName(lines[0]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	inv := newInventory(lines[0], opts...)
	if err := inv.LoadFrom(lines[1:]); err != nil {
		return nil, err
	}
	return inv, nil
}

// keyFolder maps each rune to the lower case of its upper case. The mapping
// is one rune to one rune, so "ß" and "SS" stay distinct keys while "ς",
// "σ" and "Σ" share one.
var keyFolder = runes.Map(func(r rune) rune {
	return unicode.ToLower(unicode.ToUpper(r))
})

// keyOf normalizes a description for lookup.
func keyOf(description string) string {
	key, _, err := transform.String(keyFolder, description)
	if err != nil {
		return description
	}
	return key
}

// Name returns the inventory display label.
func (inv *Inventory) Name() string {
	return inv.name
}

// Len returns the number of distinct items.
func (inv *Inventory) Len() int {
	return len(inv.items)
}

// Note appends a line to the change log. Collaborators that act on the
// inventory as a whole, such as the file store, use it to record saves and
// loads.
func (inv *Inventory) Note(message string) {
	inv.log.Record(message)
}

// LoadFrom reads alternating description and quantity lines and adds each
// resulting item with AddItem merge semantics. Returns ErrMalformedRecord if
// a description has no quantity line, a quantity is not a non-negative
// decimal integer, or a description is invalid. On error the inventory is
// left exactly as it was.
func (inv *Inventory) LoadFrom(records []string) error {
	if len(records)%2 != 0 {
		return fmt.Errorf("%w: description %q has no quantity line",
			ErrMalformedRecord, records[len(records)-1])
	}

	staged := inv.clone()
	var messages []string
	for i := 0; i < len(records); i += 2 {
		qty, err := parseQuantity(records[i+1])
		if err != nil {
			return fmt.Errorf("%w: record %d: %w", ErrMalformedRecord, i/2+1, err)
		}
		item, err := NewItem(records[i], qty)
		if err != nil {
			return fmt.Errorf("%w: record %d: %w", ErrMalformedRecord, i/2+1, err)
		}
		msg, err := staged.addItem(item)
		if err != nil {
			return fmt.Errorf("%w: record %d: %w", ErrMalformedRecord, i/2+1, err)
		}
		messages = append(messages, msg)
	}

	inv.items = staged.items
	for _, msg := range messages {
		inv.log.Record(msg)
	}
	return nil
}

// parseQuantity accepts ASCII decimal digits only; signs and spaces are
// rejected.
func parseQuantity(s string) (int, error) {
	if s == "" {
		return 0, errors.New("empty quantity")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("quantity %q is not a non-negative integer", s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("quantity %q: %w", s, ErrQuantityOverflow)
	}
	return n, nil
}

// clone returns a deep copy that records nothing.
func (inv *Inventory) clone() *Inventory {
	c := newInventory(inv.name, WithMergeMode(inv.merge))
	for k, it := range inv.items {
		cp := *it
		c.items[k] = &cp
	}
	return c
}

// AddItem inserts item, or merges it into an existing item with the same
// key. In MergeAccumulate mode the existing quantity grows by
// item.Quantity(); in MergeIncrement mode it grows by 1. The only failure
// is ErrQuantityOverflow on merge.
func (inv *Inventory) AddItem(item *Item) error {
	msg, err := inv.addItem(item)
	if err != nil {
		return err
	}
	inv.log.Record(msg)
	return nil
}

func (inv *Inventory) addItem(item *Item) (string, error) {
	key := keyOf(item.description)
	existing, ok := inv.items[key]
	if !ok {
		cp := *item
		inv.items[key] = &cp
		return fmt.Sprintf("Added item '%s' with quantity %d to inventory.",
			item.description, item.quantity), nil
	}

	amount := item.quantity
	if inv.merge == MergeIncrement {
		amount = 1
	}
	if err := existing.Increase(amount); err != nil {
		return "", err
	}
	return fmt.Sprintf("Added %d to item '%s' due to prior existence.",
		amount, existing.description), nil
}

// lookup returns the item stored under key or ErrNotFound.
func (inv *Inventory) lookup(key string) (*Item, error) {
	it, ok := inv.items[keyOf(key)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return it, nil
}

// IncreaseItem adds amount to the item matching key.
// Returns ErrNotFound if no item matches, or the error from Item.Increase.
func (inv *Inventory) IncreaseItem(key string, amount int) error {
	it, err := inv.lookup(key)
	if err != nil {
		return err
	}
	if err := it.Increase(amount); err != nil {
		return err
	}
	inv.log.Record(fmt.Sprintf("Added %d to quantity of item '%s'.", amount, it.description))
	return nil
}

// DecreaseItem removes amount from the item matching key.
// Returns ErrNotFound if no item matches, or the error from Item.Decrease.
func (inv *Inventory) DecreaseItem(key string, amount int) error {
	it, err := inv.lookup(key)
	if err != nil {
		return err
	}
	if err := it.Decrease(amount); err != nil {
		return err
	}
	inv.log.Record(fmt.Sprintf("Removed %d from quantity of item '%s'.", amount, it.description))
	return nil
}

// RemoveItem deletes the item matching key.
// Returns ErrNotFound if no item matches.
func (inv *Inventory) RemoveItem(key string) error {
	it, err := inv.lookup(key)
	if err != nil {
		return err
	}
	delete(inv.items, keyOf(key))
	inv.log.Record(fmt.Sprintf("Removed item '%s' from inventory.", it.description))
	return nil
}

// ResetItem sets the quantity of the item matching key to zero.
// Returns ErrNotFound if no item matches.
func (inv *Inventory) ResetItem(key string) error {
	it, err := inv.lookup(key)
	if err != nil {
		return err
	}
	it.Reset()
	inv.log.Record(fmt.Sprintf("Reset item '%s' quantity to 0.", it.description))
	return nil
}

// ResetAll sets every item quantity to zero.
func (inv *Inventory) ResetAll() {
	for _, it := range inv.items {
		it.Reset()
	}
	inv.log.Record("Reset all item quantities to 0.")
}

// Clear removes all items.
func (inv *Inventory) Clear() {
	clear(inv.items)
	inv.log.Record(fmt.Sprintf("Removed all items from '%s' inventory.", inv.name))
}

// Search returns a copy of the item matching key. The boolean is false when
// no item matches; absence is not an error.
func (inv *Inventory) Search(key string) (*Item, bool) {
	it, ok := inv.items[keyOf(key)]
	if !ok {
		return nil, false
	}
	cp := *it
	return &cp, true
}

// ListAll yields (description, quantity) pairs ordered by key. Each call to
// the returned sequence walks the current contents afresh. Items removed
// during iteration are skipped.
func (inv *Inventory) ListAll() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		for _, k := range slices.Sorted(maps.Keys(inv.items)) {
			it, ok := inv.items[k]
			if !ok {
				// removed by the caller mid-iteration
				continue
			}
			if !yield(it.description, it.quantity) {
				return
			}
		}
	}
}

// Serialize returns the persisted form: the name line followed by a
// description line and a quantity line per item, in ListAll order.
func (inv *Inventory) Serialize() []string {
	lines := make([]string, 0, 1+2*len(inv.items))
	lines = append(lines, inv.name)
	for desc, qty := range inv.ListAll() {
		lines = append(lines, desc, strconv.Itoa(qty))
	}
	return lines
}
