// Output formatting for inventories, items and change history.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/mesh-intelligence/stockroom/internal/auditlog"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// lineWidth is the width of the inventory table.
const lineWidth = 80

const (
	msgNoItems  = "There are currently no items in the inventory."
	msgNotFound = "Item could not be found in the inventory."
)

// itemView is the JSON form of an item.
type itemView struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

// inventoryView is the JSON form of an inventory.
type inventoryView struct {
	Name  string     `json:"name"`
	Items []itemView `json:"items"`
}

func newInventoryView(inv *types.Inventory) inventoryView {
	view := inventoryView{Name: inv.Name(), Items: []itemView{}}
	for desc, qty := range inv.ListAll() {
		view.Items = append(view.Items, itemView{Description: desc, Quantity: qty})
	}
	return view
}

// renderTable writes the inventory as a fixed-width table: the name centred
// in a banner of '=', a header, a rule, and one row per item.
func renderTable(w io.Writer, inv *types.Inventory) {
	if inv.Len() == 0 {
		fmt.Fprintln(w, msgNoItems)
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintln(w, banner(inv.Name()))
	fmt.Fprintf(w, "%-40s%40s\n", "ITEM", "QUANTITY")
	fmt.Fprintln(w, strings.Repeat("-", lineWidth))
	for desc, qty := range inv.ListAll() {
		fmt.Fprintf(w, "%-40s%40d\n", desc, qty)
	}
	fmt.Fprintln(w)
}

// banner centres name in a lineWidth-wide run of '='. Odd leftovers go on
// the right.
func banner(name string) string {
	pad := lineWidth - utf8.RuneCountInString(name)
	if pad < 0 {
		pad = 0
	}
	left := pad / 2
	return strings.Repeat("=", left) + name + strings.Repeat("=", pad-left)
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// renderInventory writes inv as JSON or as a table depending on --json.
func renderInventory(w io.Writer, inv *types.Inventory) error {
	if flags.jsonMode {
		return writeJSON(w, newInventoryView(inv))
	}
	renderTable(w, inv)
	return nil
}

// renderSearch writes a search result. item is nil when nothing matched.
func renderSearch(w io.Writer, item *types.Item) error {
	if flags.jsonMode {
		if item == nil {
			return writeJSON(w, nil)
		}
		return writeJSON(w, itemView{Description: item.Description(), Quantity: item.Quantity()})
	}
	if item == nil {
		fmt.Fprintln(w, msgNotFound)
		return nil
	}
	fmt.Fprintf(w, "Item found: \n%s\n", item)
	return nil
}

// renderHistory writes change log entries, newest first.
func renderHistory(w io.Writer, entries []auditlog.Entry) error {
	if flags.jsonMode {
		if entries == nil {
			entries = []auditlog.Entry{}
		}
		return writeJSON(w, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "No changes recorded.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Message)
	}
	return nil
}
