// Shared helpers for stockroom CLI commands.
package cli

import (
	"fmt"
	"strconv"

	"github.com/mesh-intelligence/stockroom/internal/auditlog"
	"github.com/mesh-intelligence/stockroom/internal/paths"
	"github.com/mesh-intelligence/stockroom/internal/store"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// openChangeLog opens the configured change log. The caller must Close it.
func openChangeLog() (auditlog.Log, error) {
	changes, err := auditlog.Open(settings)
	if err != nil {
		return nil, fmt.Errorf("open change log: %w", err)
	}
	return changes, nil
}

// inventoryOptions returns the construction options for the current settings.
func inventoryOptions(changes types.ChangeLog) []types.Option {
	return []types.Option{
		types.WithChangeLog(changes),
		types.WithMergeMode(settings.MergeMode),
	}
}

// withInventory loads the inventory file, runs fn, and saves the result
// when save is true. The change log is open for the duration.
func withInventory(file string, save bool, fn func(inv *types.Inventory) error) error {
	changes, err := openChangeLog()
	if err != nil {
		return err
	}
	defer changes.Close()

	path := paths.ResolveInventoryFile(settings.DataDir, file)
	inv, err := store.Load(path, inventoryOptions(changes)...)
	if err != nil {
		return err
	}

	if err := fn(inv); err != nil {
		return err
	}
	if !save {
		return nil
	}
	return store.SaveFile(inv, path)
}

// parseAmount parses a quantity or amount argument.
func parseAmount(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: must be a whole number", arg)
	}
	return n, nil
}
