// Item commands: each loads an inventory file, applies one operation, and
// writes the file back.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/paths"
	"github.com/mesh-intelligence/stockroom/internal/store"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func newNewCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "new <file> <name>",
		Short: "Create an empty inventory file",
		Long: `Create an empty inventory called <name> and save it as <file>. Bare file
names are placed in the data directory.`,
		Example: `  stockroom new warehouse.inv "Main Warehouse"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := paths.ResolveInventoryFile(settings.DataDir, args[0])
			if store.Exists(path) && !force {
				return fmt.Errorf("%s already exists (use --force to replace it)", path)
			}

			changes, err := openChangeLog()
			if err != nil {
				return err
			}
			defer changes.Close()

			inv, err := types.NewInventory(args[1], inventoryOptions(changes)...)
			if err != nil {
				return err
			}
			if err := store.SaveFile(inv, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created inventory %q in %s\n", inv.Name(), path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing file")
	return cmd
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <file> <description> [quantity]",
		Short: "Add an item, or add to it if it already exists",
		Long: `Add an item with the given quantity (default 0). If an item with the same
description exists, ignoring case, its quantity grows instead.`,
		Example: `  stockroom add warehouse.inv "Hex bolt" 10`,
		Args:    cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty := 0
			if len(args) == 3 {
				n, err := parseAmount(args[2])
				if err != nil {
					return err
				}
				qty = n
			}
			item, err := types.NewItem(args[1], qty)
			if err != nil {
				return err
			}
			return withInventory(args[0], true, func(inv *types.Inventory) error {
				if err := inv.AddItem(item); err != nil {
					return err
				}
				found, _ := inv.Search(item.Description())
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", found.Description(), found.Quantity())
				return nil
			})
		},
	}
}

// newAdjustCmd builds the increase and decrease commands.
func newAdjustCmd(use, short string, apply func(inv *types.Inventory, key string, amount int) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <file> <key> <amount>",
		Short: short,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[2])
			if err != nil {
				return err
			}
			return withInventory(args[0], true, func(inv *types.Inventory) error {
				if err := apply(inv, args[1], amount); err != nil {
					return err
				}
				found, _ := inv.Search(args[1])
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", found.Description(), found.Quantity())
				return nil
			})
		},
	}
}

func newIncreaseCmd() *cobra.Command {
	return newAdjustCmd("increase", "Add to the quantity of an existing item",
		func(inv *types.Inventory, key string, amount int) error {
			return inv.IncreaseItem(key, amount)
		})
}

func newDecreaseCmd() *cobra.Command {
	return newAdjustCmd("decrease", "Remove from the quantity of an existing item",
		func(inv *types.Inventory, key string, amount int) error {
			return inv.DecreaseItem(key, amount)
		})
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <file> <key>",
		Short: "Remove an item from the inventory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInventory(args[0], true, func(inv *types.Inventory) error {
				if err := inv.RemoveItem(args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[1])
				return nil
			})
		},
	}
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <file> <key>",
		Short: "Set the quantity of an item to zero",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInventory(args[0], true, func(inv *types.Inventory) error {
				if err := inv.ResetItem(args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reset %s to 0\n", args[1])
				return nil
			})
		},
	}
}

func newResetAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-all <file>",
		Short: "Set every item quantity to zero",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInventory(args[0], true, func(inv *types.Inventory) error {
				inv.ResetAll()
				fmt.Fprintf(cmd.OutOrStdout(), "Reset %d items to 0\n", inv.Len())
				return nil
			})
		},
	}
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <file>",
		Short: "Remove every item from the inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInventory(args[0], true, func(inv *types.Inventory) error {
				inv.Clear()
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %q\n", inv.Name())
				return nil
			})
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <file>",
		Short: "Display every item in the inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInventory(args[0], false, func(inv *types.Inventory) error {
				return renderInventory(cmd.OutOrStdout(), inv)
			})
		},
	}
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <file> <key>",
		Short: "Look up an item by description, ignoring case",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInventory(args[0], false, func(inv *types.Inventory) error {
				item, _ := inv.Search(args[1])
				return renderSearch(cmd.OutOrStdout(), item)
			})
		},
	}
}
