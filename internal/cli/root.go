// Package cli implements the stockroom command-line interface: one-shot
// commands that load, change and save an inventory file, and the interactive
// shell.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/pkg/stockroom"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

var flags rootFlags

// settings is resolved by PersistentPreRunE from flags, config.yaml and the
// environment.
var settings types.Config

// NewRootCmd creates the top-level "stockroom" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "stockroom",
		Short: "A single-user inventory tracker",
		Long: `Stockroom keeps named inventories of items and their quantities in plain
text files. Item lookups ignore case, and adding an item that already exists
adds to its quantity.`,
		Version: stockroom.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			cfg, err := loadSettings()
			if err != nil {
				return err
			}
			settings = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/stockroom)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.stockroom-data)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newNewCmd())
	root.AddCommand(newAddCmd())
	root.AddCommand(newIncreaseCmd())
	root.AddCommand(newDecreaseCmd())
	root.AddCommand(newRemoveCmd())
	root.AddCommand(newResetCmd())
	root.AddCommand(newResetAllCmd())
	root.AddCommand(newClearCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newSearchCmd())
	root.AddCommand(newHistoryCmd())
	root.AddCommand(newShellCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "stockroom:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps storage failures to exitSysError and everything else to
// exitUserError.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, types.ErrIOFailure):
		return exitSysError
	default:
		return exitUserError
	}
}
