package cli

import (
	"github.com/spf13/cobra"
)

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Manage inventories interactively",
		Long: `Start an interactive session: load or create an inventory, apply
operations from a numbered menu, then save it. Relative load paths are
resolved against the data directory, and an empty save directory means the
data directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			changes, err := openChangeLog()
			if err != nil {
				return err
			}
			defer changes.Close()

			s := newSession(cmd.InOrStdin(), cmd.OutOrStdout(), settings.DataDir, inventoryOptions(changes)...)
			return s.Run()
		},
	}
}
