package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/auditlog"
)

func newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded inventory changes, newest first",
		Long: `Show entries from the change log. Requires the sqlite or redis log
backend; the text backend is a plain file that can be read directly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			changes, err := openChangeLog()
			if err != nil {
				return err
			}
			defer changes.Close()

			h, ok := changes.(auditlog.History)
			if !ok {
				return fmt.Errorf("log backend %q does not keep a queryable history", settings.LogBackend)
			}
			entries, err := h.Entries(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return renderHistory(cmd.OutOrStdout(), entries)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of entries (0 for all)")
	return cmd
}
