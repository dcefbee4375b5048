package cmd

import (
	"context"
	"fmt"

	"github.com/frahmantamala/finance-ledger/internal/export"
	"github.com/frahmantamala/finance-ledger/internal/store"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Write all entries to an xlsx spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, _ *store.Manager, s *store.Store) error {
			written, err := export.Write(ctx, args[0], s.Entries, s.Categories)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", written)
			return nil
		})
	},
}
