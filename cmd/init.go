package cmd

import (
	"context"
	"fmt"

	"github.com/frahmantamala/finance-ledger/internal/store"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or upgrade the ledger and seed default categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withStore(cmd, func(_ context.Context, mgr *store.Manager, _ *store.Store) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ledger ready at %s\n", mgr.Path())

			results := mgr.SeedResults()
			if len(results) == 0 {
				fmt.Fprintln(out, "categories already present, nothing seeded")
				return nil
			}
			for _, r := range results {
				if r.Err != nil {
					fmt.Fprintf(out, "  %-14s %-8s %s: %v\n", r.Name, r.Type, r.Status, r.Err)
					continue
				}
				fmt.Fprintf(out, "  %-14s %-8s %s\n", r.Name, r.Type, r.Status)
			}
			return nil
		})
	},
}
