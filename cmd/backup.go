package cmd

import (
	"context"
	"fmt"

	"github.com/frahmantamala/finance-ledger/internal/backup"
	"github.com/frahmantamala/finance-ledger/internal/store"
	"github.com/spf13/cobra"
)

var (
	backupCmd = &cobra.Command{
		Use:   "backup DEST",
		Short: "Copy the ledger file to DEST",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, mgr *store.Manager, _ *store.Store) error {
				written, err := backup.Create(ctx, mgr, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "backup written to %s\n", written)
				return nil
			})
		},
	}

	restoreCmd = &cobra.Command{
		Use:   "restore FILE",
		Short: "Replace the ledger with a backup file",
		Long:  `Replaces the ledger with FILE. When FILE cannot be opened as a ledger the previous file is put back.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, mgr *store.Manager, _ *store.Store) error {
				if err := backup.Restore(ctx, mgr, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ledger restored from %s\n", args[0])
				return nil
			})
		},
	}
)
