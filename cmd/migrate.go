package cmd

import (
	"fmt"

	"github.com/frahmantamala/finance-ledger/internal/schema"
	"github.com/frahmantamala/finance-ledger/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Inspect or apply ledger schema migrations",
	}

	migrateStatusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show the applied schema version",
		Args:  cobra.NoArgs,
		RunE:  runMigrateStatus,
	}

	migrateUpCmd = &cobra.Command{
		Use:   "up",
		Short: "Apply pending schema migrations without seeding",
		Args:  cobra.NoArgs,
		RunE:  runMigrateUp,
	}
)

func init() {
	migrateCmd.AddCommand(migrateStatusCmd)
	migrateCmd.AddCommand(migrateUpCmd)
}

func runMigrateStatus(cmd *cobra.Command, _ []string) error {
	db, err := schema.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer schema.Close(db)

	version, err := schema.Version(cmd.Context(), db)
	if err != nil {
		return err
	}
	pending, err := schema.Pending(cmd.Context(), db)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "database: %s\n", cfg.Database.Path)
	fmt.Fprintf(out, "version:  %d (latest %d)\n", version, schema.LatestVersion())
	fmt.Fprintf(out, "pending:  %t\n", pending)
	return nil
}

func runMigrateUp(cmd *cobra.Command, _ []string) error {
	db, err := schema.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer schema.Close(db)

	if err := schema.Migrate(cmd.Context(), db, logger.LoggerWrapper()); err != nil {
		return err
	}

	version, err := schema.Version(cmd.Context(), db)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", version)
	return nil
}
