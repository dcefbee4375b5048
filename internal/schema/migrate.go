package schema

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"

	"github.com/frahmantamala/finance-ledger/internal"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// columnMigrations are the additive steps layered on top of the SQL
// migrations. New columns are appended here with the next version number;
// columns are never dropped.
var columnMigrations = []columnMigration{
	{Version: 2, Table: "transactions", Column: "receipt_path", Definition: "TEXT"},
}

// LatestVersion is the schema version a fully migrated ledger reports.
func LatestVersion() int64 {
	return columnMigrations[len(columnMigrations)-1].Version
}

func newProvider(db *gorm.DB) (*goose.Provider, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	fsys, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, err
	}

	goMigrations := make([]*goose.Migration, 0, len(columnMigrations))
	for _, m := range columnMigrations {
		goMigrations = append(goMigrations, goose.NewGoMigration(m.Version, &goose.GoFunc{RunTx: m.up}, nil))
	}

	return goose.NewProvider(goose.DialectSQLite3, sqlDB, fsys,
		goose.WithDisableGlobalRegistry(true),
		goose.WithGoMigrations(goMigrations...),
	)
}

// Migrate brings the database to the latest schema version and checks that
// the resulting tables have the ledger's columns. Any failure is a
// MigrationFailure and the handle must not be used afterwards.
func Migrate(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	provider, err := newProvider(db)
	if err != nil {
		return internal.NewMigrationError("failed to prepare schema migrations", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return internal.NewMigrationError("failed to apply schema migrations", err)
	}

	for _, r := range results {
		logger.Info("schema migration applied",
			"version", r.Source.Version,
			"source", r.Source.Path,
			"duration", r.Duration)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return internal.NewMigrationError("failed to get database handle", err)
	}
	if err := verifyLayout(ctx, sqlDB); err != nil {
		return internal.NewMigrationError("database is not a ledger", err)
	}
	return nil
}

// Version reports the applied schema version, 0 for an untracked database.
func Version(ctx context.Context, db *gorm.DB) (int64, error) {
	provider, err := newProvider(db)
	if err != nil {
		return 0, internal.NewMigrationError("failed to prepare schema migrations", err)
	}
	v, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, internal.NewMigrationError("failed to read schema version", err)
	}
	return v, nil
}

// Pending reports whether migrations remain to be applied.
func Pending(ctx context.Context, db *gorm.DB) (bool, error) {
	provider, err := newProvider(db)
	if err != nil {
		return false, internal.NewMigrationError("failed to prepare schema migrations", err)
	}
	pending, err := provider.HasPending(ctx)
	if err != nil {
		return false, internal.NewMigrationError("failed to check pending migrations", err)
	}
	return pending, nil
}
