package store

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/finance-ledger/internal/category"
	categorySqlite "github.com/frahmantamala/finance-ledger/internal/category/sqlite"
	"github.com/frahmantamala/finance-ledger/internal/entry"
	entrySqlite "github.com/frahmantamala/finance-ledger/internal/entry/sqlite"
	"github.com/frahmantamala/finance-ledger/internal/schema"
	"gorm.io/gorm"
)

// Store is an open, migrated ledger with its services wired.
type Store struct {
	DB         *gorm.DB
	Categories *category.Service
	Entries    *entry.Service

	path string
}

// Open opens the ledger at path, migrates it to the latest schema and seeds
// the default categories into an empty category table. The handle is
// released when any step fails.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, []schema.SeedResult, error) {
	db, err := schema.Open(path)
	if err != nil {
		logger.Error("failed to open ledger", "path", path, "error", err)
		return nil, nil, err
	}

	if err := schema.Migrate(ctx, db, logger); err != nil {
		logger.Error("failed to migrate ledger", "path", path, "error", err)
		_ = schema.Close(db)
		return nil, nil, err
	}

	if err := schema.Pin(db); err != nil {
		_ = schema.Close(db)
		return nil, nil, err
	}

	s := &Store{
		DB:         db,
		Categories: category.NewService(categorySqlite.NewCategoryRepository(db), logger),
		Entries:    entry.NewService(entrySqlite.NewEntryRepository(db), logger),
		path:       path,
	}

	results, err := schema.SeedDefaults(s.Categories, logger)
	if err != nil {
		logger.Error("failed to seed default categories", "path", path, "error", err)
		_ = schema.Close(db)
		return nil, nil, err
	}

	logger.Debug("ledger opened", "path", path)
	return s, results, nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	return schema.Close(s.DB)
}
