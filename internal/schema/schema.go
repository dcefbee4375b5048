// Package schema opens the ledger database and keeps its layout current.
//
// The layout is described by an ordered list of versioned migrations. Each
// step is safe to run against databases created before version tracking
// existed, so an old ledger file upgrades in place on first open.
package schema

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/frahmantamala/finance-ledger/internal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open opens the SQLite file at path, creating it and its directory when
// missing. Foreign key enforcement is switched on for every connection.
func Open(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, internal.NewConnectionError("failed to create database directory", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn(path)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, internal.NewConnectionError(fmt.Sprintf("failed to open database %s", path), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, internal.NewConnectionError("failed to get database handle", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, internal.NewConnectionError(fmt.Sprintf("failed to ping database %s", path), err)
	}

	return db, nil
}

// Pin limits the pool to a single connection. The ledger is a single-writer
// store and SQLite serializes access per connection.
func Pin(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	return nil
}

// Close releases the handle; a nil handle is ignored.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func dsn(path string) string {
	return path + "?_foreign_keys=on"
}
