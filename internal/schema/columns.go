package schema

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

// requiredColumns is the layout every migrated ledger must have. A file that
// opens as SQLite but lacks any of these is not a ledger.
var requiredColumns = map[string][]string{
	"categories":   {"id", "name", "type"},
	"transactions": {"id", "amount", "category_id", "date", "description", "receipt_path"},
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// columnInfo is one row of PRAGMA table_info.
type columnInfo struct {
	CID       int            `db:"cid"`
	Name      string         `db:"name"`
	Type      string         `db:"type"`
	NotNull   int            `db:"notnull"`
	DfltValue sql.NullString `db:"dflt_value"`
	PK        int            `db:"pk"`
}

// columnMigration adds a nullable column when the live table lacks it.
type columnMigration struct {
	Version    int64
	Table      string
	Column     string
	Definition string
}

func (m columnMigration) up(ctx context.Context, tx *sql.Tx) error {
	columns, err := tableColumns(ctx, tx, m.Table)
	if err != nil {
		return err
	}
	if _, ok := columns[m.Column]; ok {
		return nil
	}

	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", m.Table, m.Column, m.Definition)
	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("add column %s.%s: %w", m.Table, m.Column, err)
	}
	return nil
}

// verifyLayout checks that both ledger tables carry every required column.
func verifyLayout(ctx context.Context, q querier) error {
	tables := make([]string, 0, len(requiredColumns))
	for table := range requiredColumns {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	for _, table := range tables {
		columns, err := tableColumns(ctx, q, table)
		if err != nil {
			return err
		}

		var missing []string
		for _, name := range requiredColumns[table] {
			if _, ok := columns[name]; !ok {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("table %s is missing columns %s", table, strings.Join(missing, ", "))
		}
	}
	return nil
}

func tableColumns(ctx context.Context, q querier, table string) (map[string]columnInfo, error) {
	rows, err := q.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("inspect table %s: %w", table, err)
	}
	defer rows.Close()

	var infos []columnInfo
	if err := sqlx.StructScan(rows, &infos); err != nil {
		return nil, fmt.Errorf("decode columns of %s: %w", table, err)
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("table %s does not exist", table)
	}

	columns := make(map[string]columnInfo, len(infos))
	for _, info := range infos {
		columns[info.Name] = info
	}
	return columns, nil
}
