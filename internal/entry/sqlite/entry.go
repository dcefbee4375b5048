package sqlite

import (
	"fmt"

	"github.com/frahmantamala/finance-ledger/internal"
	entryDatamodel "github.com/frahmantamala/finance-ledger/internal/core/datamodel/entry"
	"github.com/frahmantamala/finance-ledger/internal/entry"
	"gorm.io/gorm"
)

const (
	listColumns = "t.id, t.amount, t.category_id, t.date, t.description, t.receipt_path, " +
		"c.name AS category_name, c.type AS category_type"

	// Grouping truncates the stored YYYY-MM-DD text instead of parsing it.
	monthlyColumns = "CAST(substr(t.date, 1, 4) AS INTEGER) AS year, " +
		"CAST(substr(t.date, 6, 2) AS INTEGER) AS month, " +
		"SUM(t.amount) AS total"
)

var updatableColumns = map[string]bool{
	"date":         true,
	"category_id":  true,
	"amount":       true,
	"description":  true,
	"receipt_path": true,
}

// EntryRepository implements the entry.Repository interface using GORM
type EntryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new entry repository
func NewEntryRepository(db *gorm.DB) entry.Repository {
	return &EntryRepository{db: db}
}

// Create saves a new entry; an unknown category fails the foreign key
func (r *EntryRepository) Create(e *entryDatamodel.Entry) error {
	if err := r.db.Create(e).Error; err != nil {
		return internal.FromDBError(err, fmt.Sprintf("failed to add entry for category %d", e.CategoryID))
	}
	return nil
}

// GetByID retrieves an entry by its ID, nil when absent
func (r *EntryRepository) GetByID(id int64) (*entryDatamodel.Entry, error) {
	rows, err := r.db.Model(&entryDatamodel.Entry{}).Where("id = ?", id).Limit(1).Rows()
	if err != nil {
		return nil, internal.FromDBError(err, "failed to get entry")
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, internal.FromDBError(err, "failed to get entry")
		}
		return nil, nil
	}

	var e entryDatamodel.Entry
	if err := r.db.ScanRows(rows, &e); err != nil {
		return nil, internal.NewRowDecodeError(fmt.Sprintf("failed to decode entry %d", id), err)
	}
	return &e, nil
}

// ListWithCategory joins entries with their categories, newest date first
func (r *EntryRepository) ListWithCategory() ([]*entryDatamodel.EntryView, error) {
	rows, err := r.db.Table("transactions AS t").
		Select(listColumns).
		Joins("JOIN categories AS c ON c.id = t.category_id").
		Order("t.date DESC").
		Rows()
	if err != nil {
		return nil, internal.FromDBError(err, "failed to list entries")
	}
	defer rows.Close()

	views := make([]*entryDatamodel.EntryView, 0)
	for rows.Next() {
		var v entryDatamodel.EntryView
		if err := r.db.ScanRows(rows, &v); err != nil {
			return nil, internal.NewRowDecodeError("failed to decode entry row", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, internal.FromDBError(err, "failed to iterate entries")
	}
	return views, nil
}

func (r *EntryRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&entryDatamodel.Entry{}).Count(&n).Error; err != nil {
		return 0, internal.FromDBError(err, "failed to count entries")
	}
	return n, nil
}

// Delete removes an entry; a missing id affects no rows and is not an error
func (r *EntryRepository) Delete(id int64) error {
	if err := r.db.Delete(&entryDatamodel.Entry{}, id).Error; err != nil {
		return internal.FromDBError(err, fmt.Sprintf("failed to delete entry %d", id))
	}
	return nil
}

// UpdateColumn writes a single column of one entry
func (r *EntryRepository) UpdateColumn(id int64, column string, value interface{}) error {
	if !updatableColumns[column] {
		return internal.NewInternalError(fmt.Sprintf("column %q is not updatable", column), nil)
	}

	err := r.db.Model(&entryDatamodel.Entry{}).
		Where("id = ?", id).
		Update(column, value).Error
	if err != nil {
		return internal.FromDBError(err, fmt.Sprintf("failed to update %s of entry %d", column, id))
	}
	return nil
}

// MonthlyExpenseTotals sums expense entries per year and month
func (r *EntryRepository) MonthlyExpenseTotals() ([]*entryDatamodel.MonthlyTotal, error) {
	rows, err := r.db.Table("transactions AS t").
		Select(monthlyColumns).
		Joins("JOIN categories AS c ON c.id = t.category_id").
		Where("c.type = ?", "expense").
		Group("year, month").
		Order("year DESC, month ASC").
		Rows()
	if err != nil {
		return nil, internal.FromDBError(err, "failed to compute monthly statistics")
	}
	defer rows.Close()

	totals := make([]*entryDatamodel.MonthlyTotal, 0)
	for rows.Next() {
		var t entryDatamodel.MonthlyTotal
		if err := r.db.ScanRows(rows, &t); err != nil {
			return nil, internal.NewRowDecodeError("failed to decode monthly total", err)
		}
		totals = append(totals, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, internal.FromDBError(err, "failed to iterate monthly statistics")
	}
	return totals, nil
}
