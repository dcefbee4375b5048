package schema

import (
	"errors"
	"log/slog"

	"github.com/frahmantamala/finance-ledger/internal/category"
)

type SeedStatus string

const (
	SeedInserted      SeedStatus = "inserted"
	SeedAlreadyExists SeedStatus = "already_exists"
	SeedFailed        SeedStatus = "failed"
)

// DefaultCategory is one of the built-in categories of a new ledger.
type DefaultCategory struct {
	Name string
	Type category.Type
}

// DefaultCategories are inserted, in this order, into a ledger that has no
// categories at all.
var DefaultCategories = []DefaultCategory{
	{Name: "Salary", Type: category.TypeIncome},
	{Name: "Groceries", Type: category.TypeExpense},
	{Name: "Utilities", Type: category.TypeExpense},
	{Name: "Transport", Type: category.TypeExpense},
	{Name: "Entertainment", Type: category.TypeExpense},
	{Name: "Health", Type: category.TypeExpense},
	{Name: "Education", Type: category.TypeExpense},
	{Name: "Other", Type: category.TypeExpense},
}

type SeedResult struct {
	Name   string
	Type   category.Type
	Status SeedStatus
	Err    error
}

type CategorySeeder interface {
	Count() (int64, error)
	Add(name string, categoryType category.Type) (*category.Category, error)
}

// SeedDefaults inserts DefaultCategories when the category table is empty
// and returns one result per attempted row. A row that fails is recorded and
// the pass continues. A non-empty table yields no results and no writes.
func SeedDefaults(categories CategorySeeder, logger *slog.Logger) ([]SeedResult, error) {
	return seed(categories, DefaultCategories, logger)
}

func seed(categories CategorySeeder, defaults []DefaultCategory, logger *slog.Logger) ([]SeedResult, error) {
	count, err := categories.Count()
	if err != nil {
		return nil, err
	}
	if count > 0 {
		logger.Debug("categories present, skipping seed", "count", count)
		return nil, nil
	}

	results := make([]SeedResult, 0, len(defaults))
	for _, d := range defaults {
		result := SeedResult{Name: d.Name, Type: d.Type, Status: SeedInserted}
		if _, err := categories.Add(d.Name, d.Type); err != nil {
			result.Err = err
			result.Status = SeedFailed
			if errors.Is(err, category.ErrDuplicateCategory) {
				result.Status = SeedAlreadyExists
			}
			logger.Warn("default category skipped", "name", d.Name, "status", result.Status, "error", err)
		}
		results = append(results, result)
	}

	logger.Info("default categories seeded", "attempted", len(results))
	return results, nil
}
