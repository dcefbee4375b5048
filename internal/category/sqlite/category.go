package sqlite

import (
	"errors"
	"fmt"

	"github.com/frahmantamala/finance-ledger/internal"
	"github.com/frahmantamala/finance-ledger/internal/category"
	categoryDatamodel "github.com/frahmantamala/finance-ledger/internal/core/datamodel/category"
	entryDatamodel "github.com/frahmantamala/finance-ledger/internal/core/datamodel/entry"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

// GetAll orders by name using SQLite's default BINARY collation, which is a
// byte-wise, locale independent order.
func (r *CategoryRepository) GetAll() ([]*categoryDatamodel.Category, error) {
	var categories []*categoryDatamodel.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, internal.FromDBError(err, "failed to list categories")
	}
	return categories, nil
}

func (r *CategoryRepository) GetByName(name string) (*categoryDatamodel.Category, error) {
	var cat categoryDatamodel.Category
	err := r.db.Where("name = ?", name).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, internal.FromDBError(err, "failed to get category by name")
	}
	return &cat, nil
}

func (r *CategoryRepository) GetByID(id int64) (*categoryDatamodel.Category, error) {
	var cat categoryDatamodel.Category
	err := r.db.Where("id = ?", id).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, internal.FromDBError(err, "failed to get category by id")
	}
	return &cat, nil
}

func (r *CategoryRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&categoryDatamodel.Category{}).Count(&n).Error; err != nil {
		return 0, internal.FromDBError(err, "failed to count categories")
	}
	return n, nil
}

func (r *CategoryRepository) Create(cat *categoryDatamodel.Category) error {
	if err := r.db.Create(cat).Error; err != nil {
		return internal.FromDBError(err, fmt.Sprintf("failed to add category %q", cat.Name))
	}
	return nil
}

// Delete enforces RESTRICT: a category with entries is never removed.
func (r *CategoryRepository) Delete(id int64) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&entryDatamodel.Entry{}).Where("category_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return internal.NewConstraintViolationError(
				fmt.Sprintf("category %d is referenced by %d ledger entries", id, refs),
				internal.ErrCodeCategoryInUse,
			)
		}
		return tx.Delete(&categoryDatamodel.Category{}, id).Error
	})
	if err != nil {
		return internal.FromDBError(err, fmt.Sprintf("failed to delete category %d", id))
	}
	return nil
}
