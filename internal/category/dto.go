package category

import (
	"github.com/frahmantamala/finance-ledger/internal"
)

type AddCategoryDTO struct {
	Name string
	Type Type
}

// Validate applies the same rules the categories table enforces, so a bad
// request is rejected before it reaches the store.
func (dto AddCategoryDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewConstraintViolationError("category name is required", internal.ErrCodeInvalidCategoryName)
	}
	if !dto.Type.Valid() {
		return internal.NewConstraintViolationError("category type must be income or expense", internal.ErrCodeInvalidCategoryType).
			WithDetails(internal.ValidationErrors{Errors: []internal.ValidationError{
				{Field: "type", Message: "category type must be income or expense, got " + string(dto.Type), Code: string(internal.ErrCodeInvalidCategoryType)},
			}})
	}
	return nil
}

var (
	ErrDuplicateCategory = internal.NewUniqueViolationError("category already exists", internal.ErrCodeDuplicateKey)
	ErrCategoryInUse     = internal.NewConstraintViolationError("category is referenced by ledger entries", internal.ErrCodeCategoryInUse)
)
