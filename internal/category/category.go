package category

import (
	categoryDatamodel "github.com/frahmantamala/finance-ledger/internal/core/datamodel/category"
)

type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

func (t Type) String() string {
	return string(t)
}

func ParseType(s string) (Type, bool) {
	t := Type(s)
	return t, t.Valid()
}

// Category is a named bucket that entries are filed under. Categories are
// never renamed once created.
type Category struct {
	ID   int64
	Name string
	Type Type
}

func NewCategory(name string, categoryType Type) *Category {
	return &Category{
		Name: name,
		Type: categoryType,
	}
}

func ToDataModel(c *Category) *categoryDatamodel.Category {
	return &categoryDatamodel.Category{
		ID:   c.ID,
		Name: c.Name,
		Type: string(c.Type),
	}
}

func FromDataModel(c *categoryDatamodel.Category) *Category {
	return &Category{
		ID:   c.ID,
		Name: c.Name,
		Type: Type(c.Type),
	}
}

func FromDataModelSlice(categories []*categoryDatamodel.Category) []*Category {
	result := make([]*Category, len(categories))
	for i, c := range categories {
		result[i] = FromDataModel(c)
	}
	return result
}
