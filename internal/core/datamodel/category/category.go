package category

// Category is the row shape of the categories table.
type Category struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;uniqueIndex;not null"`
	Type string `gorm:"column:type"`
}

func (Category) TableName() string {
	return "categories"
}
