package entry

import "github.com/shopspring/decimal"

// Entry is the row shape of the transactions table. Dates are stored as
// YYYY-MM-DD text so lexical order is date order.
type Entry struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Amount      decimal.Decimal `gorm:"column:amount;not null"`
	CategoryID  int64           `gorm:"column:category_id;not null"`
	Date        string          `gorm:"column:date;not null"`
	Description *string         `gorm:"column:description"`
	ReceiptPath *string         `gorm:"column:receipt_path"`
}

func (Entry) TableName() string {
	return "transactions"
}

// EntryView is an entry joined with the category columns needed for display.
type EntryView struct {
	ID           int64           `gorm:"column:id"`
	Amount       decimal.Decimal `gorm:"column:amount"`
	CategoryID   int64           `gorm:"column:category_id"`
	Date         string          `gorm:"column:date"`
	Description  *string         `gorm:"column:description"`
	ReceiptPath  *string         `gorm:"column:receipt_path"`
	CategoryName string          `gorm:"column:category_name"`
	CategoryType string          `gorm:"column:category_type"`
}

type MonthlyTotal struct {
	Year  int             `gorm:"column:year"`
	Month int             `gorm:"column:month"`
	Total decimal.Decimal `gorm:"column:total"`
}
