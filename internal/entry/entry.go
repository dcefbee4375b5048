package entry

import (
	"time"

	"github.com/frahmantamala/finance-ledger/internal/category"
	entryDatamodel "github.com/frahmantamala/finance-ledger/internal/core/datamodel/entry"
	"github.com/shopspring/decimal"
)

// DateLayout is the on-disk date format. Sorting and monthly grouping rely
// on it being zero padded.
const DateLayout = "2006-01-02"

// Entry is a single recorded income or expense transaction.
type Entry struct {
	ID          int64
	Amount      decimal.Decimal
	CategoryID  int64
	Date        string
	Description string
	ReceiptPath *string
}

func (e *Entry) HasReceipt() bool {
	return e.ReceiptPath != nil && *e.ReceiptPath != ""
}

// View is an entry together with its category, as listed for display.
type View struct {
	Entry
	CategoryName string
	CategoryType category.Type
}

// MonthlyTotal is the expense sum for one calendar month.
type MonthlyTotal struct {
	Year  int
	Month int
	Total decimal.Decimal
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func NewEntry(dto AddEntryDTO) *Entry {
	return &Entry{
		Amount:      dto.Amount,
		CategoryID:  dto.CategoryID,
		Date:        dto.Date,
		Description: dto.Description,
		ReceiptPath: dto.ReceiptPath,
	}
}

func ToDataModel(e *Entry) *entryDatamodel.Entry {
	description := e.Description
	return &entryDatamodel.Entry{
		ID:          e.ID,
		Amount:      e.Amount,
		CategoryID:  e.CategoryID,
		Date:        e.Date,
		Description: &description,
		ReceiptPath: e.ReceiptPath,
	}
}

func FromDataModel(e *entryDatamodel.Entry) *Entry {
	return &Entry{
		ID:          e.ID,
		Amount:      e.Amount,
		CategoryID:  e.CategoryID,
		Date:        e.Date,
		Description: deref(e.Description),
		ReceiptPath: e.ReceiptPath,
	}
}

func FromViewModel(v *entryDatamodel.EntryView) *View {
	return &View{
		Entry: Entry{
			ID:          v.ID,
			Amount:      v.Amount,
			CategoryID:  v.CategoryID,
			Date:        v.Date,
			Description: deref(v.Description),
			ReceiptPath: v.ReceiptPath,
		},
		CategoryName: v.CategoryName,
		CategoryType: category.Type(v.CategoryType),
	}
}

func FromViewModelSlice(views []*entryDatamodel.EntryView) []*View {
	result := make([]*View, len(views))
	for i, v := range views {
		result[i] = FromViewModel(v)
	}
	return result
}

func FromTotalModelSlice(totals []*entryDatamodel.MonthlyTotal) []MonthlyTotal {
	result := make([]MonthlyTotal, len(totals))
	for i, t := range totals {
		result[i] = MonthlyTotal{Year: t.Year, Month: t.Month, Total: t.Total}
	}
	return result
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
