package entry

import (
	"log/slog"

	entryDatamodel "github.com/frahmantamala/finance-ledger/internal/core/datamodel/entry"
	"github.com/shopspring/decimal"
)

// Repository defines the data access methods for ledger entries. Updates
// and deletes of a missing id succeed without touching any row.
type Repository interface {
	Create(entry *entryDatamodel.Entry) error
	GetByID(id int64) (*entryDatamodel.Entry, error)
	ListWithCategory() ([]*entryDatamodel.EntryView, error)
	Count() (int64, error)
	Delete(id int64) error
	UpdateColumn(id int64, column string, value interface{}) error
	MonthlyExpenseTotals() ([]*entryDatamodel.MonthlyTotal, error)
}

// Service exposes ledger entry operations. It performs no validation of
// amount sign or date format; that is left to the caller.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Add(dto AddEntryDTO) (*Entry, error) {
	row := ToDataModel(NewEntry(dto))
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to add entry",
			"category_id", dto.CategoryID,
			"date", dto.Date,
			"error", err)
		return nil, err
	}

	s.logger.Info("entry added",
		"entry_id", row.ID,
		"category_id", row.CategoryID,
		"amount", row.Amount.String(),
		"date", row.Date)

	return FromDataModel(row), nil
}

// Get returns the entry or nil when the id does not exist.
func (s *Service) Get(id int64) (*Entry, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get entry", "entry_id", id, "error", err)
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	return FromDataModel(row), nil
}

// ListAll returns every entry with its category, newest date first. Order
// among entries sharing a date is unspecified.
func (s *Service) ListAll() ([]*View, error) {
	rows, err := s.repo.ListWithCategory()
	if err != nil {
		s.logger.Error("failed to list entries", "error", err)
		return nil, err
	}

	s.logger.Debug("retrieved entries", "count", len(rows))
	return FromViewModelSlice(rows), nil
}

func (s *Service) Count() (int64, error) {
	return s.repo.Count()
}

func (s *Service) DeleteByID(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete entry", "entry_id", id, "error", err)
		return err
	}

	s.logger.Info("entry deleted", "entry_id", id)
	return nil
}

func (s *Service) UpdateDate(id int64, date string) error {
	return s.update(id, "date", date)
}

func (s *Service) UpdateCategory(id int64, categoryID int64) error {
	return s.update(id, "category_id", categoryID)
}

func (s *Service) UpdateAmount(id int64, amount decimal.Decimal) error {
	return s.update(id, "amount", amount)
}

func (s *Service) UpdateDescription(id int64, description string) error {
	return s.update(id, "description", description)
}

// UpdateReceiptPath sets the receipt path; nil clears it.
func (s *Service) UpdateReceiptPath(id int64, receiptPath *string) error {
	var value interface{}
	if receiptPath != nil {
		value = *receiptPath
	}
	return s.update(id, "receipt_path", value)
}

func (s *Service) update(id int64, column string, value interface{}) error {
	if err := s.repo.UpdateColumn(id, column, value); err != nil {
		s.logger.Error("failed to update entry", "entry_id", id, "column", column, "error", err)
		return err
	}

	s.logger.Info("entry updated", "entry_id", id, "column", column)
	return nil
}

// MonthlyStatistics sums expense entries per calendar month. Income is not
// part of the report. Rows are ordered by year descending, then month
// ascending.
func (s *Service) MonthlyStatistics() ([]MonthlyTotal, error) {
	rows, err := s.repo.MonthlyExpenseTotals()
	if err != nil {
		s.logger.Error("failed to compute monthly statistics", "error", err)
		return nil, err
	}
	return FromTotalModelSlice(rows), nil
}
