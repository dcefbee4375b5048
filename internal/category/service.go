package category

import (
	"log/slog"

	"github.com/frahmantamala/finance-ledger/internal"
	categoryDatamodel "github.com/frahmantamala/finance-ledger/internal/core/datamodel/category"
)

type RepositoryAPI interface {
	GetAll() ([]*categoryDatamodel.Category, error)
	GetByID(id int64) (*categoryDatamodel.Category, error)
	GetByName(name string) (*categoryDatamodel.Category, error)
	Count() (int64, error)
	Create(category *categoryDatamodel.Category) error
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Add creates a category. A duplicate name is a unique violation and an
// unknown type is a constraint violation.
func (s *Service) Add(name string, categoryType Type) (*Category, error) {
	dto := AddCategoryDTO{Name: name, Type: categoryType}
	if err := dto.Validate(); err != nil {
		s.logger.Warn("category rejected", "name", name, "type", categoryType, "error", err)
		return nil, err
	}

	row := ToDataModel(NewCategory(name, categoryType))
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to add category", "name", name, "type", categoryType, "error", err)
		return nil, err
	}

	s.logger.Info("category added", "category_id", row.ID, "name", row.Name, "type", row.Type)
	return FromDataModel(row), nil
}

// ListAll returns every category ordered by name.
func (s *Service) ListAll() ([]*Category, error) {
	rows, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list categories", "error", err)
		return nil, err
	}

	s.logger.Debug("retrieved categories", "count", len(rows))
	return FromDataModelSlice(rows), nil
}

// NameOf resolves a category id to its name. A missing id yields ok=false
// and no error.
func (s *Service) NameOf(id int64) (string, bool, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to look up category name", "category_id", id, "error", err)
		return "", false, err
	}
	if row == nil {
		return "", false, nil
	}
	return row.Name, true, nil
}

func (s *Service) GetByID(id int64) (*Category, error) {
	row, err := s.repo.GetByID(id)
	if err != nil || row == nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) GetByName(name string) (*Category, error) {
	row, err := s.repo.GetByName(name)
	if err != nil || row == nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) Count() (int64, error) {
	return s.repo.Count()
}

// Delete removes an unreferenced category. Categories still used by entries
// are kept and ErrCategoryInUse is returned; a missing id is a no-op.
func (s *Service) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		if internal.IsConstraintViolation(err) {
			s.logger.Warn("category delete refused", "category_id", id, "error", err)
		} else {
			s.logger.Error("failed to delete category", "category_id", id, "error", err)
		}
		return err
	}

	s.logger.Info("category deleted", "category_id", id)
	return nil
}
