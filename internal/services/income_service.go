package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "monthwise/internal/errors"
	"monthwise/internal/models"
)

// incomeService handles month-scoped income entries. All mutations are gated
// on the owning month being open.
type incomeService struct {
	db *gorm.DB
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB) IncomeServicer {
	return &incomeService{db: db}
}

// ListIncome returns a month's income entries.
func (s *incomeService) ListIncome(userID, monthID uint) ([]models.IncomeEntry, error) {
	if _, err := findMonth(s.db, userID, monthID); err != nil {
		return nil, err
	}

	entries := []models.IncomeEntry{}
	if err := s.db.Where("month_id = ?", monthID).Order("id").Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}

// CreateIncome adds an income entry to an open month.
func (s *incomeService) CreateIncome(userID, monthID uint, label string, amount float64) (*models.IncomeEntry, error) {
	if _, err := findOpenMonth(s.db, userID, monthID); err != nil {
		return nil, err
	}
	if label == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income label is required")
	}

	entry := &models.IncomeEntry{MonthID: monthID, Label: label, Amount: amount}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entry, nil
}

func (s *incomeService) getIncome(monthID, entryID uint) (*models.IncomeEntry, error) {
	var entry models.IncomeEntry
	if err := s.db.Where("id = ? AND month_id = ?", entryID, monthID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncomeEntryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entry, nil
}

// UpdateIncome updates an entry in an open month.
func (s *incomeService) UpdateIncome(userID, monthID, entryID uint, label *string, amount *float64) (*models.IncomeEntry, error) {
	if _, err := findOpenMonth(s.db, userID, monthID); err != nil {
		return nil, err
	}

	entry, err := s.getIncome(monthID, entryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if label != nil {
		updates["label"] = *label
	}
	if amount != nil {
		updates["amount"] = *amount
	}

	if len(updates) > 0 {
		if err := s.db.Model(entry).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return entry, nil
}

// DeleteIncome removes an entry from an open month.
func (s *incomeService) DeleteIncome(userID, monthID, entryID uint) error {
	if _, err := findOpenMonth(s.db, userID, monthID); err != nil {
		return err
	}

	entry, err := s.getIncome(monthID, entryID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(entry).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
