package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "monthwise/internal/errors"
	"monthwise/internal/models"
)

// budgetService handles per-month category allocations.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// ListMonthlyBudgets returns a month's budget rows.
func (s *budgetService) ListMonthlyBudgets(userID, monthID uint) ([]models.MonthlyBudget, error) {
	if _, err := findMonth(s.db, userID, monthID); err != nil {
		return nil, err
	}

	budgets := []models.MonthlyBudget{}
	if err := s.db.Where("month_id = ?", monthID).Order("id").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// UpdateMonthlyBudget changes the allocated amount of one budget row in an
// open month.
func (s *budgetService) UpdateMonthlyBudget(userID, monthID, budgetID uint, allocatedAmount float64) (*models.MonthlyBudget, error) {
	if _, err := findOpenMonth(s.db, userID, monthID); err != nil {
		return nil, err
	}

	var budget models.MonthlyBudget
	if err := s.db.Where("id = ? AND month_id = ?", budgetID, monthID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Model(&budget).Update("allocated_amount", allocatedAmount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &budget, nil
}
