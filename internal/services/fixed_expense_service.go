package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "monthwise/internal/errors"
	"monthwise/internal/models"
)

// fixedExpenseService handles recurring-cost business logic.
type fixedExpenseService struct {
	db *gorm.DB
}

// NewFixedExpenseService creates a new FixedExpenseServicer.
func NewFixedExpenseService(db *gorm.DB) FixedExpenseServicer {
	return &fixedExpenseService{db: db}
}

// CreateFixedExpense creates a recurring cost for the user.
func (s *fixedExpenseService) CreateFixedExpense(userID uint, label string, amount float64) (*models.FixedExpense, error) {
	if label == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "expense label is required")
	}

	expense := &models.FixedExpense{UserID: userID, Label: label, Amount: amount}
	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// ListFixedExpenses returns all of the user's recurring costs.
func (s *fixedExpenseService) ListFixedExpenses(userID uint) ([]models.FixedExpense, error) {
	expenses := []models.FixedExpense{}
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

func (s *fixedExpenseService) getFixedExpense(userID, expenseID uint) (*models.FixedExpense, error) {
	var expense models.FixedExpense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFixedExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateFixedExpense updates the label and/or amount of a recurring cost.
func (s *fixedExpenseService) UpdateFixedExpense(userID, expenseID uint, label *string, amount *float64) (*models.FixedExpense, error) {
	expense, err := s.getFixedExpense(userID, expenseID)
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
		if err := s.db.Model(expense).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return expense, nil
}

// DeleteFixedExpense removes a recurring cost.
func (s *fixedExpenseService) DeleteFixedExpense(userID, expenseID uint) error {
	expense, err := s.getFixedExpense(userID, expenseID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
