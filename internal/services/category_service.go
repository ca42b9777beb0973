package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "monthwise/internal/errors"
	"monthwise/internal/logger"
	"monthwise/internal/models"
)

// categoryService handles budget category business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a category and pushes its default allocation into
// every month the user currently has open. Closed months are never touched.
func (s *categoryService) CreateCategory(userID uint, label string, defaultAmount float64) (*models.BudgetCategory, error) {
	if label == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category label is required")
	}

	category := &models.BudgetCategory{
		UserID:        userID,
		Label:         label,
		DefaultAmount: defaultAmount,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.seedOpenMonths(category)
	return category, nil
}

// seedOpenMonths inserts one budget row per open month for the category,
// best-effort per row. A month that already has a row for this category, or
// whose insert fails, is skipped and recorded; siblings are unaffected.
func (s *categoryService) seedOpenMonths(category *models.BudgetCategory) {
	var months []models.Month
	if err := s.db.Where("user_id = ? AND is_closed = ?", category.UserID, false).Order("id").Find(&months).Error; err != nil {
		logger.Get().Warnw("category seeding: failed to load open months",
			"category_id", category.ID, "error", err.Error())
		return
	}

	var seeded, skipped []uint
	for _, month := range months {
		budget := models.MonthlyBudget{
			MonthID:         month.ID,
			CategoryID:      category.ID,
			AllocatedAmount: category.DefaultAmount,
		}
		if err := s.db.Create(&budget).Error; err != nil {
			skipped = append(skipped, month.ID)
			continue
		}
		seeded = append(seeded, month.ID)
	}

	if len(skipped) > 0 {
		logger.Get().Warnw("category seeding: some open months were skipped",
			"category_id", category.ID,
			"seeded", seeded,
			"skipped", skipped,
		)
	}
}

// ListCategories returns all of the user's categories.
func (s *categoryService) ListCategories(userID uint) ([]models.BudgetCategory, error) {
	categories := []models.BudgetCategory{}
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// getCategory loads a category scoped to its owner.
func (s *categoryService) getCategory(userID, categoryID uint) (*models.BudgetCategory, error) {
	var category models.BudgetCategory
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory updates a category's label and/or default amount. Changing
// the default only affects future seeding; existing monthly budgets keep
// their allocated amounts.
func (s *categoryService) UpdateCategory(userID, categoryID uint, label *string, defaultAmount *float64) (*models.BudgetCategory, error) {
	category, err := s.getCategory(userID, categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if label != nil {
		updates["label"] = *label
	}
	if defaultAmount != nil {
		updates["default_amount"] = *defaultAmount
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return category, nil
}

// DeleteCategory removes a category together with its historical items and
// monthly budget rows, including those in closed months.
func (s *categoryService) DeleteCategory(userID, categoryID uint) error {
	category, err := s.getCategory(userID, categoryID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", category.ID).Delete(&models.Item{}).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", category.ID).Delete(&models.MonthlyBudget{}).Error; err != nil {
			return err
		}
		return tx.Delete(category).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
