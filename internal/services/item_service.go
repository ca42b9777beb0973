package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "monthwise/internal/errors"
	"monthwise/internal/models"
	"monthwise/internal/pagination"
)

// itemService handles discrete spending items. All mutations are gated on the
// owning month being open, and every item's category must belong to the same
// user as the month.
type itemService struct {
	db *gorm.DB
}

// NewItemService creates a new ItemServicer.
func NewItemService(db *gorm.DB) ItemServicer {
	return &itemService{db: db}
}

// ListItems returns a month's items with category labels, newest spend first.
func (s *itemService) ListItems(userID, monthID uint, page pagination.PageRequest) (*pagination.PageResponse[models.ItemLine], error) {
	if _, err := findMonth(s.db, userID, monthID); err != nil {
		return nil, err
	}

	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.Item{}).Where("month_id = ?", monthID).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	items := []models.ItemLine{}
	err := s.db.Table("items").
		Select("items.id, items.month_id, items.category_id, budget_categories.label AS category_label, items.description, items.amount, items.spent_on").
		Joins("JOIN budget_categories ON budget_categories.id = items.category_id").
		Where("items.month_id = ?", monthID).
		Order("items.spent_on DESC, items.id DESC").
		Scopes(pagination.Paginate(page)).
		Scan(&items).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(items, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// verifyCategory checks that a category exists and belongs to the user.
func (s *itemService) verifyCategory(userID, categoryID uint) error {
	var category models.BudgetCategory
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// CreateItem records a spend in an open month.
func (s *itemService) CreateItem(userID, monthID, categoryID uint, description string, amount float64, spentOn time.Time) (*models.Item, error) {
	if _, err := findOpenMonth(s.db, userID, monthID); err != nil {
		return nil, err
	}
	if err := s.verifyCategory(userID, categoryID); err != nil {
		return nil, err
	}
	if description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "item description is required")
	}

	item := &models.Item{
		MonthID:     monthID,
		CategoryID:  categoryID,
		Description: description,
		Amount:      amount,
		SpentOn:     spentOn,
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return item, nil
}

func (s *itemService) getItem(monthID, itemID uint) (*models.Item, error) {
	var item models.Item
	if err := s.db.Where("id = ? AND month_id = ?", itemID, monthID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &item, nil
}

// UpdateItem updates a spend in an open month. A changed category must belong
// to the caller.
func (s *itemService) UpdateItem(userID, monthID, itemID uint, categoryID *uint, description *string, amount *float64, spentOn *time.Time) (*models.Item, error) {
	if _, err := findOpenMonth(s.db, userID, monthID); err != nil {
		return nil, err
	}

	item, err := s.getItem(monthID, itemID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if categoryID != nil {
		if err := s.verifyCategory(userID, *categoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *categoryID
	}
	if description != nil {
		updates["description"] = *description
	}
	if amount != nil {
		updates["amount"] = *amount
	}
	if spentOn != nil {
		updates["spent_on"] = *spentOn
	}

	if len(updates) > 0 {
		if err := s.db.Model(item).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return item, nil
}

// DeleteItem removes a spend from an open month.
func (s *itemService) DeleteItem(userID, monthID, itemID uint) error {
	if _, err := findOpenMonth(s.db, userID, monthID); err != nil {
		return err
	}

	item, err := s.getItem(monthID, itemID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(item).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
