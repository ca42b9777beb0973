package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "monthwise/internal/errors"
	"monthwise/internal/models"
)

// exportFormatVersion is bumped whenever the export shape changes
// incompatibly. Imports of unknown versions are rejected.
const exportFormatVersion = 1

// UserExport is the portable, label-keyed dump of everything a user owns.
// Rows reference categories by label rather than database ID so a dump can be
// replayed into a fresh account. Snapshots are deliberately absent: they are
// frozen render artifacts, never regenerated or carried across imports.
type UserExport struct {
	Version       uint                 `json:"version"`
	FixedExpenses []FixedExpenseExport `json:"fixed_expenses"`
	Categories    []CategoryExport     `json:"categories"`
	Months        []MonthExport        `json:"months"`
}

type FixedExpenseExport struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type CategoryExport struct {
	Label         string  `json:"label"`
	DefaultAmount float64 `json:"default_amount"`
}

type MonthExport struct {
	Year          int            `json:"year"`
	Month         int            `json:"month"`
	IsClosed      bool           `json:"is_closed"`
	IncomeEntries []IncomeExport `json:"income_entries"`
	Budgets       []BudgetExport `json:"budgets"`
	Items         []ItemExport   `json:"items"`
}

type IncomeExport struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type BudgetExport struct {
	CategoryLabel   string  `json:"category_label"`
	AllocatedAmount float64 `json:"allocated_amount"`
}

type ItemExport struct {
	CategoryLabel string  `json:"category_label"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	SpentOn       string  `json:"spent_on"`
}

// exportService produces and consumes whole-account JSON dumps.
type exportService struct {
	db *gorm.DB
}

// NewExportService creates a new ExportServicer.
func NewExportService(db *gorm.DB) ExportServicer {
	return &exportService{db: db}
}

// Export assembles the full label-keyed dump for a user.
func (s *exportService) Export(userID uint) (*UserExport, error) {
	var fixedExpenses []models.FixedExpense
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&fixedExpenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.BudgetCategory
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	labelByCategory := make(map[uint]string, len(categories))
	for _, category := range categories {
		labelByCategory[category.ID] = category.Label
	}

	var months []models.Month
	if err := s.db.Where("user_id = ?", userID).Order("year, month").Find(&months).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	export := &UserExport{
		Version:       exportFormatVersion,
		FixedExpenses: []FixedExpenseExport{},
		Categories:    []CategoryExport{},
		Months:        []MonthExport{},
	}
	for _, expense := range fixedExpenses {
		export.FixedExpenses = append(export.FixedExpenses, FixedExpenseExport{
			Label:  expense.Label,
			Amount: expense.Amount,
		})
	}
	for _, category := range categories {
		export.Categories = append(export.Categories, CategoryExport{
			Label:         category.Label,
			DefaultAmount: category.DefaultAmount,
		})
	}

	for _, month := range months {
		monthExport, err := s.exportMonth(&month, labelByCategory)
		if err != nil {
			return nil, err
		}
		export.Months = append(export.Months, *monthExport)
	}

	return export, nil
}

func (s *exportService) exportMonth(month *models.Month, labelByCategory map[uint]string) (*MonthExport, error) {
	var incomeEntries []models.IncomeEntry
	if err := s.db.Where("month_id = ?", month.ID).Order("id").Find(&incomeEntries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.MonthlyBudget
	if err := s.db.Where("month_id = ?", month.ID).Order("id").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var items []models.Item
	if err := s.db.Where("month_id = ?", month.ID).Order("id").Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	monthExport := &MonthExport{
		Year:          month.Year,
		Month:         month.Month,
		IsClosed:      month.IsClosed,
		IncomeEntries: []IncomeExport{},
		Budgets:       []BudgetExport{},
		Items:         []ItemExport{},
	}
	for _, entry := range incomeEntries {
		monthExport.IncomeEntries = append(monthExport.IncomeEntries, IncomeExport{
			Label:  entry.Label,
			Amount: entry.Amount,
		})
	}
	for _, budget := range budgets {
		label, ok := labelByCategory[budget.CategoryID]
		if !ok {
			continue
		}
		monthExport.Budgets = append(monthExport.Budgets, BudgetExport{
			CategoryLabel:   label,
			AllocatedAmount: budget.AllocatedAmount,
		})
	}
	for _, item := range items {
		label, ok := labelByCategory[item.CategoryID]
		if !ok {
			continue
		}
		monthExport.Items = append(monthExport.Items, ItemExport{
			CategoryLabel: label,
			Description:   item.Description,
			Amount:        item.Amount,
			SpentOn:       item.SpentOn.Format("2006-01-02"),
		})
	}

	return monthExport, nil
}

// Import wipes the user's existing data and replays the dump in its place,
// all inside one transaction: a malformed dump leaves the account untouched.
// Closed months are imported closed but without snapshots, since snapshots
// are never regenerated.
func (s *exportService) Import(userID uint, data *UserExport) error {
	if data.Version != exportFormatVersion {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported export version")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := wipeUserData(tx, userID); err != nil {
			return err
		}

		for _, expense := range data.FixedExpenses {
			row := models.FixedExpense{UserID: userID, Label: expense.Label, Amount: expense.Amount}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		categoryByLabel := make(map[string]uint, len(data.Categories))
		for _, category := range data.Categories {
			row := models.BudgetCategory{UserID: userID, Label: category.Label, DefaultAmount: category.DefaultAmount}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			categoryByLabel[category.Label] = row.ID
		}

		for _, monthData := range data.Months {
			if err := importMonth(tx, userID, &monthData, categoryByLabel); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func importMonth(tx *gorm.DB, userID uint, monthData *MonthExport, categoryByLabel map[string]uint) error {
	if monthData.Month < 1 || monthData.Month > 12 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}

	month := models.Month{
		UserID:   userID,
		Year:     monthData.Year,
		Month:    monthData.Month,
		IsClosed: monthData.IsClosed,
	}
	if err := tx.Create(&month).Error; err != nil {
		return err
	}

	for _, income := range monthData.IncomeEntries {
		row := models.IncomeEntry{MonthID: month.ID, Label: income.Label, Amount: income.Amount}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}

	for _, budget := range monthData.Budgets {
		categoryID, ok := categoryByLabel[budget.CategoryLabel]
		if !ok {
			continue
		}
		row := models.MonthlyBudget{MonthID: month.ID, CategoryID: categoryID, AllocatedAmount: budget.AllocatedAmount}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}

	for _, item := range monthData.Items {
		categoryID, ok := categoryByLabel[item.CategoryLabel]
		if !ok {
			continue
		}
		spentOn, err := time.Parse("2006-01-02", item.SpentOn)
		if err != nil {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "item spent_on must be YYYY-MM-DD")
		}
		row := models.Item{
			MonthID:     month.ID,
			CategoryID:  categoryID,
			Description: item.Description,
			Amount:      item.Amount,
			SpentOn:     spentOn,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}

	return nil
}

// wipeUserData deletes all financial rows the user owns, keeping the account.
func wipeUserData(tx *gorm.DB, userID uint) error {
	var monthIDs []uint
	if err := tx.Model(&models.Month{}).Where("user_id = ?", userID).Pluck("id", &monthIDs).Error; err != nil {
		return err
	}

	if len(monthIDs) > 0 {
		for _, model := range []interface{}{&models.Item{}, &models.MonthlyBudget{}, &models.IncomeEntry{}, &models.MonthlySnapshot{}} {
			if err := tx.Where("month_id IN ?", monthIDs).Delete(model).Error; err != nil {
				return err
			}
		}
	}

	if err := tx.Where("user_id = ?", userID).Delete(&models.Month{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.BudgetCategory{}).Error; err != nil {
		return err
	}
	return tx.Where("user_id = ?", userID).Delete(&models.FixedExpense{}).Error
}
