package services

import (
	"sort"

	"gorm.io/gorm"

	apperrors "monthwise/internal/errors"
	"monthwise/internal/models"
)

// statsService derives month-over-month trends and category comparisons.
// Everything is recomputed from source rows on every call.
type statsService struct {
	db *gorm.DB
}

// NewStatsService creates a new StatsServicer.
func NewStatsService(db *gorm.DB) StatsServicer {
	return &statsService{db: db}
}

// categorySpend is a per-category aggregation row for one month.
type categorySpend struct {
	CategoryID    uint
	CategoryLabel string
	Spent         float64
}

// ComputeStats builds the full statistics payload for a user: per-month
// totals newest-first, overall averages, and a category comparison between
// the two most recent months. A user with no months gets an empty response,
// not an error.
func (s *statsService) ComputeStats(userID uint) (*models.StatsResponse, error) {
	var months []models.Month
	if err := s.db.Where("user_id = ?", userID).Order("year DESC, month DESC").Find(&months).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := &models.StatsResponse{
		MonthlyTrends:       []models.MonthlyStats{},
		CategoryComparisons: []models.CategoryComparison{},
	}
	if len(months) == 0 {
		return resp, nil
	}

	// Fixed expenses are user-scoped, so the same total applies to every month.
	var totalFixed float64
	err := s.db.Model(&models.FixedExpense{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalFixed).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var sumSpent, sumIncome float64
	for _, month := range months {
		var totalIncome float64
		err := s.db.Model(&models.IncomeEntry{}).
			Where("month_id = ?", month.ID).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&totalIncome).Error
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var totalSpent float64
		err = s.db.Model(&models.Item{}).
			Where("month_id = ?", month.ID).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&totalSpent).Error
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		resp.MonthlyTrends = append(resp.MonthlyTrends, models.MonthlyStats{
			Year:        month.Year,
			Month:       month.Month,
			TotalIncome: totalIncome,
			TotalSpent:  totalSpent,
			TotalFixed:  totalFixed,
			Net:         totalIncome - totalFixed - totalSpent,
		})
		sumSpent += totalSpent
		sumIncome += totalIncome
	}

	resp.AverageMonthlySpending = sumSpent / float64(len(months))
	resp.AverageMonthlyIncome = sumIncome / float64(len(months))

	comparisons, err := s.compareCategories(months)
	if err != nil {
		return nil, err
	}
	resp.CategoryComparisons = comparisons

	return resp, nil
}

// compareCategories compares per-category spend between the two most recent
// months. With a single month the previous side is a zero-spend baseline, so
// every comparison has an absent change percent.
func (s *statsService) compareCategories(months []models.Month) ([]models.CategoryComparison, error) {
	current, err := s.spendByCategory(months[0].ID)
	if err != nil {
		return nil, err
	}

	previous := map[uint]categorySpend{}
	if len(months) > 1 {
		previous, err = s.spendByCategory(months[1].ID)
		if err != nil {
			return nil, err
		}
	}

	comparisons := []models.CategoryComparison{}
	seen := make(map[uint]bool)
	for _, spend := range current {
		seen[spend.CategoryID] = true
		comparisons = append(comparisons, newComparison(spend, previous[spend.CategoryID].Spent))
	}
	// Categories spent in only the previous month still show up, with their
	// current side at zero.
	for _, spend := range previous {
		if seen[spend.CategoryID] {
			continue
		}
		comparisons = append(comparisons, newComparison(categorySpend{
			CategoryID:    spend.CategoryID,
			CategoryLabel: spend.CategoryLabel,
		}, spend.Spent))
	}

	sort.Slice(comparisons, func(i, j int) bool {
		return comparisons[i].CategoryID < comparisons[j].CategoryID
	})
	return comparisons, nil
}

func newComparison(current categorySpend, previousSpent float64) models.CategoryComparison {
	comparison := models.CategoryComparison{
		CategoryID:         current.CategoryID,
		CategoryLabel:      current.CategoryLabel,
		CurrentMonthSpent:  current.Spent,
		PreviousMonthSpent: previousSpent,
		ChangeAmount:       current.Spent - previousSpent,
	}
	// A percentage change from zero is undefined, so the field stays absent.
	if previousSpent > 0 {
		percent := (comparison.ChangeAmount / previousSpent) * 100
		comparison.ChangePercent = &percent
	}
	return comparison
}

// spendByCategory sums a month's items per category, keyed by category ID.
func (s *statsService) spendByCategory(monthID uint) (map[uint]categorySpend, error) {
	var rows []categorySpend
	err := s.db.Table("items").
		Select("items.category_id, budget_categories.label AS category_label, SUM(items.amount) AS spent").
		Joins("JOIN budget_categories ON budget_categories.id = items.category_id").
		Where("items.month_id = ?", monthID).
		Group("items.category_id, budget_categories.label").
		Order("items.category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := make(map[uint]categorySpend, len(rows))
	for _, row := range rows {
		result[row.CategoryID] = row
	}
	return result, nil
}
