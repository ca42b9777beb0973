package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "monthwise/internal/errors"
	"monthwise/internal/logger"
	"monthwise/internal/models"
	"monthwise/internal/pagination"
)

// monthService owns the month lifecycle: find-or-create resolution with
// budget seeding, summary aggregation, the one-way close transition, and
// snapshot retrieval.
type monthService struct {
	db       *gorm.DB
	renderer ReportRenderer
	now      func() time.Time
}

// NewMonthService creates a new MonthServicer.
func NewMonthService(db *gorm.DB, renderer ReportRenderer) MonthServicer {
	return &monthService{db: db, renderer: renderer, now: time.Now}
}

// findMonth loads a month by ID, scoped to its owner.
func findMonth(db *gorm.DB, userID, monthID uint) (*models.Month, error) {
	var month models.Month
	if err := db.Where("id = ? AND user_id = ?", monthID, userID).First(&month).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMonthNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &month, nil
}

// findOpenMonth loads a month and rejects it if closed. Mutating services use
// this as the closed-month gate.
func findOpenMonth(db *gorm.DB, userID, monthID uint) (*models.Month, error) {
	month, err := findMonth(db, userID, monthID)
	if err != nil {
		return nil, err
	}
	if month.IsClosed {
		return nil, apperrors.ErrMonthClosed
	}
	return month, nil
}

// ListMonths returns the user's months, newest period first.
func (s *monthService) ListMonths(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Month], error) {
	page.Defaults()

	base := s.db.Model(&models.Month{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var months []models.Month
	if err := base.Order("year DESC, month DESC").Scopes(pagination.Paginate(page)).Find(&months).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(months, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// ResolveCurrentMonth returns the month row for the current calendar period,
// creating and seeding it on first touch. Repeated calls within the same
// calendar month return the same row.
func (s *monthService) ResolveCurrentMonth(userID uint) (*models.Month, error) {
	now := s.now()
	year, monthNum := now.Year(), int(now.Month())

	var month models.Month
	err := s.db.Where("user_id = ? AND year = ? AND month = ?", userID, year, monthNum).First(&month).Error
	if err == nil {
		return &month, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	month = models.Month{UserID: userID, Year: year, Month: monthNum}
	if err := s.db.Create(&month).Error; err != nil {
		// A concurrent request may have created the row first; the unique
		// (user, year, month) constraint makes the loser re-read.
		var existing models.Month
		if ferr := s.db.Where("user_id = ? AND year = ? AND month = ?", userID, year, monthNum).First(&existing).Error; ferr == nil {
			return &existing, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.seedMonthBudgets(&month)
	return &month, nil
}

// seedMonthBudgets copies every category's default allocation into the given
// month. Seeding is best-effort per row: a failed insert is recorded and
// skipped so one bad category never blocks month creation, and rows already
// inserted stay.
func (s *monthService) seedMonthBudgets(month *models.Month) {
	var categories []models.BudgetCategory
	if err := s.db.Where("user_id = ?", month.UserID).Order("id").Find(&categories).Error; err != nil {
		logger.Get().Warnw("budget seeding: failed to load categories",
			"month_id", month.ID, "error", err.Error())
		return
	}

	var seeded, skipped []uint
	for _, category := range categories {
		budget := models.MonthlyBudget{
			MonthID:         month.ID,
			CategoryID:      category.ID,
			AllocatedAmount: category.DefaultAmount,
		}
		if err := s.db.Create(&budget).Error; err != nil {
			skipped = append(skipped, category.ID)
			continue
		}
		seeded = append(seeded, category.ID)
	}

	if len(skipped) > 0 {
		logger.Get().Warnw("budget seeding: some categories were skipped",
			"month_id", month.ID,
			"seeded", seeded,
			"skipped", skipped,
		)
	}
}

// GetMonth returns a single month owned by the user.
func (s *monthService) GetMonth(userID, monthID uint) (*models.Month, error) {
	return findMonth(s.db, userID, monthID)
}

// Summarize computes a fresh summary for the month. Pure read: nothing is
// cached or persisted, and a month with no activity yields zero totals and
// empty lists rather than an error.
func (s *monthService) Summarize(userID, monthID uint) (*models.MonthSummary, error) {
	month, err := findMonth(s.db, userID, monthID)
	if err != nil {
		return nil, err
	}
	return summarize(s.db, month)
}

// summarize aggregates one month's source rows into a MonthSummary.
func summarize(db *gorm.DB, month *models.Month) (*models.MonthSummary, error) {
	incomeEntries := []models.IncomeEntry{}
	if err := db.Where("month_id = ?", month.ID).Order("id").Find(&incomeEntries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	fixedExpenses := []models.FixedExpense{}
	if err := db.Where("user_id = ?", month.UserID).Order("id").Find(&fixedExpenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	budgets := []models.BudgetLine{}
	err := db.Table("monthly_budgets").
		Select("monthly_budgets.id, monthly_budgets.month_id, monthly_budgets.category_id, budget_categories.label AS category_label, monthly_budgets.allocated_amount").
		Joins("JOIN budget_categories ON budget_categories.id = monthly_budgets.category_id").
		Where("monthly_budgets.month_id = ?", month.ID).
		Order("monthly_budgets.id").
		Scan(&budgets).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	items := []models.ItemLine{}
	err = db.Table("items").
		Select("items.id, items.month_id, items.category_id, budget_categories.label AS category_label, items.description, items.amount, items.spent_on").
		Joins("JOIN budget_categories ON budget_categories.id = items.category_id").
		Where("items.month_id = ?", month.ID).
		Order("items.spent_on DESC, items.id DESC").
		Scan(&items).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	spentByCategory := make(map[uint]float64)
	totalSpent := 0.0
	for _, item := range items {
		spentByCategory[item.CategoryID] += item.Amount
		totalSpent += item.Amount
	}

	totalBudgeted := 0.0
	for i := range budgets {
		budgets[i].SpentAmount = spentByCategory[budgets[i].CategoryID]
		totalBudgeted += budgets[i].AllocatedAmount
	}

	totalIncome := 0.0
	for _, entry := range incomeEntries {
		totalIncome += entry.Amount
	}
	totalFixed := 0.0
	for _, expense := range fixedExpenses {
		totalFixed += expense.Amount
	}

	return &models.MonthSummary{
		Month:         *month,
		IncomeEntries: incomeEntries,
		FixedExpenses: fixedExpenses,
		Budgets:       budgets,
		Items:         items,
		TotalIncome:   totalIncome,
		TotalFixed:    totalFixed,
		TotalBudgeted: totalBudgeted,
		TotalSpent:    totalSpent,
		Remaining:     totalIncome - totalFixed - totalSpent,
	}, nil
}

// CloseMonth transitions a month from open to closed, exactly once. The
// summary is computed, rendered, and persisted as the month's snapshot before
// the closed flag flips, all inside one transaction: a failure at any step
// leaves the month open, snapshotless, and retryable. A second close attempt
// is rejected, not silently accepted.
func (s *monthService) CloseMonth(userID, monthID uint) (*models.Month, error) {
	var closed models.Month

	err := s.db.Transaction(func(tx *gorm.DB) error {
		month, err := findMonth(tx, userID, monthID)
		if err != nil {
			return err
		}
		if month.IsClosed {
			return apperrors.ErrMonthAlreadyClosed
		}

		summary, err := summarize(tx, month)
		if err != nil {
			return err
		}

		pdfData, err := s.renderer.Render(summary)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		snapshot := models.MonthlySnapshot{MonthID: month.ID, PDFData: pdfData}
		if err := tx.Create(&snapshot).Error; err != nil {
			// The unique month_id constraint serializes concurrent closes:
			// the loser fails here and rolls back.
			return apperrors.Wrap(apperrors.ErrDuplicateSnapshot, err)
		}

		now := s.now()
		updates := map[string]interface{}{"is_closed": true, "closed_at": now}
		if err := tx.Model(&models.Month{}).Where("id = ?", month.ID).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		month.IsClosed = true
		month.ClosedAt = &now
		closed = *month
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &closed, nil
}

// GetSnapshot returns the stored report bytes for a closed month. A closed
// month without a snapshot is an internal-consistency violation, but is
// reported the same way as an open month: not found.
func (s *monthService) GetSnapshot(userID, monthID uint) ([]byte, error) {
	month, err := findMonth(s.db, userID, monthID)
	if err != nil {
		return nil, err
	}

	var snapshot models.MonthlySnapshot
	if err := s.db.Where("month_id = ?", month.ID).First(&snapshot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if month.IsClosed {
				logger.Get().Errorw("closed month has no snapshot",
					"month_id", month.ID, "user_id", userID)
			}
			return nil, apperrors.ErrSnapshotNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return snapshot.PDFData, nil
}
