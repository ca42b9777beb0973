package services

import (
	"time"

	"monthwise/internal/models"
	"monthwise/internal/pagination"
)

// UserServicer defines the contract for user accounts and their standing
// configuration (currency, savings fields).
type UserServicer interface {
	CreateUser(username, password string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	ChangePassword(userID uint, currentPassword, newPassword string) error
	UpdateCurrency(userID uint, currency string) (*models.User, error)
	UpdateSavings(userID uint, amount float64) (*models.User, error)
	UpdateSavingsGoal(userID uint, amount float64) (*models.User, error)
	UpdateRetirementSavings(userID uint, amount float64) (*models.User, error)
	ClearData(userID uint) error
}

// FixedExpenseServicer defines the contract for user-scoped recurring costs.
type FixedExpenseServicer interface {
	CreateFixedExpense(userID uint, label string, amount float64) (*models.FixedExpense, error)
	ListFixedExpenses(userID uint) ([]models.FixedExpense, error)
	UpdateFixedExpense(userID, expenseID uint, label *string, amount *float64) (*models.FixedExpense, error)
	DeleteFixedExpense(userID, expenseID uint) error
}

// CategoryServicer defines the contract for budget categories. Creating a
// category also seeds its default allocation into every open month.
type CategoryServicer interface {
	CreateCategory(userID uint, label string, defaultAmount float64) (*models.BudgetCategory, error)
	ListCategories(userID uint) ([]models.BudgetCategory, error)
	UpdateCategory(userID, categoryID uint, label *string, defaultAmount *float64) (*models.BudgetCategory, error)
	DeleteCategory(userID, categoryID uint) error
}

// MonthServicer defines the contract for the month lifecycle: resolution,
// summary aggregation, the one-way close transition, and snapshot retrieval.
type MonthServicer interface {
	ListMonths(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Month], error)
	ResolveCurrentMonth(userID uint) (*models.Month, error)
	GetMonth(userID, monthID uint) (*models.Month, error)
	Summarize(userID, monthID uint) (*models.MonthSummary, error)
	CloseMonth(userID, monthID uint) (*models.Month, error)
	GetSnapshot(userID, monthID uint) ([]byte, error)
}

// BudgetServicer defines the contract for per-month category allocations.
type BudgetServicer interface {
	ListMonthlyBudgets(userID, monthID uint) ([]models.MonthlyBudget, error)
	UpdateMonthlyBudget(userID, monthID, budgetID uint, allocatedAmount float64) (*models.MonthlyBudget, error)
}

// IncomeServicer defines the contract for month-scoped income entries.
type IncomeServicer interface {
	ListIncome(userID, monthID uint) ([]models.IncomeEntry, error)
	CreateIncome(userID, monthID uint, label string, amount float64) (*models.IncomeEntry, error)
	UpdateIncome(userID, monthID, entryID uint, label *string, amount *float64) (*models.IncomeEntry, error)
	DeleteIncome(userID, monthID, entryID uint) error
}

// ItemServicer defines the contract for discrete spending items.
type ItemServicer interface {
	ListItems(userID, monthID uint, page pagination.PageRequest) (*pagination.PageResponse[models.ItemLine], error)
	CreateItem(userID, monthID, categoryID uint, description string, amount float64, spentOn time.Time) (*models.Item, error)
	UpdateItem(userID, monthID, itemID uint, categoryID *uint, description *string, amount *float64, spentOn *time.Time) (*models.Item, error)
	DeleteItem(userID, monthID, itemID uint) error
}

// StatsServicer defines the contract for derived month-over-month statistics.
type StatsServicer interface {
	ComputeStats(userID uint) (*models.StatsResponse, error)
}

// ExportServicer defines the contract for whole-account JSON export/import.
type ExportServicer interface {
	Export(userID uint) (*UserExport, error)
	Import(userID uint, data *UserExport) error
}

// ReportRenderer produces the immutable report artifact persisted when a
// month closes.
type ReportRenderer interface {
	Render(summary *models.MonthSummary) ([]byte, error)
}
