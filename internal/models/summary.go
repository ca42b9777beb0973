package models

import "time"

// BudgetLine is a monthly budget row joined with its category label and the
// amount actually spent against it.
type BudgetLine struct {
	ID              uint    `json:"id"`
	MonthID         uint    `json:"month_id"`
	CategoryID      uint    `json:"category_id"`
	CategoryLabel   string  `json:"category_label"`
	AllocatedAmount float64 `json:"allocated_amount"`
	SpentAmount     float64 `json:"spent_amount"`
}

// ItemLine is a spending item joined with its category label.
type ItemLine struct {
	ID            uint      `json:"id"`
	MonthID       uint      `json:"month_id"`
	CategoryID    uint      `json:"category_id"`
	CategoryLabel string    `json:"category_label"`
	Description   string    `json:"description"`
	Amount        float64   `json:"amount"`
	SpentOn       time.Time `json:"spent_on"`
}

// MonthSummary is the computed aggregation of a month's income, fixed costs,
// budgets, and items. It is recomputed from source rows on every read and is
// never persisted except inside a closed month's rendered snapshot.
//
// Remaining always equals TotalIncome - TotalFixed - TotalSpent.
type MonthSummary struct {
	Month         Month          `json:"month"`
	IncomeEntries []IncomeEntry  `json:"income_entries"`
	FixedExpenses []FixedExpense `json:"fixed_expenses"`
	Budgets       []BudgetLine   `json:"budgets"`
	Items         []ItemLine     `json:"items"`
	TotalIncome   float64        `json:"total_income"`
	TotalFixed    float64        `json:"total_fixed"`
	TotalBudgeted float64        `json:"total_budgeted"`
	TotalSpent    float64        `json:"total_spent"`
	Remaining     float64        `json:"remaining"`
}
