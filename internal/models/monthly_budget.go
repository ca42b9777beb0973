package models

// MonthlyBudget is one category's allocation for one month, seeded from the
// category's default amount when the month is created. At most one row exists
// per (month, category).
type MonthlyBudget struct {
	Base
	MonthID         uint    `gorm:"not null;uniqueIndex:idx_budgets_month_category" json:"month_id"`
	CategoryID      uint    `gorm:"not null;uniqueIndex:idx_budgets_month_category" json:"category_id"`
	AllocatedAmount float64 `gorm:"not null" json:"allocated_amount"`
}
