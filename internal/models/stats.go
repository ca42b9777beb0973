package models

// MonthlyStats is one month's totals in the trend list.
type MonthlyStats struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	TotalIncome float64 `json:"total_income"`
	TotalSpent  float64 `json:"total_spent"`
	TotalFixed  float64 `json:"total_fixed"`
	Net         float64 `json:"net"`
}

// CategoryComparison compares a category's spend between the two most recent
// months. ChangePercent is nil when the previous month's spend is zero: a
// percentage change from zero is undefined, not zero or infinite.
type CategoryComparison struct {
	CategoryID         uint     `json:"category_id"`
	CategoryLabel      string   `json:"category_label"`
	CurrentMonthSpent  float64  `json:"current_month_spent"`
	PreviousMonthSpent float64  `json:"previous_month_spent"`
	ChangeAmount       float64  `json:"change_amount"`
	ChangePercent      *float64 `json:"change_percent,omitempty"`
}

// StatsResponse is the full recomputed statistics payload for a user.
type StatsResponse struct {
	MonthlyTrends          []MonthlyStats       `json:"monthly_trends"`
	CategoryComparisons    []CategoryComparison `json:"category_comparisons"`
	AverageMonthlySpending float64              `json:"average_monthly_spending"`
	AverageMonthlyIncome   float64              `json:"average_monthly_income"`
}
