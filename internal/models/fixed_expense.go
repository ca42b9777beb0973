package models

// FixedExpense is a recurring user-scoped cost. It is not tied to a month;
// every month's summary counts the full set of fixed expenses.
type FixedExpense struct {
	Base
	UserID uint    `gorm:"not null;index" json:"user_id"`
	Label  string  `gorm:"not null" json:"label"`
	Amount float64 `gorm:"not null" json:"amount"`
}
