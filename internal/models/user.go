package models

// User represents an account holder. All other entities are owned by a user,
// directly or through a month, and are removed when the user is deleted.
type User struct {
	Base
	Username          string  `gorm:"uniqueIndex;not null" json:"username"`
	Password          string  `gorm:"not null" json:"-"`
	Currency          string  `gorm:"size:3;not null;default:USD" json:"currency"`
	Savings           float64 `gorm:"not null;default:0" json:"savings"`
	SavingsGoal       float64 `gorm:"not null;default:0" json:"savings_goal"`
	RetirementSavings float64 `gorm:"not null;default:0" json:"retirement_savings"`

	// Relationships
	FixedExpenses []FixedExpense   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"fixed_expenses,omitempty"`
	Categories    []BudgetCategory `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"categories,omitempty"`
	Months        []Month          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"months,omitempty"`
}
