package models

// BudgetCategory is a user-defined spending bucket. DefaultAmount is the
// allocation copied into each new month's budget rows at seeding time.
type BudgetCategory struct {
	Base
	UserID        uint    `gorm:"not null;index" json:"user_id"`
	Label         string  `gorm:"not null" json:"label"`
	DefaultAmount float64 `gorm:"not null" json:"default_amount"`

	// Relationships
	MonthlyBudgets []MonthlyBudget `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
	Items          []Item          `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}
