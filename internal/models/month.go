package models

import "time"

// Month is one budgeting period for a user, unique per (user, year, month).
// IsClosed only ever moves from false to true; ClosedAt is set exactly once,
// at close time.
type Month struct {
	Base
	UserID   uint       `gorm:"not null;uniqueIndex:idx_months_user_year_month" json:"user_id"`
	Year     int        `gorm:"not null;uniqueIndex:idx_months_user_year_month" json:"year"`
	Month    int        `gorm:"not null;uniqueIndex:idx_months_user_year_month" json:"month"`
	IsClosed bool       `gorm:"not null;default:false" json:"is_closed"`
	ClosedAt *time.Time `json:"closed_at,omitempty"`

	// Relationships
	IncomeEntries  []IncomeEntry   `gorm:"foreignKey:MonthID;constraint:OnDelete:CASCADE" json:"-"`
	MonthlyBudgets []MonthlyBudget `gorm:"foreignKey:MonthID;constraint:OnDelete:CASCADE" json:"-"`
	Items          []Item          `gorm:"foreignKey:MonthID;constraint:OnDelete:CASCADE" json:"-"`
}
