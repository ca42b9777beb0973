package models

// IncomeEntry is a month-scoped income line. Mutable only while the owning
// month is open.
type IncomeEntry struct {
	Base
	MonthID uint    `gorm:"not null;index" json:"month_id"`
	Label   string  `gorm:"not null" json:"label"`
	Amount  float64 `gorm:"not null" json:"amount"`
}
