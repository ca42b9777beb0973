package models

import "time"

// Item is a discrete spend within a month, attributed to a category.
// Mutable only while the owning month is open.
type Item struct {
	Base
	MonthID     uint      `gorm:"not null;index" json:"month_id"`
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	Description string    `gorm:"not null" json:"description"`
	Amount      float64   `gorm:"not null" json:"amount"`
	SpentOn     time.Time `gorm:"not null" json:"spent_on"`
}
