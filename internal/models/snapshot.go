package models

// MonthlySnapshot is the immutable report persisted when a month closes.
// Exactly one exists per closed month; it is never regenerated or edited.
type MonthlySnapshot struct {
	Base
	MonthID uint   `gorm:"not null;uniqueIndex" json:"month_id"`
	PDFData []byte `gorm:"not null" json:"-"`
}
