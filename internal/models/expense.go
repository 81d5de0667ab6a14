package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a single spending record. Category is a logical
// reference to a Budget by matching string; there is no stored foreign key.
type Expense struct {
	Base
	Category    string          `gorm:"not null;index" json:"category"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Description string          `json:"description"`
}
