package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget represents a spending allowance for a category over a validity
// window. Amount is the remaining allowance: it starts at the allocation
// and is decremented by every expense posted against the category.
type Budget struct {
	Base
	Category    string          `gorm:"not null;index" json:"category"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	StartDate   time.Time       `gorm:"not null" json:"start_date"`
	EndDate     time.Time       `gorm:"not null" json:"end_date"`
	Description string          `json:"description"`
}
