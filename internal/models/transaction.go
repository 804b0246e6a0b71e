package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents one imported bank transaction row. The ID is a
// content hash of the business fields, so re-importing the same source
// row always maps to the same record. Rows are written once at import
// and never mutated or deleted by the engine.
type Transaction struct {
	ID          string          `gorm:"primaryKey" json:"id"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Account     string          `gorm:"not null;index" json:"account"`
	Description string          `json:"description"`
	Category    string          `gorm:"index" json:"category"`
	Tags        string          `json:"tags"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

// IsOutflow reports whether the transaction moves money out (negative amount).
func (t *Transaction) IsOutflow() bool {
	return t.Amount.IsNegative()
}

// MonthStart returns the first calendar day of the transaction's month.
func (t *Transaction) MonthStart() time.Time {
	return time.Date(t.Date.Year(), t.Date.Month(), 1, 0, 0, 0, 0, t.Date.Location())
}
