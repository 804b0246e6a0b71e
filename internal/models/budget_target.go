package models

import "github.com/shopspring/decimal"

// BudgetPeriod represents the period a budget target applies to.
type BudgetPeriod string

const (
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// BudgetTarget is a reference-table row for a category observed in
// transaction data. Auto-provisioned with NULL targets; the monthly and
// yearly amounts are filled in by a human through the budget editor.
type BudgetTarget struct {
	Base
	Category string           `gorm:"uniqueIndex;not null" json:"category"`
	Monthly  *decimal.Decimal `gorm:"type:numeric(14,2)" json:"monthly,omitempty"`
	Yearly   *decimal.Decimal `gorm:"type:numeric(14,2)" json:"yearly,omitempty"`
}

// Target returns the amount for the requested period, or nil when unset.
func (b *BudgetTarget) Target(period BudgetPeriod) *decimal.Decimal {
	if period == BudgetPeriodYearly {
		return b.Yearly
	}
	return b.Monthly
}
