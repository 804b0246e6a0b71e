package models

// AccountType represents the type of account
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCreditCard AccountType = "credit_card"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeOther      AccountType = "other"
)

// Account is a reference-table row for an account name observed in
// transaction data. The reconciler creates it with only the name set;
// Type and Tag stay NULL until a human annotates them.
type Account struct {
	Base
	Name string       `gorm:"uniqueIndex;not null" json:"name"`
	Type *AccountType `json:"type,omitempty"`
	Tag  *string      `json:"tag,omitempty"`
}
