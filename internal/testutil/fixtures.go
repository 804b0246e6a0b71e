package testutil

import (
	"testing"
	"time"

	"tally/internal/identity"
	"tally/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MakeTransaction builds an unpersisted transaction with its content
// hash computed. day is "2006-01-02".
func MakeTransaction(t *testing.T, day, account, description, category, amount string) models.Transaction {
	t.Helper()

	date, err := time.Parse("2006-01-02", day)
	if err != nil {
		t.Fatalf("bad fixture date %q: %v", day, err)
	}
	txn := models.Transaction{
		Date:        date,
		Account:     account,
		Description: description,
		Category:    category,
		Amount:      decimal.RequireFromString(amount),
	}
	identity.HashTransaction(&txn)
	return txn
}

// CreateTestTransaction persists a transaction built from the given fields.
func CreateTestTransaction(t *testing.T, db *gorm.DB, day, account, description, category, amount string) *models.Transaction {
	t.Helper()

	txn := MakeTransaction(t, day, account, description, category, amount)
	if err := db.Create(&txn).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return &txn
}

// CreateTestAccount persists an unannotated account row.
func CreateTestAccount(t *testing.T, db *gorm.DB, name string) *models.Account {
	t.Helper()

	account := &models.Account{Name: name}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestBudgetTarget persists a budget target row. Empty strings
// leave the monthly/yearly amounts NULL.
func CreateTestBudgetTarget(t *testing.T, db *gorm.DB, category, monthly, yearly string) *models.BudgetTarget {
	t.Helper()

	target := &models.BudgetTarget{Category: category}
	if monthly != "" {
		m := decimal.RequireFromString(monthly)
		target.Monthly = &m
	}
	if yearly != "" {
		y := decimal.RequireFromString(yearly)
		target.Yearly = &y
	}
	if err := db.Create(target).Error; err != nil {
		t.Fatalf("failed to create test budget target: %v", err)
	}
	return target
}
