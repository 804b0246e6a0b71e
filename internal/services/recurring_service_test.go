package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tally/internal/recurring"
	"tally/internal/testutil"
)

func TestRecurringPredict(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Anchor mid-April so the three-month window is January through March.
	anchor := time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC)

	testutil.CreateTestTransaction(t, db, "2025-01-05", "Chase Checking", "NETFLIX.COM", "Entertainment", "-15.49")
	testutil.CreateTestTransaction(t, db, "2025-02-05", "Chase Checking", "NETFLIX.COM 123", "Entertainment", "-15.49")
	testutil.CreateTestTransaction(t, db, "2025-03-05", "Chase Checking", "NETFLIX.COM 456", "Entertainment", "-15.49")
	// Only two window months, fails the strict cadence.
	testutil.CreateTestTransaction(t, db, "2025-01-12", "Amex", "GYM MEMBERSHIP", "Health", "-35.00")
	testutil.CreateTestTransaction(t, db, "2025-02-12", "Amex", "GYM MEMBERSHIP", "Health", "-35.00")
	// Inflow, never a candidate.
	testutil.CreateTestTransaction(t, db, "2025-01-20", "Chase Checking", "PAYCHECK", "Income", "2500.00")
	// Outside the window.
	testutil.CreateTestTransaction(t, db, "2025-04-05", "Chase Checking", "NETFLIX.COM 789", "Entertainment", "-15.49")

	service := NewRecurringService(db)

	t.Run("strict mode finds the monthly charge", func(t *testing.T) {
		candidates, err := service.Predict(recurring.Options{Months: 3, Now: anchor})
		testutil.AssertNoError(t, err)

		if len(candidates) != 1 {
			t.Fatalf("expected 1 candidate, got %d: %v", len(candidates), candidates)
		}
		c := candidates[0]
		if c.Description != "NETFLIX.COM" {
			t.Errorf("expected canonical label NETFLIX.COM, got %s", c.Description)
		}
		if !c.AverageAmount.Equal(decimal.RequireFromString("-15.49")) {
			t.Errorf("expected average -15.49, got %s", c.AverageAmount)
		}
		if len(c.TransactionIDs) != 3 {
			t.Errorf("expected 3 backing transactions, got %d", len(c.TransactionIDs))
		}
	})

	t.Run("lenient mode admits a merchant with a missed month", func(t *testing.T) {
		candidates, err := service.Predict(recurring.Options{Months: 3, Lenient: true, MinMonths: 2, Now: anchor})
		testutil.AssertNoError(t, err)

		if len(candidates) != 2 {
			t.Fatalf("expected 2 candidates, got %d: %v", len(candidates), candidates)
		}
		if candidates[0].Description != "GYM MEMBERSHIP" {
			t.Errorf("expected GYM MEMBERSHIP admitted, got %s", candidates[0].Description)
		}
	})

	t.Run("rejects a non-positive window", func(t *testing.T) {
		_, err := service.Predict(recurring.Options{Months: 0, Now: anchor})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("empty window yields an empty list", func(t *testing.T) {
		candidates, err := service.Predict(recurring.Options{Months: 3, Now: time.Date(2030, time.June, 1, 0, 0, 0, 0, time.UTC)})
		testutil.AssertNoError(t, err)

		if len(candidates) != 0 {
			t.Errorf("expected no candidates, got %v", candidates)
		}
	})
}
