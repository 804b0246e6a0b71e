package identity

import (
	"testing"
	"time"

	"tally/internal/models"

	"github.com/shopspring/decimal"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestHashRecord(t *testing.T) {
	amount := decimal.RequireFromString("-15.49")

	t.Run("deterministic", func(t *testing.T) {
		a := HashRecord(date("2025-01-03"), "Chase Checking", "NETFLIX.COM", "Entertainment", "", amount)
		b := HashRecord(date("2025-01-03"), "Chase Checking", "NETFLIX.COM", "Entertainment", "", amount)
		if a != b {
			t.Errorf("same fields produced different hashes: %s vs %s", a, b)
		}
	})

	t.Run("field_change_changes_hash", func(t *testing.T) {
		base := HashRecord(date("2025-01-03"), "Chase Checking", "NETFLIX.COM", "Entertainment", "", amount)

		variants := []string{
			HashRecord(date("2025-01-04"), "Chase Checking", "NETFLIX.COM", "Entertainment", "", amount),
			HashRecord(date("2025-01-03"), "Chase Savings", "NETFLIX.COM", "Entertainment", "", amount),
			HashRecord(date("2025-01-03"), "Chase Checking", "NETFLIX.CO", "Entertainment", "", amount),
			HashRecord(date("2025-01-03"), "Chase Checking", "NETFLIX.COM", "Subscriptions", "", amount),
			HashRecord(date("2025-01-03"), "Chase Checking", "NETFLIX.COM", "Entertainment", "tv", amount),
			HashRecord(date("2025-01-03"), "Chase Checking", "NETFLIX.COM", "Entertainment", "", amount.Neg()),
		}
		for i, v := range variants {
			if v == base {
				t.Errorf("variant %d collided with base hash", i)
			}
		}
	})

	t.Run("field_boundaries", func(t *testing.T) {
		// "ab"+"c" and "a"+"bc" must not hash identically.
		a := HashRecord(date("2025-01-03"), "ab", "c", "", "", amount)
		b := HashRecord(date("2025-01-03"), "a", "bc", "", "", amount)
		if a == b {
			t.Error("field boundary not preserved in hash input")
		}
	})
}

func TestHashTransaction(t *testing.T) {
	tx := models.Transaction{
		Date:        date("2025-02-01"),
		Account:     "Checking",
		Description: "SPOTIFY",
		Category:    "Entertainment",
		Amount:      decimal.RequireFromString("-9.99"),
	}
	id := HashTransaction(&tx)
	if tx.ID != id {
		t.Errorf("expected ID to be set on transaction, got %q", tx.ID)
	}
	if id != HashRecord(tx.Date, tx.Account, tx.Description, tx.Category, tx.Tags, tx.Amount) {
		t.Error("HashTransaction disagrees with HashRecord")
	}
}
