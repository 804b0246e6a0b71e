package services

import (
	"testing"

	"tally/internal/models"
	"tally/internal/testutil"
)

func TestImportBatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewImportService(db)

	t.Run("inserts new rows and returns their ids", func(t *testing.T) {
		rows := []models.Transaction{
			testutil.MakeTransaction(t, "2025-01-05", "Chase Checking", "NETFLIX.COM", "Entertainment", "-15.49"),
			testutil.MakeTransaction(t, "2025-01-07", "Chase Checking", "WHOLE FOODS", "Groceries", "-82.10"),
		}

		result, err := service.ImportBatch(rows)
		testutil.AssertNoError(t, err)

		if len(result.InsertedIDs) != 2 {
			t.Fatalf("expected 2 inserted ids, got %d", len(result.InsertedIDs))
		}
		if result.Skipped != 0 || result.Failed != 0 {
			t.Errorf("expected 0 skipped and 0 failed, got %d/%d", result.Skipped, result.Failed)
		}

		var count int64
		db.Model(&models.Transaction{}).Count(&count)
		if count != 2 {
			t.Errorf("expected 2 persisted rows, got %d", count)
		}
	})

	t.Run("re-importing the same batch skips every row", func(t *testing.T) {
		rows := []models.Transaction{
			testutil.MakeTransaction(t, "2025-01-05", "Chase Checking", "NETFLIX.COM", "Entertainment", "-15.49"),
			testutil.MakeTransaction(t, "2025-01-07", "Chase Checking", "WHOLE FOODS", "Groceries", "-82.10"),
		}

		result, err := service.ImportBatch(rows)
		testutil.AssertNoError(t, err)

		if len(result.InsertedIDs) != 0 {
			t.Errorf("expected 0 inserted ids, got %d", len(result.InsertedIDs))
		}
		if result.Skipped != 2 {
			t.Errorf("expected 2 skipped, got %d", result.Skipped)
		}

		var count int64
		db.Model(&models.Transaction{}).Count(&count)
		if count != 2 {
			t.Errorf("expected row count unchanged at 2, got %d", count)
		}
	})

	t.Run("duplicate within a batch counts once", func(t *testing.T) {
		rows := []models.Transaction{
			testutil.MakeTransaction(t, "2025-02-01", "Amex", "SPOTIFY", "Entertainment", "-10.99"),
			testutil.MakeTransaction(t, "2025-02-03", "Amex", "SHELL OIL", "Transport", "-44.20"),
			testutil.MakeTransaction(t, "2025-02-01", "Amex", "SPOTIFY", "Entertainment", "-10.99"),
		}

		result, err := service.ImportBatch(rows)
		testutil.AssertNoError(t, err)

		if len(result.InsertedIDs) != 2 {
			t.Errorf("expected 2 inserted ids, got %d", len(result.InsertedIDs))
		}
		if result.Skipped != 1 {
			t.Errorf("expected 1 skipped, got %d", result.Skipped)
		}
	})

	t.Run("hashes rows arriving without an id", func(t *testing.T) {
		withID := testutil.MakeTransaction(t, "2025-03-01", "Chase Checking", "COMCAST", "Utilities", "-79.99")
		noID := withID
		noID.ID = ""

		result, err := service.ImportBatch([]models.Transaction{noID})
		testutil.AssertNoError(t, err)

		if len(result.InsertedIDs) != 1 {
			t.Fatalf("expected 1 inserted id, got %d", len(result.InsertedIDs))
		}
		if result.InsertedIDs[0] != withID.ID {
			t.Errorf("expected computed id %s, got %s", withID.ID, result.InsertedIDs[0])
		}
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		result, err := service.ImportBatch(nil)
		testutil.AssertNoError(t, err)

		if len(result.InsertedIDs) != 0 || result.Skipped != 0 || result.Failed != 0 {
			t.Errorf("expected empty result, got %+v", result)
		}
	})
}
