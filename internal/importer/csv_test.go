package importer

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Run("valid_file", func(t *testing.T) {
		in := strings.Join([]string{
			"Date,Account,Description,Category,Tags,Amount",
			"2025-01-03,Checking,NETFLIX.COM,Entertainment,,-15.49",
			"01/05/2025,Savings,PAYCHECK,Income,salary,2500.00",
		}, "\n")

		txns, rowErrs, err := Parse(strings.NewReader(in))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rowErrs) != 0 {
			t.Fatalf("expected no row errors, got %v", rowErrs)
		}
		if len(txns) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(txns))
		}
		if txns[0].ID == "" || txns[1].ID == "" {
			t.Error("expected ids to be computed at parse time")
		}
		if txns[0].Description != "NETFLIX.COM" {
			t.Errorf("unexpected description %q", txns[0].Description)
		}
		if !txns[0].Amount.Equal(txns[0].Amount.Abs().Neg()) {
			t.Error("expected first row to be an outflow")
		}
		if got := txns[1].Date.Format("2006-01-02"); got != "2025-01-05" {
			t.Errorf("expected slash date to parse, got %s", got)
		}
	})

	t.Run("missing_columns", func(t *testing.T) {
		in := "date,description,amount\n2025-01-03,NETFLIX.COM,-15.49\n"
		_, _, err := Parse(strings.NewReader(in))
		if err == nil {
			t.Fatal("expected error for missing columns")
		}
		for _, col := range []string{"account", "category", "tags"} {
			if !strings.Contains(err.Error(), col) {
				t.Errorf("expected error to name missing column %q, got: %v", col, err)
			}
		}
	})

	t.Run("bad_rows_are_skipped", func(t *testing.T) {
		in := strings.Join([]string{
			"date,account,description,category,tags,amount",
			"2025-01-03,Checking,GOOD ROW,Misc,,-10.00",
			"not-a-date,Checking,BAD DATE,Misc,,-10.00",
			"2025-01-04,Checking,BAD AMOUNT,Misc,,ten",
			"2025-01-05,Checking,ANOTHER GOOD ROW,Misc,,-5.00",
		}, "\n")

		txns, rowErrs, err := Parse(strings.NewReader(in))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(txns) != 2 {
			t.Errorf("expected 2 parsed rows, got %d", len(txns))
		}
		if len(rowErrs) != 2 {
			t.Fatalf("expected 2 row errors, got %d", len(rowErrs))
		}
		if rowErrs[0].Line != 3 || rowErrs[1].Line != 4 {
			t.Errorf("unexpected error lines: %+v", rowErrs)
		}
	})

	t.Run("identical_rows_identical_ids", func(t *testing.T) {
		in := strings.Join([]string{
			"date,account,description,category,tags,amount",
			"2025-01-03,Checking,NETFLIX.COM,Entertainment,,-15.49",
			"2025-01-03,Checking,NETFLIX.COM,Entertainment,,-15.49",
		}, "\n")

		txns, _, err := Parse(strings.NewReader(in))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if txns[0].ID != txns[1].ID {
			t.Error("byte-identical rows must share one id")
		}
	})
}
