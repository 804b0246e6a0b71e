// Package importer parses uploaded bank CSV exports into transactions
// carrying their content-addressed ids.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tally/internal/identity"
	"tally/internal/models"
)

// requiredColumns are the headers an upload must carry, matched after
// lower-casing.
var requiredColumns = []string{"date", "account", "description", "category", "tags", "amount"}

// dateLayouts are tried in order when parsing the date column.
var dateLayouts = []string{"2006-01-02", "01/02/2006", "2006-01-02 15:04:05"}

// RowError records a single skipped row. Bad rows never abort the batch;
// the caller reports them alongside the import result.
type RowError struct {
	Line int    `json:"line"`
	Err  string `json:"error"`
}

// Parse reads a CSV upload and returns transactions with computed ids,
// plus per-row errors for rows that could not be parsed. A missing
// required column or an unreadable file is a hard error.
func Parse(r io.Reader) ([]models.Transaction, []RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("empty CSV: no header row")
	}

	cols, err := columnIndex(records[0])
	if err != nil {
		return nil, nil, err
	}

	var txns []models.Transaction
	var rowErrs []RowError
	for i, rec := range records[1:] {
		line := i + 2
		txn, err := parseRow(rec, cols)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: err.Error()})
			continue
		}
		txns = append(txns, txn)
	}
	return txns, rowErrs, nil
}

// columnIndex maps required column names to their positions in the
// header, lower-casing header cells first.
func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns in the uploaded file: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func parseRow(rec []string, cols map[string]int) (models.Transaction, error) {
	field := func(name string) string {
		idx := cols[name]
		if idx >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[idx])
	}

	date, err := parseDate(field("date"))
	if err != nil {
		return models.Transaction{}, err
	}

	amount, err := decimal.NewFromString(field("amount"))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("parsing amount %q: %w", field("amount"), err)
	}

	txn := models.Transaction{
		Date:        date,
		Account:     field("account"),
		Description: field("description"),
		Category:    field("category"),
		Tags:        field("tags"),
		Amount:      amount,
	}
	identity.HashTransaction(&txn)
	return txn, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing date %q: unrecognized format", s)
}
