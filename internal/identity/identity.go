// Package identity computes content-addressed transaction identifiers.
// The id is a pure function of the record's business fields, so two
// imports of byte-identical source rows always produce the same id.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"tally/internal/models"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// HashRecord returns the hex digest of the ordered field values.
// Only deterministic normalization happens before hashing: the date is
// reduced to its calendar day and the amount to its canonical decimal
// string. Missing text fields hash as the empty string.
func HashRecord(date time.Time, account, description, category, tags string, amount decimal.Decimal) string {
	h := sha256.New()
	for _, field := range []string{
		date.Format(dateLayout),
		account,
		description,
		category,
		tags,
		amount.String(),
	} {
		h.Write([]byte(field))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// HashTransaction fills in and returns the content hash for t.
func HashTransaction(t *models.Transaction) string {
	t.ID = HashRecord(t.Date, t.Account, t.Description, t.Category, t.Tags, t.Amount)
	return t.ID
}
