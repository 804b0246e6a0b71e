package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "tally/internal/errors"
	"tally/internal/identity"
	"tally/internal/logger"
	"tally/internal/models"
)

// importService handles deduplicating transaction import.
type importService struct {
	db *gorm.DB
}

// NewImportService creates a new ImportServicer.
func NewImportService(db *gorm.DB) ImportServicer {
	return &importService{db: db}
}

// ImportResult reports the outcome of one import batch.
type ImportResult struct {
	InsertedIDs []string `json:"inserted_ids"`
	Skipped     int      `json:"skipped"`
	Failed      int      `json:"failed"`
}

// ImportBatch inserts the rows whose content hash is not already
// persisted and returns their ids. Each row is its own unit of work:
// the existence check and insert are not wrapped in a batch-spanning
// transaction, so a concurrent import can win the race on the same id.
// The primary-key constraint is the correctness backstop; a losing
// insert counts as already present. A row that fails for any other
// reason is skipped and the rest of the batch still runs.
func (s *importService) ImportBatch(rows []models.Transaction) (*ImportResult, error) {
	result := &ImportResult{InsertedIDs: []string{}}

	for i := range rows {
		row := rows[i]
		if row.ID == "" {
			identity.HashTransaction(&row)
		}

		var existing models.Transaction
		err := s.db.Where("id = ?", row.ID).First(&existing).Error
		if err == nil {
			result.Skipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := s.db.Create(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost the insert race: the row is present now, which is
				// all the importer promises.
				result.Skipped++
				continue
			}
			logger.Get().Warnw("import row failed",
				"id", row.ID,
				"error", err.Error(),
			)
			result.Failed++
			continue
		}
		result.InsertedIDs = append(result.InsertedIDs, row.ID)
	}

	return result, nil
}
