package services

import (
	"gorm.io/gorm"

	apperrors "tally/internal/errors"
	"tally/internal/models"
	"tally/internal/recurring"
)

// recurringService fetches the trailing window and runs recurrence
// detection over it.
type recurringService struct {
	db *gorm.DB
}

// NewRecurringService creates a new RecurringServicer.
func NewRecurringService(db *gorm.DB) RecurringServicer {
	return &recurringService{db: db}
}

// Predict returns the recurring-expense candidates for the configured
// trailing window. Only outflows inside the month-aligned window are
// fetched, date ascending so clustering order is stable. A window with
// no outflows yields an empty list, not an error.
func (s *recurringService) Predict(opts recurring.Options) ([]recurring.Candidate, error) {
	if opts.Months < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "months must be a positive integer")
	}
	start, end := opts.Bounds()

	var window []models.Transaction
	if err := s.db.
		Where("amount < 0 AND date >= ? AND date < ?", start, end).
		Order("date ASC").
		Find(&window).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return recurring.Detect(window, opts)
}
