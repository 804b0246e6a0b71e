package services

import (
	"gorm.io/gorm"

	apperrors "tally/internal/errors"
	"tally/internal/models"
)

// reconcileService keeps the reference tables in sync with the values
// observed in transaction data.
type reconcileService struct {
	db *gorm.DB
}

// NewReconcileService creates a new ReconcileServicer.
func NewReconcileService(db *gorm.DB) ReconcileServicer {
	return &reconcileService{db: db}
}

// ReconcileAccounts provisions an empty Account row for every observed
// account name missing from the accounts table, and returns the names
// that were added. An empty table means an empty current set, not an
// error; calling twice with the same observed values adds nothing the
// second time.
func (s *reconcileService) ReconcileAccounts(observed []string) ([]string, error) {
	var current []string
	if err := s.db.Model(&models.Account{}).Pluck("name", &current).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	missing := missingValues(observed, current)
	if len(missing) == 0 {
		return []string{}, nil
	}

	rows := make([]models.Account, len(missing))
	for i, name := range missing {
		rows[i] = models.Account{Name: name}
	}
	if err := s.db.Create(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return missing, nil
}

// ReconcileCategories provisions an empty BudgetTarget row for every
// observed category missing from the budget table. Same contract as
// ReconcileAccounts.
func (s *reconcileService) ReconcileCategories(observed []string) ([]string, error) {
	var current []string
	if err := s.db.Model(&models.BudgetTarget{}).Pluck("category", &current).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	missing := missingValues(observed, current)
	if len(missing) == 0 {
		return []string{}, nil
	}

	rows := make([]models.BudgetTarget, len(missing))
	for i, category := range missing {
		rows[i] = models.BudgetTarget{Category: category}
	}
	if err := s.db.Create(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return missing, nil
}

// missingValues returns observed − current as a case-sensitive set
// difference, deduplicated, in observed order.
func missingValues(observed, current []string) []string {
	have := make(map[string]bool, len(current))
	for _, v := range current {
		have[v] = true
	}

	var missing []string
	for _, v := range observed {
		if !have[v] {
			have[v] = true
			missing = append(missing, v)
		}
	}
	return missing
}
