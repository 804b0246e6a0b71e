package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "tally/internal/errors"
	"tally/internal/models"
)

// accountService lists and annotates the accounts reference table.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// List returns all account rows, name ascending. An empty table is a
// NoData signal; the reconciler populates it from observed data.
func (s *accountService) List() ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.Order("name ASC").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(accounts) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrNoData, "no accounts known yet")
	}
	return accounts, nil
}

// Annotate sets the human-maintained fields of an account row. The name
// key never changes here; nil clears a field back to NULL.
func (s *accountService) Annotate(id string, accountType *models.AccountType, tag *string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := map[string]interface{}{
		"type": accountType,
		"tag":  tag,
	}
	if err := s.db.Model(&account).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	account.Type = accountType
	account.Tag = tag
	return &account, nil
}
