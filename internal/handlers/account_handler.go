package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tally/internal/errors"
	"tally/internal/models"
	"tally/internal/services"
)

// AccountHandler handles account reference-table requests.
type AccountHandler struct {
	accountService services.AccountServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService services.AccountServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// AnnotateAccountRequest sets the human-maintained fields of an account
// row. Omitted fields clear back to NULL.
type AnnotateAccountRequest struct {
	Type *models.AccountType `json:"type" binding:"omitempty,account_type"`
	Tag  *string             `json:"tag" binding:"omitempty,max=100"`
}

// List returns all account rows, name ascending.
func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.accountService.List()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

// Annotate sets the type and tag of one account row.
func (h *AccountHandler) Annotate(c *gin.Context) {
	var req AnnotateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.Annotate(c.Param("id"), req.Type, req.Tag)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}
