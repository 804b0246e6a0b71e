package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tally/internal/errors"
	"tally/internal/importer"
	"tally/internal/models"
	"tally/internal/services"
)

// ImportHandler handles CSV upload and import requests.
type ImportHandler struct {
	importService    services.ImportServicer
	reconcileService services.ReconcileServicer
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService services.ImportServicer, reconcileService services.ReconcileServicer) *ImportHandler {
	return &ImportHandler{importService: importService, reconcileService: reconcileService}
}

// ImportResponse reports the outcome of one upload: what was inserted,
// what was skipped as already present, which rows could not be parsed,
// and which reference-table rows were provisioned along the way.
type ImportResponse struct {
	Inserted      int                 `json:"inserted"`
	Skipped       int                 `json:"skipped"`
	Failed        int                 `json:"failed"`
	InsertedIDs   []string            `json:"inserted_ids"`
	RowErrors     []importer.RowError `json:"row_errors,omitempty"`
	NewAccounts   []string            `json:"new_accounts"`
	NewCategories []string            `json:"new_categories"`
}

// Import handles a multipart CSV upload. The file is parsed, rows are
// deduplicated against existing data, and the accounts and budget
// reference tables are reconciled with the values the upload observed.
func (h *ImportHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "a CSV file upload named 'file' is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer file.Close()

	rows, rowErrs, err := importer.Parse(file)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.importService.ImportBatch(rows)
	if err != nil {
		respondWithError(c, err)
		return
	}

	newAccounts, err := h.reconcileService.ReconcileAccounts(observedAccounts(rows))
	if err != nil {
		respondWithError(c, err)
		return
	}
	newCategories, err := h.reconcileService.ReconcileCategories(observedCategories(rows))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ImportResponse{
		Inserted:      len(result.InsertedIDs),
		Skipped:       result.Skipped,
		Failed:        result.Failed,
		InsertedIDs:   result.InsertedIDs,
		RowErrors:     rowErrs,
		NewAccounts:   newAccounts,
		NewCategories: newCategories,
	})
}

func observedAccounts(rows []models.Transaction) []string {
	values := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Account != "" {
			values = append(values, row.Account)
		}
	}
	return values
}

func observedCategories(rows []models.Transaction) []string {
	values := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Category != "" {
			values = append(values, row.Category)
		}
	}
	return values
}
