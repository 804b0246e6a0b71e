package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "tally/internal/errors"
	"tally/internal/models"
	"tally/internal/services"
)

// BudgetHandler handles budget target and metric requests.
type BudgetHandler struct {
	budgetService      services.BudgetServicer
	transactionService services.TransactionServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, transactionService services.TransactionServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, transactionService: transactionService}
}

// UpdateTargetRequest replaces a target row's amounts. Omitted fields
// clear back to NULL, matching the budget editor's replace semantics.
type UpdateTargetRequest struct {
	Monthly *decimal.Decimal `json:"monthly"`
	Yearly  *decimal.Decimal `json:"yearly"`
}

// GetTargets lists all budget target rows, category ascending.
func (h *BudgetHandler) GetTargets(c *gin.Context) {
	targets, err := h.budgetService.Targets()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"targets": targets})
}

// UpdateTarget replaces the monthly and yearly amounts of one target row.
func (h *BudgetHandler) UpdateTarget(c *gin.Context) {
	var req UpdateTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	target, err := h.budgetService.UpdateTarget(c.Param("id"), req.Monthly, req.Yearly)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"target": target})
}

// MetricsQuery extends the shared filter with the budget period the
// actuals are measured against.
type MetricsQuery struct {
	TransactionQuery
	Period string `form:"period" binding:"omitempty,budget_period"`
}

// GetMetrics computes per-category actual spend and percent deviation
// from the chosen period's target, over the matching transactions.
// Defaults to the monthly period.
func (h *BudgetHandler) GetMetrics(c *gin.Context) {
	var query MetricsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	period := models.BudgetPeriod(query.Period)
	if period == "" {
		period = models.BudgetPeriodMonthly
	}

	txns, err := h.transactionService.Fetch(query.filter())
	if err != nil {
		respondWithError(c, err)
		return
	}
	if query.ExcludeTransfers {
		txns, _ = h.transactionService.FilterInternalTransfers(txns)
	}

	metrics, err := h.budgetService.CategoryMetrics(txns, period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"metrics": metrics, "period": period})
}
