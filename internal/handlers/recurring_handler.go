package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tally/internal/errors"
	"tally/internal/recurring"
	"tally/internal/services"
)

// RecurringHandler handles recurring-expense prediction requests.
type RecurringHandler struct {
	recurringService services.RecurringServicer
	defaultMonths    int
}

// NewRecurringHandler creates a new RecurringHandler. defaultMonths is
// the window length used when the request does not name one.
func NewRecurringHandler(recurringService services.RecurringServicer, defaultMonths int) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService, defaultMonths: defaultMonths}
}

// RecurringQuery tunes the detection window and cadence rule.
type RecurringQuery struct {
	Months    int  `form:"months" binding:"omitempty,min=1,max=24"`
	Lenient   bool `form:"lenient"`
	MinMonths int  `form:"min_months" binding:"omitempty,min=1"`
}

// Predict returns the descriptions inferred to bill once per month over
// the trailing window, with their average amounts and backing
// transaction ids.
func (h *RecurringHandler) Predict(c *gin.Context) {
	var query RecurringQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if query.Months == 0 {
		query.Months = h.defaultMonths
	}

	candidates, err := h.recurringService.Predict(recurring.Options{
		Months:    query.Months,
		Lenient:   query.Lenient,
		MinMonths: query.MinMonths,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"candidates": candidates, "months": query.Months})
}
