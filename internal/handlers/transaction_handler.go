package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "tally/internal/errors"
	"tally/internal/services"
)

// TransactionHandler handles transaction read and summary requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// TransactionQuery is the shared query shape for endpoints that operate
// on a filtered transaction set.
type TransactionQuery struct {
	Accounts         []string   `form:"account"`
	AllAccounts      bool       `form:"all_accounts"`
	Category         string     `form:"category"`
	Month            *int       `form:"month" binding:"omitempty,min=1,max=12"`
	Year             *int       `form:"year" binding:"omitempty,min=1900,max=2200"`
	From             *time.Time `form:"from" time_format:"2006-01-02"`
	To               *time.Time `form:"to" time_format:"2006-01-02"`
	ExcludeTransfers bool       `form:"exclude_transfers"`
}

func (q *TransactionQuery) filter() services.TransactionFilter {
	return services.TransactionFilter{
		Accounts:    q.Accounts,
		AllAccounts: q.AllAccounts,
		Category:    q.Category,
		Month:       q.Month,
		Year:        q.Year,
		From:        q.From,
		To:          q.To,
	}
}

// List returns the transactions matching the query, date ascending.
// With exclude_transfers set, inter-account transfer pairs are removed
// and reported alongside the remaining rows.
func (h *TransactionHandler) List(c *gin.Context) {
	var query TransactionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	txns, err := h.transactionService.Fetch(query.filter())
	if err != nil {
		respondWithError(c, err)
		return
	}

	if query.ExcludeTransfers {
		remaining, pairs := h.transactionService.FilterInternalTransfers(txns)
		c.JSON(http.StatusOK, gin.H{"transactions": remaining, "transfers": pairs})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txns})
}

// Options returns the distinct accounts, categories, months, and years
// present in transaction data, for populating filter dropdowns.
func (h *TransactionHandler) Options(c *gin.Context) {
	opts, err := h.transactionService.Options()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, opts)
}

// Overview returns outflow, inflow, and net totals for the matching
// transactions.
func (h *TransactionHandler) Overview(c *gin.Context) {
	var query TransactionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	txns, err := h.transactionService.Fetch(query.filter())
	if err != nil {
		respondWithError(c, err)
		return
	}
	if query.ExcludeTransfers {
		txns, _ = h.transactionService.FilterInternalTransfers(txns)
	}

	c.JSON(http.StatusOK, gin.H{"overview": h.transactionService.Overview(txns)})
}

// StatisticsQuery extends the shared filter with the reduction to apply.
type StatisticsQuery struct {
	TransactionQuery
	Statistic string `form:"statistic" binding:"omitempty,statistic"`
}

// Statistics sums each category's transactions per calendar month and
// reduces the monthly totals with the requested statistic. Defaults to
// the average.
func (h *TransactionHandler) Statistics(c *gin.Context) {
	var query StatisticsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	stat := services.Statistic(query.Statistic)
	if stat == "" {
		stat = services.StatisticAverage
	}

	txns, err := h.transactionService.Fetch(query.filter())
	if err != nil {
		respondWithError(c, err)
		return
	}
	if query.ExcludeTransfers {
		txns, _ = h.transactionService.FilterInternalTransfers(txns)
	}

	stats, err := h.transactionService.MonthlyStatistics(txns, stat)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"statistics": stats})
}
