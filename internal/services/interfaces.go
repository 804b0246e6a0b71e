// Package services contains the engine's business logic. Each service
// owns one concern and takes its storage handle at construction; the
// caller owns the connection lifecycle.
package services

import (
	"github.com/shopspring/decimal"

	"tally/internal/models"
	"tally/internal/recurring"
)

// ImportServicer deduplicates and persists imported transaction batches.
type ImportServicer interface {
	ImportBatch(rows []models.Transaction) (*ImportResult, error)
}

// ReconcileServicer provisions reference-table rows for values observed
// in transaction data but absent from the reference tables.
type ReconcileServicer interface {
	ReconcileAccounts(observed []string) ([]string, error)
	ReconcileCategories(observed []string) ([]string, error)
}

// TransactionServicer reads persisted transactions and derives views.
type TransactionServicer interface {
	Fetch(filter TransactionFilter) ([]models.Transaction, error)
	Options() (*FilterOptions, error)
	Overview(txns []models.Transaction) Overview
	MonthlyStatistics(txns []models.Transaction, stat Statistic) ([]CategoryStatistic, error)
	FilterInternalTransfers(txns []models.Transaction) ([]models.Transaction, []TransferPair)
}

// BudgetServicer manages budget targets and actual-vs-budget metrics.
type BudgetServicer interface {
	Targets() ([]models.BudgetTarget, error)
	UpdateTarget(id string, monthly, yearly *decimal.Decimal) (*models.BudgetTarget, error)
	CategoryMetrics(txns []models.Transaction, period models.BudgetPeriod) ([]CategoryMetric, error)
}

// AccountServicer lists and annotates the accounts reference table.
type AccountServicer interface {
	List() ([]models.Account, error)
	Annotate(id string, accountType *models.AccountType, tag *string) (*models.Account, error)
}

// RecurringServicer predicts recurring expenses from the trailing window.
type RecurringServicer interface {
	Predict(opts recurring.Options) ([]recurring.Candidate, error)
}
