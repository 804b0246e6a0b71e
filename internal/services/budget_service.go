package services

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "tally/internal/errors"
	"tally/internal/models"
)

// budgetService manages budget targets and actual-vs-budget metrics.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// CategoryMetric is the actual-vs-budget result for one category.
type CategoryMetric struct {
	Category string           `json:"category"`
	Actual   decimal.Decimal  `json:"actual"`
	Target   *decimal.Decimal `json:"target,omitempty"`
	Delta    *decimal.Decimal `json:"delta,omitempty"`
}

// Delta returns the percent deviation of actual spend from the target,
// rounded to two decimals, or nil when the target is unset or zero.
// Never divides by zero.
func Delta(actual decimal.Decimal, target *decimal.Decimal) *decimal.Decimal {
	if target == nil || target.IsZero() {
		return nil
	}
	d := actual.Sub(*target).
		Div(*target).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	return &d
}

// Targets returns all budget target rows. An empty table is a NoData
// signal; the caller typically reacts by reconciling categories first.
func (s *budgetService) Targets() ([]models.BudgetTarget, error) {
	var targets []models.BudgetTarget
	if err := s.db.Order("category ASC").Find(&targets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(targets) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrNoData, "no budget targets defined")
	}
	return targets, nil
}

// UpdateTarget replaces the monthly and yearly amounts of a target row.
// The row's category key never changes; nil clears an amount back to
// NULL, matching the budget editor's replace semantics.
func (s *budgetService) UpdateTarget(id string, monthly, yearly *decimal.Decimal) (*models.BudgetTarget, error) {
	var target models.BudgetTarget
	if err := s.db.Where("id = ?", id).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetTargetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := map[string]interface{}{
		"monthly": monthly,
		"yearly":  yearly,
	}
	if err := s.db.Model(&target).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	target.Monthly = monthly
	target.Yearly = yearly
	return &target, nil
}

// CategoryMetrics computes per-category actual outflow and percent
// delta against the chosen period's target. Actual spend is
// -1 * sum(amount), so outflows read as positive magnitudes. Categories
// present in the transactions but missing a target row still appear,
// with a nil delta.
func (s *budgetService) CategoryMetrics(txns []models.Transaction, period models.BudgetPeriod) ([]CategoryMetric, error) {
	if len(txns) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrNoData, "no transactions to measure against the budget")
	}

	var targets []models.BudgetTarget
	if err := s.db.Find(&targets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	targetByCategory := make(map[string]*models.BudgetTarget, len(targets))
	for i := range targets {
		targetByCategory[targets[i].Category] = &targets[i]
	}

	actuals := make(map[string]decimal.Decimal)
	for _, t := range txns {
		actuals[t.Category] = actuals[t.Category].Add(t.Amount)
	}

	var metrics []CategoryMetric
	for category, sum := range actuals {
		actual := sum.Neg()
		metric := CategoryMetric{Category: category, Actual: actual}
		if target := targetByCategory[category]; target != nil {
			metric.Target = target.Target(period)
			metric.Delta = Delta(actual, metric.Target)
		}
		metrics = append(metrics, metric)
	}
	sort.Slice(metrics, func(i, j int) bool { return metrics[i].Category < metrics[j].Category })
	return metrics, nil
}
