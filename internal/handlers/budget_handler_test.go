package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "tally/internal/errors"
	"tally/internal/models"
	"tally/internal/services"
)

// --- mock budget service ---

type mockBudgetService struct {
	targetsFn         func() ([]models.BudgetTarget, error)
	updateTargetFn    func(id string, monthly, yearly *decimal.Decimal) (*models.BudgetTarget, error)
	categoryMetricsFn func(txns []models.Transaction, period models.BudgetPeriod) ([]services.CategoryMetric, error)
}

func (m *mockBudgetService) Targets() ([]models.BudgetTarget, error) {
	if m.targetsFn != nil {
		return m.targetsFn()
	}
	return []models.BudgetTarget{}, nil
}

func (m *mockBudgetService) UpdateTarget(id string, monthly, yearly *decimal.Decimal) (*models.BudgetTarget, error) {
	if m.updateTargetFn != nil {
		return m.updateTargetFn(id, monthly, yearly)
	}
	return &models.BudgetTarget{}, nil
}

func (m *mockBudgetService) CategoryMetrics(txns []models.Transaction, period models.BudgetPeriod) ([]services.CategoryMetric, error) {
	if m.categoryMetricsFn != nil {
		return m.categoryMetricsFn(txns, period)
	}
	return []services.CategoryMetric{}, nil
}

var _ services.BudgetServicer = (*mockBudgetService)(nil)

func setupBudgetRouter(handler *BudgetHandler) *gin.Engine {
	r := gin.New()
	r.GET("/budgets", handler.GetTargets)
	r.PUT("/budgets/:id", handler.UpdateTarget)
	r.GET("/budgets/metrics", handler.GetMetrics)
	return r
}

func TestBudgetHandler_GetTargets(t *testing.T) {
	t.Run("returns 200 with the target rows", func(t *testing.T) {
		monthly := decimal.RequireFromString("400")
		svc := &mockBudgetService{
			targetsFn: func() ([]models.BudgetTarget, error) {
				return []models.BudgetTarget{
					{Base: models.Base{ID: "t1"}, Category: "Groceries", Monthly: &monthly},
				}, nil
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc, &mockTransactionService{}))

		rec := doRequest(r, "GET", "/budgets", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if targets := result["targets"].([]interface{}); len(targets) != 1 {
			t.Errorf("expected 1 target, got %d", len(targets))
		}
	})

	t.Run("returns 404 when no targets exist", func(t *testing.T) {
		svc := &mockBudgetService{
			targetsFn: func() ([]models.BudgetTarget, error) { return nil, apperrors.ErrNoData },
		}
		r := setupBudgetRouter(NewBudgetHandler(svc, &mockTransactionService{}))

		rec := doRequest(r, "GET", "/budgets", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "NO_DATA")
	})
}

func TestBudgetHandler_UpdateTarget(t *testing.T) {
	t.Run("passes the amounts through to the service", func(t *testing.T) {
		var gotID string
		var gotMonthly, gotYearly *decimal.Decimal
		svc := &mockBudgetService{
			updateTargetFn: func(id string, monthly, yearly *decimal.Decimal) (*models.BudgetTarget, error) {
				gotID, gotMonthly, gotYearly = id, monthly, yearly
				return &models.BudgetTarget{Base: models.Base{ID: id}, Category: "Groceries", Monthly: monthly}, nil
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc, &mockTransactionService{}))

		rec := doRequest(r, "PUT", "/budgets/t1", `{"monthly":"450"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotID != "t1" {
			t.Errorf("expected id t1, got %s", gotID)
		}
		if gotMonthly == nil || !gotMonthly.Equal(decimal.RequireFromString("450")) {
			t.Errorf("expected monthly 450, got %v", gotMonthly)
		}
		if gotYearly != nil {
			t.Errorf("expected yearly nil, got %v", gotYearly)
		}
	})

	t.Run("returns 404 for an unknown target", func(t *testing.T) {
		svc := &mockBudgetService{
			updateTargetFn: func(string, *decimal.Decimal, *decimal.Decimal) (*models.BudgetTarget, error) {
				return nil, apperrors.ErrBudgetTargetNotFound
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc, &mockTransactionService{}))

		rec := doRequest(r, "PUT", "/budgets/missing", `{"monthly":"450"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BUDGET_TARGET_NOT_FOUND")
	})
}

func TestBudgetHandler_GetMetrics(t *testing.T) {
	t.Run("defaults to the monthly period", func(t *testing.T) {
		var gotPeriod models.BudgetPeriod
		txnSvc := &mockTransactionService{
			fetchFn: func(services.TransactionFilter) ([]models.Transaction, error) {
				return sampleTransactions(), nil
			},
		}
		svc := &mockBudgetService{
			categoryMetricsFn: func(_ []models.Transaction, period models.BudgetPeriod) ([]services.CategoryMetric, error) {
				gotPeriod = period
				return []services.CategoryMetric{}, nil
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc, txnSvc))

		rec := doRequest(r, "GET", "/budgets/metrics?all_accounts=true", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotPeriod != models.BudgetPeriodMonthly {
			t.Errorf("expected monthly, got %q", gotPeriod)
		}
	})

	t.Run("returns 400 on an unknown period", func(t *testing.T) {
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}, &mockTransactionService{}))

		rec := doRequest(r, "GET", "/budgets/metrics?all_accounts=true&period=weekly", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}
