package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "tally/internal/errors"
	"tally/internal/models"
)

// transferWindowDays bounds how far apart the two legs of an internal
// transfer may be dated.
const transferWindowDays = 3

// transactionService reads persisted transactions and derives views.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// TransactionFilter selects a slice of the transaction table. Accounts
// is required unless AllAccounts is set. Month/Year and From/To are
// alternative date selections; when both are present the explicit range
// wins.
type TransactionFilter struct {
	Accounts    []string
	AllAccounts bool
	Category    string // empty selects all categories
	Month       *int
	Year        *int
	From        *time.Time
	To          *time.Time
}

// FilterOptions lists the distinct values present in transaction data,
// for populating selection dropdowns.
type FilterOptions struct {
	Accounts   []string `json:"accounts"`
	Categories []string `json:"categories"`
	Months     []int    `json:"months"`
	Years      []int    `json:"years"`
}

// Overview summarizes a transaction set.
type Overview struct {
	Outflow decimal.Decimal `json:"outflow"`
	Inflow  decimal.Decimal `json:"inflow"`
	Net     decimal.Decimal `json:"net"`
}

// Statistic selects the reduction applied to per-category monthly totals.
type Statistic string

const (
	StatisticAverage Statistic = "average"
	StatisticMedian  Statistic = "median"
	StatisticCount   Statistic = "count"
)

// CategoryStatistic is one per-category reduction result.
type CategoryStatistic struct {
	Category string          `json:"category"`
	Value    decimal.Decimal `json:"value"`
}

// TransferPair records two transactions identified as the legs of an
// inter-account transfer.
type TransferPair struct {
	OutflowID string          `json:"outflow_id"`
	InflowID  string          `json:"inflow_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// Fetch returns the transactions matching the filter, date ascending.
// An empty account selection is a MissingFilter; zero matching rows is
// a NoData signal the caller can branch on. All predicates are bound
// parameters, never interpolated query text.
func (s *transactionService) Fetch(filter TransactionFilter) ([]models.Transaction, error) {
	if !filter.AllAccounts && len(filter.Accounts) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrMissingFilter, "no account selected")
	}

	q := s.db.Model(&models.Transaction{})
	if !filter.AllAccounts {
		q = q.Where("account IN ?", filter.Accounts)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	if from, to, ok := filter.dateRange(); ok {
		q = q.Where("date >= ? AND date < ?", from, to)
	} else {
		if filter.From != nil {
			q = q.Where("date >= ?", *filter.From)
		}
		if filter.To != nil {
			q = q.Where("date <= ?", *filter.To)
		}
	}

	var txns []models.Transaction
	if err := q.Order("date ASC").Find(&txns).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(txns) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrNoData, "no transactions match the selected filters")
	}
	return txns, nil
}

// dateRange converts a Month/Year selection into a half-open range.
// Month and year selections become plain date bounds here so the query
// stays portable across postgres and sqlite.
func (f *TransactionFilter) dateRange() (time.Time, time.Time, bool) {
	if f.From != nil || f.To != nil {
		return time.Time{}, time.Time{}, false
	}
	switch {
	case f.Year != nil && f.Month != nil:
		start := time.Date(*f.Year, time.Month(*f.Month), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0), true
	case f.Year != nil:
		start := time.Date(*f.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0), true
	}
	return time.Time{}, time.Time{}, false
}

// Options returns the distinct accounts, categories, months, and years
// present in transaction data. Distinct months/years are derived from
// the plucked dates rather than dialect-specific EXTRACT SQL.
func (s *transactionService) Options() (*FilterOptions, error) {
	opts := &FilterOptions{
		Accounts:   []string{},
		Categories: []string{},
		Months:     []int{},
		Years:      []int{},
	}

	if err := s.db.Model(&models.Transaction{}).
		Distinct("account").Order("account").
		Pluck("account", &opts.Accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Model(&models.Transaction{}).
		Distinct("category").Order("category").
		Pluck("category", &opts.Categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var dates []time.Time
	if err := s.db.Model(&models.Transaction{}).
		Distinct("date").
		Pluck("date", &dates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	monthSet := make(map[int]bool)
	yearSet := make(map[int]bool)
	for _, d := range dates {
		monthSet[int(d.Month())] = true
		yearSet[d.Year()] = true
	}
	for m := range monthSet {
		opts.Months = append(opts.Months, m)
	}
	for y := range yearSet {
		opts.Years = append(opts.Years, y)
	}
	sort.Ints(opts.Months)
	sort.Sort(sort.Reverse(sort.IntSlice(opts.Years)))

	return opts, nil
}

// Overview computes outflow, inflow, and net totals for a transaction set.
func (s *transactionService) Overview(txns []models.Transaction) Overview {
	var o Overview
	for _, t := range txns {
		if t.IsOutflow() {
			o.Outflow = o.Outflow.Add(t.Amount)
		} else {
			o.Inflow = o.Inflow.Add(t.Amount)
		}
	}
	o.Net = o.Outflow.Add(o.Inflow)
	return o
}

// MonthlyStatistics sums each category's transactions per calendar
// month and reduces the monthly totals with the chosen statistic.
func (s *transactionService) MonthlyStatistics(txns []models.Transaction, stat Statistic) ([]CategoryStatistic, error) {
	switch stat {
	case StatisticAverage, StatisticMedian, StatisticCount:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "statistic must be one of average, median, count")
	}
	if len(txns) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrNoData, "no transactions to summarize")
	}

	type key struct {
		category string
		month    string
	}
	totals := make(map[key]decimal.Decimal)
	for _, t := range txns {
		k := key{category: t.Category, month: t.Date.Format("2006-01")}
		totals[k] = totals[k].Add(t.Amount)
	}

	byCategory := make(map[string][]decimal.Decimal)
	for k, total := range totals {
		byCategory[k.category] = append(byCategory[k.category], total)
	}

	var out []CategoryStatistic
	for category, monthly := range byCategory {
		out = append(out, CategoryStatistic{
			Category: category,
			Value:    reduceMonthly(monthly, stat),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func reduceMonthly(monthly []decimal.Decimal, stat Statistic) decimal.Decimal {
	switch stat {
	case StatisticCount:
		return decimal.NewFromInt(int64(len(monthly)))
	case StatisticMedian:
		sort.Slice(monthly, func(i, j int) bool { return monthly[i].LessThan(monthly[j]) })
		mid := len(monthly) / 2
		if len(monthly)%2 == 1 {
			return monthly[mid]
		}
		return monthly[mid-1].Add(monthly[mid]).Div(decimal.NewFromInt(2)).Round(2)
	default: // StatisticAverage
		sum := decimal.Zero
		for _, v := range monthly {
			sum = sum.Add(v)
		}
		return sum.Div(decimal.NewFromInt(int64(len(monthly)))).Round(2)
	}
}

// FilterInternalTransfers removes transaction pairs that represent
// money moving between the user's own accounts: equal-magnitude,
// opposite-sign rows in different accounts dated at most three days
// apart. Candidates are scanned date-ascending and matched greedily;
// each row joins at most one pair. Returns the remaining transactions
// and the pairs that were removed.
func (s *transactionService) FilterInternalTransfers(txns []models.Transaction) ([]models.Transaction, []TransferPair) {
	ordered := make([]models.Transaction, len(txns))
	copy(ordered, txns)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })

	matched := make(map[int]bool)
	var pairs []TransferPair

	for i := range ordered {
		if matched[i] {
			continue
		}
		for j := i + 1; j < len(ordered); j++ {
			if matched[j] {
				continue
			}
			if ordered[j].Date.Sub(ordered[i].Date) > transferWindowDays*24*time.Hour {
				break
			}
			if ordered[i].Account == ordered[j].Account {
				continue
			}
			if !ordered[i].Amount.Equal(ordered[j].Amount.Neg()) || ordered[i].Amount.IsZero() {
				continue
			}

			matched[i], matched[j] = true, true
			pair := TransferPair{Amount: ordered[i].Amount.Abs()}
			if ordered[i].IsOutflow() {
				pair.OutflowID, pair.InflowID = ordered[i].ID, ordered[j].ID
			} else {
				pair.OutflowID, pair.InflowID = ordered[j].ID, ordered[i].ID
			}
			pairs = append(pairs, pair)
			break
		}
	}

	remaining := make([]models.Transaction, 0, len(ordered))
	for i, t := range ordered {
		if !matched[i] {
			remaining = append(remaining, t)
		}
	}
	return remaining, pairs
}
