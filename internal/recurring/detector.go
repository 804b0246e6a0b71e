package recurring

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	apperrors "tally/internal/errors"
	"tally/internal/models"
)

// Candidate is a canonical description inferred to bill once per month
// within the trailing window. It is a derived view, never persisted.
type Candidate struct {
	Description    string          `json:"description"`
	AverageAmount  decimal.Decimal `json:"average_amount"`
	TransactionIDs []string        `json:"transaction_ids"`
	MonthsSeen     int             `json:"months_seen"`
}

// Options controls recurrence detection.
type Options struct {
	// Months is the trailing window length; must be at least 1.
	Months int
	// Lenient relaxes the strict cadence rule: instead of requiring a
	// once-per-month hit in every window month, a label qualifies with
	// MinMonths qualifying months. The strict rule drops merchants with
	// a single missed or double-billed month, so both modes are exposed.
	Lenient bool
	// MinMonths is the qualifying-month floor in lenient mode.
	// Defaults to Months-1 (floor 1) when unset.
	MinMonths int
	// Now anchors the window; defaults to time.Now().
	Now time.Time
}

// Detect finds canonical descriptions charged on a monthly cadence
// within [monthStart(now)-Months, monthStart(now)). Only outflows
// participate. A window month qualifies for a label when the label was
// charged exactly once in it; two charges in one month disqualify that
// month. The average amount is the mean over all of the label's window
// transactions, rounded to two decimals.
func Detect(window []models.Transaction, opts Options) ([]Candidate, error) {
	if opts.Months < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "months must be a positive integer")
	}
	minMonths := opts.MinMonths
	if opts.Lenient && minMonths == 0 {
		minMonths = opts.Months - 1
		if minMonths < 1 {
			minMonths = 1
		}
	}

	start, end := opts.Bounds()

	outflows := make([]models.Transaction, 0, len(window))
	for _, t := range window {
		if t.IsOutflow() && !t.Date.Before(start) && t.Date.Before(end) {
			outflows = append(outflows, t)
		}
	}
	if len(outflows) == 0 {
		return []Candidate{}, nil
	}

	// First-occurrence order over the date-ascending window keeps
	// clustering reproducible across runs.
	sort.SliceStable(outflows, func(i, j int) bool {
		return outflows[i].Date.Before(outflows[j].Date)
	})
	distinct := make([]string, 0, len(outflows))
	seen := make(map[string]bool)
	for _, t := range outflows {
		if !seen[t.Description] {
			seen[t.Description] = true
			distinct = append(distinct, t.Description)
		}
	}
	normalizer := NewNormalizer(distinct)

	type labelStats struct {
		perMonth map[string]int
		sum      decimal.Decimal
		ids      []string
	}
	stats := make(map[string]*labelStats)
	assigned := make(map[string]string, len(distinct))
	for _, raw := range distinct {
		assigned[raw] = normalizer.Normalize(raw)
	}

	for _, t := range outflows {
		label := assigned[t.Description]
		s := stats[label]
		if s == nil {
			s = &labelStats{perMonth: make(map[string]int)}
			stats[label] = s
		}
		s.perMonth[t.Date.Format("2006-01")]++
		s.sum = s.sum.Add(t.Amount)
		s.ids = append(s.ids, t.ID)
	}

	var candidates []Candidate
	for label, s := range stats {
		qualifying := 0
		for _, count := range s.perMonth {
			if count == 1 {
				qualifying++
			}
		}

		if opts.Lenient {
			if qualifying < minMonths {
				continue
			}
		} else if qualifying != opts.Months {
			continue
		}

		avg := s.sum.Div(decimal.NewFromInt(int64(len(s.ids)))).Round(2)
		candidates = append(candidates, Candidate{
			Description:    label,
			AverageAmount:  avg,
			TransactionIDs: s.ids,
			MonthsSeen:     qualifying,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Description < candidates[j].Description
	})
	return candidates, nil
}

// Bounds returns the month-aligned half-open window the options select.
// Callers fetching the window from storage use the same bounds Detect
// applies internally.
func (o Options) Bounds() (start, end time.Time) {
	now := o.Now
	if now.IsZero() {
		now = time.Now()
	}
	end = monthStart(now)
	return end.AddDate(0, -o.Months, 0), end
}

// monthStart truncates t to the first calendar day of its month.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
