package usage

import (
	"fmt"

	"github.com/kailas-cloud/lexrelay/internal/domain"
	"github.com/kailas-cloud/lexrelay/internal/domain/usage/budget"
)

// Period is the budget accounting window.
type Period string

// Accounting period constants.
const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
)

// ParsePeriod validates a period name. Empty means month.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "":
		return PeriodMonth, nil
	case PeriodDay, PeriodMonth:
		return Period(s), nil
	default:
		return "", fmt.Errorf("%w: period must be %q or %q, got %q",
			domain.ErrInvalidRequest, PeriodDay, PeriodMonth, s)
	}
}

// Report is a generation token usage report for one accounting window.
type Report struct {
	period      Period
	periodStart int64
	periodEnd   int64
	model       string
	tokensUsed  int64
	budget      budget.Budget
}

// NewReport creates a usage report.
func NewReport(period Period, start, end int64, model string, used int64, b budget.Budget) Report {
	return Report{
		period:      period,
		periodStart: start,
		periodEnd:   end,
		model:       model,
		tokensUsed:  used,
		budget:      b,
	}
}

// Period returns the accounting window.
func (r *Report) Period() Period { return r.period }

// PeriodStart returns the window start (unix millis).
func (r *Report) PeriodStart() int64 { return r.periodStart }

// PeriodEnd returns the window end (unix millis).
func (r *Report) PeriodEnd() int64 { return r.periodEnd }

// Model returns the generation model the budget applies to.
func (r *Report) Model() string { return r.model }

// TokensUsed returns tokens consumed in the window.
func (r *Report) TokensUsed() int64 { return r.tokensUsed }

// Budget returns the budget status.
func (r *Report) Budget() budget.Budget { return r.budget }
