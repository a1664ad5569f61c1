package usage

import (
	"context"
	"time"

	domusage "github.com/kailas-cloud/lexrelay/internal/domain/usage"
	"github.com/kailas-cloud/lexrelay/internal/domain/usage/budget"
)

// Service builds generation usage reports.
type Service struct {
	br  BudgetReader
	now func() time.Time
}

// New creates a Service. br can be nil (generation disabled).
func New(br BudgetReader) *Service {
	return &Service{br: br, now: func() time.Time { return time.Now().UTC() }}
}

// GetReport builds a usage report for the given accounting window.
func (s *Service) GetReport(_ context.Context, period domusage.Period) domusage.Report {
	now := s.now()
	var start, end time.Time
	var limit, used, remaining int64
	var model string

	if period == domusage.PeriodDay {
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		end = start.Add(24 * time.Hour)
		if s.br != nil {
			limit, used, remaining = s.br.DailyLimit(), s.br.DailyUsed(), s.br.RemainingDaily()
		}
	} else {
		period = domusage.PeriodMonth
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, 0)
		if s.br != nil {
			limit, used, remaining = s.br.MonthlyLimit(), s.br.MonthlyUsed(), s.br.RemainingMonthly()
		}
	}
	if s.br != nil {
		model = s.br.Model()
	}

	if limit == 0 {
		remaining = -1 // unlimited
	}
	exhausted := limit > 0 && remaining <= 0
	b := budget.New(limit, remaining, exhausted, end.UnixMilli())

	return domusage.NewReport(period, start.UnixMilli(), end.UnixMilli(), model, used, b)
}
