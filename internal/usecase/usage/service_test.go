package usage

import (
	"context"
	"testing"
	"time"

	domusage "github.com/kailas-cloud/lexrelay/internal/domain/usage"
)

// --- Mock ---

type mockBudgetReader struct {
	dailyLimit       int64
	monthlyLimit     int64
	dailyUsed        int64
	monthlyUsed      int64
	remainingDaily   int64
	remainingMonthly int64
}

func (m *mockBudgetReader) Model() string           { return "gpt-4o-mini" }
func (m *mockBudgetReader) DailyLimit() int64       { return m.dailyLimit }
func (m *mockBudgetReader) MonthlyLimit() int64     { return m.monthlyLimit }
func (m *mockBudgetReader) DailyUsed() int64        { return m.dailyUsed }
func (m *mockBudgetReader) MonthlyUsed() int64      { return m.monthlyUsed }
func (m *mockBudgetReader) RemainingDaily() int64   { return m.remainingDaily }
func (m *mockBudgetReader) RemainingMonthly() int64 { return m.remainingMonthly }

var fixedNow = time.Date(2026, 10, 15, 13, 30, 0, 0, time.UTC)

func newFixed(br BudgetReader) *Service {
	s := New(br)
	s.now = func() time.Time { return fixedNow }
	return s
}

// --- Tests ---

func TestGetReport_DailyPeriod(t *testing.T) {
	br := &mockBudgetReader{
		dailyLimit:       10000,
		dailyUsed:        3000,
		remainingDaily:   7000,
		monthlyLimit:     100000,
		monthlyUsed:      50000,
		remainingMonthly: 50000,
	}
	r := newFixed(br).GetReport(context.Background(), domusage.PeriodDay)

	if r.Period() != domusage.PeriodDay {
		t.Errorf("expected period %q, got %q", domusage.PeriodDay, r.Period())
	}
	dayStart := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	if r.PeriodStart() != dayStart.UnixMilli() {
		t.Errorf("expected period start %d, got %d", dayStart.UnixMilli(), r.PeriodStart())
	}
	if r.PeriodEnd() != dayStart.Add(24*time.Hour).UnixMilli() {
		t.Errorf("unexpected period end %d", r.PeriodEnd())
	}
	if r.Budget().TokensLimit() != 10000 || r.Budget().TokensRemaining() != 7000 {
		t.Errorf("unexpected budget %d/%d", r.Budget().TokensLimit(), r.Budget().TokensRemaining())
	}
	if r.Budget().IsExhausted() {
		t.Error("budget should not be exhausted")
	}
	if r.TokensUsed() != 3000 {
		t.Errorf("expected tokens 3000, got %d", r.TokensUsed())
	}
	if r.Model() != "gpt-4o-mini" {
		t.Errorf("Model() = %q", r.Model())
	}
}

func TestGetReport_MonthlyPeriod(t *testing.T) {
	br := &mockBudgetReader{
		monthlyLimit:     100000,
		monthlyUsed:      100000,
		remainingMonthly: 0,
	}
	r := newFixed(br).GetReport(context.Background(), domusage.PeriodMonth)

	monthStart := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	if r.PeriodStart() != monthStart.UnixMilli() {
		t.Errorf("expected period start %d, got %d", monthStart.UnixMilli(), r.PeriodStart())
	}
	monthEnd := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	if r.PeriodEnd() != monthEnd.UnixMilli() {
		t.Errorf("expected period end %d, got %d", monthEnd.UnixMilli(), r.PeriodEnd())
	}
	if !r.Budget().IsExhausted() {
		t.Error("budget should be exhausted")
	}
	if r.Budget().ResetsAt() != monthEnd.UnixMilli() {
		t.Errorf("ResetsAt() = %d", r.Budget().ResetsAt())
	}
}

func TestGetReport_Unlimited(t *testing.T) {
	br := &mockBudgetReader{monthlyUsed: 1234, remainingMonthly: -1}
	r := newFixed(br).GetReport(context.Background(), domusage.PeriodMonth)

	if !r.Budget().IsUnlimited() {
		t.Error("expected unlimited budget")
	}
	if r.Budget().IsExhausted() {
		t.Error("unlimited budget is never exhausted")
	}
	if r.TokensUsed() != 1234 {
		t.Errorf("TokensUsed() = %d", r.TokensUsed())
	}
}

func TestGetReport_NilBudgetReader(t *testing.T) {
	r := newFixed(nil).GetReport(context.Background(), domusage.PeriodDay)

	if r.TokensUsed() != 0 || r.Model() != "" {
		t.Errorf("expected empty report, got used=%d model=%q", r.TokensUsed(), r.Model())
	}
	if r.Budget().IsExhausted() {
		t.Error("nil reader should never be exhausted")
	}
}
