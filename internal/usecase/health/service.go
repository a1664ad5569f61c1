package health

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/lexrelay/internal/logger"
)

// Status represents the aggregated readiness status.
type Status string

const (
	// Healthy indicates all configured dependencies are reachable.
	Healthy Status = "ok"
	// Degraded indicates at least one dependency failed its check.
	Degraded Status = "degraded"
)

// CheckResult represents an individual dependency check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing check.
	CheckError CheckResult = "error"
)

// Report aggregates check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

type check struct {
	name   string
	pinger Pinger
}

// Service coordinates readiness checks of optional dependencies.
type Service struct {
	checks  []check
	timeout time.Duration
}

// New creates a Service. timeout bounds each check; zero means the caller's context only.
func New(timeout time.Duration) *Service {
	return &Service{timeout: timeout}
}

// Register adds a named dependency check. A nil pinger is ignored.
func (s *Service) Register(name string, p Pinger) *Service {
	if p != nil {
		s.checks = append(s.checks, check{name: name, pinger: p})
	}
	return s
}

// Check runs all registered checks. Without checks the report is healthy.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.checks))
	status := Healthy

	for _, c := range s.checks {
		if err := s.ping(ctx, c.pinger); err != nil {
			logger.FromContext(ctx).Warn("readiness check failed", zap.String("check", c.name), zap.Error(err))
			checks[c.name] = CheckError
			status = Degraded
			continue
		}
		checks[c.name] = CheckOK
	}

	return Report{Status: status, Checks: checks}
}

func (s *Service) ping(ctx context.Context, p Pinger) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return p.Ping(ctx)
}
