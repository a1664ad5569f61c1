package generation

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domgen "github.com/kailas-cloud/lexrelay/internal/domain/generation"
	"github.com/kailas-cloud/lexrelay/internal/logger"
)

// Service relays content generation requests under a token budget.
type Service struct {
	gen       Generator
	budget    Budget
	maxTokens int
}

// New creates a generation service. budget may be nil (unlimited).
func New(gen Generator, budget Budget, maxTokens int) *Service {
	return &Service{gen: gen, budget: budget, maxTokens: maxTokens}
}

// MaxTokens returns the completion token ceiling.
func (s *Service) MaxTokens() int { return s.maxTokens }

// Generate checks the budget, calls the upstream model and records usage.
func (s *Service) Generate(ctx context.Context, req domgen.Request) (domgen.Completion, error) {
	if s.budget != nil {
		if err := s.budget.Check(ctx); err != nil {
			return domgen.Completion{}, err //nolint:wrapcheck // sentinel from budget
		}
	}

	c, err := s.gen.Complete(ctx, req)
	if err != nil {
		return domgen.Completion{}, fmt.Errorf("generate: %w", err)
	}

	if s.budget != nil {
		s.budget.Record(int64(c.TotalTokens))
	}

	logger.FromContext(ctx).Info("content generated",
		zap.String("model", c.Model),
		zap.Int("prompt_bytes", len(req.Prompt())),
		zap.Int("total_tokens", c.TotalTokens),
	)
	return c, nil
}
