package chi

import (
	"net/http"
	"time"

	"github.com/kailas-cloud/lexrelay/internal/domain"
	domgen "github.com/kailas-cloud/lexrelay/internal/domain/generation"
	domusage "github.com/kailas-cloud/lexrelay/internal/domain/usage"
	gen "github.com/kailas-cloud/lexrelay/internal/transport/generated"
)

// Generate handles POST /generate.
func (s *Server) Generate(w http.ResponseWriter, r *http.Request) {
	if s.svc.Generation == nil {
		s.handleError(w, r, domain.ErrNotConfigured)
		return
	}

	var body gen.GenerateJSONRequestBody
	if err := decodeJSON(w, r, &body, false); err != nil {
		s.handleError(w, r, err)
		return
	}

	maxTokens := 0
	if body.MaxTokens != nil {
		maxTokens = *body.MaxTokens
		if maxTokens <= 0 {
			writeError(w, r, http.StatusBadRequest, gen.ErrorCodeInvalidRequest, "max_tokens must be positive")
			return
		}
	}

	req, err := domgen.New(body.Prompt, body.System, maxTokens, s.svc.Generation.MaxTokens())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	c, err := s.svc.Generation.Generate(r.Context(), req)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, gen.GenerateResponse{
		Content: c.Content,
		Model:   c.Model,
		Usage: gen.TokenUsage{
			PromptTokens:     c.PromptTokens,
			CompletionTokens: c.CompletionTokens,
			TotalTokens:      c.TotalTokens,
		},
	})
}

// GetUsage handles GET /usage.
func (s *Server) GetUsage(w http.ResponseWriter, r *http.Request, params gen.GetUsageParams) {
	if s.svc.Usage == nil {
		s.handleError(w, r, domain.ErrNotConfigured)
		return
	}

	var raw string
	if params.Period != nil {
		raw = string(*params.Period)
	}
	period, err := domusage.ParsePeriod(raw)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	report := s.svc.Usage.GetReport(r.Context(), period)
	b := report.Budget()

	resp := gen.UsageResponse{
		Period:        gen.UsagePeriod(report.Period()),
		PeriodStartAt: time.UnixMilli(report.PeriodStart()).UTC(),
		PeriodEndAt:   time.UnixMilli(report.PeriodEnd()).UTC(),
		Model:         report.Model(),
		TokensUsed:    report.TokensUsed(),
		Budget: gen.BudgetStatus{
			TokensLimit:     b.TokensLimit(),
			TokensRemaining: b.TokensRemaining(),
			IsExhausted:     b.IsExhausted(),
			IsUnlimited:     b.IsUnlimited(),
		},
	}
	if !b.IsUnlimited() && b.ResetsAt() > 0 {
		resetsAt := time.UnixMilli(b.ResetsAt()).UTC()
		resp.Budget.ResetsAt = &resetsAt
	}

	writeJSON(w, http.StatusOK, resp)
}
