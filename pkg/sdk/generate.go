package lexrelay

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// GenerateRequest is a single-turn content generation prompt.
// MaxTokens zero uses the relay default.
type GenerateRequest struct {
	Prompt    string
	System    string
	MaxTokens int
}

// Completion is the generated content with its token usage.
type Completion struct {
	Content string `json:"content"`
	Model   string `json:"model"`
	Usage   struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type generateBody struct {
	Prompt    string `json:"prompt"`
	System    string `json:"system,omitempty"`
	MaxTokens *int   `json:"max_tokens,omitempty"`
}

// Generate relays a prompt to the content generation model.
// An exhausted token budget answers *APIError with status 402.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (Completion, error) {
	body := generateBody{Prompt: req.Prompt, System: req.System}
	if req.MaxTokens != 0 {
		body.MaxTokens = &req.MaxTokens
	}

	var out Completion
	if _, err := c.do(ctx, call{op: "generate", method: http.MethodPost, path: "/generate", body: body}, &out); err != nil {
		return Completion{}, err
	}
	return out, nil
}

// UsagePeriod is the accounting window for usage reports.
type UsagePeriod string

// UsagePeriod constants.
const (
	PeriodDay   UsagePeriod = "day"
	PeriodMonth UsagePeriod = "month"
)

// UsageReport contains generation token usage for a period.
type UsageReport struct {
	Period      UsagePeriod  `json:"period"`
	PeriodStart time.Time    `json:"period_start_at"`
	PeriodEnd   time.Time    `json:"period_end_at"`
	Model       string       `json:"model"`
	TokensUsed  int64        `json:"tokens_used"`
	Budget      BudgetStatus `json:"budget"`
}

// BudgetStatus tracks token quota state. ResetsAt is nil for unlimited budgets.
type BudgetStatus struct {
	TokensLimit     int64      `json:"tokens_limit"`
	TokensRemaining int64      `json:"tokens_remaining"`
	IsExhausted     bool       `json:"is_exhausted"`
	IsUnlimited     bool       `json:"is_unlimited"`
	ResetsAt        *time.Time `json:"resets_at"`
}

// Usage returns the generation usage report for period. An empty period uses the relay default (month).
func (c *Client) Usage(ctx context.Context, period UsagePeriod) (UsageReport, error) {
	var q url.Values
	if period != "" {
		q = url.Values{"period": {string(period)}}
	}

	var r UsageReport
	if _, err := c.do(ctx, call{op: "usage", method: http.MethodGet, path: "/usage", query: q}, &r); err != nil {
		return UsageReport{}, err
	}
	return r, nil
}
