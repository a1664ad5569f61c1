package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/lexrelay/internal/domain"
	domgen "github.com/kailas-cloud/lexrelay/internal/domain/generation"
	"github.com/kailas-cloud/lexrelay/internal/metrics"
)

const (
	upstreamName = "openai"
	serviceName  = "OpenAI"
)

// Generator is a content generator using the OpenAI-compatible chat completions API.
type Generator struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// Config holds the chat completions provider settings.
type Config struct {
	APIKey  string
	BaseURL string // empty uses the public OpenAI endpoint
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewGenerator creates an OpenAI-compatible generator.
func NewGenerator(cfg *Config) *Generator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Generator{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: timeout,
		logger:  cfg.Logger,
	}
}

// Model returns the configured model name.
func (g *Generator) Model() string { return g.model }

// Complete implements generation.Generator.
func (g *Generator) Complete(ctx context.Context, req domgen.Request) (domgen.Completion, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System() != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System(),
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt(),
	})

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     g.model,
		Messages:  messages,
		MaxTokens: req.MaxTokens(),
	})
	elapsed := time.Since(start)

	if err != nil {
		uerr := parseAPIError(err)
		status := 0
		if ue, ok := domain.AsUpstreamError(uerr); ok {
			status = ue.StatusCode
		}
		metrics.ObserveUpstream(upstreamName, status, elapsed)
		g.logger.Warn("chat completion failed", zap.String("model", g.model), zap.Error(err))
		return domgen.Completion{}, uerr
	}
	metrics.ObserveUpstream(upstreamName, 200, elapsed)

	if len(resp.Choices) == 0 {
		return domgen.Completion{}, errors.New("chat completion returned no choices")
	}

	model := resp.Model
	if model == "" {
		model = g.model
	}
	if resp.Usage.TotalTokens > 0 {
		metrics.GenerationTokensTotal.WithLabelValues(model, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.GenerationTokensTotal.WithLabelValues(model, "completion").Add(float64(resp.Usage.CompletionTokens))
	}

	return domgen.Completion{
		Content:          resp.Choices[0].Message.Content,
		Model:            model,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}, nil
}

// parseAPIError turns an API answer with an HTTP status into a domain.UpstreamError.
// Anything else is a transport failure.
func parseAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode > 0 {
		return domain.NewUpstreamError(serviceName, apiErr.HTTPStatusCode, apiErr.Message)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0 {
		return domain.NewUpstreamError(serviceName, reqErr.HTTPStatusCode, string(reqErr.Body))
	}

	return fmt.Errorf("chat completion request: %w", err)
}
