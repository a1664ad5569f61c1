// Package generation holds the AI content generation request and result types.
package generation

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/lexrelay/internal/domain"
)

// MaxPromptBytes is the largest prompt accepted from a caller.
const MaxPromptBytes = 16000

// Request is a validated generation request.
type Request struct {
	prompt    string
	system    string
	maxTokens int
}

// New validates a generation request. maxTokens of zero selects ceiling.
func New(prompt, system string, maxTokens, ceiling int) (Request, error) {
	if strings.TrimSpace(prompt) == "" {
		return Request{}, fmt.Errorf("%w: prompt is required", domain.ErrInvalidRequest)
	}
	if len(prompt) > MaxPromptBytes {
		return Request{}, fmt.Errorf("%w: prompt too long (max %d bytes)", domain.ErrInvalidRequest, MaxPromptBytes)
	}
	if len(system) > MaxPromptBytes {
		return Request{}, fmt.Errorf("%w: system too long (max %d bytes)", domain.ErrInvalidRequest, MaxPromptBytes)
	}
	if maxTokens < 0 || maxTokens > ceiling {
		return Request{}, fmt.Errorf("%w: max_tokens must be between 1 and %d", domain.ErrInvalidRequest, ceiling)
	}
	if maxTokens == 0 {
		maxTokens = ceiling
	}
	return Request{prompt: prompt, system: system, maxTokens: maxTokens}, nil
}

// Prompt returns the user prompt.
func (r Request) Prompt() string { return r.prompt }

// System returns the optional system instruction.
func (r Request) System() string { return r.system }

// MaxTokens returns the completion token cap.
func (r Request) MaxTokens() int { return r.maxTokens }

// Completion is the generated content and its token usage.
type Completion struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
