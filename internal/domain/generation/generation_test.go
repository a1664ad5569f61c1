package generation

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/lexrelay/internal/domain"
)

func TestNew_Defaults(t *testing.T) {
	r, err := New("Resuma o art. 5º da CF", "", 0, 2048)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.MaxTokens() != 2048 {
		t.Errorf("MaxTokens() = %d, want 2048", r.MaxTokens())
	}
	if r.System() != "" {
		t.Errorf("System() = %q", r.System())
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		prompt    string
		system    string
		maxTokens int
	}{
		{"empty prompt", "", "", 0},
		{"blank prompt", "  \n", "", 0},
		{"prompt too long", strings.Repeat("x", MaxPromptBytes+1), "", 0},
		{"system too long", "ok", strings.Repeat("x", MaxPromptBytes+1), 0},
		{"negative max tokens", "ok", "", -1},
		{"max tokens over ceiling", "ok", "", 4096},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.prompt, tt.system, tt.maxTokens, 2048)
			if !errors.Is(err, domain.ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestNew_PromptAtLimit(t *testing.T) {
	r, err := New(strings.Repeat("x", MaxPromptBytes), "sys", 100, 2048)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.MaxTokens() != 100 {
		t.Errorf("MaxTokens() = %d, want 100", r.MaxTokens())
	}
}
