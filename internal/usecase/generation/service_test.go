package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/lexrelay/internal/domain"
	domgen "github.com/kailas-cloud/lexrelay/internal/domain/generation"
)

// --- Mocks ---

type mockGenerator struct {
	calls int
	last  domgen.Request
	resp  domgen.Completion
	err   error
}

func (m *mockGenerator) Complete(_ context.Context, req domgen.Request) (domgen.Completion, error) {
	m.calls++
	m.last = req
	return m.resp, m.err
}

type mockBudget struct {
	checkErr error
	recorded int64
}

func (m *mockBudget) Check(context.Context) error { return m.checkErr }
func (m *mockBudget) Record(tokens int64)         { m.recorded += tokens }

func mustRequest(t *testing.T, prompt string) domgen.Request {
	t.Helper()
	req, err := domgen.New(prompt, "Você é um professor de direito.", 0, 1024)
	if err != nil {
		t.Fatalf("domgen.New: %v", err)
	}
	return req
}

// --- Tests ---

func TestGenerate_Success(t *testing.T) {
	gen := &mockGenerator{resp: domgen.Completion{Content: "Resumo", Model: "gpt-4o-mini", TotalTokens: 42}}
	budget := &mockBudget{}
	svc := New(gen, budget, 1024)

	c, err := svc.Generate(context.Background(), mustRequest(t, "Resuma a súmula 331"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Content != "Resumo" {
		t.Errorf("Content = %q", c.Content)
	}
	if budget.recorded != 42 {
		t.Errorf("recorded = %d, want 42", budget.recorded)
	}
	if gen.last.MaxTokens() != 1024 {
		t.Errorf("MaxTokens() = %d", gen.last.MaxTokens())
	}
}

func TestGenerate_QuotaExceededSkipsUpstream(t *testing.T) {
	gen := &mockGenerator{}
	svc := New(gen, &mockBudget{checkErr: domain.ErrQuotaExceeded}, 1024)

	_, err := svc.Generate(context.Background(), mustRequest(t, "x"))
	if !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	if gen.calls != 0 {
		t.Errorf("expected no upstream call, got %d", gen.calls)
	}
}

func TestGenerate_UpstreamErrorNotRecorded(t *testing.T) {
	gen := &mockGenerator{err: domain.NewUpstreamError("OpenAI", 401, "invalid key")}
	budget := &mockBudget{}
	svc := New(gen, budget, 1024)

	_, err := svc.Generate(context.Background(), mustRequest(t, "x"))
	if ue, ok := domain.AsUpstreamError(err); !ok || ue.StatusCode != 401 {
		t.Fatalf("expected upstream 401, got %v", err)
	}
	if budget.recorded != 0 {
		t.Errorf("expected nothing recorded, got %d", budget.recorded)
	}
}

func TestGenerate_NilBudget(t *testing.T) {
	gen := &mockGenerator{resp: domgen.Completion{Content: "ok", TotalTokens: 5}}
	svc := New(gen, nil, 1024)

	if _, err := svc.Generate(context.Background(), mustRequest(t, "x")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
