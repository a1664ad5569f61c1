package legalcode

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/lexrelay/internal/domain"
	domlc "github.com/kailas-cloud/lexrelay/internal/domain/legalcode"
)

// --- Mocks ---

type mockReader struct {
	calls     int
	lastTable string
	lastQuery domlc.Query
	items     []domlc.Article
	total     int64
	err       error
}

func (m *mockReader) Articles(_ context.Context, table string, q domlc.Query) ([]domlc.Article, int64, error) {
	m.calls++
	m.lastTable = table
	m.lastQuery = q
	return m.items, m.total, m.err
}

func newService(repo ArticleReader) *Service {
	catalog := domlc.NewCatalog(map[string]string{
		"cf":  "CF - Constituição Federal",
		"clt": "CLT - Consolidação das Leis do Trabalho",
	})
	return New(repo, catalog, 50)
}

// --- Tests ---

func TestArticles_ResolvesTable(t *testing.T) {
	repo := &mockReader{
		items: []domlc.Article{{ID: 483, Number: "483", Text: "O empregado poderá considerar rescindido o contrato..."}},
		total: 1,
	}
	svc := newService(repo)

	page, err := svc.Articles(context.Background(), " CLT ", "rescindido", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastTable != "CLT - Consolidação das Leis do Trabalho" {
		t.Errorf("table = %q", repo.lastTable)
	}
	if repo.lastQuery.Limit() != domlc.DefaultLimit || repo.lastQuery.Term() != "rescindido" {
		t.Errorf("unexpected query limit=%d term=%q", repo.lastQuery.Limit(), repo.lastQuery.Term())
	}
	if page.Code != "clt" || page.Total != 1 || len(page.Items) != 1 {
		t.Errorf("unexpected page %+v", page)
	}
}

func TestArticles_LimitClampedToConfiguredMax(t *testing.T) {
	repo := &mockReader{}
	svc := newService(repo)

	if _, err := svc.Articles(context.Background(), "cf", "", 500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastQuery.Limit() != 50 {
		t.Errorf("limit = %d, want 50", repo.lastQuery.Limit())
	}
}

func TestArticles_UnknownCode(t *testing.T) {
	repo := &mockReader{}
	svc := newService(repo)

	_, err := svc.Articles(context.Background(), "cpm", "", 0)
	if !errors.Is(err, domain.ErrUnknownCollection) {
		t.Fatalf("expected ErrUnknownCollection, got %v", err)
	}
	if repo.calls != 0 {
		t.Error("repository must not be queried for an unknown code")
	}
}

func TestArticles_NegativeLimit(t *testing.T) {
	_, err := newService(&mockReader{}).Articles(context.Background(), "cf", "", -1)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestArticles_RepositoryError(t *testing.T) {
	svc := newService(&mockReader{err: errors.New("connection refused")})

	if _, err := svc.Articles(context.Background(), "cf", "", 0); err == nil {
		t.Fatal("expected error")
	}
}

func TestCodes(t *testing.T) {
	codes := newService(&mockReader{}).Codes()
	if len(codes) != 2 || codes[0] != "cf" || codes[1] != "clt" {
		t.Errorf("Codes() = %v", codes)
	}
}
