package legalcode

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domlc "github.com/kailas-cloud/lexrelay/internal/domain/legalcode"
	"github.com/kailas-cloud/lexrelay/internal/logger"
)

// Service looks up articles of allow-listed legal codes.
type Service struct {
	repo     ArticleReader
	catalog  domlc.Catalog
	maxLimit int
}

// New creates a legal-code service.
func New(repo ArticleReader, catalog domlc.Catalog, maxLimit int) *Service {
	return &Service{repo: repo, catalog: catalog, maxLimit: maxLimit}
}

// Codes returns the available code slugs.
func (s *Service) Codes() []string { return s.catalog.Codes() }

// Articles validates the lookup, resolves the code table and reads matching articles.
func (s *Service) Articles(ctx context.Context, code, term string, limit int) (domlc.Page, error) {
	q, err := domlc.NewQuery(code, term, limit, s.maxLimit)
	if err != nil {
		return domlc.Page{}, err //nolint:wrapcheck // domain error
	}
	table, err := s.catalog.Table(q.Code())
	if err != nil {
		return domlc.Page{}, err //nolint:wrapcheck // domain error
	}

	items, total, err := s.repo.Articles(ctx, table, q)
	if err != nil {
		return domlc.Page{}, fmt.Errorf("legal code %s: %w", q.Code(), err)
	}

	logger.FromContext(ctx).Info("legal code lookup",
		zap.String("code", q.Code()),
		zap.String("term", q.Term()),
		zap.Int("returned", len(items)),
		zap.Int64("total", total),
	)
	return domlc.Page{Code: q.Code(), Items: items, Total: total}, nil
}
