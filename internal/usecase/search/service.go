package search

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/kailas-cloud/lexrelay/internal/domain/search/collection"
	"github.com/kailas-cloud/lexrelay/internal/domain/search/query"
	"github.com/kailas-cloud/lexrelay/internal/domain/search/request"
	"github.com/kailas-cloud/lexrelay/internal/logger"
)

// Service relays full-text jurisprudence searches to the upstream API.
type Service struct {
	upstream    Upstream
	collections collection.Allowlist
	builder     query.Builder
}

// New creates a search service.
func New(upstream Upstream, collections collection.Allowlist, builder query.Builder) *Service {
	return &Service{upstream: upstream, collections: collections, builder: builder}
}

// Search validates the collection, builds the query body and returns the upstream
// response bytes unchanged.
func (s *Service) Search(ctx context.Context, req request.Request) ([]byte, error) {
	slug, err := s.collections.Resolve(req.Collection())
	if err != nil {
		return nil, err //nolint:wrapcheck // sentinel from allow-list
	}

	log := logger.FromContext(ctx).With(zap.String("collection", slug))
	if req.HasFilters() {
		log.Debug("filters are not applied to the upstream query", zap.Int("filters", len(req.Filters())))
	}

	body := s.builder.Build(req.Term())
	log.Info("searching jurisprudence",
		zap.String("url", s.upstream.URL(slug)),
		zap.String("term", req.Term()),
	)

	data, err := s.upstream.Search(ctx, slug, body)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", slug, err)
	}

	if hits := gjson.GetBytes(data, "hits.total.value"); hits.Exists() {
		log.Info("search completed", zap.Int64("hits", hits.Int()))
	} else {
		log.Info("search completed", zap.String("hits", "unknown"))
	}
	return data, nil
}

// Collections returns the searchable collection slugs.
func (s *Service) Collections() []string { return s.collections.Names() }
