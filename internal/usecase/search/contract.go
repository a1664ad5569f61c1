package search

import (
	"context"

	"github.com/kailas-cloud/lexrelay/internal/domain/search/query"
)

// Upstream executes a query body against a jurisprudence collection.
type Upstream interface {
	Search(ctx context.Context, collection string, body query.Body) ([]byte, error)
	URL(collection string) string
}
