package request

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/lexrelay/internal/domain"
)

// Request is a validated jurisprudence search request.
type Request struct {
	collection string
	term       string
	filters    map[string]any
}

// New validates the caller-supplied search fields.
// Both collection and term must be non-blank; filters are optional.
// The term has no length limit of its own; the transport caps the request body.
func New(collection, term string, filters map[string]any) (Request, error) {
	collection = strings.TrimSpace(collection)
	if collection == "" {
		return Request{}, fmt.Errorf("%w: target_collection is required", domain.ErrInvalidRequest)
	}
	if strings.TrimSpace(term) == "" {
		return Request{}, fmt.Errorf("%w: query_term is required", domain.ErrInvalidRequest)
	}
	return Request{collection: collection, term: term, filters: filters}, nil
}

// Collection returns the requested collection as sent by the caller, trimmed.
func (r Request) Collection() string { return r.collection }

// Term returns the free-text query term.
func (r Request) Term() string { return r.term }

// Filters returns the caller-supplied filters. They are not applied to the upstream query.
func (r Request) Filters() map[string]any { return r.filters }

// HasFilters reports whether the caller sent any filters.
func (r Request) HasFilters() bool { return len(r.filters) > 0 }
