package lexrelay

import (
	"context"
	"encoding/json"
	"net/http"
)

// SearchRequest selects a court collection and a process number or term.
type SearchRequest struct {
	Collection string         `json:"target_collection"`
	Term       string         `json:"query_term"`
	Filters    map[string]any `json:"filters,omitempty"`
}

// Search relays a jurisprudence query. The upstream search response is
// returned verbatim; decode the fields you need (hits.hits[]._source).
func (c *Client) Search(ctx context.Context, req SearchRequest) (json.RawMessage, error) {
	var raw json.RawMessage
	if _, err := c.do(ctx, call{op: "search", method: http.MethodPost, path: "/search", body: req}, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Collections lists the court collections the relay accepts.
func (c *Client) Collections(ctx context.Context) ([]string, error) {
	var resp struct {
		Items []string `json:"items"`
	}
	if _, err := c.do(ctx, call{op: "collections", method: http.MethodGet, path: "/collections"}, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}
