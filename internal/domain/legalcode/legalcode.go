// Package legalcode holds the legal-code catalog and article lookup types.
package legalcode

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/lexrelay/internal/domain"
)

// Lookup limits.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Catalog maps public code slugs to their backing table names.
type Catalog struct {
	tables map[string]string
}

// NewCatalog creates a Catalog from slug -> table pairs.
func NewCatalog(tables map[string]string) Catalog {
	cp := make(map[string]string, len(tables))
	for slug, table := range tables {
		if slug = strings.ToLower(strings.TrimSpace(slug)); slug != "" && table != "" {
			cp[slug] = table
		}
	}
	return Catalog{tables: cp}
}

// Table returns the table backing code or ErrUnknownCollection.
func (c Catalog) Table(code string) (string, error) {
	table, ok := c.tables[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return "", fmt.Errorf("%w: legal code %q", domain.ErrUnknownCollection, code)
	}
	return table, nil
}

// Codes returns the sorted code slugs.
func (c Catalog) Codes() []string {
	out := make([]string, 0, len(c.tables))
	for slug := range c.tables {
		out = append(out, slug)
	}
	slices.Sort(out)
	return out
}

// Query is a validated article lookup.
type Query struct {
	code  string
	term  string
	limit int
}

// NewQuery validates lookup parameters. A zero limit selects DefaultLimit;
// limits above maxLimit are clamped.
func NewQuery(code, term string, limit, maxLimit int) (Query, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return Query{}, fmt.Errorf("%w: code is required", domain.ErrInvalidRequest)
	}
	if limit < 0 {
		return Query{}, fmt.Errorf("%w: limit must be positive", domain.ErrInvalidRequest)
	}
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Query{code: code, term: strings.TrimSpace(term), limit: limit}, nil
}

// Code returns the normalized code slug.
func (q Query) Code() string { return q.code }

// Term returns the trimmed search term, possibly empty.
func (q Query) Term() string { return q.term }

// Limit returns the maximum number of articles to return.
func (q Query) Limit() int { return q.limit }

// Article is one article row of a legal code.
type Article struct {
	ID     int64
	Number string
	Text   string
}

// Page is the result of an article lookup.
type Page struct {
	Code  string
	Items []Article
	Total int64
}
