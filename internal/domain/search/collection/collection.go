// Package collection holds the allow-list of searchable jurisprudence collections.
package collection

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/lexrelay/internal/domain"
)

// Allowlist is an immutable set of collection slugs.
type Allowlist struct {
	names map[string]struct{}
}

// NewAllowlist builds an allow-list from slugs. Matching is case-insensitive.
func NewAllowlist(names []string) Allowlist {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n = normalize(n); n != "" {
			set[n] = struct{}{}
		}
	}
	return Allowlist{names: set}
}

// Resolve returns the canonical slug for name or ErrUnknownCollection.
func (a Allowlist) Resolve(name string) (string, error) {
	slug := normalize(name)
	if _, ok := a.names[slug]; !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownCollection, name)
	}
	return slug, nil
}

// Names returns the sorted slugs.
func (a Allowlist) Names() []string {
	out := make([]string, 0, len(a.names))
	for n := range a.names {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
