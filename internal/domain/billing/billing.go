// Package billing holds subscription plan and checkout types.
package billing

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/lexrelay/internal/domain"
)

// Catalog maps plan names to payment processor price ids.
type Catalog struct {
	prices      map[string]string
	defaultPlan string
}

// NewCatalog creates a Catalog. defaultPlan is used when a caller names none.
func NewCatalog(prices map[string]string, defaultPlan string) Catalog {
	cp := make(map[string]string, len(prices))
	for plan, price := range prices {
		cp[strings.ToLower(strings.TrimSpace(plan))] = price
	}
	return Catalog{prices: cp, defaultPlan: strings.ToLower(defaultPlan)}
}

// Resolve returns the plan name and price id for plan.
func (c Catalog) Resolve(plan string) (name, priceID string, err error) {
	name = strings.ToLower(strings.TrimSpace(plan))
	if name == "" {
		name = c.defaultPlan
	}
	priceID, ok := c.prices[name]
	if !ok {
		return "", "", fmt.Errorf("%w: unknown plan %q (available: %s)",
			domain.ErrInvalidRequest, plan, strings.Join(c.Plans(), ", "))
	}
	return name, priceID, nil
}

// Plans returns the sorted plan names.
func (c Catalog) Plans() []string {
	out := make([]string, 0, len(c.prices))
	for p := range c.prices {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// CheckoutParams describes a subscription checkout to create.
type CheckoutParams struct {
	PriceID    string
	CustomerID string // existing customer; empty means the processor creates one
	Email      string
	UserID     string
	SuccessURL string
	CancelURL  string
}

// Session is a hosted page the browser is redirected to.
type Session struct {
	ID  string
	URL string
}
