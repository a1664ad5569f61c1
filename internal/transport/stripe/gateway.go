// Package stripe adapts the payment processor API to the checkout use case.
package stripe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/kailas-cloud/lexrelay/internal/domain"
	"github.com/kailas-cloud/lexrelay/internal/domain/billing"
	"github.com/kailas-cloud/lexrelay/internal/metrics"
)

const (
	upstreamName = "stripe"
	serviceName  = "Stripe"
)

// Config holds the payment processor settings.
type Config struct {
	SecretKey  string
	BaseURL    string // empty uses the public API
	HTTPClient *http.Client
	MaxRetries int64
}

// Gateway implements checkout.Gateway with stripe-go.
type Gateway struct {
	api *client.API
}

// NewGateway creates a payment gateway.
func NewGateway(cfg *Config) *Gateway {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	backendCfg := &stripe.BackendConfig{
		HTTPClient:        hc,
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
		MaxNetworkRetries: stripe.Int64(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		backendCfg.URL = stripe.String(cfg.BaseURL)
	}

	api := &client.API{}
	api.Init(cfg.SecretKey, &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
		Connect: stripe.GetBackend(stripe.ConnectBackend),
		Uploads: stripe.GetBackend(stripe.UploadsBackend),
	})
	return &Gateway{api: api}
}

// FindCustomer returns the id of the first customer with email, or "" when none exists.
func (g *Gateway) FindCustomer(ctx context.Context, email string) (string, error) {
	params := &stripe.CustomerListParams{Email: stripe.String(email)}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	start := time.Now()
	it := g.api.Customers.List(params)
	var id string
	if it.Next() {
		id = it.Customer().ID
	}
	if err := it.Err(); err != nil {
		return "", g.fail(err, start)
	}
	metrics.ObserveUpstream(upstreamName, http.StatusOK, time.Since(start))
	return id, nil
}

// CreateCheckout opens a subscription checkout session.
func (g *Gateway) CreateCheckout(ctx context.Context, p billing.CheckoutParams) (billing.Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(p.PriceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
	}
	params.Context = ctx
	if p.CustomerID != "" {
		params.Customer = stripe.String(p.CustomerID)
	} else {
		params.CustomerEmail = stripe.String(p.Email)
	}
	if p.UserID != "" {
		params.ClientReferenceID = stripe.String(p.UserID)
		params.AddMetadata("user_id", p.UserID)
	}

	start := time.Now()
	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return billing.Session{}, g.fail(err, start)
	}
	metrics.ObserveUpstream(upstreamName, http.StatusOK, time.Since(start))
	return billing.Session{ID: s.ID, URL: s.URL}, nil
}

// CreatePortal opens a billing portal session for an existing customer.
func (g *Gateway) CreatePortal(ctx context.Context, customerID, returnURL string) (billing.Session, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx

	start := time.Now()
	s, err := g.api.BillingPortalSessions.New(params)
	if err != nil {
		return billing.Session{}, g.fail(err, start)
	}
	metrics.ObserveUpstream(upstreamName, http.StatusOK, time.Since(start))
	return billing.Session{ID: s.ID, URL: s.URL}, nil
}

// fail records the attempt and maps API errors with a status to domain.UpstreamError.
func (g *Gateway) fail(err error, start time.Time) error {
	var se *stripe.Error
	if errors.As(err, &se) && se.HTTPStatusCode > 0 {
		metrics.ObserveUpstream(upstreamName, se.HTTPStatusCode, time.Since(start))
		return domain.NewUpstreamError(serviceName, se.HTTPStatusCode, se.Msg)
	}
	metrics.ObserveUpstream(upstreamName, 0, time.Since(start))
	return fmt.Errorf("payment request: %w", err)
}
