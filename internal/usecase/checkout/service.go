package checkout

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/lexrelay/internal/domain"
	"github.com/kailas-cloud/lexrelay/internal/domain/billing"
	"github.com/kailas-cloud/lexrelay/internal/logger"
)

// URLs are the browser return targets for hosted payment pages.
type URLs struct {
	Success      string
	Cancel       string
	PortalReturn string
}

// Service opens subscription checkout and billing portal sessions.
type Service struct {
	gw      Gateway
	catalog billing.Catalog
	urls    URLs
}

// New creates a checkout service.
func New(gw Gateway, catalog billing.Catalog, urls URLs) *Service {
	return &Service{gw: gw, catalog: catalog, urls: urls}
}

// Checkout opens a subscription checkout for plan, reusing the caller's customer when one exists.
func (s *Service) Checkout(ctx context.Context, id domain.Identity, plan string) (billing.Session, error) {
	if id.Email == "" {
		return billing.Session{}, fmt.Errorf("%w: identity without email", domain.ErrUnauthorized)
	}

	name, priceID, err := s.catalog.Resolve(plan)
	if err != nil {
		return billing.Session{}, err //nolint:wrapcheck // domain error
	}

	customerID, err := s.gw.FindCustomer(ctx, id.Email)
	if err != nil {
		return billing.Session{}, fmt.Errorf("find customer: %w", err)
	}

	session, err := s.gw.CreateCheckout(ctx, billing.CheckoutParams{
		PriceID:    priceID,
		CustomerID: customerID,
		Email:      id.Email,
		UserID:     id.UserID,
		SuccessURL: s.urls.Success,
		CancelURL:  s.urls.Cancel,
	})
	if err != nil {
		return billing.Session{}, fmt.Errorf("create checkout: %w", err)
	}

	logger.FromContext(ctx).Info("checkout session created",
		zap.String("user_id", id.UserID),
		zap.String("plan", name),
		zap.Bool("existing_customer", customerID != ""),
		zap.String("session_id", session.ID),
	)
	return session, nil
}

// Portal opens a billing portal session for the caller's existing customer.
func (s *Service) Portal(ctx context.Context, id domain.Identity) (billing.Session, error) {
	if id.Email == "" {
		return billing.Session{}, fmt.Errorf("%w: identity without email", domain.ErrUnauthorized)
	}

	customerID, err := s.gw.FindCustomer(ctx, id.Email)
	if err != nil {
		return billing.Session{}, fmt.Errorf("find customer: %w", err)
	}
	if customerID == "" {
		return billing.Session{}, domain.ErrCustomerNotFound
	}

	session, err := s.gw.CreatePortal(ctx, customerID, s.urls.PortalReturn)
	if err != nil {
		return billing.Session{}, fmt.Errorf("create portal: %w", err)
	}

	logger.FromContext(ctx).Info("portal session created", zap.String("user_id", id.UserID))
	return session, nil
}

// Plans returns the purchasable plan names.
func (s *Service) Plans() []string { return s.catalog.Plans() }
