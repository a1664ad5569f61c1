package checkout

import (
	"context"

	"github.com/kailas-cloud/lexrelay/internal/domain/billing"
)

// Gateway is the payment processor boundary.
type Gateway interface {
	FindCustomer(ctx context.Context, email string) (string, error)
	CreateCheckout(ctx context.Context, p billing.CheckoutParams) (billing.Session, error)
	CreatePortal(ctx context.Context, customerID, returnURL string) (billing.Session, error)
}
