package billing

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrGatewayConfig marks failures caused by the provider-side setup
// (missing product or price) rather than a transient outage.
var ErrGatewayConfig = errors.New("billing: gateway product or price not found")

// CreateCheckoutInput carries everything needed to open a hosted
// checkout session for a subscription purchase.
type CreateCheckoutInput struct {
	UserID        uuid.UUID
	Email         string
	PlanID        string
	PlanName      string
	StripePriceID string
	// Price and Currency are used to build an ad-hoc price when no
	// Stripe Price ID is configured for the plan.
	Price          decimal.Decimal
	Currency       string
	IntervalMonths int
	Metadata       map[string]string
}

type CreateCheckoutOutput struct {
	SessionID   string
	CheckoutURL string
	ExpiresAt   time.Time
}

// WebhookEvent is the verified, minimally-decoded form of a Stripe
// webhook delivery.
type WebhookEvent struct {
	ID        string
	Type      string
	SessionID string
	UserID    string
	PlanID    string
}
