package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"finance-manager-be/internal/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/webhook"
)

// CheckoutGateway abstracts the payment provider so services can be
// tested without network access.
type CheckoutGateway interface {
	CreateCheckoutSession(ctx context.Context, input CreateCheckoutInput) (*CreateCheckoutOutput, error)
	VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error)
}

type StripeClient struct {
	webhookSecret string
	successURL    string
	cancelURL     string
	logger        logger.ILogger
}

func NewStripeClient(secretKey, webhookSecret, successURL, cancelURL string, log logger.ILogger) (*StripeClient, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("stripe: secret key is required")
	}

	stripe.Key = secretKey

	return &StripeClient{
		webhookSecret: webhookSecret,
		successURL:    successURL,
		cancelURL:     cancelURL,
		logger:        log,
	}, nil
}

// CreateCheckoutSession opens a hosted subscription checkout. When the
// plan has a configured Stripe Price ID that price is used; otherwise an
// ad-hoc recurring price is built from the catalog amount.
func (c *StripeClient) CreateCheckoutSession(ctx context.Context, input CreateCheckoutInput) (*CreateCheckoutOutput, error) {
	c.logger.Debug("billing", "Creating checkout session", map[string]interface{}{
		"user_id": input.UserID.String(),
		"plan_id": input.PlanID,
	})

	lineItem := &stripe.CheckoutSessionLineItemParams{
		Quantity: stripe.Int64(1),
	}

	if input.StripePriceID != "" {
		lineItem.Price = stripe.String(input.StripePriceID)
	} else {
		intervalCount := int64(input.IntervalMonths)
		if intervalCount < 1 {
			intervalCount = 1
		}
		lineItem.PriceData = &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String(input.Currency),
			UnitAmount: stripe.Int64(toCents(input.Price)),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String(input.PlanName),
			},
			Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
				Interval:      stripe.String(string(stripe.PriceRecurringIntervalMonth)),
				IntervalCount: stripe.Int64(intervalCount),
			},
		}
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		CustomerEmail:     stripe.String(input.Email),
		ClientReferenceID: stripe.String(input.UserID.String()),
		SuccessURL:        stripe.String(c.successURL),
		CancelURL:         stripe.String(c.cancelURL),
		LineItems:         []*stripe.CheckoutSessionLineItemParams{lineItem},
	}

	params.Metadata = map[string]string{
		"user_id": input.UserID.String(),
		"plan_id": input.PlanID,
	}
	for k, v := range input.Metadata {
		params.Metadata[k] = v
	}

	sess, err := session.New(params)
	if err != nil {
		c.logger.Error("billing", "Failed to create checkout session", map[string]interface{}{
			"user_id": input.UserID.String(),
			"plan_id": input.PlanID,
			"error":   err.Error(),
		})
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Code == stripe.ErrorCodeResourceMissing {
			return nil, fmt.Errorf("%w: %v", ErrGatewayConfig, err)
		}
		return nil, fmt.Errorf("stripe: failed to create checkout session: %w", err)
	}

	c.logger.Info("billing", "Created checkout session", map[string]interface{}{
		"user_id":    input.UserID.String(),
		"session_id": sess.ID,
	})

	return &CreateCheckoutOutput{
		SessionID:   sess.ID,
		CheckoutURL: sess.URL,
		ExpiresAt:   time.Unix(sess.ExpiresAt, 0),
	}, nil
}

// VerifyWebhook checks the Stripe-Signature header against the raw
// payload and decodes just enough of the event for the webhook service.
func (c *StripeClient) VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, c.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("stripe: webhook signature verification failed: %w", err)
	}

	out := &WebhookEvent{
		ID:   event.ID,
		Type: string(event.Type),
	}

	switch event.Type {
	case "checkout.session.completed", "checkout.session.expired":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("stripe: failed to decode checkout session: %w", err)
		}
		out.SessionID = sess.ID
		out.UserID = sess.Metadata["user_id"]
		out.PlanID = sess.Metadata["plan_id"]
	}

	return out, nil
}

func toCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
