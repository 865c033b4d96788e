package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"finance-manager-be/internal/dto"
	"finance-manager-be/internal/entity"
	"finance-manager-be/pkg/billing"
	"finance-manager-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway records checkout calls and returns canned results.
type fakeGateway struct {
	calls        []billing.CreateCheckoutInput
	createErr    error
	webhookEvent *billing.WebhookEvent
	webhookErr   error
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, input billing.CreateCheckoutInput) (*billing.CreateCheckoutOutput, error) {
	g.calls = append(g.calls, input)
	if g.createErr != nil {
		return nil, g.createErr
	}
	return &billing.CreateCheckoutOutput{
		SessionID:   "cs_test_123",
		CheckoutURL: "https://checkout.stripe.com/c/pay/cs_test_123",
	}, nil
}

func (g *fakeGateway) VerifyWebhook(payload []byte, signature string) (*billing.WebhookEvent, error) {
	if g.webhookErr != nil {
		return nil, g.webhookErr
	}
	return g.webhookEvent, nil
}

func newCheckoutFixture() (*fixture, *fakeGateway, ICheckoutService) {
	f := newFixture()
	gateway := &fakeGateway{}
	svc := NewCheckoutService(f.factory, gateway, f.planService, f.subscriptions, f.configService, f.publisher, testLogger)
	return f, gateway, svc
}

func enablePayments(f *fixture) {
	f.seedConfig(entity.ConfigKeyStripe, entity.StripeSettings{Enabled: true, Environment: "test"}, entity.ConfigCategoryPayment)
}

func TestCreateCheckoutDisabledWithoutConfig(t *testing.T) {
	f, gateway, svc := newCheckoutFixture()
	userId := f.addUser("x@example.com")

	_, err := svc.CreateCheckout(context.Background(), userId, &dto.CreateCheckoutRequest{PlanID: "premium"})
	assert.ErrorIs(t, err, ErrCheckoutPaymentsDisabled)
	assert.Empty(t, gateway.calls)
}

func TestCreateCheckoutMalformedConfigFailsClosed(t *testing.T) {
	f, gateway, svc := newCheckoutFixture()
	userId := f.addUser("x@example.com")

	f.seedRawConfig(entity.ConfigKeyStripe, []byte(`{not json`), entity.ConfigCategoryPayment)

	_, err := svc.CreateCheckout(context.Background(), userId, &dto.CreateCheckoutRequest{PlanID: "premium"})
	assert.Error(t, err)
	assert.Empty(t, gateway.calls)
}

func TestCreateCheckoutRejectsFreeTiers(t *testing.T) {
	f, gateway, svc := newCheckoutFixture()
	userId := f.addUser("x@example.com")
	enablePayments(f)

	for _, planId := range []string{"free", "trial"} {
		_, err := svc.CreateCheckout(context.Background(), userId, &dto.CreateCheckoutRequest{PlanID: planId})
		assert.ErrorIs(t, err, ErrCheckoutPlanNotPurchasable, planId)
	}
	assert.Empty(t, gateway.calls)
}

func TestCreateCheckoutUnknownPlan(t *testing.T) {
	f, gateway, svc := newCheckoutFixture()
	userId := f.addUser("x@example.com")
	enablePayments(f)

	_, err := svc.CreateCheckout(context.Background(), userId, &dto.CreateCheckoutRequest{PlanID: "platinum"})
	assert.ErrorIs(t, err, ErrCheckoutUnknownPlan)
	assert.Empty(t, gateway.calls)
}

func TestCreateCheckoutRejectsActiveSubscriber(t *testing.T) {
	f, gateway, svc := newCheckoutFixture()
	userId := f.addUser("x@example.com")
	enablePayments(f)

	_, err := f.subscriptions.Activate(context.Background(), userId, 1)
	require.NoError(t, err)

	_, err = svc.CreateCheckout(context.Background(), userId, &dto.CreateCheckoutRequest{PlanID: "premium"})
	assert.ErrorIs(t, err, ErrCheckoutNotEligible)
	assert.Empty(t, gateway.calls)
}

func TestCreateCheckoutUnknownUser(t *testing.T) {
	f, gateway, svc := newCheckoutFixture()
	enablePayments(f)

	_, err := svc.CreateCheckout(context.Background(), uuid.New(), &dto.CreateCheckoutRequest{PlanID: "premium"})
	assert.ErrorIs(t, err, ErrCheckoutUserNotFound)
	assert.Empty(t, gateway.calls)
}

func TestCreateCheckoutSuccess(t *testing.T) {
	f, gateway, svc := newCheckoutFixture()
	userId := f.addUser("buyer@example.com")
	enablePayments(f)

	resp, err := svc.CreateCheckout(context.Background(), userId, &dto.CreateCheckoutRequest{PlanID: "premium"})
	require.NoError(t, err)

	assert.Equal(t, "cs_test_123", resp.SessionID)
	assert.NotEmpty(t, resp.CheckoutURL)

	require.Len(t, gateway.calls, 1)
	call := gateway.calls[0]
	assert.Equal(t, userId, call.UserID)
	assert.Equal(t, "buyer@example.com", call.Email)
	assert.Equal(t, "premium", call.PlanID)
	assert.Equal(t, "brl", call.Currency)
	assert.Equal(t, 1, call.IntervalMonths)
}

func TestCreateCheckoutYearlyInterval(t *testing.T) {
	f, gateway, svc := newCheckoutFixture()
	userId := f.addUser("buyer@example.com")
	enablePayments(f)

	_, err := svc.CreateCheckout(context.Background(), userId, &dto.CreateCheckoutRequest{PlanID: "premium", Interval: "year"})
	require.NoError(t, err)
	require.Len(t, gateway.calls, 1)
	assert.Equal(t, 12, gateway.calls[0].IntervalMonths)
}

func TestCreateCheckoutGatewayFailure(t *testing.T) {
	f, gateway, svc := newCheckoutFixture()
	userId := f.addUser("buyer@example.com")
	enablePayments(f)
	gateway.createErr = errors.New("stripe: card network unreachable")

	_, err := svc.CreateCheckout(context.Background(), userId, &dto.CreateCheckoutRequest{PlanID: "premium"})
	assert.ErrorIs(t, err, ErrCheckoutGateway)
	assert.Contains(t, f.publisher.Types(), events.TypePaymentFailed)
}

func TestCreateCheckoutProviderMisconfiguration(t *testing.T) {
	f, gateway, svc := newCheckoutFixture()
	userId := f.addUser("buyer@example.com")
	enablePayments(f)
	gateway.createErr = fmt.Errorf("%w: price_123 does not exist", billing.ErrGatewayConfig)

	_, err := svc.CreateCheckout(context.Background(), userId, &dto.CreateCheckoutRequest{PlanID: "premium"})
	assert.ErrorIs(t, err, ErrCheckoutGatewayConfig)
	assert.NotErrorIs(t, err, ErrCheckoutGateway)
}

func TestCheckoutWithoutGatewayClient(t *testing.T) {
	f := newFixture()
	userId := f.addUser("buyer@example.com")
	enablePayments(f)
	svc := NewCheckoutService(f.factory, nil, f.planService, f.subscriptions, f.configService, f.publisher, testLogger)

	_, err := svc.CreateCheckout(context.Background(), userId, &dto.CreateCheckoutRequest{PlanID: "premium"})
	assert.ErrorIs(t, err, ErrCheckoutPaymentsDisabled)

	err = svc.HandleWebhook(context.Background(), []byte(`{}`), "sig")
	assert.ErrorIs(t, err, ErrCheckoutPaymentsDisabled)
}

func TestHandleWebhookCompletedActivatesSubscription(t *testing.T) {
	f, gateway, svc := newCheckoutFixture()
	userId := f.addUser("buyer@example.com")

	gateway.webhookEvent = &billing.WebhookEvent{
		ID:        "evt_1",
		Type:      "checkout.session.completed",
		SessionID: "cs_test_123",
		UserID:    userId.String(),
		PlanID:    "premium",
	}

	err := svc.HandleWebhook(context.Background(), []byte(`{}`), "sig")
	require.NoError(t, err)

	record := f.latestSubscription(userId)
	require.NotNil(t, record)
	assert.Equal(t, entity.SubscriptionStatusActive, record.Status)
}

func TestHandleWebhookIgnoresOtherEventTypes(t *testing.T) {
	f, gateway, svc := newCheckoutFixture()
	userId := f.addUser("buyer@example.com")

	gateway.webhookEvent = &billing.WebhookEvent{
		ID:   "evt_2",
		Type: "checkout.session.expired",
	}

	err := svc.HandleWebhook(context.Background(), []byte(`{}`), "sig")
	require.NoError(t, err)
	assert.Nil(t, f.latestSubscription(userId))
}

func TestHandleWebhookRejectsBadSignature(t *testing.T) {
	_, gateway, svc := newCheckoutFixture()
	gateway.webhookErr = errors.New("stripe: signature mismatch")

	err := svc.HandleWebhook(context.Background(), []byte(`{}`), "bad")
	assert.Error(t, err)
}

func TestHandleWebhookRejectsMissingUserId(t *testing.T) {
	_, gateway, svc := newCheckoutFixture()
	gateway.webhookEvent = &billing.WebhookEvent{
		ID:        "evt_3",
		Type:      "checkout.session.completed",
		SessionID: "cs_test_456",
		UserID:    "",
		PlanID:    "premium",
	}

	err := svc.HandleWebhook(context.Background(), []byte(`{}`), "sig")
	assert.Error(t, err)
}
