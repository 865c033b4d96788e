package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"finance-manager-be/internal/dto"
	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/pkg/logger"
	"finance-manager-be/internal/repository/specification"
	"finance-manager-be/internal/repository/unitofwork"
	"finance-manager-be/pkg/billing"
	"finance-manager-be/pkg/events"

	"github.com/google/uuid"
)

// Checkout failure taxonomy. Every error surfaced to a caller is one of
// these (or wraps one), each mapped to a distinct user-facing message at
// the controller.
var (
	ErrCheckoutPaymentsDisabled   = errors.New("payments are currently disabled")
	ErrCheckoutUnknownPlan        = errors.New("unknown plan")
	ErrCheckoutPlanNotPurchasable = errors.New("plan cannot be purchased")
	ErrCheckoutNotEligible        = errors.New("user is not eligible for this plan")
	ErrCheckoutUserNotFound       = errors.New("user account not found")
	ErrCheckoutGatewayConfig      = errors.New("payment gateway is misconfigured")
	ErrCheckoutGateway            = errors.New("payment gateway error")
)

type ICheckoutService interface {
	// CreateCheckout is fail-closed: every precondition is verified
	// before the gateway is contacted, and any failure aborts with no
	// partial effect.
	CreateCheckout(ctx context.Context, userId uuid.UUID, req *dto.CreateCheckoutRequest) (*dto.CheckoutSessionResponse, error)

	// HandleWebhook verifies and processes a gateway delivery,
	// activating the purchased subscription on checkout completion.
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type checkoutService struct {
	uowFactory          unitofwork.RepositoryFactory
	gateway             billing.CheckoutGateway
	planService         IPlanService
	subscriptionService ISubscriptionService
	configService       IConfigService
	publisher           events.Publisher
	logger              logger.ILogger
}

func NewCheckoutService(
	uowFactory unitofwork.RepositoryFactory,
	gateway billing.CheckoutGateway,
	planService IPlanService,
	subscriptionService ISubscriptionService,
	configService IConfigService,
	publisher events.Publisher,
	log logger.ILogger,
) ICheckoutService {
	return &checkoutService{
		uowFactory:          uowFactory,
		gateway:             gateway,
		planService:         planService,
		subscriptionService: subscriptionService,
		configService:       configService,
		publisher:           publisher,
		logger:              log,
	}
}

func (s *checkoutService) CreateCheckout(ctx context.Context, userId uuid.UUID, req *dto.CreateCheckoutRequest) (*dto.CheckoutSessionResponse, error) {
	// No gateway client means the provider credentials were never
	// configured, regardless of what stripe_config says.
	if s.gateway == nil {
		return nil, ErrCheckoutPaymentsDisabled
	}

	enabled, err := s.paymentsEnabled(ctx)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return nil, ErrCheckoutPaymentsDisabled
	}

	catalog, err := s.planService.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}

	planId := entity.PlanID(req.PlanID)
	plan := catalog.Plan(planId)
	if plan == nil {
		return nil, fmt.Errorf("%w: %s", ErrCheckoutUnknownPlan, req.PlanID)
	}
	if !plan.Price.IsPositive() {
		// Free and trial tiers never reach the gateway.
		return nil, fmt.Errorf("%w: %s", ErrCheckoutPlanNotPurchasable, req.PlanID)
	}

	eligible, err := s.subscriptionService.CanUpgradeToPlan(ctx, userId, planId)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, ErrCheckoutNotEligible
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrCheckoutUserNotFound
	}

	intervalMonths := 1
	if req.Interval == string(entity.BillingIntervalYear) || plan.Interval == entity.BillingIntervalYear {
		intervalMonths = 12
	}

	out, err := s.gateway.CreateCheckoutSession(ctx, billing.CreateCheckoutInput{
		UserID:         userId,
		Email:          user.Email,
		PlanID:         string(plan.ID),
		PlanName:       plan.DisplayName,
		StripePriceID:  plan.StripePriceID,
		Price:          plan.Price,
		Currency:       plan.Currency,
		IntervalMonths: intervalMonths,
	})
	if err != nil {
		s.logger.Error("CHECKOUT", "Gateway rejected checkout session", map[string]interface{}{
			"user_id": userId.String(),
			"plan_id": req.PlanID,
			"error":   err.Error(),
		})
		if s.publisher != nil {
			_ = s.publisher.Publish(ctx, events.NewPaymentFailed(userId, user.Email, "checkout session could not be created"))
		}
		if errors.Is(err, billing.ErrGatewayConfig) {
			return nil, fmt.Errorf("%w: %v", ErrCheckoutGatewayConfig, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrCheckoutGateway, err)
	}

	s.logger.Info("CHECKOUT", "Checkout session created", map[string]interface{}{
		"user_id":    userId.String(),
		"plan_id":    req.PlanID,
		"session_id": out.SessionID,
	})

	return &dto.CheckoutSessionResponse{
		SessionID:   out.SessionID,
		CheckoutURL: out.CheckoutURL,
	}, nil
}

func (s *checkoutService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if s.gateway == nil {
		return ErrCheckoutPaymentsDisabled
	}

	event, err := s.gateway.VerifyWebhook(payload, signature)
	if err != nil {
		s.logger.Warn("CHECKOUT", "Webhook verification failed", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	switch event.Type {
	case "checkout.session.completed":
		return s.handleCheckoutCompleted(ctx, event)
	default:
		s.logger.Debug("CHECKOUT", "Ignoring webhook event", map[string]interface{}{
			"type": event.Type,
		})
		return nil
	}
}

func (s *checkoutService) handleCheckoutCompleted(ctx context.Context, event *billing.WebhookEvent) error {
	userId, err := uuid.Parse(event.UserID)
	if err != nil {
		return fmt.Errorf("webhook session %s carries no valid user id: %w", event.SessionID, err)
	}

	catalog, err := s.planService.GetCatalog(ctx)
	if err != nil {
		return err
	}

	months := 1
	if plan := catalog.Plan(entity.PlanID(event.PlanID)); plan != nil && plan.Interval == entity.BillingIntervalYear {
		months = 12
	}

	if _, err := s.subscriptionService.Activate(ctx, userId, months); err != nil {
		s.logger.Error("CHECKOUT", "Failed to activate subscription from webhook", map[string]interface{}{
			"user_id":    userId.String(),
			"session_id": event.SessionID,
			"error":      err.Error(),
		})
		return err
	}

	s.logger.Info("CHECKOUT", "Subscription activated from webhook", map[string]interface{}{
		"user_id":    userId.String(),
		"session_id": event.SessionID,
	})
	return nil
}

// paymentsEnabled reads the stripe_config entry; absent config means
// payments are off. Read failures propagate so checkout fails closed.
func (s *checkoutService) paymentsEnabled(ctx context.Context) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	cfg, err := uow.SystemConfigRepository().FindByKey(ctx, entity.ConfigKeyStripe)
	if err != nil {
		return false, err
	}
	if cfg == nil {
		return false, nil
	}

	var settings entity.StripeSettings
	if err := json.Unmarshal(cfg.Value, &settings); err != nil {
		return false, fmt.Errorf("stripe_config entry is malformed: %w", err)
	}
	return settings.Enabled, nil
}
