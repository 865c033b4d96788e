package controller

import (
	"errors"
	"time"

	"finance-manager-be/internal/dto"
	"finance-manager-be/internal/pkg/serverutils"
	"finance-manager-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

const maxCheckoutBodyBytes = 10 * 1024

type CheckoutController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type checkoutController struct {
	checkoutService service.ICheckoutService
}

func NewCheckoutController(checkoutService service.ICheckoutService) CheckoutController {
	return &checkoutController{
		checkoutService: checkoutService,
	}
}

func (c *checkoutController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	// 10/min per client IP before auth, 20/hour per user after it.
	ipLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
	})
	userLimiter := limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Hour,
		KeyGenerator: func(ctx *fiber.Ctx) string {
			if userId, ok := ctx.Locals("user_id").(string); ok {
				return userId
			}
			return ctx.IP()
		},
	})

	api.Post("/checkout", ipLimiter, jwtMiddleware, userLimiter, c.CreateCheckout)

	// Called by the gateway; authenticated by signature, not by JWT.
	api.Post("/webhook/stripe", c.HandleWebhook)
}

// CreateCheckout opens a hosted checkout session for a paid plan.
// @Summary Create checkout session
// @Tags Checkout
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} dto.CheckoutSessionResponse
// @Router /api/checkout [post]
func (c *checkoutController) CreateCheckout(ctx *fiber.Ctx) error {
	if len(ctx.Body()) > maxCheckoutBodyBytes {
		return ctx.Status(fiber.StatusRequestEntityTooLarge).JSON(serverutils.ErrorResponse(413, "Payload too large"))
	}

	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	var req dto.CreateCheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	resp, err := c.checkoutService.CreateCheckout(ctx.Context(), userId, &req)
	if err != nil {
		return c.mapCheckoutError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Checkout session created", resp))
}

// mapCheckoutError translates the failure taxonomy into distinct
// user-facing responses.
func (c *checkoutController) mapCheckoutError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrCheckoutPaymentsDisabled):
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse(503, "Payments are temporarily disabled"))
	case errors.Is(err, service.ErrCheckoutUnknownPlan):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Plan not found"))
	case errors.Is(err, service.ErrCheckoutPlanNotPurchasable):
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "This plan cannot be purchased"))
	case errors.Is(err, service.ErrCheckoutNotEligible):
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, "Current subscription does not allow this purchase"))
	case errors.Is(err, service.ErrCheckoutUserNotFound):
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "User account not found"))
	case errors.Is(err, service.ErrCheckoutGatewayConfig):
		return ctx.Status(fiber.StatusBadGateway).JSON(serverutils.ErrorResponse(502, "Payment provider is misconfigured, contact support"))
	case errors.Is(err, service.ErrCheckoutGateway):
		return ctx.Status(fiber.StatusBadGateway).JSON(serverutils.ErrorResponse(502, "Payment provider is unavailable, try again later"))
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, "Could not start checkout"))
}

// HandleWebhook verifies and processes gateway deliveries.
func (c *checkoutController) HandleWebhook(ctx *fiber.Ctx) error {
	signature := ctx.Get("Stripe-Signature")
	if signature == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Missing signature"))
	}

	if err := c.checkoutService.HandleWebhook(ctx.Context(), ctx.Body(), signature); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Webhook rejected"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Webhook processed", fiber.Map{"received": true}))
}
