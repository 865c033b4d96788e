package controller

import (
	"errors"

	"finance-manager-be/internal/pkg/serverutils"
	"finance-manager-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SubscriptionController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type subscriptionController struct {
	subscriptionService service.ISubscriptionService
	entitlementService  service.IEntitlementService
}

func NewSubscriptionController(
	subscriptionService service.ISubscriptionService,
	entitlementService service.IEntitlementService,
) SubscriptionController {
	return &subscriptionController{
		subscriptionService: subscriptionService,
		entitlementService:  entitlementService,
	}
}

func (c *subscriptionController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	sub := api.Group("/subscription", jwtMiddleware)
	sub.Get("/status", c.GetStatus)
	sub.Get("/limits", c.GetLimits)
	sub.Post("/trial", c.StartTrial)
	sub.Post("/cancel", c.Cancel)
}

// GetStatus returns the normalized subscription state plus derived plan.
// @Summary Get subscription status
// @Tags Subscription
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.SubscriptionStatusResponse
// @Router /api/subscription/status [get]
func (c *subscriptionController) GetStatus(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	status, err := c.subscriptionService.Status(ctx.Context(), userId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Subscription status retrieved", status))
}

// GetLimits reports usage against every countable plan limit.
func (c *subscriptionController) GetLimits(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	limits, err := c.entitlementService.UsageLimits(ctx.Context(), userId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Usage limits retrieved", limits))
}

// StartTrial creates the user's trial if they have no record yet.
func (c *subscriptionController) StartTrial(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	record, err := c.subscriptionService.EnsureTrial(ctx.Context(), userId)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTrialAlreadyUsed):
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, "Trial has already been used"))
		case errors.Is(err, service.ErrTrialCreateDisabled):
			return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Trial creation is disabled"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Trial ensured", record))
}

// Cancel flips the subscription to cancelled, keeping paid access until
// the current period's end date.
func (c *subscriptionController) Cancel(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	resp, err := c.subscriptionService.Cancel(ctx.Context(), userId)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoSubscription):
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "No subscription to cancel"))
		case errors.Is(err, service.ErrNotCancellable):
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, "Subscription is not cancellable"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Subscription cancelled", resp))
}
