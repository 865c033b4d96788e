package controller

import (
	"errors"

	"finance-manager-be/internal/dto"
	"finance-manager-be/internal/pkg/serverutils"
	"finance-manager-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PayableController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type payableController struct {
	payableService service.IPayableService
}

func NewPayableController(payableService service.IPayableService) PayableController {
	return &payableController{
		payableService: payableService,
	}
}

func (c *payableController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	payables := api.Group("/payables", jwtMiddleware)
	payables.Get("/", c.List)
	payables.Post("/", c.Create)
	payables.Get("/:id", c.Get)
	payables.Put("/:id", c.Update)
	payables.Delete("/:id", c.Delete)
}

func (c *payableController) List(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	filter := dto.AccountFilter{
		Status:   ctx.Query("status"),
		DateFrom: ctx.Query("date_from"),
		DateTo:   ctx.Query("date_to"),
		Search:   ctx.Query("search"),
	}
	if raw := ctx.Query("contact_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.ContactId = &id
		}
	}
	if raw := ctx.Query("category_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.CategoryId = &id
		}
	}

	resp, err := c.payableService.List(ctx.Context(), userId, &filter)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Payables retrieved", resp))
}

func (c *payableController) Create(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	var req dto.CreateAccountRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	resp, err := c.payableService.Create(ctx.Context(), userId, &req)
	if err != nil {
		if errors.Is(err, service.ErrLimitReached) {
			return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Plan limit reached for payables"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Payable created", resp))
}

func (c *payableController) Get(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	resp, err := c.payableService.Get(ctx.Context(), userId, id)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Payable not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Payable retrieved", resp))
}

func (c *payableController) Update(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	var req dto.UpdateAccountRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	resp, err := c.payableService.Update(ctx.Context(), userId, id, &req)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Payable not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Payable updated", resp))
}

func (c *payableController) Delete(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	if err := c.payableService.Delete(ctx.Context(), userId, id); err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Payable not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Payable deleted", nil))
}
