package controller

import (
	"errors"

	"finance-manager-be/internal/dto"
	"finance-manager-be/internal/pkg/serverutils"
	"finance-manager-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReceivableController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type receivableController struct {
	receivableService service.IReceivableService
}

func NewReceivableController(receivableService service.IReceivableService) ReceivableController {
	return &receivableController{
		receivableService: receivableService,
	}
}

func (c *receivableController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	receivables := api.Group("/receivables", jwtMiddleware)
	receivables.Get("/", c.List)
	receivables.Post("/", c.Create)
	receivables.Get("/:id", c.Get)
	receivables.Put("/:id", c.Update)
	receivables.Delete("/:id", c.Delete)
}

func (c *receivableController) List(ctx *fiber.Ctx) error {
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

	resp, err := c.receivableService.List(ctx.Context(), userId, &filter)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Receivables retrieved", resp))
}

func (c *receivableController) Create(ctx *fiber.Ctx) error {
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

	resp, err := c.receivableService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Receivable created", resp))
}

func (c *receivableController) Get(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	resp, err := c.receivableService.Get(ctx.Context(), userId, id)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Receivable not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Receivable retrieved", resp))
}

func (c *receivableController) Update(ctx *fiber.Ctx) error {
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

	resp, err := c.receivableService.Update(ctx.Context(), userId, id, &req)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Receivable not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Receivable updated", resp))
}

func (c *receivableController) Delete(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	if err := c.receivableService.Delete(ctx.Context(), userId, id); err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Receivable not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Receivable deleted", nil))
}
