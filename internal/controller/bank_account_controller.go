package controller

import (
	"errors"

	"finance-manager-be/internal/dto"
	"finance-manager-be/internal/pkg/serverutils"
	"finance-manager-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type BankAccountController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type bankAccountController struct {
	bankAccountService service.IBankAccountService
}

func NewBankAccountController(bankAccountService service.IBankAccountService) BankAccountController {
	return &bankAccountController{
		bankAccountService: bankAccountService,
	}
}

func (c *bankAccountController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	accounts := api.Group("/bank-accounts", jwtMiddleware)
	accounts.Get("/", c.List)
	accounts.Post("/", c.Create)
	accounts.Get("/:id", c.Get)
	accounts.Put("/:id", c.Update)
	accounts.Delete("/:id", c.Delete)
}

func (c *bankAccountController) List(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	accounts, err := c.bankAccountService.List(ctx.Context(), userId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Bank accounts retrieved", accounts))
}

func (c *bankAccountController) Create(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	var req dto.CreateBankAccountRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	resp, err := c.bankAccountService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Bank account created", resp))
}

func (c *bankAccountController) Get(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	resp, err := c.bankAccountService.Get(ctx.Context(), userId, id)
	if err != nil {
		if errors.Is(err, service.ErrBankAccountNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Bank account not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Bank account retrieved", resp))
}

func (c *bankAccountController) Update(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	var req dto.UpdateBankAccountRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	resp, err := c.bankAccountService.Update(ctx.Context(), userId, id, &req)
	if err != nil {
		if errors.Is(err, service.ErrBankAccountNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Bank account not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Bank account updated", resp))
}

func (c *bankAccountController) Delete(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	if err := c.bankAccountService.Delete(ctx.Context(), userId, id); err != nil {
		if errors.Is(err, service.ErrBankAccountNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Bank account not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Bank account deleted", nil))
}
