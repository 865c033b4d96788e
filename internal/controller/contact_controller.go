package controller

import (
	"errors"

	"finance-manager-be/internal/dto"
	"finance-manager-be/internal/pkg/serverutils"
	"finance-manager-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ContactController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type contactController struct {
	contactService service.IContactService
}

func NewContactController(contactService service.IContactService) ContactController {
	return &contactController{
		contactService: contactService,
	}
}

func (c *contactController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	contacts := api.Group("/contacts", jwtMiddleware)
	contacts.Get("/", c.List)
	contacts.Post("/", c.Create)
	contacts.Get("/:id", c.Get)
	contacts.Put("/:id", c.Update)
	contacts.Delete("/:id", c.Delete)
}

func (c *contactController) List(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	contacts, err := c.contactService.List(ctx.Context(), userId, ctx.Query("type"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Contacts retrieved", contacts))
}

func (c *contactController) Create(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	var req dto.CreateContactRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	resp, err := c.contactService.Create(ctx.Context(), userId, &req)
	if err != nil {
		if errors.Is(err, service.ErrLimitReached) {
			return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Plan limit reached for contacts"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Contact created", resp))
}

func (c *contactController) Get(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	resp, err := c.contactService.Get(ctx.Context(), userId, id)
	if err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Contact not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Contact retrieved", resp))
}

func (c *contactController) Update(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	var req dto.UpdateContactRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	resp, err := c.contactService.Update(ctx.Context(), userId, id, &req)
	if err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Contact not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Contact updated", resp))
}

func (c *contactController) Delete(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	if err := c.contactService.Delete(ctx.Context(), userId, id); err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Contact not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Contact deleted", nil))
}
