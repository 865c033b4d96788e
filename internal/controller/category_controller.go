package controller

import (
	"errors"

	"finance-manager-be/internal/dto"
	"finance-manager-be/internal/pkg/serverutils"
	"finance-manager-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CategoryController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type categoryController struct {
	categoryService service.ICategoryService
}

func NewCategoryController(categoryService service.ICategoryService) CategoryController {
	return &categoryController{
		categoryService: categoryService,
	}
}

func (c *categoryController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	categories := api.Group("/categories", jwtMiddleware)
	categories.Get("/", c.List)
	categories.Post("/", c.Create)
	categories.Get("/:id", c.Get)
	categories.Put("/:id", c.Update)
	categories.Delete("/:id", c.Delete)
}

func (c *categoryController) List(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	categories, err := c.categoryService.List(ctx.Context(), userId, ctx.Query("type"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Categories retrieved", categories))
}

func (c *categoryController) Create(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	var req dto.CreateCategoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	resp, err := c.categoryService.Create(ctx.Context(), userId, &req)
	if err != nil {
		if errors.Is(err, service.ErrLimitReached) {
			return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Plan limit reached for categories"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Category created", resp))
}

func (c *categoryController) Get(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	resp, err := c.categoryService.Get(ctx.Context(), userId, id)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Category not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Category retrieved", resp))
}

func (c *categoryController) Update(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	var req dto.UpdateCategoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	resp, err := c.categoryService.Update(ctx.Context(), userId, id, &req)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Category not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Category updated", resp))
}

func (c *categoryController) Delete(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	if err := c.categoryService.Delete(ctx.Context(), userId, id); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Category not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Category deleted", nil))
}
