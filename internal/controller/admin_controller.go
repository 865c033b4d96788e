package controller

import (
	"errors"
	"os"

	"finance-manager-be/internal/dto"
	"finance-manager-be/internal/pkg/serverutils"
	"finance-manager-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

type AdminController interface {
	RegisterRoutes(api fiber.Router)
}

type adminController struct {
	configService service.IConfigService
	planService   service.IPlanService
}

func NewAdminController(configService service.IConfigService, planService service.IPlanService) AdminController {
	return &adminController{
		configService: configService,
		planService:   planService,
	}
}

// adminMiddleware assumes JWT claims carry "role": "admin".
func (c *adminController) adminMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Missing or invalid authorization header"))
	}
	tokenStr := authHeader[7:]

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_secret"
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid or expired token"))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token claims"))
	}

	role, ok := claims["role"].(string)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Access denied: Role missing"))
	}
	if role != "admin" {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Access denied: Admins only"))
	}

	if userId, exists := claims["user_id"]; exists {
		ctx.Locals("user_id", userId)
	}

	return ctx.Next()
}

func (c *adminController) RegisterRoutes(api fiber.Router) {
	h := api.Group("/admin")
	h.Use(c.adminMiddleware)

	// Configuration store
	h.Get("/config", c.GetAllConfig)
	h.Get("/config/:key", c.GetConfig)
	h.Put("/config", c.UpsertConfig)
	h.Get("/config/:key/audit", c.GetConfigAudit)

	// Plan catalog
	h.Put("/plans", c.UpdatePlans)

	// Platform toggles
	h.Get("/settings", c.GetSystemSettings)
	h.Put("/settings", c.UpdateSystemSettings)
}

func (c *adminController) GetAllConfig(ctx *fiber.Ctx) error {
	configs, err := c.configService.GetAll(ctx.Context(), ctx.Query("category"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Configuration retrieved", configs))
}

func (c *adminController) GetConfig(ctx *fiber.Ctx) error {
	cfg, err := c.configService.GetByKey(ctx.Context(), ctx.Params("key"))
	if err != nil {
		if errors.Is(err, service.ErrConfigNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Configuration entry not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Configuration retrieved", cfg))
}

func (c *adminController) UpsertConfig(ctx *fiber.Ctx) error {
	adminId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	var req dto.UpsertConfigRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	cfg, err := c.configService.Upsert(ctx.Context(), &req, adminId)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Configuration updated", cfg))
}

func (c *adminController) GetConfigAudit(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 50)
	audits, err := c.configService.GetAudit(ctx.Context(), ctx.Params("key"), limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Audit trail retrieved", audits))
}

// UpdatePlans replaces the plan catalog. All three plans are validated
// before anything is written; a single invalid field rejects the whole
// request.
func (c *adminController) UpdatePlans(ctx *fiber.Ctx) error {
	adminId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	var req dto.UpdatePlansRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	catalog, err := c.planService.UpdateCatalog(ctx.Context(), req.Plans, adminId)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Plan catalog updated", catalog))
}

func (c *adminController) GetSystemSettings(ctx *fiber.Ctx) error {
	settings, err := c.configService.GetSystemSettings(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("System settings retrieved", settings))
}

func (c *adminController) UpdateSystemSettings(ctx *fiber.Ctx) error {
	adminId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	var req dto.UpdateSystemSettingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	if err := c.configService.UpdateSystemSettings(ctx.Context(), &req.Settings, adminId); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("System settings updated", nil))
}
