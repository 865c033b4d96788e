package controller

import (
	"finance-manager-be/internal/pkg/serverutils"
	"finance-manager-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PlanController interface {
	RegisterRoutes(api fiber.Router)
}

type planController struct {
	planService service.IPlanService
}

func NewPlanController(planService service.IPlanService) PlanController {
	return &planController{
		planService: planService,
	}
}

func (c *planController) RegisterRoutes(api fiber.Router) {
	// Public: the pricing page reads this before login.
	api.Get("/plans", c.GetPlans)
}

// GetPlans returns the fully-populated three-tier catalog.
// @Summary Get subscription plans
// @Tags Plans
// @Produce json
// @Success 200 {object} dto.PlansResponse
// @Router /api/plans [get]
func (c *planController) GetPlans(ctx *fiber.Ctx) error {
	plans, err := c.planService.GetPlans(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Plans retrieved", plans))
}
