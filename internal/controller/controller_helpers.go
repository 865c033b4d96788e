package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// currentUserId pulls the authenticated user id set by the JWT middleware.
func currentUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw := ctx.Locals("user_id")
	if raw == nil {
		return uuid.Nil, fmt.Errorf("missing user id")
	}

	str, ok := raw.(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("invalid user id claim")
	}

	userId, err := uuid.Parse(str)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id: %w", err)
	}
	return userId, nil
}

func parseIdParam(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}
