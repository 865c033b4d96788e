package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCategoryRequest struct {
	Name  string `json:"name" validate:"required"`
	Type  string `json:"type" validate:"required,oneof=expense income"`
	Color string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

type UpdateCategoryRequest struct {
	Name   *string `json:"name,omitempty"`
	Type   *string `json:"type,omitempty" validate:"omitempty,oneof=expense income"`
	Color  *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Active *bool   `json:"active,omitempty"`
}

type CategoryResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Color     string    `json:"color,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
