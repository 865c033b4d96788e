package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateContactRequest struct {
	Name     string `json:"name" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=supplier customer both"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty"`
	Document string `json:"document,omitempty"`
	Address  string `json:"address,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	ZipCode  string `json:"zip_code,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

type UpdateContactRequest struct {
	Name     *string `json:"name,omitempty"`
	Type     *string `json:"type,omitempty" validate:"omitempty,oneof=supplier customer both"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string `json:"phone,omitempty"`
	Document *string `json:"document,omitempty"`
	Address  *string `json:"address,omitempty"`
	City     *string `json:"city,omitempty"`
	State    *string `json:"state,omitempty"`
	ZipCode  *string `json:"zip_code,omitempty"`
	Notes    *string `json:"notes,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

type ContactResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Document  string    `json:"document,omitempty"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	ZipCode   string    `json:"zip_code,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
