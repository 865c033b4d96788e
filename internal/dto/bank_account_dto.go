package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateBankAccountRequest struct {
	Name           string `json:"name" validate:"required"`
	BankName       string `json:"bank_name,omitempty"`
	Agency         string `json:"agency,omitempty"`
	AccountNumber  string `json:"account_number,omitempty"`
	Type           string `json:"type" validate:"required,oneof=checking savings cash"`
	InitialBalance string `json:"initial_balance,omitempty"`
}

type UpdateBankAccountRequest struct {
	Name           *string `json:"name,omitempty"`
	BankName       *string `json:"bank_name,omitempty"`
	Agency         *string `json:"agency,omitempty"`
	AccountNumber  *string `json:"account_number,omitempty"`
	Type           *string `json:"type,omitempty" validate:"omitempty,oneof=checking savings cash"`
	InitialBalance *string `json:"initial_balance,omitempty"`
	Active         *bool   `json:"active,omitempty"`
}

type BankAccountResponse struct {
	Id             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	BankName       string          `json:"bank_name,omitempty"`
	Agency         string          `json:"agency,omitempty"`
	AccountNumber  string          `json:"account_number,omitempty"`
	Type           string          `json:"type"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
