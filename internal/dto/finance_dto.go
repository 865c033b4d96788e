package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest creates a payable or receivable entry. The two
// resources share a shape; the route decides which table it lands in.
type CreateAccountRequest struct {
	Description   string     `json:"description" validate:"required"`
	Amount        string     `json:"amount" validate:"required"`
	DueDate       string     `json:"due_date" validate:"required,datetime=2006-01-02"`
	ContactId     *uuid.UUID `json:"contact_id,omitempty"`
	CategoryId    *uuid.UUID `json:"category_id,omitempty"`
	BankAccountId *uuid.UUID `json:"bank_account_id,omitempty"`
	Reference     string     `json:"reference,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

// UpdateAccountRequest applies a partial update. Nil pointers leave the
// stored value untouched. SettledDate is the payment date for payables
// and the received date for receivables.
type UpdateAccountRequest struct {
	Description   *string    `json:"description,omitempty"`
	Amount        *string    `json:"amount,omitempty"`
	DueDate       *string    `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status        *string    `json:"status,omitempty" validate:"omitempty,oneof=pending paid"`
	SettledDate   *string    `json:"settled_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ContactId     *uuid.UUID `json:"contact_id,omitempty"`
	CategoryId    *uuid.UUID `json:"category_id,omitempty"`
	BankAccountId *uuid.UUID `json:"bank_account_id,omitempty"`
	Reference     *string    `json:"reference,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
}

// AccountFilter holds the list-endpoint query parameters. Status accepts
// "pending", "paid" and the derived pseudo-status "overdue".
type AccountFilter struct {
	Status        string     `query:"status"`
	ContactId     *uuid.UUID `query:"contact_id"`
	CategoryId    *uuid.UUID `query:"category_id"`
	DateFrom      string     `query:"date_from"`
	DateTo        string     `query:"date_to"`
	Month         string     `query:"month"` // YYYY-MM, shorthand for a full-month date range
	MinAmount     string     `query:"min_amount"`
	MaxAmount     string     `query:"max_amount"`
	DueWithinDays *int       `query:"due_within_days"`
	Search        string     `query:"search"`
}

type AccountResponse struct {
	Id            uuid.UUID       `json:"id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       string          `json:"due_date"`
	SettledDate   *string         `json:"settled_date,omitempty"`
	Status        string          `json:"status"`
	IsOverdue     bool            `json:"is_overdue"`
	ContactId     *uuid.UUID      `json:"contact_id,omitempty"`
	ContactName   string          `json:"contact_name,omitempty"`
	CategoryId    *uuid.UUID      `json:"category_id,omitempty"`
	BankAccountId *uuid.UUID      `json:"bank_account_id,omitempty"`
	Reference     string          `json:"reference,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// AccountsSummaryResponse aggregates a filtered account list.
type AccountsSummaryResponse struct {
	Total        decimal.Decimal `json:"total"`
	TotalPending decimal.Decimal `json:"total_pending"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	TotalOverdue decimal.Decimal `json:"total_overdue"`
	Count        int             `json:"count"`
	CountPending int             `json:"count_pending"`
	CountPaid    int             `json:"count_paid"`
	CountOverdue int             `json:"count_overdue"`
}

// AccountListResponse bundles the filtered entries with their summary so
// list screens render totals without a second round trip.
type AccountListResponse struct {
	Items   []AccountResponse       `json:"items"`
	Summary AccountsSummaryResponse `json:"summary"`
}
