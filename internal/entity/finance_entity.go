package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccountStatus string

const (
	AccountStatusPending AccountStatus = "pending"
	AccountStatusPaid    AccountStatus = "paid"
)

// Payable is an accounts-payable entry (a bill owed to a supplier).
type Payable struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	Description   string
	Amount        decimal.Decimal
	DueDate       time.Time
	PaymentDate   *time.Time
	Status        AccountStatus
	ContactId     *uuid.UUID // supplier
	CategoryId    *uuid.UUID
	BankAccountId *uuid.UUID
	Reference     string // invoice / document number
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Receivable is an accounts-receivable entry (an amount owed by a customer).
type Receivable struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	Description   string
	Amount        decimal.Decimal
	DueDate       time.Time
	ReceivedDate  *time.Time
	Status        AccountStatus
	ContactId     *uuid.UUID // customer
	CategoryId    *uuid.UUID
	BankAccountId *uuid.UUID
	Reference     string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsOverdue is always derived, never trusted from a stored column:
// due before today (date-only) and still pending.
func (p *Payable) IsOverdue(today time.Time) bool {
	return p.Status == AccountStatusPending && DateOnly(p.DueDate).Before(DateOnly(today))
}

func (r *Receivable) IsOverdue(today time.Time) bool {
	return r.Status == AccountStatusPending && DateOnly(r.DueDate).Before(DateOnly(today))
}
