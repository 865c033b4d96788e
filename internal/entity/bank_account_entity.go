package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BankAccountType string

const (
	BankAccountTypeChecking BankAccountType = "checking"
	BankAccountTypeSavings  BankAccountType = "savings"
	BankAccountTypeCash     BankAccountType = "cash"
)

// BankAccount is a bookkeeping account balances are tracked against.
type BankAccount struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	Name           string
	BankName       string
	Agency         string
	AccountNumber  string
	Type           BankAccountType
	InitialBalance decimal.Decimal
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
