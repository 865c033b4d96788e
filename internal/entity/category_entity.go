package entity

import (
	"time"

	"github.com/google/uuid"
)

type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// Category classifies payables (expense) and receivables (income).
type Category struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Name      string
	Type      CategoryType
	Color     string // hex color used by the list screens
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
