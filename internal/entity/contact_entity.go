package entity

import (
	"time"

	"github.com/google/uuid"
)

type ContactType string

const (
	ContactTypeSupplier ContactType = "supplier"
	ContactTypeCustomer ContactType = "customer"
	ContactTypeBoth     ContactType = "both"
)

// Contact is a supplier or customer counterparty.
type Contact struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Name      string
	Type      ContactType
	Email     string
	Phone     string
	Document  string // CPF/CNPJ
	Address   string
	City      string
	State     string
	ZipCode   string
	Notes     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
