package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Payable struct {
	Id            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description   string          `gorm:"type:varchar(255);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DueDate       time.Time       `gorm:"type:date;not null;index"`
	PaymentDate   *time.Time      `gorm:"type:date"`
	Status        string          `gorm:"type:varchar(50);not null;default:'pending'"`
	ContactId     *uuid.UUID      `gorm:"type:uuid;index"`
	CategoryId    *uuid.UUID      `gorm:"type:uuid;index"`
	BankAccountId *uuid.UUID      `gorm:"type:uuid"`
	Reference     string          `gorm:"type:varchar(100)"`
	Notes         string          `gorm:"type:text"`
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt  `gorm:"index"`
}

func (Payable) TableName() string {
	return "payables"
}

type Receivable struct {
	Id            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description   string          `gorm:"type:varchar(255);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DueDate       time.Time       `gorm:"type:date;not null;index"`
	ReceivedDate  *time.Time      `gorm:"type:date"`
	Status        string          `gorm:"type:varchar(50);not null;default:'pending'"`
	ContactId     *uuid.UUID      `gorm:"type:uuid;index"`
	CategoryId    *uuid.UUID      `gorm:"type:uuid;index"`
	BankAccountId *uuid.UUID      `gorm:"type:uuid"`
	Reference     string          `gorm:"type:varchar(100)"`
	Notes         string          `gorm:"type:text"`
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt  `gorm:"index"`
}

func (Receivable) TableName() string {
	return "receivables"
}
