package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BankAccount struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name           string          `gorm:"type:varchar(255);not null"`
	BankName       string          `gorm:"type:varchar(255)"`
	Agency         string          `gorm:"type:varchar(20)"`
	AccountNumber  string          `gorm:"type:varchar(30)"`
	Type           string          `gorm:"type:varchar(20);not null;default:'checking'"`
	InitialBalance decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	Active         bool            `gorm:"default:true"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt  `gorm:"index"`
}

func (BankAccount) TableName() string {
	return "bank_accounts"
}
