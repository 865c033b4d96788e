package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Contact struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name      string         `gorm:"type:varchar(255);not null"`
	Type      string         `gorm:"type:varchar(20);not null;default:'supplier'"`
	Email     string         `gorm:"type:varchar(255)"`
	Phone     string         `gorm:"type:varchar(50)"`
	Document  string         `gorm:"type:varchar(20)"`
	Address   string         `gorm:"type:varchar(255)"`
	City      string         `gorm:"type:varchar(100)"`
	State     string         `gorm:"type:varchar(2)"`
	ZipCode   string         `gorm:"type:varchar(10)"`
	Notes     string         `gorm:"type:text"`
	Active    bool           `gorm:"default:true"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Contact) TableName() string {
	return "contacts"
}
