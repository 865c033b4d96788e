package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name      string         `gorm:"type:varchar(100);not null"`
	Type      string         `gorm:"type:varchar(20);not null;default:'expense'"`
	Color     string         `gorm:"type:varchar(7)"`
	Active    bool           `gorm:"default:true"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Category) TableName() string {
	return "categories"
}
