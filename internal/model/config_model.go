package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SystemConfiguration stores application settings (key-value pairs)
type SystemConfiguration struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Key         string         `gorm:"type:varchar(100);uniqueIndex;not null"`
	Value       datatypes.JSON `gorm:"type:jsonb;not null"`
	Description string         `gorm:"type:text"`
	Category    string         `gorm:"type:varchar(50);not null;default:'general';index"`
	UpdatedBy   uuid.UUID      `gorm:"type:uuid"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

func (SystemConfiguration) TableName() string {
	return "system_configurations"
}

// ConfigAuditLog is append-only; rows are never updated or deleted.
type ConfigAuditLog struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConfigKey string         `gorm:"type:varchar(100);not null;index"`
	OldValue  datatypes.JSON `gorm:"type:jsonb"`
	NewValue  datatypes.JSON `gorm:"type:jsonb;not null"`
	ChangedBy uuid.UUID      `gorm:"type:uuid;not null"`
	ChangedAt time.Time      `gorm:"default:now();not null;index"`
}

func (ConfigAuditLog) TableName() string {
	return "config_audit_logs"
}
