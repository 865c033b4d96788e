package mapper

import (
	"encoding/json"

	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/model"

	"gorm.io/datatypes"
)

type ConfigMapper struct{}

func NewConfigMapper() *ConfigMapper {
	return &ConfigMapper{}
}

func (m *ConfigMapper) ToEntity(c *model.SystemConfiguration) *entity.SystemConfiguration {
	if c == nil {
		return nil
	}
	return &entity.SystemConfiguration{
		Id:          c.Id,
		Key:         c.Key,
		Value:       json.RawMessage(c.Value),
		Description: c.Description,
		Category:    c.Category,
		UpdatedBy:   c.UpdatedBy,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (m *ConfigMapper) ToModel(c *entity.SystemConfiguration) *model.SystemConfiguration {
	if c == nil {
		return nil
	}
	return &model.SystemConfiguration{
		Id:          c.Id,
		Key:         c.Key,
		Value:       datatypes.JSON(c.Value),
		Description: c.Description,
		Category:    c.Category,
		UpdatedBy:   c.UpdatedBy,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (m *ConfigMapper) AuditToEntity(a *model.ConfigAuditLog) *entity.ConfigAudit {
	if a == nil {
		return nil
	}
	return &entity.ConfigAudit{
		Id:        a.Id,
		ConfigKey: a.ConfigKey,
		OldValue:  json.RawMessage(a.OldValue),
		NewValue:  json.RawMessage(a.NewValue),
		ChangedBy: a.ChangedBy,
		ChangedAt: a.ChangedAt,
	}
}

func (m *ConfigMapper) AuditToModel(a *entity.ConfigAudit) *model.ConfigAuditLog {
	if a == nil {
		return nil
	}
	return &model.ConfigAuditLog{
		Id:        a.Id,
		ConfigKey: a.ConfigKey,
		OldValue:  datatypes.JSON(a.OldValue),
		NewValue:  datatypes.JSON(a.NewValue),
		ChangedBy: a.ChangedBy,
		ChangedAt: a.ChangedAt,
	}
}
