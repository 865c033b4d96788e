package dto

import (
	"encoding/json"
	"time"

	"finance-manager-be/internal/entity"

	"github.com/google/uuid"
)

// UpsertConfigRequest writes one configuration entry. Value must be
// valid JSON; the service rejects writes it cannot re-parse.
type UpsertConfigRequest struct {
	Key         string          `json:"key" validate:"required"`
	Value       json.RawMessage `json:"value" validate:"required"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty" validate:"omitempty,oneof=plans payment system general"`
}

type ConfigResponse struct {
	Key         string          `json:"key"`
	Value       json.RawMessage `json:"value"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	UpdatedBy   uuid.UUID       `json:"updated_by,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type ConfigAuditResponse struct {
	ConfigKey string          `json:"config_key"`
	OldValue  json.RawMessage `json:"old_value,omitempty"`
	NewValue  json.RawMessage `json:"new_value"`
	ChangedBy uuid.UUID       `json:"changed_by"`
	ChangedAt time.Time       `json:"changed_at"`
}

// UpdateSystemSettingsRequest replaces the platform behavior toggles.
type UpdateSystemSettingsRequest struct {
	Settings entity.SystemSettings `json:"settings" validate:"required"`
}
