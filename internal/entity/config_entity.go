package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SystemConfiguration stores application settings (key-value pairs)
type SystemConfiguration struct {
	Id          uuid.UUID
	Key         string          // e.g., "plans_config", "stripe_config"
	Value       json.RawMessage // JSON-encoded value
	Description string          // Human-readable description
	Category    string          // "plans", "payment", "system", "general"
	UpdatedBy   uuid.UUID       // Admin who last touched the entry
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ConfigAudit is an append-only record of a configuration write.
type ConfigAudit struct {
	Id        uuid.UUID
	ConfigKey string
	OldValue  json.RawMessage
	NewValue  json.RawMessage
	ChangedBy uuid.UUID
	ChangedAt time.Time
}

// Category constants for SystemConfiguration
const (
	ConfigCategoryPlans   = "plans"
	ConfigCategoryPayment = "payment"
	ConfigCategorySystem  = "system"
	ConfigCategoryGeneral = "general"
)

// Well-known configuration keys
const (
	ConfigKeyPlans          = "plans_config"
	ConfigKeyStripe         = "stripe_config"
	ConfigKeySystemSettings = "system_settings"
)

// SystemSettings controls platform-wide behavior toggles.
type SystemSettings struct {
	MaintenanceMode     bool `json:"maintenance_mode"`
	RegistrationEnabled bool `json:"registration_enabled"`
	TrialAutoCreation   bool `json:"trial_auto_creation"`
	DefaultTrialDays    int  `json:"default_trial_days"`
	MaxTrialExtensions  int  `json:"max_trial_extensions"`
}

// StripeSettings holds payment gateway integration state.
type StripeSettings struct {
	Enabled           bool       `json:"enabled"`
	Environment       string     `json:"environment"` // "test" or "live"
	WebhookConfigured bool       `json:"webhook_configured"`
	LastSync          *time.Time `json:"last_sync"`
	ProductsSynced    bool       `json:"products_synced"`
}
