package contract

import (
	"context"

	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/repository/specification"
)

// SystemConfigRepository persists configuration entries and their audit trail.
type SystemConfigRepository interface {
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SystemConfiguration, error)
	FindByKey(ctx context.Context, key string) (*entity.SystemConfiguration, error)
	// Upsert writes the entry keyed by Key, creating it if absent.
	Upsert(ctx context.Context, config *entity.SystemConfiguration) error

	AppendAudit(ctx context.Context, audit *entity.ConfigAudit) error
	FindAuditByKey(ctx context.Context, key string, limit int) ([]*entity.ConfigAudit, error)
}
