package memory

import (
	"context"
	"time"

	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/repository/specification"

	"github.com/google/uuid"
)

type systemConfigRepository struct {
	store *Store
}

func (r *systemConfigRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SystemConfiguration, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*entity.SystemConfiguration
	for _, c := range r.store.configs {
		if matchConfig(c, specs) {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *systemConfigRepository) FindByKey(ctx context.Context, key string) (*entity.SystemConfiguration, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.configs[key]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (r *systemConfigRepository) Upsert(ctx context.Context, config *entity.SystemConfiguration) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if config.Id == uuid.Nil {
		config.Id = uuid.New()
	}
	if existing, ok := r.store.configs[config.Key]; ok {
		config.Id = existing.Id
		config.CreatedAt = existing.CreatedAt
	} else if config.CreatedAt.IsZero() {
		config.CreatedAt = time.Now()
	}
	config.UpdatedAt = time.Now()
	copied := *config
	r.store.configs[config.Key] = &copied
	return nil
}

func (r *systemConfigRepository) AppendAudit(ctx context.Context, audit *entity.ConfigAudit) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if audit.Id == uuid.Nil {
		audit.Id = uuid.New()
	}
	copied := *audit
	r.store.audits = append(r.store.audits, &copied)
	return nil
}

func (r *systemConfigRepository) FindAuditByKey(ctx context.Context, key string, limit int) ([]*entity.ConfigAudit, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*entity.ConfigAudit
	for i := len(r.store.audits) - 1; i >= 0; i-- {
		if r.store.audits[i].ConfigKey == key {
			copied := *r.store.audits[i]
			out = append(out, &copied)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func matchConfig(c *entity.SystemConfiguration, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByKey:
			if c.Key != sp.Key {
				return false
			}
		case specification.ByCategory:
			if c.Category != sp.Category {
				return false
			}
		case specification.FilterBy:
			if sp.Field == "category" && c.Category != sp.Value {
				return false
			}
		}
	}
	return true
}
