package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"finance-manager-be/internal/dto"
	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/pkg/logger"
	"finance-manager-be/internal/repository/specification"
	"finance-manager-be/internal/repository/unitofwork"
	"finance-manager-be/pkg/events"

	"github.com/google/uuid"
)

var ErrConfigNotFound = errors.New("config entry not found")

type IConfigService interface {
	GetAll(ctx context.Context, category string) ([]*dto.ConfigResponse, error)
	GetByKey(ctx context.Context, key string) (*dto.ConfigResponse, error)
	// Upsert is fail-closed: an invalid value is rejected, never stored.
	Upsert(ctx context.Context, req *dto.UpsertConfigRequest, adminId uuid.UUID) (*dto.ConfigResponse, error)
	GetAudit(ctx context.Context, key string, limit int) ([]*dto.ConfigAuditResponse, error)

	GetSystemSettings(ctx context.Context) (*entity.SystemSettings, error)
	UpdateSystemSettings(ctx context.Context, settings *entity.SystemSettings, adminId uuid.UUID) error
}

type configService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  events.Publisher
	logger     logger.ILogger
}

func NewConfigService(uowFactory unitofwork.RepositoryFactory, publisher events.Publisher, log logger.ILogger) IConfigService {
	return &configService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
	}
}

// DefaultSystemSettings are in effect until an admin writes the
// system_settings entry.
func DefaultSystemSettings() entity.SystemSettings {
	return entity.SystemSettings{
		MaintenanceMode:     false,
		RegistrationEnabled: true,
		TrialAutoCreation:   true,
		DefaultTrialDays:    7,
		MaxTrialExtensions:  0,
	}
}

func (s *configService) GetAll(ctx context.Context, category string) ([]*dto.ConfigResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var specs []specification.Specification
	if category != "" {
		specs = append(specs, specification.ByCategory{Category: category})
	}

	configs, err := uow.SystemConfigRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ConfigResponse, 0, len(configs))
	for _, cfg := range configs {
		result = append(result, toConfigResponse(cfg))
	}
	return result, nil
}

func (s *configService) GetByKey(ctx context.Context, key string) (*dto.ConfigResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	cfg, err := uow.SystemConfigRepository().FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, key)
	}
	return toConfigResponse(cfg), nil
}

func (s *configService) Upsert(ctx context.Context, req *dto.UpsertConfigRequest, adminId uuid.UUID) (*dto.ConfigResponse, error) {
	if adminId == uuid.Nil {
		return nil, fmt.Errorf("config write requires an authenticated actor")
	}
	if !json.Valid(req.Value) {
		return nil, fmt.Errorf("config value for %q is not valid JSON", req.Key)
	}

	category := req.Category
	if category == "" {
		category = entity.ConfigCategoryGeneral
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	existing, err := uow.SystemConfigRepository().FindByKey(ctx, req.Key)
	if err != nil {
		return nil, err
	}

	var oldValue json.RawMessage
	if existing != nil {
		oldValue = existing.Value
	}

	cfg := &entity.SystemConfiguration{
		Key:         req.Key,
		Value:       req.Value,
		Description: req.Description,
		Category:    category,
		UpdatedBy:   adminId,
	}
	if existing != nil {
		cfg.Id = existing.Id
		if req.Description == "" {
			cfg.Description = existing.Description
		}
	}

	if err := uow.SystemConfigRepository().Upsert(ctx, cfg); err != nil {
		return nil, err
	}

	audit := &entity.ConfigAudit{
		ConfigKey: req.Key,
		OldValue:  oldValue,
		NewValue:  req.Value,
		ChangedBy: adminId,
		ChangedAt: time.Now(),
	}
	if err := uow.SystemConfigRepository().AppendAudit(ctx, audit); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("CONFIG", "Configuration updated", map[string]interface{}{
		"key":        req.Key,
		"updated_by": adminId.String(),
	})

	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, events.NewConfigChanged(req.Key, adminId.String()))
	}

	return toConfigResponse(cfg), nil
}

func (s *configService) GetAudit(ctx context.Context, key string, limit int) ([]*dto.ConfigAuditResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	audits, err := uow.SystemConfigRepository().FindAuditByKey(ctx, key, limit)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ConfigAuditResponse, 0, len(audits))
	for _, a := range audits {
		result = append(result, &dto.ConfigAuditResponse{
			ConfigKey: a.ConfigKey,
			OldValue:  a.OldValue,
			NewValue:  a.NewValue,
			ChangedBy: a.ChangedBy,
			ChangedAt: a.ChangedAt,
		})
	}
	return result, nil
}

func (s *configService) GetSystemSettings(ctx context.Context) (*entity.SystemSettings, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	cfg, err := uow.SystemConfigRepository().FindByKey(ctx, entity.ConfigKeySystemSettings)
	if err != nil {
		return nil, err
	}

	settings := DefaultSystemSettings()
	if cfg != nil {
		if err := json.Unmarshal(cfg.Value, &settings); err != nil {
			s.logger.Warn("CONFIG", "Stored system settings are malformed, using defaults", map[string]interface{}{
				"error": err.Error(),
			})
			settings = DefaultSystemSettings()
		}
	}
	return &settings, nil
}

func (s *configService) UpdateSystemSettings(ctx context.Context, settings *entity.SystemSettings, adminId uuid.UUID) error {
	if settings.DefaultTrialDays < 0 {
		return fmt.Errorf("default_trial_days must not be negative")
	}

	value, err := json.Marshal(settings)
	if err != nil {
		return err
	}

	_, err = s.Upsert(ctx, &dto.UpsertConfigRequest{
		Key:         entity.ConfigKeySystemSettings,
		Value:       value,
		Description: "Platform behavior toggles",
		Category:    entity.ConfigCategorySystem,
	}, adminId)
	return err
}

func toConfigResponse(cfg *entity.SystemConfiguration) *dto.ConfigResponse {
	return &dto.ConfigResponse{
		Key:         cfg.Key,
		Value:       cfg.Value,
		Description: cfg.Description,
		Category:    cfg.Category,
		UpdatedBy:   cfg.UpdatedBy,
		UpdatedAt:   cfg.UpdatedAt,
	}
}
