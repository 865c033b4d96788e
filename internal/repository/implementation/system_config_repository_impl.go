package implementation

import (
	"context"

	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/mapper"
	"finance-manager-be/internal/model"
	"finance-manager-be/internal/repository/contract"
	"finance-manager-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type systemConfigRepository struct {
	db     *gorm.DB
	mapper *mapper.ConfigMapper
}

func NewSystemConfigRepository(db *gorm.DB) contract.SystemConfigRepository {
	return &systemConfigRepository{db: db, mapper: mapper.NewConfigMapper()}
}

func (r *systemConfigRepository) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *systemConfigRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SystemConfiguration, error) {
	var models []model.SystemConfiguration
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Order("key ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.SystemConfiguration, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(&m)
	}
	return entities, nil
}

func (r *systemConfigRepository) FindByKey(ctx context.Context, key string) (*entity.SystemConfiguration, error) {
	var m model.SystemConfiguration
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *systemConfigRepository) Upsert(ctx context.Context, config *entity.SystemConfiguration) error {
	if config.Id == uuid.Nil {
		config.Id = uuid.New()
	}
	m := r.mapper.ToModel(config)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "description", "category", "updated_by", "updated_at"}),
	}).Create(m).Error
}

func (r *systemConfigRepository) AppendAudit(ctx context.Context, audit *entity.ConfigAudit) error {
	if audit.Id == uuid.Nil {
		audit.Id = uuid.New()
	}
	m := r.mapper.AuditToModel(audit)
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *systemConfigRepository) FindAuditByKey(ctx context.Context, key string, limit int) ([]*entity.ConfigAudit, error) {
	var models []model.ConfigAuditLog
	query := r.db.WithContext(ctx).Where("config_key = ?", key).Order("changed_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.ConfigAudit, len(models))
	for i, m := range models {
		entities[i] = r.mapper.AuditToEntity(&m)
	}
	return entities, nil
}
