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
)

type subscriptionRepository struct {
	db     *gorm.DB
	mapper *mapper.SubscriptionMapper
}

func NewSubscriptionRepository(db *gorm.DB) contract.SubscriptionRepository {
	return &subscriptionRepository{db: db, mapper: mapper.NewSubscriptionMapper()}
}

func (r *subscriptionRepository) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *subscriptionRepository) Create(ctx context.Context, subscription *entity.Subscription) error {
	if subscription.Id == uuid.Nil {
		subscription.Id = uuid.New()
	}
	m := r.mapper.ToModel(subscription)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	subscription.Id = m.Id
	return nil
}

func (r *subscriptionRepository) Update(ctx context.Context, subscription *entity.Subscription) error {
	m := r.mapper.ToModel(subscription)
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *subscriptionRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error) {
	var m model.Subscription
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *subscriptionRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Subscription, error) {
	var models []model.Subscription
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.Subscription, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(&m)
	}
	return entities, nil
}

func (r *subscriptionRepository) FindLatestByUser(ctx context.Context, userId uuid.UUID) (*entity.Subscription, error) {
	var m model.Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
