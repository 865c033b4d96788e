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

type receivableRepository struct {
	db     *gorm.DB
	mapper *mapper.FinanceMapper
}

func NewReceivableRepository(db *gorm.DB) contract.ReceivableRepository {
	return &receivableRepository{db: db, mapper: mapper.NewFinanceMapper()}
}

func (r *receivableRepository) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *receivableRepository) Create(ctx context.Context, receivable *entity.Receivable) error {
	if receivable.Id == uuid.Nil {
		receivable.Id = uuid.New()
	}
	m := r.mapper.ReceivableToModel(receivable)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	receivable.Id = m.Id
	return nil
}

func (r *receivableRepository) Update(ctx context.Context, receivable *entity.Receivable) error {
	m := r.mapper.ReceivableToModel(receivable)
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *receivableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Receivable{}, "id = ?", id).Error
}

func (r *receivableRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Receivable, error) {
	var m model.Receivable
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ReceivableToEntity(&m), nil
}

func (r *receivableRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Receivable, error) {
	var models []model.Receivable
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Order("due_date ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.Receivable, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ReceivableToEntity(&m)
	}
	return entities, nil
}

func (r *receivableRepository) CountByUser(ctx context.Context, userId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Receivable{}).Where("user_id = ?", userId).Count(&count).Error
	return count, err
}
