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

type payableRepository struct {
	db     *gorm.DB
	mapper *mapper.FinanceMapper
}

func NewPayableRepository(db *gorm.DB) contract.PayableRepository {
	return &payableRepository{db: db, mapper: mapper.NewFinanceMapper()}
}

func (r *payableRepository) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *payableRepository) Create(ctx context.Context, payable *entity.Payable) error {
	if payable.Id == uuid.Nil {
		payable.Id = uuid.New()
	}
	m := r.mapper.PayableToModel(payable)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	payable.Id = m.Id
	return nil
}

func (r *payableRepository) Update(ctx context.Context, payable *entity.Payable) error {
	m := r.mapper.PayableToModel(payable)
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *payableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Payable{}, "id = ?", id).Error
}

func (r *payableRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Payable, error) {
	var m model.Payable
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PayableToEntity(&m), nil
}

func (r *payableRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Payable, error) {
	var models []model.Payable
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Order("due_date ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.Payable, len(models))
	for i, m := range models {
		entities[i] = r.mapper.PayableToEntity(&m)
	}
	return entities, nil
}

func (r *payableRepository) CountByUser(ctx context.Context, userId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Payable{}).Where("user_id = ?", userId).Count(&count).Error
	return count, err
}
