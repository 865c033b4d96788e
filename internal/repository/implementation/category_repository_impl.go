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

type categoryRepository struct {
	db     *gorm.DB
	mapper *mapper.CategoryMapper
}

func NewCategoryRepository(db *gorm.DB) contract.CategoryRepository {
	return &categoryRepository{db: db, mapper: mapper.NewCategoryMapper()}
}

func (r *categoryRepository) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	if category.Id == uuid.Nil {
		category.Id = uuid.New()
	}
	m := r.mapper.ToModel(category)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	category.Id = m.Id
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	m := r.mapper.ToModel(category)
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Category{}, "id = ?", id).Error
}

func (r *categoryRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Category, error) {
	var m model.Category
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *categoryRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Category, error) {
	var models []model.Category
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.Category, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(&m)
	}
	return entities, nil
}

func (r *categoryRepository) CountByUser(ctx context.Context, userId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).Where("user_id = ?", userId).Count(&count).Error
	return count, err
}
