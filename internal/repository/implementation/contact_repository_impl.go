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

type contactRepository struct {
	db     *gorm.DB
	mapper *mapper.ContactMapper
}

func NewContactRepository(db *gorm.DB) contract.ContactRepository {
	return &contactRepository{db: db, mapper: mapper.NewContactMapper()}
}

func (r *contactRepository) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *contactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	if contact.Id == uuid.Nil {
		contact.Id = uuid.New()
	}
	m := r.mapper.ToModel(contact)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	contact.Id = m.Id
	return nil
}

func (r *contactRepository) Update(ctx context.Context, contact *entity.Contact) error {
	m := r.mapper.ToModel(contact)
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *contactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Contact{}, "id = ?", id).Error
}

func (r *contactRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Contact, error) {
	var m model.Contact
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *contactRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Contact, error) {
	var models []model.Contact
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.Contact, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(&m)
	}
	return entities, nil
}

func (r *contactRepository) CountByUser(ctx context.Context, userId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Contact{}).Where("user_id = ?", userId).Count(&count).Error
	return count, err
}
