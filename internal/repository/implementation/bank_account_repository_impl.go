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

type bankAccountRepository struct {
	db     *gorm.DB
	mapper *mapper.BankAccountMapper
}

func NewBankAccountRepository(db *gorm.DB) contract.BankAccountRepository {
	return &bankAccountRepository{db: db, mapper: mapper.NewBankAccountMapper()}
}

func (r *bankAccountRepository) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *bankAccountRepository) Create(ctx context.Context, account *entity.BankAccount) error {
	if account.Id == uuid.Nil {
		account.Id = uuid.New()
	}
	m := r.mapper.ToModel(account)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	account.Id = m.Id
	return nil
}

func (r *bankAccountRepository) Update(ctx context.Context, account *entity.BankAccount) error {
	m := r.mapper.ToModel(account)
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *bankAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.BankAccount{}, "id = ?", id).Error
}

func (r *bankAccountRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BankAccount, error) {
	var m model.BankAccount
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *bankAccountRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BankAccount, error) {
	var models []model.BankAccount
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.BankAccount, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(&m)
	}
	return entities, nil
}
