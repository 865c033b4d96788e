package unitofwork

import (
	"context"
	"fmt"

	"finance-manager-be/internal/repository/contract"
	"finance-manager-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // active transaction, nil outside Begin/Commit
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) SystemConfigRepository() contract.SystemConfigRepository {
	return implementation.NewSystemConfigRepository(u.getDB())
}

func (u *UnitOfWorkImpl) SubscriptionRepository() contract.SubscriptionRepository {
	return implementation.NewSubscriptionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PayableRepository() contract.PayableRepository {
	return implementation.NewPayableRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ReceivableRepository() contract.ReceivableRepository {
	return implementation.NewReceivableRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ContactRepository() contract.ContactRepository {
	return implementation.NewContactRepository(u.getDB())
}

func (u *UnitOfWorkImpl) BankAccountRepository() contract.BankAccountRepository {
	return implementation.NewBankAccountRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CategoryRepository() contract.CategoryRepository {
	return implementation.NewCategoryRepository(u.getDB())
}
