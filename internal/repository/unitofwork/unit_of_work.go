package unitofwork

import (
	"context"

	"finance-manager-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SystemConfigRepository() contract.SystemConfigRepository
	SubscriptionRepository() contract.SubscriptionRepository
	PayableRepository() contract.PayableRepository
	ReceivableRepository() contract.ReceivableRepository
	ContactRepository() contract.ContactRepository
	BankAccountRepository() contract.BankAccountRepository
	CategoryRepository() contract.CategoryRepository
}
