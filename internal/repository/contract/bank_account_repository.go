package contract

import (
	"context"

	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/repository/specification"

	"github.com/google/uuid"
)

type BankAccountRepository interface {
	Create(ctx context.Context, account *entity.BankAccount) error
	Update(ctx context.Context, account *entity.BankAccount) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BankAccount, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BankAccount, error)
}
