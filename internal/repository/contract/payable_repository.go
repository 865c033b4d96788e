package contract

import (
	"context"

	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PayableRepository interface {
	Create(ctx context.Context, payable *entity.Payable) error
	Update(ctx context.Context, payable *entity.Payable) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Payable, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Payable, error)
	CountByUser(ctx context.Context, userId uuid.UUID) (int64, error)
}
