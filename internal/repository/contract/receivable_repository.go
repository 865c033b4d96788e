package contract

import (
	"context"

	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ReceivableRepository interface {
	Create(ctx context.Context, receivable *entity.Receivable) error
	Update(ctx context.Context, receivable *entity.Receivable) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Receivable, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Receivable, error)
	CountByUser(ctx context.Context, userId uuid.UUID) (int64, error)
}
