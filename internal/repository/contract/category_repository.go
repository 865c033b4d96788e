package contract

import (
	"context"

	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Category, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Category, error)
	CountByUser(ctx context.Context, userId uuid.UUID) (int64, error)
}
