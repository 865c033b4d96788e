package contract

import (
	"context"

	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *entity.Subscription) error
	Update(ctx context.Context, subscription *entity.Subscription) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Subscription, error)
	// FindLatestByUser returns the user's most recent record, nil when none exists.
	FindLatestByUser(ctx context.Context, userId uuid.UUID) (*entity.Subscription, error)
}
