package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/repository/specification"

	"github.com/google/uuid"
)

type subscriptionRepository struct {
	store *Store
}

func (r *subscriptionRepository) Create(ctx context.Context, subscription *entity.Subscription) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if subscription.Id == uuid.Nil {
		subscription.Id = uuid.New()
	}
	if subscription.CreatedAt.IsZero() {
		subscription.CreatedAt = time.Now()
	}
	subscription.UpdatedAt = time.Now()
	copied := *subscription
	r.store.subscriptions[subscription.Id] = &copied
	return nil
}

func (r *subscriptionRepository) Update(ctx context.Context, subscription *entity.Subscription) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.subscriptions[subscription.Id]; !ok {
		return fmt.Errorf("subscription %s not found", subscription.Id)
	}
	subscription.UpdatedAt = time.Now()
	copied := *subscription
	r.store.subscriptions[subscription.Id] = &copied
	return nil
}

func (r *subscriptionRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error) {
	subs, err := r.FindAll(ctx, specs...)
	if err != nil || len(subs) == 0 {
		return nil, err
	}
	return subs[0], nil
}

func (r *subscriptionRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Subscription, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*entity.Subscription
	for _, s := range r.store.subscriptions {
		if matchSubscription(s, specs) {
			copied := *s
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *subscriptionRepository) FindLatestByUser(ctx context.Context, userId uuid.UUID) (*entity.Subscription, error) {
	return r.FindOne(ctx, specification.OwnedBy{UserID: userId})
}

func matchSubscription(s *entity.Subscription, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if s.Id != sp.ID {
				return false
			}
		case specification.OwnedBy:
			if s.UserId != sp.UserID {
				return false
			}
		case specification.ByStatus:
			if string(s.Status) != sp.Status {
				return false
			}
		case specification.FilterBy:
			switch sp.Field {
			case "user_id":
				if s.UserId != sp.Value {
					return false
				}
			case "status":
				if string(s.Status) != fmt.Sprint(sp.Value) {
					return false
				}
			}
		}
	}
	return true
}
