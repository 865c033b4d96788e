package memory

import (
	"context"

	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/repository/specification"
)

type userRepository struct {
	store *Store
}

func (r *userRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	users, err := r.FindAll(ctx, specs...)
	if err != nil || len(users) == 0 {
		return nil, err
	}
	return users[0], nil
}

func (r *userRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*entity.User
	for _, u := range r.store.users {
		if matchUser(u, specs) {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.users)), nil
}

func matchUser(u *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if u.Id != sp.ID {
				return false
			}
		case specification.FilterBy:
			if sp.Field == "email" && u.Email != sp.Value {
				return false
			}
		}
	}
	return true
}
