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

type payableRepository struct {
	store *Store
}

func (r *payableRepository) Create(ctx context.Context, payable *entity.Payable) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if payable.Id == uuid.Nil {
		payable.Id = uuid.New()
	}
	if payable.CreatedAt.IsZero() {
		payable.CreatedAt = time.Now()
	}
	payable.UpdatedAt = time.Now()
	copied := *payable
	r.store.payables[payable.Id] = &copied
	return nil
}

func (r *payableRepository) Update(ctx context.Context, payable *entity.Payable) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.payables[payable.Id]; !ok {
		return fmt.Errorf("payable %s not found", payable.Id)
	}
	payable.UpdatedAt = time.Now()
	copied := *payable
	r.store.payables[payable.Id] = &copied
	return nil
}

func (r *payableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.payables, id)
	return nil
}

func (r *payableRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Payable, error) {
	items, err := r.FindAll(ctx, specs...)
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return items[0], nil
}

func (r *payableRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Payable, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*entity.Payable
	for _, p := range r.store.payables {
		if matchOwned(p.Id, p.UserId, string(p.Status), specs) {
			copied := *p
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out, nil
}

func (r *payableRepository) CountByUser(ctx context.Context, userId uuid.UUID) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var count int64
	for _, p := range r.store.payables {
		if p.UserId == userId {
			count++
		}
	}
	return count, nil
}

type receivableRepository struct {
	store *Store
}

func (r *receivableRepository) Create(ctx context.Context, receivable *entity.Receivable) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if receivable.Id == uuid.Nil {
		receivable.Id = uuid.New()
	}
	if receivable.CreatedAt.IsZero() {
		receivable.CreatedAt = time.Now()
	}
	receivable.UpdatedAt = time.Now()
	copied := *receivable
	r.store.receivables[receivable.Id] = &copied
	return nil
}

func (r *receivableRepository) Update(ctx context.Context, receivable *entity.Receivable) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.receivables[receivable.Id]; !ok {
		return fmt.Errorf("receivable %s not found", receivable.Id)
	}
	receivable.UpdatedAt = time.Now()
	copied := *receivable
	r.store.receivables[receivable.Id] = &copied
	return nil
}

func (r *receivableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.receivables, id)
	return nil
}

func (r *receivableRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Receivable, error) {
	items, err := r.FindAll(ctx, specs...)
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return items[0], nil
}

func (r *receivableRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Receivable, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*entity.Receivable
	for _, rec := range r.store.receivables {
		if matchOwned(rec.Id, rec.UserId, string(rec.Status), specs) {
			copied := *rec
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out, nil
}

func (r *receivableRepository) CountByUser(ctx context.Context, userId uuid.UUID) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var count int64
	for _, rec := range r.store.receivables {
		if rec.UserId == userId {
			count++
		}
	}
	return count, nil
}

// matchOwned evaluates the common specs against id/owner/status columns.
func matchOwned(id uuid.UUID, userId uuid.UUID, status string, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if id != sp.ID {
				return false
			}
		case specification.OwnedBy:
			if userId != sp.UserID {
				return false
			}
		case specification.ByStatus:
			if status != sp.Status {
				return false
			}
		case specification.FilterBy:
			switch sp.Field {
			case "user_id":
				if userId != sp.Value {
					return false
				}
			case "status":
				if status != fmt.Sprint(sp.Value) {
					return false
				}
			}
		}
	}
	return true
}
