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

type contactRepository struct {
	store *Store
}

func (r *contactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if contact.Id == uuid.Nil {
		contact.Id = uuid.New()
	}
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now()
	}
	contact.UpdatedAt = time.Now()
	copied := *contact
	r.store.contacts[contact.Id] = &copied
	return nil
}

func (r *contactRepository) Update(ctx context.Context, contact *entity.Contact) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.contacts[contact.Id]; !ok {
		return fmt.Errorf("contact %s not found", contact.Id)
	}
	contact.UpdatedAt = time.Now()
	copied := *contact
	r.store.contacts[contact.Id] = &copied
	return nil
}

func (r *contactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.contacts, id)
	return nil
}

func (r *contactRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Contact, error) {
	items, err := r.FindAll(ctx, specs...)
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return items[0], nil
}

func (r *contactRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Contact, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*entity.Contact
	for _, c := range r.store.contacts {
		if matchTyped(c.Id, c.UserId, string(c.Type), c.Active, specs) {
			copied := *c
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *contactRepository) CountByUser(ctx context.Context, userId uuid.UUID) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var count int64
	for _, c := range r.store.contacts {
		if c.UserId == userId {
			count++
		}
	}
	return count, nil
}

type bankAccountRepository struct {
	store *Store
}

func (r *bankAccountRepository) Create(ctx context.Context, account *entity.BankAccount) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if account.Id == uuid.Nil {
		account.Id = uuid.New()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}
	account.UpdatedAt = time.Now()
	copied := *account
	r.store.bankAccounts[account.Id] = &copied
	return nil
}

func (r *bankAccountRepository) Update(ctx context.Context, account *entity.BankAccount) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.bankAccounts[account.Id]; !ok {
		return fmt.Errorf("bank account %s not found", account.Id)
	}
	account.UpdatedAt = time.Now()
	copied := *account
	r.store.bankAccounts[account.Id] = &copied
	return nil
}

func (r *bankAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.bankAccounts, id)
	return nil
}

func (r *bankAccountRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BankAccount, error) {
	items, err := r.FindAll(ctx, specs...)
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return items[0], nil
}

func (r *bankAccountRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BankAccount, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*entity.BankAccount
	for _, a := range r.store.bankAccounts {
		if matchTyped(a.Id, a.UserId, string(a.Type), a.Active, specs) {
			copied := *a
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

type categoryRepository struct {
	store *Store
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if category.Id == uuid.Nil {
		category.Id = uuid.New()
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}
	category.UpdatedAt = time.Now()
	copied := *category
	r.store.categories[category.Id] = &copied
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.categories[category.Id]; !ok {
		return fmt.Errorf("category %s not found", category.Id)
	}
	category.UpdatedAt = time.Now()
	copied := *category
	r.store.categories[category.Id] = &copied
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.categories, id)
	return nil
}

func (r *categoryRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Category, error) {
	items, err := r.FindAll(ctx, specs...)
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return items[0], nil
}

func (r *categoryRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*entity.Category
	for _, c := range r.store.categories {
		if matchTyped(c.Id, c.UserId, string(c.Type), c.Active, specs) {
			copied := *c
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *categoryRepository) CountByUser(ctx context.Context, userId uuid.UUID) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var count int64
	for _, c := range r.store.categories {
		if c.UserId == userId {
			count++
		}
	}
	return count, nil
}

// matchTyped evaluates common specs against id/owner/type/active columns.
func matchTyped(id uuid.UUID, userId uuid.UUID, typ string, active bool, specs []specification.Specification) bool {
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
		case specification.FilterBy:
			switch sp.Field {
			case "user_id":
				if userId != sp.Value {
					return false
				}
			case "type":
				if typ != fmt.Sprint(sp.Value) {
					return false
				}
			case "active":
				if b, ok := sp.Value.(bool); ok && active != b {
					return false
				}
			}
		}
	}
	return true
}
