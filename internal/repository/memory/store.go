// Package memory provides map-backed repository implementations used as
// test doubles. Specifications are honored for the common filters only
// (ByID, ByKey, OwnedBy, ByStatus, FilterBy on user_id/status); ordering
// and pagination specs are ignored.
package memory

import (
	"context"
	"sync"

	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/repository/contract"
	"finance-manager-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Store holds all in-memory tables behind a single lock.
type Store struct {
	mu sync.RWMutex

	configs       map[string]*entity.SystemConfiguration
	audits        []*entity.ConfigAudit
	subscriptions map[uuid.UUID]*entity.Subscription
	users         map[uuid.UUID]*entity.User
	payables      map[uuid.UUID]*entity.Payable
	receivables   map[uuid.UUID]*entity.Receivable
	contacts      map[uuid.UUID]*entity.Contact
	bankAccounts  map[uuid.UUID]*entity.BankAccount
	categories    map[uuid.UUID]*entity.Category
}

func NewStore() *Store {
	return &Store{
		configs:       make(map[string]*entity.SystemConfiguration),
		subscriptions: make(map[uuid.UUID]*entity.Subscription),
		users:         make(map[uuid.UUID]*entity.User),
		payables:      make(map[uuid.UUID]*entity.Payable),
		receivables:   make(map[uuid.UUID]*entity.Receivable),
		contacts:      make(map[uuid.UUID]*entity.Contact),
		bankAccounts:  make(map[uuid.UUID]*entity.BankAccount),
		categories:    make(map[uuid.UUID]*entity.Category),
	}
}

// AddUser seeds an account record.
func (s *Store) AddUser(u *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.Id] = u
}

// Audits returns a copy of the audit trail, newest first.
func (s *Store) Audits() []*entity.ConfigAudit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.ConfigAudit, len(s.audits))
	for i, a := range s.audits {
		out[len(s.audits)-1-i] = a
	}
	return out
}

type factory struct {
	store *Store
}

// NewFactory wraps a Store as a unit-of-work factory.
func NewFactory(store *Store) unitofwork.RepositoryFactory {
	return &factory{store: store}
}

func (f *factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: f.store}
}

// unitOfWork is transaction-free: Begin/Commit/Rollback are accepted and
// ignored so service code written against the gorm unit of work runs
// unchanged.
type unitOfWork struct {
	store *Store
}

func (u *unitOfWork) Begin(ctx context.Context) error { return nil }
func (u *unitOfWork) Commit() error                   { return nil }
func (u *unitOfWork) Rollback() error                 { return nil }

func (u *unitOfWork) UserRepository() contract.UserRepository {
	return &userRepository{store: u.store}
}

func (u *unitOfWork) SystemConfigRepository() contract.SystemConfigRepository {
	return &systemConfigRepository{store: u.store}
}

func (u *unitOfWork) SubscriptionRepository() contract.SubscriptionRepository {
	return &subscriptionRepository{store: u.store}
}

func (u *unitOfWork) PayableRepository() contract.PayableRepository {
	return &payableRepository{store: u.store}
}

func (u *unitOfWork) ReceivableRepository() contract.ReceivableRepository {
	return &receivableRepository{store: u.store}
}

func (u *unitOfWork) ContactRepository() contract.ContactRepository {
	return &contactRepository{store: u.store}
}

func (u *unitOfWork) BankAccountRepository() contract.BankAccountRepository {
	return &bankAccountRepository{store: u.store}
}

func (u *unitOfWork) CategoryRepository() contract.CategoryRepository {
	return &categoryRepository{store: u.store}
}
