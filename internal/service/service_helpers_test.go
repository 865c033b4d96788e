package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/pkg/logger"
	"finance-manager-be/internal/repository/contract"
	"finance-manager-be/internal/repository/memory"
	"finance-manager-be/internal/repository/specification"
	"finance-manager-be/internal/repository/unitofwork"
	"finance-manager-be/pkg/events"

	"github.com/google/uuid"
)

// nopLogger satisfies ILogger without producing output.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

var testLogger logger.ILogger = nopLogger{}

// capturePublisher records published events for assertions.
type capturePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *capturePublisher) Publish(ctx context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *capturePublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

// fixture wires the full service graph over the in-memory store with a
// controllable clock.
type fixture struct {
	store         *memory.Store
	factory       unitofwork.RepositoryFactory
	publisher     *capturePublisher
	configService IConfigService
	planService   IPlanService
	subscriptions ISubscriptionService
	entitlements  IEntitlementService
	now           time.Time
}

func newFixture() *fixture {
	store := memory.NewStore()
	factory := memory.NewFactory(store)
	publisher := &capturePublisher{}

	configService := NewConfigService(factory, publisher, testLogger)
	planService := NewPlanService(factory, configService, testLogger)
	subscriptions := NewSubscriptionService(factory, planService, configService, publisher, testLogger)
	entitlements := NewEntitlementService(factory, planService, subscriptions, testLogger)

	f := &fixture{
		store:         store,
		factory:       factory,
		publisher:     publisher,
		configService: configService,
		planService:   planService,
		subscriptions: subscriptions,
		entitlements:  entitlements,
		now:           time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
	}
	subscriptions.(*subscriptionService).now = func() time.Time { return f.now }
	entitlements.(*entitlementService).now = func() time.Time { return f.now }
	return f
}

func (f *fixture) addUser(email string) uuid.UUID {
	id := uuid.New()
	f.store.AddUser(&entity.User{
		Id:       id,
		Email:    email,
		FullName: "Test User",
		Role:     entity.UserRoleUser,
		Status:   entity.UserStatusActive,
	})
	return id
}

func (f *fixture) seedConfig(key string, value interface{}, category string) {
	payload, err := json.Marshal(value)
	if err != nil {
		panic(err)
	}
	f.seedRawConfig(key, payload, category)
}

// seedRawConfig bypasses Upsert validation so malformed entries can be
// planted for fail-closed tests.
func (f *fixture) seedRawConfig(key string, value []byte, category string) {
	uow := f.factory.NewUnitOfWork(context.Background())
	err := uow.SystemConfigRepository().Upsert(context.Background(), &entity.SystemConfiguration{
		Key:      key,
		Value:    value,
		Category: category,
	})
	if err != nil {
		panic(err)
	}
}

func (f *fixture) latestSubscription(userId uuid.UUID) *entity.Subscription {
	uow := f.factory.NewUnitOfWork(context.Background())
	record, err := uow.SubscriptionRepository().FindLatestByUser(context.Background(), userId)
	if err != nil {
		panic(err)
	}
	return record
}

func (f *fixture) subscriptionCount(userId uuid.UUID) int {
	uow := f.factory.NewUnitOfWork(context.Background())
	records, err := uow.SubscriptionRepository().FindAll(context.Background(), specification.OwnedBy{UserID: userId})
	if err != nil {
		panic(err)
	}
	return len(records)
}

// brokenConfigFactory wraps the memory factory with a config repository
// that always errors, simulating a storage outage on the plan catalog.
type brokenConfigFactory struct {
	base unitofwork.RepositoryFactory
}

func (f *brokenConfigFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &brokenConfigUow{UnitOfWork: f.base.NewUnitOfWork(ctx)}
}

type brokenConfigUow struct {
	unitofwork.UnitOfWork
}

func (u *brokenConfigUow) SystemConfigRepository() contract.SystemConfigRepository {
	return brokenConfigRepository{}
}

var errStorageDown = errors.New("storage unavailable")

type brokenConfigRepository struct{}

func (brokenConfigRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SystemConfiguration, error) {
	return nil, errStorageDown
}

func (brokenConfigRepository) FindByKey(ctx context.Context, key string) (*entity.SystemConfiguration, error) {
	return nil, errStorageDown
}

func (brokenConfigRepository) Upsert(ctx context.Context, config *entity.SystemConfiguration) error {
	return errStorageDown
}

func (brokenConfigRepository) AppendAudit(ctx context.Context, audit *entity.ConfigAudit) error {
	return errStorageDown
}

func (brokenConfigRepository) FindAuditByKey(ctx context.Context, key string, limit int) ([]*entity.ConfigAudit, error) {
	return nil, errStorageDown
}
