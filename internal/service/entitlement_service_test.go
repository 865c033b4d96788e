package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"finance-manager-be/internal/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeFeatures() entity.FeatureSet {
	return DefaultPlansCatalog().Free.Features
}

func TestIsFeatureBlocked(t *testing.T) {
	features := entity.FeatureSet{
		PayableLimit:  10,
		SupplierLimit: -1,
		CategoryLimit: 0,
		Reports:       true,
		Export:        false,
	}

	tests := []struct {
		name    string
		feature entity.FeatureKey
		usage   int64
		blocked bool
	}{
		{"under numeric cap", entity.FeaturePayables, 9, false},
		{"at numeric cap", entity.FeaturePayables, 10, true},
		{"over numeric cap", entity.FeaturePayables, 11, true},
		{"unlimited never blocks", entity.FeatureSuppliers, 1_000_000, false},
		{"zero cap always blocks", entity.FeatureCategories, 0, true},
		{"bool on allows", entity.FeatureReports, 0, false},
		{"bool off blocks", entity.FeatureExport, 0, true},
		{"unknown key blocks", entity.FeatureKey("nope"), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.blocked, IsFeatureBlocked(features, tt.feature, tt.usage))
		})
	}
}

func TestUsagePercentage(t *testing.T) {
	features := entity.FeatureSet{
		PayableLimit:  10,
		SupplierLimit: -1,
		CategoryLimit: 0,
		Reports:       true,
		Export:        false,
	}

	assert.Equal(t, float64(50), UsagePercentage(features, entity.FeaturePayables, 5))
	assert.Equal(t, float64(100), UsagePercentage(features, entity.FeaturePayables, 25)) // capped
	assert.Equal(t, float64(0), UsagePercentage(features, entity.FeatureSuppliers, 999))
	assert.Equal(t, float64(100), UsagePercentage(features, entity.FeatureCategories, 0))
	assert.Equal(t, float64(0), UsagePercentage(features, entity.FeatureReports, 0))
	assert.Equal(t, float64(100), UsagePercentage(features, entity.FeatureExport, 0))
}

func TestRemainingItems(t *testing.T) {
	features := entity.FeatureSet{
		PayableLimit:  10,
		SupplierLimit: -1,
		Reports:       true,
		Export:        false,
	}

	assert.Equal(t, "3", RemainingItems(features, entity.FeaturePayables, 7))
	assert.Equal(t, "0", RemainingItems(features, entity.FeaturePayables, 15))
	assert.Equal(t, "Unlimited", RemainingItems(features, entity.FeatureSuppliers, 7))
	assert.Equal(t, "Available", RemainingItems(features, entity.FeatureReports, 0))
	assert.Equal(t, "Blocked", RemainingItems(features, entity.FeatureExport, 0))
}

func TestCurrentFeaturesDefaultsToFree(t *testing.T) {
	f := newFixture()
	userId := f.addUser("x@example.com")

	planId, features, err := f.entitlements.CurrentFeatures(context.Background(), userId)
	require.NoError(t, err)
	assert.Equal(t, entity.PlanFree, planId)
	assert.Equal(t, freeFeatures(), features)
}

func TestCurrentFeaturesFollowsSubscription(t *testing.T) {
	f := newFixture()
	userId := f.addUser("x@example.com")
	ctx := context.Background()

	_, err := f.subscriptions.CreateTrial(ctx, userId)
	require.NoError(t, err)

	planId, features, err := f.entitlements.CurrentFeatures(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, entity.PlanTrial, planId)
	assert.Equal(t, -1, features.PayableLimit)
	assert.True(t, features.Reports)
}

func TestCurrentFeaturesUsesInjectedClock(t *testing.T) {
	f := newFixture()
	userId := f.addUser("x@example.com")
	ctx := context.Background()

	_, err := f.subscriptions.CreateTrial(ctx, userId)
	require.NoError(t, err)

	// The trial ends seven days after the fixture clock. The plan must be
	// derived against that same clock, not the wall clock.
	planId, _, err := f.entitlements.CurrentFeatures(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, entity.PlanTrial, planId)

	f.now = f.now.AddDate(0, 0, 8)
	planId, features, err := f.entitlements.CurrentFeatures(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, entity.PlanFree, planId)
	assert.Equal(t, 10, features.PayableLimit)
}

func TestCheckUsageLimitsEnforcesCap(t *testing.T) {
	f := newFixture()
	userId := f.addUser("x@example.com")
	ctx := context.Background()

	check := f.entitlements.CheckUsageLimits(ctx, userId, entity.FeaturePayables, 9)
	assert.True(t, check.Allowed)
	assert.Equal(t, 10, check.Limit)

	check = f.entitlements.CheckUsageLimits(ctx, userId, entity.FeaturePayables, 10)
	assert.False(t, check.Allowed)
}

func TestCheckUsageLimitsFailsOpenOnStorageOutage(t *testing.T) {
	f := newFixture()
	userId := f.addUser("x@example.com")

	// Rebuild the graph on a factory whose config storage errors, so
	// the catalog cannot be resolved.
	broken := &brokenConfigFactory{base: f.factory}
	configService := NewConfigService(broken, nil, testLogger)
	planService := NewPlanService(broken, configService, testLogger)
	subscriptions := NewSubscriptionService(broken, planService, configService, nil, testLogger)
	entitlements := NewEntitlementService(broken, planService, subscriptions, testLogger)

	check := entitlements.CheckUsageLimits(context.Background(), userId, entity.FeaturePayables, 999)
	assert.True(t, check.Allowed)
	assert.Equal(t, -1, check.Limit)
}

func TestCheckUsageLimitsFailsOpenOnNonNumericFeature(t *testing.T) {
	f := newFixture()
	userId := f.addUser("x@example.com")

	check := f.entitlements.CheckUsageLimits(context.Background(), userId, entity.FeatureReports, 0)
	assert.True(t, check.Allowed)
	assert.Equal(t, -1, check.Limit)
}

func seedPayables(t *testing.T, f *fixture, userId uuid.UUID, n int) {
	t.Helper()
	ctx := context.Background()
	uow := f.factory.NewUnitOfWork(ctx)
	for i := 0; i < n; i++ {
		err := uow.PayableRepository().Create(ctx, &entity.Payable{
			UserId:      userId,
			Description: fmt.Sprintf("Conta %d", i),
			Amount:      decimal.NewFromInt(100),
			DueDate:     time.Now().AddDate(0, 0, 10),
			Status:      entity.AccountStatusPending,
		})
		require.NoError(t, err)
	}
}

func TestCheckCanCreatePayableAtFreeCap(t *testing.T) {
	f := newFixture()
	userId := f.addUser("x@example.com")
	ctx := context.Background()

	seedPayables(t, f, userId, 9)
	assert.NoError(t, f.entitlements.CheckCanCreatePayable(ctx, userId))

	seedPayables(t, f, userId, 1)
	err := f.entitlements.CheckCanCreatePayable(ctx, userId)
	assert.ErrorIs(t, err, ErrLimitReached)
}

func TestCheckCanCreateUnlimitedOnTrial(t *testing.T) {
	f := newFixture()
	userId := f.addUser("x@example.com")
	ctx := context.Background()

	_, err := f.subscriptions.CreateTrial(ctx, userId)
	require.NoError(t, err)

	seedPayables(t, f, userId, 50)
	assert.NoError(t, f.entitlements.CheckCanCreatePayable(ctx, userId))
}

func TestUsageLimitsReportsAllCounters(t *testing.T) {
	f := newFixture()
	userId := f.addUser("x@example.com")
	ctx := context.Background()

	seedPayables(t, f, userId, 10)
	uow := f.factory.NewUnitOfWork(ctx)
	for i := 0; i < 2; i++ {
		err := uow.ContactRepository().Create(ctx, &entity.Contact{
			UserId: userId,
			Name:   fmt.Sprintf("Fornecedor %d", i),
			Type:   entity.ContactTypeSupplier,
		})
		require.NoError(t, err)
	}

	resp, err := f.entitlements.UsageLimits(ctx, userId)
	require.NoError(t, err)

	assert.Equal(t, "free", resp.PlanID)
	assert.False(t, resp.Degraded)
	assert.True(t, resp.AnyBlocked)

	payables := resp.Limits[string(entity.FeaturePayables)]
	assert.Equal(t, int64(10), payables.Used)
	assert.Equal(t, 10, payables.Limit)
	assert.False(t, payables.CanCreate)
	assert.Equal(t, float64(100), payables.Percentage)

	suppliers := resp.Limits[string(entity.FeatureSuppliers)]
	assert.Equal(t, int64(2), suppliers.Used)
	assert.True(t, suppliers.CanCreate)
	assert.Equal(t, float64(40), suppliers.Percentage)

	categories := resp.Limits[string(entity.FeatureCategories)]
	assert.Equal(t, int64(0), categories.Used)
	assert.True(t, categories.CanCreate)
}

func TestUsageLimitsDegradedOnOutage(t *testing.T) {
	f := newFixture()
	userId := f.addUser("x@example.com")

	broken := &brokenConfigFactory{base: f.factory}
	configService := NewConfigService(broken, nil, testLogger)
	planService := NewPlanService(broken, configService, testLogger)
	subscriptions := NewSubscriptionService(broken, planService, configService, nil, testLogger)
	entitlements := NewEntitlementService(broken, planService, subscriptions, testLogger)

	resp, err := entitlements.UsageLimits(context.Background(), userId)
	require.NoError(t, err)
	assert.True(t, resp.Degraded)
	assert.False(t, resp.AnyBlocked)
	assert.Empty(t, resp.Limits)
}
