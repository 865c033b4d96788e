package service

import (
	"context"
	"encoding/json"
	"testing"

	"finance-manager-be/internal/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCatalogServesDefaultsWhenUnconfigured(t *testing.T) {
	f := newFixture()

	catalog, err := f.planService.GetCatalog(context.Background())
	require.NoError(t, err)

	assert.Equal(t, entity.PlanFree, catalog.Free.ID)
	assert.Equal(t, entity.PlanTrial, catalog.Trial.ID)
	assert.Equal(t, entity.PlanPremium, catalog.Premium.ID)

	assert.Equal(t, 10, catalog.Free.Features.PayableLimit)
	assert.Equal(t, 5, catalog.Free.Features.SupplierLimit)
	assert.False(t, catalog.Free.Features.Reports)

	assert.Equal(t, -1, catalog.Trial.Features.PayableLimit)
	assert.Equal(t, 7, catalog.Trial.TrialDays)
	assert.False(t, catalog.Trial.Features.PrioritySupport)

	assert.True(t, catalog.Premium.Price.Equal(decimal.NewFromFloat(29.90)))
	assert.True(t, catalog.Premium.Features.PrioritySupport)
}

func TestGetCatalogMergesStoredOverridesFieldByField(t *testing.T) {
	f := newFixture()

	// Only two fields stored; everything else must keep its default.
	f.seedRawConfig(entity.ConfigKeyPlans, []byte(`{
		"free": {"features": {"contas_pagar": 25}},
		"premium": {"price": "49.90"}
	}`), entity.ConfigCategoryPlans)

	catalog, err := f.planService.GetCatalog(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 25, catalog.Free.Features.PayableLimit)
	assert.True(t, catalog.Premium.Price.Equal(decimal.NewFromFloat(49.90)))

	// Untouched defaults survive the merge.
	assert.Equal(t, 5, catalog.Free.Features.SupplierLimit)
	assert.Equal(t, "Premium", catalog.Premium.DisplayName)
	assert.Equal(t, 7, catalog.Trial.TrialDays)
}

func TestGetCatalogIdsAreStructural(t *testing.T) {
	f := newFixture()

	f.seedRawConfig(entity.ConfigKeyPlans, []byte(`{"free": {"id": "premium"}}`), entity.ConfigCategoryPlans)

	catalog, err := f.planService.GetCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.PlanFree, catalog.Free.ID)
}

func TestGetCatalogMalformedStoreServesDefaults(t *testing.T) {
	f := newFixture()

	f.seedRawConfig(entity.ConfigKeyPlans, []byte(`{"free": [broken`), entity.ConfigCategoryPlans)

	catalog, err := f.planService.GetCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, catalog.Free.Features.PayableLimit)
	assert.True(t, catalog.Premium.Price.Equal(decimal.NewFromFloat(29.90)))
}

func TestValidatePlanCollectsAllViolations(t *testing.T) {
	f := newFixture()

	plan := &entity.PlanConfig{
		ID:        entity.PlanPremium,
		Price:     decimal.NewFromInt(-10),
		TrialDays: -3,
		Features: entity.FeatureSet{
			PayableLimit:  -2,
			SupplierLimit: 5,
			CategoryLimit: -1,
		},
	}

	errs := f.planService.ValidatePlan(plan)
	assert.Len(t, errs, 4) // name, price, trial days, contas_pagar limit
}

func TestValidatePlanAcceptsUnlimitedAndZero(t *testing.T) {
	f := newFixture()

	plan := &entity.PlanConfig{
		ID:          entity.PlanFree,
		DisplayName: "Gratuito",
		Price:       decimal.Zero,
		Features: entity.FeatureSet{
			PayableLimit:  -1,
			SupplierLimit: 0,
			CategoryLimit: 10,
		},
	}
	assert.Empty(t, f.planService.ValidatePlan(plan))
}

func TestUpdateCatalogRejectsInvalidWithoutWriting(t *testing.T) {
	f := newFixture()
	adminId := uuid.New()

	_, err := f.planService.UpdateCatalog(context.Background(), json.RawMessage(`{
		"premium": {"price": "-5"}
	}`), adminId)
	require.Error(t, err)

	// Nothing was persisted and no audit row was written.
	uow := f.factory.NewUnitOfWork(context.Background())
	cfg, err := uow.SystemConfigRepository().FindByKey(context.Background(), entity.ConfigKeyPlans)
	require.NoError(t, err)
	assert.Nil(t, cfg)
	assert.Empty(t, f.store.Audits())
}

func TestUpdateCatalogValidatesEveryPlanBeforeWrite(t *testing.T) {
	f := newFixture()

	// Premium is fine, free is broken: the whole request must fail.
	_, err := f.planService.UpdateCatalog(context.Background(), json.RawMessage(`{
		"free": {"display_name": ""},
		"premium": {"price": "59.90"}
	}`), uuid.New())
	assert.Error(t, err)
}

func TestUpdateCatalogWritesAndInvalidatesCache(t *testing.T) {
	f := newFixture()
	adminId := uuid.New()
	ctx := context.Background()

	// Prime the cache with defaults.
	before, err := f.planService.GetCatalog(ctx)
	require.NoError(t, err)
	assert.True(t, before.Premium.Price.Equal(decimal.NewFromFloat(29.90)))

	updated, err := f.planService.UpdateCatalog(ctx, json.RawMessage(`{
		"premium": {"price": "39.90"}
	}`), adminId)
	require.NoError(t, err)
	assert.True(t, updated.Premium.Price.Equal(decimal.NewFromFloat(39.90)))

	// A fresh read reflects the stored catalog, not the stale cache.
	after, err := f.planService.GetCatalog(ctx)
	require.NoError(t, err)
	assert.True(t, after.Premium.Price.Equal(decimal.NewFromFloat(39.90)))

	// The write went through the config store and was audited.
	audits := f.store.Audits()
	require.Len(t, audits, 1)
	assert.Equal(t, entity.ConfigKeyPlans, audits[0].ConfigKey)
	assert.Equal(t, adminId, audits[0].ChangedBy)
}

func TestGetPlansExposesAllTiers(t *testing.T) {
	f := newFixture()

	plans, err := f.planService.GetPlans(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "free", plans.Free.ID)
	assert.Equal(t, "trial", plans.Trial.ID)
	assert.Equal(t, "premium", plans.Premium.ID)
	assert.Equal(t, "brl", plans.Premium.Currency)
}
