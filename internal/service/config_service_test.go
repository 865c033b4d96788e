package service

import (
	"context"
	"encoding/json"
	"testing"

	"finance-manager-be/internal/dto"
	"finance-manager-be/internal/entity"
	"finance-manager-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertCreatesEntryAndAuditRow(t *testing.T) {
	f := newFixture()
	adminId := uuid.New()
	ctx := context.Background()

	resp, err := f.configService.Upsert(ctx, &dto.UpsertConfigRequest{
		Key:         "feature_toggle_x",
		Value:       json.RawMessage(`{"enabled": true}`),
		Description: "Toggle X",
		Category:    entity.ConfigCategoryGeneral,
	}, adminId)
	require.NoError(t, err)

	assert.Equal(t, "feature_toggle_x", resp.Key)
	assert.Equal(t, adminId, resp.UpdatedBy)

	audits := f.store.Audits()
	require.Len(t, audits, 1)
	assert.Equal(t, "feature_toggle_x", audits[0].ConfigKey)
	assert.Nil(t, audits[0].OldValue)
	assert.JSONEq(t, `{"enabled": true}`, string(audits[0].NewValue))
	assert.Equal(t, adminId, audits[0].ChangedBy)

	assert.Contains(t, f.publisher.Types(), events.TypeConfigChanged)
}

func TestUpsertUpdatePreservesHistoryAndDescription(t *testing.T) {
	f := newFixture()
	adminId := uuid.New()
	ctx := context.Background()

	_, err := f.configService.Upsert(ctx, &dto.UpsertConfigRequest{
		Key:         "k",
		Value:       json.RawMessage(`1`),
		Description: "original description",
	}, adminId)
	require.NoError(t, err)

	// Update without a description keeps the stored one.
	_, err = f.configService.Upsert(ctx, &dto.UpsertConfigRequest{
		Key:   "k",
		Value: json.RawMessage(`2`),
	}, adminId)
	require.NoError(t, err)

	cfg, err := f.configService.GetByKey(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "original description", cfg.Description)
	assert.JSONEq(t, `2`, string(cfg.Value))

	audits, err := f.configService.GetAudit(ctx, "k", 10)
	require.NoError(t, err)
	require.Len(t, audits, 2)
	// Newest first; each row carries the value it replaced.
	assert.JSONEq(t, `1`, string(audits[0].OldValue))
	assert.JSONEq(t, `2`, string(audits[0].NewValue))
	assert.Nil(t, audits[1].OldValue)
}

func TestUpsertRejectsInvalidJSON(t *testing.T) {
	f := newFixture()

	_, err := f.configService.Upsert(context.Background(), &dto.UpsertConfigRequest{
		Key:   "broken",
		Value: json.RawMessage(`{oops`),
	}, uuid.New())
	assert.Error(t, err)
	assert.Empty(t, f.store.Audits())
}

func TestUpsertRejectsAnonymousActor(t *testing.T) {
	f := newFixture()

	_, err := f.configService.Upsert(context.Background(), &dto.UpsertConfigRequest{
		Key:   "some_key",
		Value: json.RawMessage(`{"ok": true}`),
	}, uuid.Nil)
	assert.ErrorContains(t, err, "authenticated actor")
	assert.Empty(t, f.store.Audits())
}

func TestGetAllFiltersByCategory(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	adminId := uuid.New()

	for _, c := range []struct{ key, category string }{
		{"a", entity.ConfigCategorySystem},
		{"b", entity.ConfigCategoryPayment},
		{"c", entity.ConfigCategorySystem},
	} {
		_, err := f.configService.Upsert(ctx, &dto.UpsertConfigRequest{
			Key:      c.key,
			Value:    json.RawMessage(`{}`),
			Category: c.category,
		}, adminId)
		require.NoError(t, err)
	}

	all, err := f.configService.GetAll(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	system, err := f.configService.GetAll(ctx, entity.ConfigCategorySystem)
	require.NoError(t, err)
	assert.Len(t, system, 2)
}

func TestGetByKeyNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.configService.GetByKey(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestSystemSettingsDefaultsAndUpdate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	adminId := uuid.New()

	settings, err := f.configService.GetSystemSettings(ctx)
	require.NoError(t, err)
	assert.True(t, settings.RegistrationEnabled)
	assert.True(t, settings.TrialAutoCreation)
	assert.Equal(t, 7, settings.DefaultTrialDays)

	settings.TrialAutoCreation = false
	settings.DefaultTrialDays = 14
	err = f.configService.UpdateSystemSettings(ctx, settings, adminId)
	require.NoError(t, err)

	reloaded, err := f.configService.GetSystemSettings(ctx)
	require.NoError(t, err)
	assert.False(t, reloaded.TrialAutoCreation)
	assert.Equal(t, 14, reloaded.DefaultTrialDays)
}

func TestUpdateSystemSettingsRejectsNegativeTrialDays(t *testing.T) {
	f := newFixture()

	settings := DefaultSystemSettings()
	settings.DefaultTrialDays = -1
	err := f.configService.UpdateSystemSettings(context.Background(), &settings, uuid.New())
	assert.Error(t, err)
}

func TestSystemSettingsMalformedEntryServesDefaults(t *testing.T) {
	f := newFixture()

	f.seedRawConfig(entity.ConfigKeySystemSettings, []byte(`"not an object`), entity.ConfigCategorySystem)

	settings, err := f.configService.GetSystemSettings(context.Background())
	require.NoError(t, err)
	assert.True(t, settings.TrialAutoCreation)
	assert.Equal(t, 7, settings.DefaultTrialDays)
}
