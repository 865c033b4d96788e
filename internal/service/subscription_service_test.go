package service

import (
	"context"
	"testing"
	"time"

	"finance-manager-be/internal/entity"
	"finance-manager-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureTrialCreatesSingleRecord(t *testing.T) {
	f := newFixture()
	userId := f.addUser("novo@example.com")
	ctx := context.Background()

	first, err := f.subscriptions.EnsureTrial(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionStatusTrial, first.Status)
	require.NotNil(t, first.TrialEndsAt)
	assert.Equal(t, f.now.AddDate(0, 0, 7).Format("2006-01-02"), first.TrialEndsAt.Format("2006-01-02"))

	// Second call is a no-op on the existing record.
	second, err := f.subscriptions.EnsureTrial(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, first.Id, second.Id)
	assert.Equal(t, 1, f.subscriptionCount(userId))
}

func TestEnsureTrialHonorsAutoCreationToggle(t *testing.T) {
	f := newFixture()
	userId := f.addUser("novo@example.com")

	settings := DefaultSystemSettings()
	settings.TrialAutoCreation = false
	f.seedConfig(entity.ConfigKeySystemSettings, settings, entity.ConfigCategorySystem)

	_, err := f.subscriptions.EnsureTrial(context.Background(), userId)
	assert.ErrorIs(t, err, ErrTrialCreateDisabled)
	assert.Equal(t, 0, f.subscriptionCount(userId))
}

func TestCreateTrialPublishesEvent(t *testing.T) {
	f := newFixture()
	userId := f.addUser("novo@example.com")

	_, err := f.subscriptions.CreateTrial(context.Background(), userId)
	require.NoError(t, err)
	assert.Contains(t, f.publisher.Types(), events.TypeTrialStarted)
}

func TestCreateTrialIsOnePerUser(t *testing.T) {
	f := newFixture()
	userId := f.addUser("novo@example.com")
	ctx := context.Background()

	_, err := f.subscriptions.CreateTrial(ctx, userId)
	require.NoError(t, err)

	_, err = f.subscriptions.CreateTrial(ctx, userId)
	assert.ErrorIs(t, err, ErrTrialAlreadyUsed)
}

func TestTrialEligibilityByLatestStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   entity.SubscriptionStatus
		eligible bool
	}{
		{"trial burns eligibility", entity.SubscriptionStatusTrial, false},
		{"active burns eligibility", entity.SubscriptionStatusActive, false},
		{"expired record leaves user eligible", entity.SubscriptionStatusExpired, true},
		{"cancelled record leaves user eligible", entity.SubscriptionStatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			userId := f.addUser("x@example.com")
			ctx := context.Background()

			end := f.now.AddDate(0, 1, 0)
			uow := f.factory.NewUnitOfWork(ctx)
			err := uow.SubscriptionRepository().Create(ctx, &entity.Subscription{
				UserId:             userId,
				Status:             tt.status,
				TrialEndsAt:        &end,
				SubscriptionEndsAt: &end,
			})
			require.NoError(t, err)

			eligible, err := f.subscriptions.IsEligibleForTrial(ctx, userId)
			require.NoError(t, err)
			assert.Equal(t, tt.eligible, eligible)
		})
	}
}

func TestActivateUpgradesTrialInPlace(t *testing.T) {
	f := newFixture()
	userId := f.addUser("x@example.com")
	ctx := context.Background()

	trial, err := f.subscriptions.CreateTrial(ctx, userId)
	require.NoError(t, err)

	record, err := f.subscriptions.Activate(ctx, userId, 1)
	require.NoError(t, err)

	assert.Equal(t, trial.Id, record.Id)
	assert.Equal(t, entity.SubscriptionStatusActive, record.Status)
	assert.Nil(t, record.TrialEndsAt)
	require.NotNil(t, record.SubscriptionEndsAt)
	assert.Equal(t, f.now.AddDate(0, 1, 0).Format("2006-01-02"), record.SubscriptionEndsAt.Format("2006-01-02"))
	assert.Equal(t, 1, f.subscriptionCount(userId))
	assert.Contains(t, f.publisher.Types(), events.TypeSubscriptionActivated)
}

func TestActivateAfterTerminalCreatesNewRecord(t *testing.T) {
	f := newFixture()
	userId := f.addUser("x@example.com")
	ctx := context.Background()

	trial, err := f.subscriptions.CreateTrial(ctx, userId)
	require.NoError(t, err)
	_, err = f.subscriptions.Cancel(ctx, userId)
	require.NoError(t, err)

	record, err := f.subscriptions.Activate(ctx, userId, 12)
	require.NoError(t, err)

	assert.NotEqual(t, trial.Id, record.Id)
	assert.Equal(t, entity.SubscriptionStatusActive, record.Status)
	assert.Equal(t, f.now.AddDate(0, 12, 0).Format("2006-01-02"), record.SubscriptionEndsAt.Format("2006-01-02"))
	assert.Equal(t, 2, f.subscriptionCount(userId))
}

func TestCancelKeepsEndDateAsAccessWindow(t *testing.T) {
	f := newFixture()
	userId := f.addUser("x@example.com")
	ctx := context.Background()

	_, err := f.subscriptions.Activate(ctx, userId, 1)
	require.NoError(t, err)

	resp, err := f.subscriptions.Cancel(ctx, userId)
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	require.NotNil(t, resp.AccessUntil)
	assert.Equal(t, f.now.AddDate(0, 1, 0).Format("2006-01-02"), resp.AccessUntil.Format("2006-01-02"))

	// The end date stays on the record, inert under the terminal status.
	record := f.latestSubscription(userId)
	assert.Equal(t, entity.SubscriptionStatusCancelled, record.Status)
	assert.NotNil(t, record.SubscriptionEndsAt)
	assert.Contains(t, f.publisher.Types(), events.TypeSubscriptionCancelled)
}

func TestCancelRequiresCancellableState(t *testing.T) {
	f := newFixture()
	userId := f.addUser("x@example.com")
	ctx := context.Background()

	_, err := f.subscriptions.Cancel(ctx, userId)
	assert.ErrorIs(t, err, ErrNoSubscription)

	_, err = f.subscriptions.CreateTrial(ctx, userId)
	require.NoError(t, err)
	_, err = f.subscriptions.Cancel(ctx, userId)
	require.NoError(t, err)

	// Terminal records are never revived, not even by a second cancel.
	_, err = f.subscriptions.Cancel(ctx, userId)
	assert.ErrorIs(t, err, ErrNotCancellable)
}

func TestNormalizeStatusExpiresStaleRecords(t *testing.T) {
	f := newFixture()
	userId := f.addUser("x@example.com")
	ctx := context.Background()

	_, err := f.subscriptions.CreateTrial(ctx, userId)
	require.NoError(t, err)

	// Jump past the trial window.
	f.now = f.now.AddDate(0, 0, 8)

	record, err := f.subscriptions.NormalizeStatus(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionStatusExpired, record.Status)
	assert.Equal(t, entity.SubscriptionStatusExpired, f.latestSubscription(userId).Status)
}

func TestEndDateTodayStillCountsAsActive(t *testing.T) {
	f := newFixture()
	userId := f.addUser("x@example.com")
	ctx := context.Background()

	end := time.Date(f.now.Year(), f.now.Month(), f.now.Day(), 0, 0, 0, 0, time.UTC)
	uow := f.factory.NewUnitOfWork(ctx)
	err := uow.SubscriptionRepository().Create(ctx, &entity.Subscription{
		UserId:      userId,
		Status:      entity.SubscriptionStatusTrial,
		TrialEndsAt: &end,
	})
	require.NoError(t, err)

	record, err := f.subscriptions.NormalizeStatus(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionStatusTrial, record.Status)

	status, err := f.subscriptions.Status(ctx, userId)
	require.NoError(t, err)
	assert.True(t, status.IsActive)
	assert.Equal(t, "trial", status.PlanID)
	assert.Equal(t, 0, status.RemainingDays)
}

func TestStatusForUserWithoutRecord(t *testing.T) {
	f := newFixture()
	userId := f.addUser("x@example.com")

	status, err := f.subscriptions.Status(context.Background(), userId)
	require.NoError(t, err)

	assert.Equal(t, "free", status.PlanID)
	assert.Equal(t, "none", status.Status)
	assert.False(t, status.IsActive)
	assert.True(t, status.CanUpgrade)
	assert.True(t, status.EligibleForTrial)
}

func TestStatusReportsRemainingDays(t *testing.T) {
	f := newFixture()
	userId := f.addUser("x@example.com")
	ctx := context.Background()

	_, err := f.subscriptions.CreateTrial(ctx, userId)
	require.NoError(t, err)

	status, err := f.subscriptions.Status(ctx, userId)
	require.NoError(t, err)

	assert.Equal(t, "trial", status.PlanID)
	assert.True(t, status.IsActive)
	assert.Equal(t, 7, status.RemainingDays)
	assert.True(t, status.CanUpgrade)
	assert.False(t, status.EligibleForTrial)
}

func TestStatusDerivesPlanFromDatesNotStoredStatus(t *testing.T) {
	f := newFixture()
	userId := f.addUser("x@example.com")
	ctx := context.Background()

	// A stale "active" status with a past end date resolves to free.
	past := f.now.AddDate(0, -2, 0)
	uow := f.factory.NewUnitOfWork(ctx)
	err := uow.SubscriptionRepository().Create(ctx, &entity.Subscription{
		UserId:             userId,
		Status:             entity.SubscriptionStatusActive,
		SubscriptionEndsAt: &past,
	})
	require.NoError(t, err)

	status, err := f.subscriptions.Status(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, "free", status.PlanID)
	assert.Equal(t, "expired", status.Status)
	assert.False(t, status.IsActive)
	assert.True(t, status.CanUpgrade)
}

func TestCanUpgradeRuleTable(t *testing.T) {
	tests := []struct {
		name   string
		status entity.SubscriptionStatus
		target entity.PlanID
		want   bool
	}{
		{"active cannot rebuy premium", entity.SubscriptionStatusActive, entity.PlanPremium, false},
		{"trial can buy premium", entity.SubscriptionStatusTrial, entity.PlanPremium, true},
		{"expired can buy premium", entity.SubscriptionStatusExpired, entity.PlanPremium, true},
		{"cancelled can buy premium", entity.SubscriptionStatusCancelled, entity.PlanPremium, true},
		{"active cannot take trial", entity.SubscriptionStatusActive, entity.PlanTrial, false},
		{"free is never a target", entity.SubscriptionStatusExpired, entity.PlanFree, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			userId := f.addUser("x@example.com")
			ctx := context.Background()

			end := f.now.AddDate(0, 1, 0)
			uow := f.factory.NewUnitOfWork(ctx)
			err := uow.SubscriptionRepository().Create(ctx, &entity.Subscription{
				UserId:             userId,
				Status:             tt.status,
				TrialEndsAt:        &end,
				SubscriptionEndsAt: &end,
			})
			require.NoError(t, err)

			got, err := f.subscriptions.CanUpgradeToPlan(ctx, userId, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTrialLengthFollowsCatalog(t *testing.T) {
	f := newFixture()
	userId := f.addUser("x@example.com")

	f.seedRawConfig(entity.ConfigKeyPlans, []byte(`{"trial": {"trial_days": 14}}`), entity.ConfigCategoryPlans)

	record, err := f.subscriptions.CreateTrial(context.Background(), userId)
	require.NoError(t, err)
	assert.Equal(t, f.now.AddDate(0, 0, 14).Format("2006-01-02"), record.TrialEndsAt.Format("2006-01-02"))
}
