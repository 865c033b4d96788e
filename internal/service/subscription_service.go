package service

import (
	"context"
	"errors"
	"time"

	"finance-manager-be/internal/dto"
	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/pkg/logger"
	"finance-manager-be/internal/repository/specification"
	"finance-manager-be/internal/repository/unitofwork"
	"finance-manager-be/pkg/events"

	"github.com/google/uuid"
)

var (
	ErrNoSubscription      = errors.New("no subscription record exists for user")
	ErrNotCancellable      = errors.New("subscription is not in a cancellable state")
	ErrTrialAlreadyUsed    = errors.New("user has already used their trial")
	ErrTrialCreateDisabled = errors.New("automatic trial creation is disabled")
)

type ISubscriptionService interface {
	// EnsureTrial creates a trial for users with no record, honoring the
	// trial_auto_creation system setting. It is the idempotency guard in
	// front of CreateTrial: existing records are returned untouched.
	EnsureTrial(ctx context.Context, userId uuid.UUID) (*entity.Subscription, error)
	CreateTrial(ctx context.Context, userId uuid.UUID) (*entity.Subscription, error)
	// Activate flips the user to a paid subscription for the given number
	// of calendar months. Terminal records are superseded by a new one.
	Activate(ctx context.Context, userId uuid.UUID, months int) (*entity.Subscription, error)
	Cancel(ctx context.Context, userId uuid.UUID) (*dto.CancelSubscriptionResponse, error)
	// NormalizeStatus flips stale trial/active records to expired. It is
	// idempotent and must run before entitlement decisions are trusted.
	NormalizeStatus(ctx context.Context, userId uuid.UUID) (*entity.Subscription, error)
	Status(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionStatusResponse, error)

	CanUpgradeToPlan(ctx context.Context, userId uuid.UUID, target entity.PlanID) (bool, error)
	IsEligibleForTrial(ctx context.Context, userId uuid.UUID) (bool, error)
}

type subscriptionService struct {
	uowFactory    unitofwork.RepositoryFactory
	planService   IPlanService
	configService IConfigService
	publisher     events.Publisher
	logger        logger.ILogger
	now           func() time.Time
}

func NewSubscriptionService(
	uowFactory unitofwork.RepositoryFactory,
	planService IPlanService,
	configService IConfigService,
	publisher events.Publisher,
	log logger.ILogger,
) ISubscriptionService {
	return &subscriptionService{
		uowFactory:    uowFactory,
		planService:   planService,
		configService: configService,
		publisher:     publisher,
		logger:        log,
		now:           time.Now,
	}
}

func (s *subscriptionService) EnsureTrial(ctx context.Context, userId uuid.UUID) (*entity.Subscription, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.SubscriptionRepository().FindLatestByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	settings, err := s.configService.GetSystemSettings(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.TrialAutoCreation {
		return nil, ErrTrialCreateDisabled
	}

	return s.CreateTrial(ctx, userId)
}

func (s *subscriptionService) CreateTrial(ctx context.Context, userId uuid.UUID) (*entity.Subscription, error) {
	eligible, err := s.IsEligibleForTrial(ctx, userId)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, ErrTrialAlreadyUsed
	}

	catalog, err := s.planService.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}
	trialDays := catalog.Trial.TrialDays

	now := s.now()
	trialEnd := now.AddDate(0, 0, trialDays)
	record := &entity.Subscription{
		UserId:      userId,
		Status:      entity.SubscriptionStatusTrial,
		TrialEndsAt: &trialEnd,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.SubscriptionRepository().Create(ctx, record); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("SUBSCRIPTION", "Trial created", map[string]interface{}{
		"user_id":       userId.String(),
		"trial_ends_at": trialEnd.Format("2006-01-02"),
	})

	s.publishForUser(ctx, userId, func(email string) events.Event {
		return events.NewTrialStarted(userId, email, trialDays)
	})

	return record, nil
}

func (s *subscriptionService) Activate(ctx context.Context, userId uuid.UUID, months int) (*entity.Subscription, error) {
	if months < 1 {
		months = 1
	}

	now := s.now()
	// Calendar months, not a fixed day count.
	endsAt := now.AddDate(0, months, 0)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	record, err := uow.SubscriptionRepository().FindLatestByUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	if record == nil || record.Status == entity.SubscriptionStatusExpired || record.Status == entity.SubscriptionStatusCancelled {
		// Terminal records are never revived; a fresh record supersedes.
		record = &entity.Subscription{
			UserId:             userId,
			Status:             entity.SubscriptionStatusActive,
			SubscriptionEndsAt: &endsAt,
		}
		if err := uow.SubscriptionRepository().Create(ctx, record); err != nil {
			return nil, err
		}
	} else {
		record.Status = entity.SubscriptionStatusActive
		record.SubscriptionEndsAt = &endsAt
		record.TrialEndsAt = nil
		if err := uow.SubscriptionRepository().Update(ctx, record); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("SUBSCRIPTION", "Subscription activated", map[string]interface{}{
		"user_id": userId.String(),
		"ends_at": endsAt.Format("2006-01-02"),
		"months":  months,
	})

	s.publishForUser(ctx, userId, func(email string) events.Event {
		return events.NewSubscriptionActivated(userId, email, "Premium")
	})

	return record, nil
}

func (s *subscriptionService) Cancel(ctx context.Context, userId uuid.UUID) (*dto.CancelSubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	record, err := uow.SubscriptionRepository().FindLatestByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNoSubscription
	}
	if record.Status != entity.SubscriptionStatusTrial && record.Status != entity.SubscriptionStatusActive {
		return nil, ErrNotCancellable
	}

	// End dates stay in place; they are inert once the status is terminal.
	accessUntil := record.RelevantEndDate()
	record.Status = entity.SubscriptionStatusCancelled
	if err := uow.SubscriptionRepository().Update(ctx, record); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("SUBSCRIPTION", "Subscription cancelled", map[string]interface{}{
		"user_id": userId.String(),
	})

	if accessUntil != nil {
		until := *accessUntil
		s.publishForUser(ctx, userId, func(email string) events.Event {
			return events.NewSubscriptionCancelled(userId, email, until)
		})
	}

	return &dto.CancelSubscriptionResponse{
		Status:      string(entity.SubscriptionStatusCancelled),
		AccessUntil: accessUntil,
	}, nil
}

func (s *subscriptionService) NormalizeStatus(ctx context.Context, userId uuid.UUID) (*entity.Subscription, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	record, err := uow.SubscriptionRepository().FindLatestByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	today := entity.DateOnly(s.now())
	stale := false
	switch record.Status {
	case entity.SubscriptionStatusTrial:
		stale = record.TrialEndsAt == nil || entity.DateOnly(*record.TrialEndsAt).Before(today)
	case entity.SubscriptionStatusActive:
		stale = record.SubscriptionEndsAt == nil || entity.DateOnly(*record.SubscriptionEndsAt).Before(today)
	}
	if !stale {
		return record, nil
	}

	record.Status = entity.SubscriptionStatusExpired
	if err := uow.SubscriptionRepository().Update(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("SUBSCRIPTION", "Stale subscription normalized to expired", map[string]interface{}{
		"user_id": userId.String(),
	})

	return record, nil
}

func (s *subscriptionService) Status(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionStatusResponse, error) {
	record, err := s.NormalizeStatus(ctx, userId)
	if err != nil {
		return nil, err
	}

	now := s.now()
	resp := &dto.SubscriptionStatusResponse{
		PlanID: string(entity.PlanFree),
		Status: "none",
	}

	if record != nil {
		resp.PlanID = string(record.CurrentPlanID(now))
		resp.Status = string(record.Status)
		resp.IsActive = record.IsActive(now)
		resp.TrialEndsAt = record.TrialEndsAt
		resp.SubscriptionEndsAt = record.SubscriptionEndsAt
		if end := record.RelevantEndDate(); end != nil && resp.IsActive {
			resp.RemainingDays = entity.RemainingDays(*end, now)
		}
	}

	canUpgrade, err := s.CanUpgradeToPlan(ctx, userId, entity.PlanPremium)
	if err != nil {
		return nil, err
	}
	resp.CanUpgrade = canUpgrade

	eligible, err := s.IsEligibleForTrial(ctx, userId)
	if err != nil {
		return nil, err
	}
	resp.EligibleForTrial = eligible

	return resp, nil
}

// CanUpgradeToPlan implements the upgrade rule table: premium is open to
// everyone except holders of a live active subscription; trial is
// one-per-user; free requires no action at all.
func (s *subscriptionService) CanUpgradeToPlan(ctx context.Context, userId uuid.UUID, target entity.PlanID) (bool, error) {
	if target == entity.PlanFree {
		return false, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	record, err := uow.SubscriptionRepository().FindLatestByUser(ctx, userId)
	if err != nil {
		return false, err
	}

	switch target {
	case entity.PlanPremium:
		if record == nil {
			return true, nil
		}
		return record.Status != entity.SubscriptionStatusActive, nil
	case entity.PlanTrial:
		return s.eligibleForTrial(record), nil
	}
	return false, nil
}

func (s *subscriptionService) IsEligibleForTrial(ctx context.Context, userId uuid.UUID) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	record, err := uow.SubscriptionRepository().FindLatestByUser(ctx, userId)
	if err != nil {
		return false, err
	}
	return s.eligibleForTrial(record), nil
}

func (s *subscriptionService) eligibleForTrial(record *entity.Subscription) bool {
	if record == nil {
		return true
	}
	// Holding trial or active status, now or in the past, burns the
	// one-per-user trial.
	return record.Status != entity.SubscriptionStatusTrial && record.Status != entity.SubscriptionStatusActive
}

// publishForUser looks up the user's email and publishes the event built
// from it. Notification failures never fail the calling operation.
func (s *subscriptionService) publishForUser(ctx context.Context, userId uuid.UUID, build func(email string) events.Event) {
	if s.publisher == nil {
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil || user == nil {
		s.logger.Warn("SUBSCRIPTION", "Could not resolve user for notification", map[string]interface{}{
			"user_id": userId.String(),
		})
		return
	}

	_ = s.publisher.Publish(ctx, build(user.Email))
}
