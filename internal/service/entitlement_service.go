package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finance-manager-be/internal/dto"
	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/pkg/logger"
	"finance-manager-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// ErrLimitReached signals a plan cap was hit. It is the only error the
// create-guards return for a genuinely blocked action; internal failures
// fail open and return nil instead.
var ErrLimitReached = errors.New("plan limit reached for this resource")

// LimitCheck is the result of a single usage-limit probe.
type LimitCheck struct {
	Allowed bool
	Limit   int
}

type IEntitlementService interface {
	// CurrentFeatures resolves the user's effective plan and its feature
	// set, normalizing stale subscription state first.
	CurrentFeatures(ctx context.Context, userId uuid.UUID) (entity.PlanID, entity.FeatureSet, error)

	// CheckUsageLimits fails open: on any resolution failure the action
	// is allowed with limit -1, so a billing outage never blocks data entry.
	CheckUsageLimits(ctx context.Context, userId uuid.UUID, feature entity.FeatureKey, currentCount int64) LimitCheck

	// UsageLimits reports usage against every countable resource.
	UsageLimits(ctx context.Context, userId uuid.UUID) (*dto.UsageLimitsResponse, error)

	// CheckCanCreatePayable and friends guard the create endpoints.
	CheckCanCreatePayable(ctx context.Context, userId uuid.UUID) error
	CheckCanCreateSupplier(ctx context.Context, userId uuid.UUID) error
	CheckCanCreateCategory(ctx context.Context, userId uuid.UUID) error
}

type entitlementService struct {
	uowFactory          unitofwork.RepositoryFactory
	planService         IPlanService
	subscriptionService ISubscriptionService
	logger              logger.ILogger
	now                 func() time.Time
}

func NewEntitlementService(
	uowFactory unitofwork.RepositoryFactory,
	planService IPlanService,
	subscriptionService ISubscriptionService,
	log logger.ILogger,
) IEntitlementService {
	return &entitlementService{
		uowFactory:          uowFactory,
		planService:         planService,
		subscriptionService: subscriptionService,
		logger:              log,
		now:                 time.Now,
	}
}

// IsFeatureBlocked is the pure limit rule: boolean features block when
// off; numeric features never block at -1, otherwise block at the cap.
func IsFeatureBlocked(features entity.FeatureSet, feature entity.FeatureKey, currentUsage int64) bool {
	if flag, ok := features.BoolFlag(feature); ok {
		return !flag
	}
	if limit, ok := features.NumericLimit(feature); ok {
		if limit == -1 {
			return false
		}
		return currentUsage >= int64(limit)
	}
	// Unknown keys block: a typo must not silently grant access.
	return true
}

// UsagePercentage maps usage to 0..100 for progress bars.
func UsagePercentage(features entity.FeatureSet, feature entity.FeatureKey, currentUsage int64) float64 {
	if flag, ok := features.BoolFlag(feature); ok {
		if flag {
			return 0
		}
		return 100
	}
	if limit, ok := features.NumericLimit(feature); ok {
		if limit == -1 {
			return 0
		}
		if limit == 0 {
			return 100
		}
		pct := float64(currentUsage) / float64(limit) * 100
		if pct > 100 {
			return 100
		}
		return pct
	}
	return 100
}

// RemainingItems renders the human-readable remaining allowance.
func RemainingItems(features entity.FeatureSet, feature entity.FeatureKey, currentUsage int64) string {
	if flag, ok := features.BoolFlag(feature); ok {
		if flag {
			return "Available"
		}
		return "Blocked"
	}
	if limit, ok := features.NumericLimit(feature); ok {
		if limit == -1 {
			return "Unlimited"
		}
		remaining := int64(limit) - currentUsage
		if remaining < 0 {
			remaining = 0
		}
		return fmt.Sprintf("%d", remaining)
	}
	return "Blocked"
}

func (s *entitlementService) CurrentFeatures(ctx context.Context, userId uuid.UUID) (entity.PlanID, entity.FeatureSet, error) {
	record, err := s.subscriptionService.NormalizeStatus(ctx, userId)
	if err != nil {
		return entity.PlanFree, entity.FeatureSet{}, err
	}

	catalog, err := s.planService.GetCatalog(ctx)
	if err != nil {
		return entity.PlanFree, entity.FeatureSet{}, err
	}

	// Same clock as the normalization above, so the derived plan and the
	// corrected status never disagree on what "today" is.
	planId := record.CurrentPlanID(s.now())
	plan := catalog.Plan(planId)
	if plan == nil {
		return entity.PlanFree, catalog.Free.Features, nil
	}
	return planId, plan.Features, nil
}

func (s *entitlementService) CheckUsageLimits(ctx context.Context, userId uuid.UUID, feature entity.FeatureKey, currentCount int64) LimitCheck {
	planId, features, err := s.CurrentFeatures(ctx, userId)
	if err != nil {
		s.logger.Warn("ENTITLEMENT", "Usage check failed, failing open", map[string]interface{}{
			"user_id": userId.String(),
			"feature": string(feature),
			"error":   err.Error(),
		})
		return LimitCheck{Allowed: true, Limit: -1}
	}

	limit, ok := features.NumericLimit(feature)
	if !ok {
		s.logger.Warn("ENTITLEMENT", "Usage check on non-numeric feature, failing open", map[string]interface{}{
			"user_id": userId.String(),
			"feature": string(feature),
			"plan":    string(planId),
		})
		return LimitCheck{Allowed: true, Limit: -1}
	}

	if limit == -1 {
		return LimitCheck{Allowed: true, Limit: -1}
	}
	return LimitCheck{Allowed: currentCount < int64(limit), Limit: limit}
}

func (s *entitlementService) UsageLimits(ctx context.Context, userId uuid.UUID) (*dto.UsageLimitsResponse, error) {
	planId, features, err := s.CurrentFeatures(ctx, userId)
	if err != nil {
		// Degraded response: everything allowed, nothing counted.
		s.logger.Warn("ENTITLEMENT", "Limits resolution failed, serving degraded response", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		return &dto.UsageLimitsResponse{
			PlanID:   string(entity.PlanFree),
			Limits:   map[string]dto.UsageLimit{},
			Degraded: true,
		}, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	resp := &dto.UsageLimitsResponse{
		PlanID: string(planId),
		Limits: make(map[string]dto.UsageLimit, 3),
	}

	type counter struct {
		feature entity.FeatureKey
		count   func() (int64, error)
	}
	counters := []counter{
		{entity.FeaturePayables, func() (int64, error) { return uow.PayableRepository().CountByUser(ctx, userId) }},
		{entity.FeatureSuppliers, func() (int64, error) { return uow.ContactRepository().CountByUser(ctx, userId) }},
		{entity.FeatureCategories, func() (int64, error) { return uow.CategoryRepository().CountByUser(ctx, userId) }},
	}

	for _, c := range counters {
		used, err := c.count()
		if err != nil {
			resp.Degraded = true
			resp.Limits[string(c.feature)] = dto.UsageLimit{Used: 0, Limit: -1, Percentage: 0, CanCreate: true}
			continue
		}
		limit, _ := features.NumericLimit(c.feature)
		blocked := IsFeatureBlocked(features, c.feature, used)
		resp.Limits[string(c.feature)] = dto.UsageLimit{
			Used:       used,
			Limit:      limit,
			Percentage: UsagePercentage(features, c.feature, used),
			CanCreate:  !blocked,
		}
		if blocked {
			resp.AnyBlocked = true
		}
	}

	return resp, nil
}

func (s *entitlementService) CheckCanCreatePayable(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.checkCanCreate(ctx, userId, entity.FeaturePayables, func() (int64, error) {
		return uow.PayableRepository().CountByUser(ctx, userId)
	})
}

func (s *entitlementService) CheckCanCreateSupplier(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.checkCanCreate(ctx, userId, entity.FeatureSuppliers, func() (int64, error) {
		return uow.ContactRepository().CountByUser(ctx, userId)
	})
}

func (s *entitlementService) CheckCanCreateCategory(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.checkCanCreate(ctx, userId, entity.FeatureCategories, func() (int64, error) {
		return uow.CategoryRepository().CountByUser(ctx, userId)
	})
}

func (s *entitlementService) checkCanCreate(ctx context.Context, userId uuid.UUID, feature entity.FeatureKey, count func() (int64, error)) error {
	current, err := count()
	if err != nil {
		// Fail open: a storage hiccup on the counter must not block
		// the user's own data entry.
		s.logger.Warn("ENTITLEMENT", "Count failed, allowing create", map[string]interface{}{
			"user_id": userId.String(),
			"feature": string(feature),
			"error":   err.Error(),
		})
		return nil
	}

	check := s.CheckUsageLimits(ctx, userId, feature, current)
	if !check.Allowed {
		return fmt.Errorf("%w: %s (%d/%d)", ErrLimitReached, feature, current, check.Limit)
	}
	return nil
}
