package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"finance-manager-be/internal/dto"
	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/pkg/logger"
	"finance-manager-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

type IPlanService interface {
	// GetCatalog returns the fully-populated three-tier catalog,
	// merging any stored overrides over the hard-coded defaults.
	GetCatalog(ctx context.Context) (*entity.PlansCatalog, error)
	GetPlans(ctx context.Context) (*dto.PlansResponse, error)
	// UpdateCatalog validates all three plans before writing anything.
	UpdateCatalog(ctx context.Context, raw json.RawMessage, adminId uuid.UUID) (*entity.PlansCatalog, error)
	ValidatePlan(plan *entity.PlanConfig) []string
	InvalidateCache()
}

const planCatalogCacheKey = "plans_catalog"

type planService struct {
	uowFactory    unitofwork.RepositoryFactory
	configService IConfigService
	cache         *gocache.Cache
	logger        logger.ILogger
}

func NewPlanService(uowFactory unitofwork.RepositoryFactory, configService IConfigService, log logger.ILogger) IPlanService {
	return &planService{
		uowFactory:    uowFactory,
		configService: configService,
		cache:         gocache.New(5*time.Minute, 10*time.Minute),
		logger:        log,
	}
}

// DefaultPlansCatalog is the baseline every stored override merges over.
func DefaultPlansCatalog() entity.PlansCatalog {
	return entity.PlansCatalog{
		Free: entity.PlanConfig{
			ID:          entity.PlanFree,
			DisplayName: "Gratuito",
			Price:       decimal.Zero,
			Currency:    "brl",
			Interval:    entity.BillingIntervalMonth,
			TrialDays:   0,
			Features: entity.FeatureSet{
				PayableLimit:    10,
				SupplierLimit:   5,
				CategoryLimit:   5,
				Reports:         false,
				Export:          false,
				Backup:          false,
				PrioritySupport: false,
			},
		},
		Trial: entity.PlanConfig{
			ID:          entity.PlanTrial,
			DisplayName: "Teste Gratuito",
			Price:       decimal.Zero,
			Currency:    "brl",
			Interval:    entity.BillingIntervalMonth,
			TrialDays:   7,
			Features: entity.FeatureSet{
				PayableLimit:    -1,
				SupplierLimit:   -1,
				CategoryLimit:   -1,
				Reports:         true,
				Export:          true,
				Backup:          true,
				PrioritySupport: false,
			},
		},
		Premium: entity.PlanConfig{
			ID:          entity.PlanPremium,
			DisplayName: "Premium",
			Price:       decimal.NewFromFloat(29.90),
			Currency:    "brl",
			Interval:    entity.BillingIntervalMonth,
			TrialDays:   0,
			Features: entity.FeatureSet{
				PayableLimit:    -1,
				SupplierLimit:   -1,
				CategoryLimit:   -1,
				Reports:         true,
				Export:          true,
				Backup:          true,
				PrioritySupport: true,
			},
		},
	}
}

func (s *planService) GetCatalog(ctx context.Context) (*entity.PlansCatalog, error) {
	if cached, found := s.cache.Get(planCatalogCacheKey); found {
		if catalog, ok := cached.(*entity.PlansCatalog); ok {
			return catalog, nil
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	cfg, err := uow.SystemConfigRepository().FindByKey(ctx, entity.ConfigKeyPlans)
	if err != nil {
		return nil, err
	}

	catalog := DefaultPlansCatalog()
	if cfg != nil {
		// Unmarshalling into the pre-populated default gives
		// field-by-field override semantics: stored fields win,
		// absent fields keep their default.
		if err := json.Unmarshal(cfg.Value, &catalog); err != nil {
			s.logger.Warn("PLANS", "Stored plans config is malformed, serving defaults", map[string]interface{}{
				"error": err.Error(),
			})
			catalog = DefaultPlansCatalog()
		}
	}

	// Ids are structural, never overridable.
	catalog.Free.ID = entity.PlanFree
	catalog.Trial.ID = entity.PlanTrial
	catalog.Premium.ID = entity.PlanPremium

	s.cache.Set(planCatalogCacheKey, &catalog, gocache.DefaultExpiration)
	return &catalog, nil
}

func (s *planService) GetPlans(ctx context.Context) (*dto.PlansResponse, error) {
	catalog, err := s.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.PlansResponse{
		Free:    toPlanResponse(&catalog.Free),
		Trial:   toPlanResponse(&catalog.Trial),
		Premium: toPlanResponse(&catalog.Premium),
	}, nil
}

// ValidatePlan returns all violations instead of stopping at the first,
// so the admin panel can show a complete error list.
func (s *planService) ValidatePlan(plan *entity.PlanConfig) []string {
	var errs []string

	if plan.DisplayName == "" {
		errs = append(errs, fmt.Sprintf("plan %s: display_name must not be empty", plan.ID))
	}
	if plan.Price.IsNegative() {
		errs = append(errs, fmt.Sprintf("plan %s: price must not be negative", plan.ID))
	}
	if plan.TrialDays < 0 {
		errs = append(errs, fmt.Sprintf("plan %s: trial_days must not be negative", plan.ID))
	}
	for _, check := range []struct {
		key   entity.FeatureKey
		limit int
	}{
		{entity.FeaturePayables, plan.Features.PayableLimit},
		{entity.FeatureSuppliers, plan.Features.SupplierLimit},
		{entity.FeatureCategories, plan.Features.CategoryLimit},
	} {
		if check.limit < -1 {
			errs = append(errs, fmt.Sprintf("plan %s: feature %s must be -1 or >= 0", plan.ID, check.key))
		}
	}

	return errs
}

func (s *planService) UpdateCatalog(ctx context.Context, raw json.RawMessage, adminId uuid.UUID) (*entity.PlansCatalog, error) {
	// Merge the incoming document over defaults first so a partial
	// update is validated in its effective, fully-populated form.
	catalog := DefaultPlansCatalog()
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("plans config is not valid JSON: %w", err)
	}
	catalog.Free.ID = entity.PlanFree
	catalog.Trial.ID = entity.PlanTrial
	catalog.Premium.ID = entity.PlanPremium

	var allErrs []string
	for _, plan := range []*entity.PlanConfig{&catalog.Free, &catalog.Trial, &catalog.Premium} {
		allErrs = append(allErrs, s.ValidatePlan(plan)...)
	}
	if len(allErrs) > 0 {
		return nil, fmt.Errorf("invalid plans config: %v", allErrs)
	}

	value, err := json.Marshal(&catalog)
	if err != nil {
		return nil, err
	}

	if _, err := s.configService.Upsert(ctx, &dto.UpsertConfigRequest{
		Key:         entity.ConfigKeyPlans,
		Value:       value,
		Description: "Plan catalog",
		Category:    entity.ConfigCategoryPlans,
	}, adminId); err != nil {
		return nil, err
	}

	s.InvalidateCache()
	return &catalog, nil
}

func (s *planService) InvalidateCache() {
	s.cache.Delete(planCatalogCacheKey)
}

func toPlanResponse(plan *entity.PlanConfig) dto.PlanResponse {
	return dto.PlanResponse{
		ID:              string(plan.ID),
		DisplayName:     plan.DisplayName,
		Price:           plan.Price,
		Currency:        plan.Currency,
		Interval:        string(plan.Interval),
		TrialDays:       plan.TrialDays,
		Features:        plan.Features,
		StripeProductID: plan.StripeProductID,
		StripePriceID:   plan.StripePriceID,
	}
}
