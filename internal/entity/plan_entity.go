package entity

import (
	"github.com/shopspring/decimal"
)

type PlanID string
type BillingInterval string
type FeatureKey string

const (
	PlanFree    PlanID = "free"
	PlanTrial   PlanID = "trial"
	PlanPremium PlanID = "premium"

	BillingIntervalMonth BillingInterval = "month"
	BillingIntervalYear  BillingInterval = "year"
)

// Feature keys. Numeric features use -1 for unlimited, otherwise a
// non-negative cap; boolean features are plain on/off flags.
const (
	FeaturePayables        FeatureKey = "contas_pagar"
	FeatureSuppliers       FeatureKey = "fornecedores"
	FeatureCategories      FeatureKey = "categorias"
	FeatureReports         FeatureKey = "relatorios"
	FeatureExport          FeatureKey = "exportacao"
	FeatureBackup          FeatureKey = "backup"
	FeaturePrioritySupport FeatureKey = "suporte_prioritario"
)

// FeatureSet is the closed entitlement structure of a plan. Unknown feature
// keys are rejected at the accessor level instead of leaking through as
// loosely-typed map lookups.
type FeatureSet struct {
	PayableLimit    int  `json:"contas_pagar"`  // -1 = unlimited
	SupplierLimit   int  `json:"fornecedores"`  // -1 = unlimited
	CategoryLimit   int  `json:"categorias"`    // -1 = unlimited
	Reports         bool `json:"relatorios"`
	Export          bool `json:"exportacao"`
	Backup          bool `json:"backup"`
	PrioritySupport bool `json:"suporte_prioritario"`
}

// NumericLimit returns the cap for a numeric feature key.
func (f FeatureSet) NumericLimit(key FeatureKey) (int, bool) {
	switch key {
	case FeaturePayables:
		return f.PayableLimit, true
	case FeatureSuppliers:
		return f.SupplierLimit, true
	case FeatureCategories:
		return f.CategoryLimit, true
	}
	return 0, false
}

// BoolFlag returns the on/off value for a boolean feature key.
func (f FeatureSet) BoolFlag(key FeatureKey) (bool, bool) {
	switch key {
	case FeatureReports:
		return f.Reports, true
	case FeatureExport:
		return f.Export, true
	case FeatureBackup:
		return f.Backup, true
	case FeaturePrioritySupport:
		return f.PrioritySupport, true
	}
	return false, false
}

// PlanConfig describes one plan tier.
type PlanConfig struct {
	ID              PlanID          `json:"id"`
	DisplayName     string          `json:"display_name"`
	Price           decimal.Decimal `json:"price"`
	Currency        string          `json:"currency"` // ISO 4217
	Interval        BillingInterval `json:"interval"`
	TrialDays       int             `json:"trial_days"`
	Features        FeatureSet      `json:"features"`
	StripeProductID string          `json:"stripe_product_id,omitempty"`
	StripePriceID   string          `json:"stripe_price_id,omitempty"`
}

// PlansCatalog is the always-fully-populated view over the three tiers.
type PlansCatalog struct {
	Free    PlanConfig `json:"free"`
	Trial   PlanConfig `json:"trial"`
	Premium PlanConfig `json:"premium"`
}

// Plan resolves a tier by id. Returns nil for unknown ids.
func (c *PlansCatalog) Plan(id PlanID) *PlanConfig {
	switch id {
	case PlanFree:
		return &c.Free
	case PlanTrial:
		return &c.Trial
	case PlanPremium:
		return &c.Premium
	}
	return nil
}
