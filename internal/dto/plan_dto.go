package dto

import (
	"encoding/json"

	"finance-manager-be/internal/entity"

	"github.com/shopspring/decimal"
)

// PlanResponse is one tier as returned by GET /api/plans.
type PlanResponse struct {
	ID              string            `json:"id"`
	DisplayName     string            `json:"display_name"`
	Price           decimal.Decimal   `json:"price"`
	Currency        string            `json:"currency"`
	Interval        string            `json:"interval"`
	TrialDays       int               `json:"trial_days"`
	Features        entity.FeatureSet `json:"features"`
	StripeProductID string            `json:"stripe_product_id,omitempty"`
	StripePriceID   string            `json:"stripe_price_id,omitempty"`
}

type PlansResponse struct {
	Free    PlanResponse `json:"free"`
	Trial   PlanResponse `json:"trial"`
	Premium PlanResponse `json:"premium"`
}

// UpdatePlansRequest carries the raw catalog JSON written by the admin
// panel. Validation happens in the service, not at bind time, so a
// partial catalog (merged over defaults) is acceptable input.
type UpdatePlansRequest struct {
	Plans json.RawMessage `json:"plans" validate:"required"`
}
