package dto

import "time"

// SubscriptionStatusResponse is returned by GET /api/subscription/status.
type SubscriptionStatusResponse struct {
	PlanID             string     `json:"plan_id"`
	Status             string     `json:"status"`
	IsActive           bool       `json:"is_active"`
	RemainingDays      int        `json:"remaining_days"`
	TrialEndsAt        *time.Time `json:"trial_ends_at,omitempty"`
	SubscriptionEndsAt *time.Time `json:"subscription_ends_at,omitempty"`
	CanUpgrade         bool       `json:"can_upgrade"`
	EligibleForTrial   bool       `json:"eligible_for_trial"`
}

// CancelSubscriptionResponse confirms a cancellation and tells the user
// how long their paid access lasts.
type CancelSubscriptionResponse struct {
	Status      string     `json:"status"`
	AccessUntil *time.Time `json:"access_until,omitempty"`
}
