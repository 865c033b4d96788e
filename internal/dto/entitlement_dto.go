package dto

// UsageLimit describes one countable resource against its plan cap.
type UsageLimit struct {
	Used       int64   `json:"used"`
	Limit      int     `json:"limit"` // -1 = unlimited
	Percentage float64 `json:"percentage"`
	CanCreate  bool    `json:"can_create"`
}

// UsageLimitsResponse is returned by GET /api/subscription/limits.
// Degraded is set when a count could not be computed and the check
// fell back to allowing the action.
type UsageLimitsResponse struct {
	PlanID     string                `json:"plan_id"`
	Limits     map[string]UsageLimit `json:"limits"`
	Degraded   bool                  `json:"degraded,omitempty"`
	AnyBlocked bool                  `json:"any_blocked"`
}
