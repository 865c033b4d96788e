package dto

// CreateCheckoutRequest starts a paid-plan checkout.
type CreateCheckoutRequest struct {
	PlanID   string `json:"plan_id" validate:"required"`
	Interval string `json:"interval" validate:"omitempty,oneof=month year"`
}

type CheckoutSessionResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}
