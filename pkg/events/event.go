package events

import (
	"time"

	"github.com/google/uuid"
)

// Topic is the single subscription-lifecycle topic consumed by the
// notification consumer.
const TopicSubscriptionEvents = "SUBSCRIPTION_EVENTS"

// Event types published on TopicSubscriptionEvents.
const (
	TypeTrialStarted          = "TRIAL_STARTED"
	TypeSubscriptionActivated = "SUBSCRIPTION_ACTIVATED"
	TypeSubscriptionCancelled = "SUBSCRIPTION_CANCELLED"
	TypePaymentFailed         = "PAYMENT_FAILED"
	TypeConfigChanged         = "CONFIG_CHANGED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "TRIAL_STARTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

func NewTrialStarted(userId uuid.UUID, email string, trialDays int) Event {
	return BaseEvent{
		Type: TypeTrialStarted,
		Data: map[string]interface{}{
			"user_id":    userId.String(),
			"email":      email,
			"trial_days": trialDays,
		},
		OccurredAt: time.Now(),
	}
}

func NewSubscriptionActivated(userId uuid.UUID, email, planName string) Event {
	return BaseEvent{
		Type: TypeSubscriptionActivated,
		Data: map[string]interface{}{
			"user_id":   userId.String(),
			"email":     email,
			"plan_name": planName,
		},
		OccurredAt: time.Now(),
	}
}

func NewSubscriptionCancelled(userId uuid.UUID, email string, accessUntil time.Time) Event {
	return BaseEvent{
		Type: TypeSubscriptionCancelled,
		Data: map[string]interface{}{
			"user_id":      userId.String(),
			"email":        email,
			"access_until": accessUntil.Format("2006-01-02"),
		},
		OccurredAt: time.Now(),
	}
}

func NewPaymentFailed(userId uuid.UUID, email, reason string) Event {
	return BaseEvent{
		Type: TypePaymentFailed,
		Data: map[string]interface{}{
			"user_id": userId.String(),
			"email":   email,
			"reason":  reason,
		},
		OccurredAt: time.Now(),
	}
}

func NewConfigChanged(key, updatedBy string) Event {
	return BaseEvent{
		Type: TypeConfigChanged,
		Data: map[string]interface{}{
			"key":        key,
			"updated_by": updatedBy,
		},
		OccurredAt: time.Now(),
	}
}
