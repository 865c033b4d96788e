package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubscriptionStatusTrial     SubscriptionStatus = "trial"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// Subscription is the per-user lifecycle record. A user may accumulate
// history; entitlement logic reads the latest record only. "expired" and
// "cancelled" are terminal: they are never revived, a new record is
// created instead.
type Subscription struct {
	Id                 uuid.UUID
	UserId             uuid.UUID
	Status             SubscriptionStatus
	TrialEndsAt        *time.Time
	SubscriptionEndsAt *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DateOnly strips the time-of-day component. All subscription date
// comparisons are calendar-day comparisons: an end date of "today"
// still counts as active.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsActive reports whether the record grants access on the given day.
// A nil record never does.
func (s *Subscription) IsActive(today time.Time) bool {
	if s == nil {
		return false
	}
	day := DateOnly(today)
	switch s.Status {
	case SubscriptionStatusTrial:
		return s.TrialEndsAt != nil && !DateOnly(*s.TrialEndsAt).Before(day)
	case SubscriptionStatusActive:
		return s.SubscriptionEndsAt != nil && !DateOnly(*s.SubscriptionEndsAt).Before(day)
	}
	return false
}

// CurrentPlanID derives the effective plan tier from the record's dates.
// The derivation does not require NormalizeStatus to have run: a stale
// "trial" status with a past end date still resolves to free.
func (s *Subscription) CurrentPlanID(today time.Time) PlanID {
	if s == nil {
		return PlanFree
	}
	day := DateOnly(today)
	if s.Status == SubscriptionStatusTrial && s.TrialEndsAt != nil && !DateOnly(*s.TrialEndsAt).Before(day) {
		return PlanTrial
	}
	if s.Status == SubscriptionStatusActive && s.SubscriptionEndsAt != nil && !DateOnly(*s.SubscriptionEndsAt).Before(day) {
		return PlanPremium
	}
	return PlanFree
}

// RelevantEndDate returns the end date the current status is governed by.
func (s *Subscription) RelevantEndDate() *time.Time {
	if s == nil {
		return nil
	}
	switch s.Status {
	case SubscriptionStatusTrial:
		return s.TrialEndsAt
	case SubscriptionStatusActive:
		return s.SubscriptionEndsAt
	}
	return nil
}

// RemainingDays counts whole days from today until end, never negative.
func RemainingDays(end time.Time, today time.Time) int {
	diff := DateOnly(end).Sub(DateOnly(today))
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) != 0 {
		days++
	}
	if days < 0 {
		return 0
	}
	return days
}
