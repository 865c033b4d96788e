package mapper

import (
	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) ToEntity(s *model.Subscription) *entity.Subscription {
	if s == nil {
		return nil
	}
	return &entity.Subscription{
		Id:                 s.Id,
		UserId:             s.UserId,
		Status:             entity.SubscriptionStatus(s.Status),
		TrialEndsAt:        s.TrialEndsAt,
		SubscriptionEndsAt: s.SubscriptionEndsAt,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) ToModel(s *entity.Subscription) *model.Subscription {
	if s == nil {
		return nil
	}
	return &model.Subscription{
		Id:                 s.Id,
		UserId:             s.UserId,
		Status:             string(s.Status),
		TrialEndsAt:        s.TrialEndsAt,
		SubscriptionEndsAt: s.SubscriptionEndsAt,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}
