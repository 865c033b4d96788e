package mapper

import (
	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/model"
)

type ContactMapper struct{}

func NewContactMapper() *ContactMapper {
	return &ContactMapper{}
}

func (m *ContactMapper) ToEntity(c *model.Contact) *entity.Contact {
	if c == nil {
		return nil
	}
	return &entity.Contact{
		Id:        c.Id,
		UserId:    c.UserId,
		Name:      c.Name,
		Type:      entity.ContactType(c.Type),
		Email:     c.Email,
		Phone:     c.Phone,
		Document:  c.Document,
		Address:   c.Address,
		City:      c.City,
		State:     c.State,
		ZipCode:   c.ZipCode,
		Notes:     c.Notes,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *ContactMapper) ToModel(c *entity.Contact) *model.Contact {
	if c == nil {
		return nil
	}
	return &model.Contact{
		Id:        c.Id,
		UserId:    c.UserId,
		Name:      c.Name,
		Type:      string(c.Type),
		Email:     c.Email,
		Phone:     c.Phone,
		Document:  c.Document,
		Address:   c.Address,
		City:      c.City,
		State:     c.State,
		ZipCode:   c.ZipCode,
		Notes:     c.Notes,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
