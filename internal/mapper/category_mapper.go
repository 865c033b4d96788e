package mapper

import (
	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/model"
)

type CategoryMapper struct{}

func NewCategoryMapper() *CategoryMapper {
	return &CategoryMapper{}
}

func (m *CategoryMapper) ToEntity(c *model.Category) *entity.Category {
	if c == nil {
		return nil
	}
	return &entity.Category{
		Id:        c.Id,
		UserId:    c.UserId,
		Name:      c.Name,
		Type:      entity.CategoryType(c.Type),
		Color:     c.Color,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *CategoryMapper) ToModel(c *entity.Category) *model.Category {
	if c == nil {
		return nil
	}
	return &model.Category{
		Id:        c.Id,
		UserId:    c.UserId,
		Name:      c.Name,
		Type:      string(c.Type),
		Color:     c.Color,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
