package service

import (
	"context"
	"errors"

	"finance-manager-be/internal/dto"
	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/pkg/logger"
	"finance-manager-be/internal/repository/specification"
	"finance-manager-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

var ErrCategoryNotFound = errors.New("category not found")

type ICategoryService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Get(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.CategoryResponse, error)
	List(ctx context.Context, userId uuid.UUID, categoryType string) ([]*dto.CategoryResponse, error)
}

type categoryService struct {
	uowFactory  unitofwork.RepositoryFactory
	entitlement IEntitlementService
	logger      logger.ILogger
}

func NewCategoryService(uowFactory unitofwork.RepositoryFactory, entitlement IEntitlementService, log logger.ILogger) ICategoryService {
	return &categoryService{
		uowFactory:  uowFactory,
		entitlement: entitlement,
		logger:      log,
	}
}

func (s *categoryService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := s.entitlement.CheckCanCreateCategory(ctx, userId); err != nil {
		return nil, err
	}

	category := &entity.Category{
		UserId: userId,
		Name:   req.Name,
		Type:   entity.CategoryType(req.Type),
		Color:  req.Color,
		Active: true,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.CategoryRepository().Create(ctx, category); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return categoryToResponse(category), nil
}

func (s *categoryService) Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	category, err := uow.CategoryRepository().FindOne(ctx, specification.ByID{ID: id}, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Type != nil {
		category.Type = entity.CategoryType(*req.Type)
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.Active != nil {
		category.Active = *req.Active
	}

	if err := uow.CategoryRepository().Update(ctx, category); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return categoryToResponse(category), nil
}

func (s *categoryService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	category, err := uow.CategoryRepository().FindOne(ctx, specification.ByID{ID: id}, specification.OwnedBy{UserID: userId})
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	if err := uow.CategoryRepository().Delete(ctx, id); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *categoryService) Get(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.CategoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	category, err := uow.CategoryRepository().FindOne(ctx, specification.ByID{ID: id}, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return categoryToResponse(category), nil
}

func (s *categoryService) List(ctx context.Context, userId uuid.UUID, categoryType string) ([]*dto.CategoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.OwnedBy{UserID: userId}}
	if categoryType != "" {
		specs = append(specs, specification.Filter("type", categoryType))
	}

	categories, err := uow.CategoryRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		result = append(result, categoryToResponse(c))
	}
	return result, nil
}

func categoryToResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		Id:        c.Id,
		Name:      c.Name,
		Type:      string(c.Type),
		Color:     c.Color,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
