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

var ErrContactNotFound = errors.New("contact not found")

type IContactService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateContactRequest) (*dto.ContactResponse, error)
	Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.UpdateContactRequest) (*dto.ContactResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Get(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ContactResponse, error)
	List(ctx context.Context, userId uuid.UUID, contactType string) ([]*dto.ContactResponse, error)
}

type contactService struct {
	uowFactory  unitofwork.RepositoryFactory
	entitlement IEntitlementService
	logger      logger.ILogger
}

func NewContactService(uowFactory unitofwork.RepositoryFactory, entitlement IEntitlementService, log logger.ILogger) IContactService {
	return &contactService{
		uowFactory:  uowFactory,
		entitlement: entitlement,
		logger:      log,
	}
}

func (s *contactService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateContactRequest) (*dto.ContactResponse, error) {
	// The fornecedores plan cap counts all contacts.
	if err := s.entitlement.CheckCanCreateSupplier(ctx, userId); err != nil {
		return nil, err
	}

	contact := &entity.Contact{
		UserId:   userId,
		Name:     req.Name,
		Type:     entity.ContactType(req.Type),
		Email:    req.Email,
		Phone:    req.Phone,
		Document: req.Document,
		Address:  req.Address,
		City:     req.City,
		State:    req.State,
		ZipCode:  req.ZipCode,
		Notes:    req.Notes,
		Active:   true,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ContactRepository().Create(ctx, contact); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return contactToResponse(contact), nil
}

func (s *contactService) Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.UpdateContactRequest) (*dto.ContactResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	contact, err := uow.ContactRepository().FindOne(ctx, specification.ByID{ID: id}, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, ErrContactNotFound
	}

	if req.Name != nil {
		contact.Name = *req.Name
	}
	if req.Type != nil {
		contact.Type = entity.ContactType(*req.Type)
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Phone != nil {
		contact.Phone = *req.Phone
	}
	if req.Document != nil {
		contact.Document = *req.Document
	}
	if req.Address != nil {
		contact.Address = *req.Address
	}
	if req.City != nil {
		contact.City = *req.City
	}
	if req.State != nil {
		contact.State = *req.State
	}
	if req.ZipCode != nil {
		contact.ZipCode = *req.ZipCode
	}
	if req.Notes != nil {
		contact.Notes = *req.Notes
	}
	if req.Active != nil {
		contact.Active = *req.Active
	}

	if err := uow.ContactRepository().Update(ctx, contact); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return contactToResponse(contact), nil
}

func (s *contactService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	contact, err := uow.ContactRepository().FindOne(ctx, specification.ByID{ID: id}, specification.OwnedBy{UserID: userId})
	if err != nil {
		return err
	}
	if contact == nil {
		return ErrContactNotFound
	}

	if err := uow.ContactRepository().Delete(ctx, id); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *contactService) Get(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ContactResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	contact, err := uow.ContactRepository().FindOne(ctx, specification.ByID{ID: id}, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, ErrContactNotFound
	}
	return contactToResponse(contact), nil
}

func (s *contactService) List(ctx context.Context, userId uuid.UUID, contactType string) ([]*dto.ContactResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.OwnedBy{UserID: userId}}
	if contactType != "" {
		specs = append(specs, specification.Filter("type", contactType))
	}

	contacts, err := uow.ContactRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		result = append(result, contactToResponse(c))
	}
	return result, nil
}

func contactToResponse(c *entity.Contact) *dto.ContactResponse {
	return &dto.ContactResponse{
		Id:        c.Id,
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
