package service

import (
	"context"
	"time"

	"finance-manager-be/internal/dto"
	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/pkg/logger"
	"finance-manager-be/internal/repository/specification"
	"finance-manager-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IReceivableService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateAccountRequest) (*dto.AccountResponse, error)
	Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.UpdateAccountRequest) (*dto.AccountResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Get(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.AccountResponse, error)
	List(ctx context.Context, userId uuid.UUID, filter *dto.AccountFilter) (*dto.AccountListResponse, error)
}

type receivableService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

// Receivables have no plan cap; only payables count against the
// contas_pagar limit, so no entitlement guard is wired here.
func NewReceivableService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IReceivableService {
	return &receivableService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *receivableService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	amount, dueDate, err := parseAmountAndDate(req.Amount, req.DueDate)
	if err != nil {
		return nil, err
	}

	receivable := &entity.Receivable{
		UserId:        userId,
		Description:   req.Description,
		Amount:        amount,
		DueDate:       dueDate,
		Status:        entity.AccountStatusPending,
		ContactId:     req.ContactId,
		CategoryId:    req.CategoryId,
		BankAccountId: req.BankAccountId,
		Reference:     req.Reference,
		Notes:         req.Notes,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ReceivableRepository().Create(ctx, receivable); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return receivableToResponse(receivable, time.Now()), nil
}

func (s *receivableService) Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	receivable, err := uow.ReceivableRepository().FindOne(ctx, specification.ByID{ID: id}, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if receivable == nil {
		return nil, ErrAccountNotFound
	}

	if err := applyAccountUpdate(req, &receivable.Description, &receivable.Amount, &receivable.DueDate,
		&receivable.Status, &receivable.ReceivedDate, &receivable.ContactId, &receivable.CategoryId,
		&receivable.BankAccountId, &receivable.Reference, &receivable.Notes); err != nil {
		return nil, err
	}

	if err := uow.ReceivableRepository().Update(ctx, receivable); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return receivableToResponse(receivable, time.Now()), nil
}

func (s *receivableService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	receivable, err := uow.ReceivableRepository().FindOne(ctx, specification.ByID{ID: id}, specification.OwnedBy{UserID: userId})
	if err != nil {
		return err
	}
	if receivable == nil {
		return ErrAccountNotFound
	}

	if err := uow.ReceivableRepository().Delete(ctx, id); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *receivableService) Get(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.AccountResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	receivable, err := uow.ReceivableRepository().FindOne(ctx, specification.ByID{ID: id}, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if receivable == nil {
		return nil, ErrAccountNotFound
	}
	return receivableToResponse(receivable, time.Now()), nil
}

func (s *receivableService) List(ctx context.Context, userId uuid.UUID, filter *dto.AccountFilter) (*dto.AccountListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	receivables, err := uow.ReceivableRepository().FindAll(ctx, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	names := contactNamesForUser(ctx, uow, userId)
	items := make([]dto.AccountResponse, 0, len(receivables))
	for _, r := range receivables {
		item := receivableToResponse(r, now)
		if r.ContactId != nil {
			item.ContactName = names[*r.ContactId]
		}
		items = append(items, *item)
	}

	if filter == nil {
		filter = &dto.AccountFilter{}
	}
	filtered := FilterAccounts(items, filter, now)

	return &dto.AccountListResponse{
		Items:   filtered,
		Summary: SummarizeAccounts(filtered),
	}, nil
}

func receivableToResponse(r *entity.Receivable, today time.Time) *dto.AccountResponse {
	resp := &dto.AccountResponse{
		Id:            r.Id,
		Description:   r.Description,
		Amount:        r.Amount,
		DueDate:       r.DueDate.Format("2006-01-02"),
		Status:        string(r.Status),
		IsOverdue:     r.IsOverdue(today),
		ContactId:     r.ContactId,
		CategoryId:    r.CategoryId,
		BankAccountId: r.BankAccountId,
		Reference:     r.Reference,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if r.ReceivedDate != nil {
		settled := r.ReceivedDate.Format("2006-01-02")
		resp.SettledDate = &settled
	}
	return resp
}
