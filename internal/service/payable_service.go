package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finance-manager-be/internal/dto"
	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/pkg/logger"
	"finance-manager-be/internal/repository/specification"
	"finance-manager-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrAccountNotFound = errors.New("account entry not found")

type IPayableService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateAccountRequest) (*dto.AccountResponse, error)
	Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.UpdateAccountRequest) (*dto.AccountResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Get(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.AccountResponse, error)
	// List filters and aggregates the user's payables in memory.
	List(ctx context.Context, userId uuid.UUID, filter *dto.AccountFilter) (*dto.AccountListResponse, error)
}

type payableService struct {
	uowFactory  unitofwork.RepositoryFactory
	entitlement IEntitlementService
	logger      logger.ILogger
}

func NewPayableService(uowFactory unitofwork.RepositoryFactory, entitlement IEntitlementService, log logger.ILogger) IPayableService {
	return &payableService{
		uowFactory:  uowFactory,
		entitlement: entitlement,
		logger:      log,
	}
}

func (s *payableService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	if err := s.entitlement.CheckCanCreatePayable(ctx, userId); err != nil {
		return nil, err
	}

	amount, dueDate, err := parseAmountAndDate(req.Amount, req.DueDate)
	if err != nil {
		return nil, err
	}

	payable := &entity.Payable{
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

	if err := uow.PayableRepository().Create(ctx, payable); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return payableToResponse(payable, time.Now()), nil
}

func (s *payableService) Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	payable, err := uow.PayableRepository().FindOne(ctx, specification.ByID{ID: id}, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if payable == nil {
		return nil, ErrAccountNotFound
	}

	if err := applyAccountUpdate(req, &payable.Description, &payable.Amount, &payable.DueDate,
		&payable.Status, &payable.PaymentDate, &payable.ContactId, &payable.CategoryId,
		&payable.BankAccountId, &payable.Reference, &payable.Notes); err != nil {
		return nil, err
	}

	if err := uow.PayableRepository().Update(ctx, payable); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return payableToResponse(payable, time.Now()), nil
}

func (s *payableService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	payable, err := uow.PayableRepository().FindOne(ctx, specification.ByID{ID: id}, specification.OwnedBy{UserID: userId})
	if err != nil {
		return err
	}
	if payable == nil {
		return ErrAccountNotFound
	}

	if err := uow.PayableRepository().Delete(ctx, id); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *payableService) Get(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.AccountResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	payable, err := uow.PayableRepository().FindOne(ctx, specification.ByID{ID: id}, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if payable == nil {
		return nil, ErrAccountNotFound
	}
	return payableToResponse(payable, time.Now()), nil
}

func (s *payableService) List(ctx context.Context, userId uuid.UUID, filter *dto.AccountFilter) (*dto.AccountListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	payables, err := uow.PayableRepository().FindAll(ctx, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	names := contactNamesForUser(ctx, uow, userId)
	items := make([]dto.AccountResponse, 0, len(payables))
	for _, p := range payables {
		item := payableToResponse(p, now)
		if p.ContactId != nil {
			item.ContactName = names[*p.ContactId]
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

// contactNamesForUser resolves the user's contact names for list display
// and text search. Best-effort: a lookup failure only leaves the names
// blank, it never fails the list.
func contactNamesForUser(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) map[uuid.UUID]string {
	contacts, err := uow.ContactRepository().FindAll(ctx, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil
	}
	names := make(map[uuid.UUID]string, len(contacts))
	for _, c := range contacts {
		names[c.Id] = c.Name
	}
	return names
}

func payableToResponse(p *entity.Payable, today time.Time) *dto.AccountResponse {
	resp := &dto.AccountResponse{
		Id:            p.Id,
		Description:   p.Description,
		Amount:        p.Amount,
		DueDate:       p.DueDate.Format("2006-01-02"),
		Status:        string(p.Status),
		IsOverdue:     p.IsOverdue(today),
		ContactId:     p.ContactId,
		CategoryId:    p.CategoryId,
		BankAccountId: p.BankAccountId,
		Reference:     p.Reference,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.PaymentDate != nil {
		settled := p.PaymentDate.Format("2006-01-02")
		resp.SettledDate = &settled
	}
	return resp
}

func parseAmountAndDate(amountStr, dateStr string) (decimal.Decimal, time.Time, error) {
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("invalid amount %q: %w", amountStr, err)
	}
	if amount.IsNegative() {
		return decimal.Zero, time.Time{}, fmt.Errorf("amount must not be negative")
	}

	dueDate, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("invalid due date %q: %w", dateStr, err)
	}
	return amount, dueDate, nil
}

// applyAccountUpdate shares the partial-update plumbing between payables
// and receivables; settledDate maps onto whichever settled column the
// caller passes in.
func applyAccountUpdate(
	req *dto.UpdateAccountRequest,
	description *string,
	amount *decimal.Decimal,
	dueDate *time.Time,
	status *entity.AccountStatus,
	settledDate **time.Time,
	contactId, categoryId, bankAccountId **uuid.UUID,
	reference, notes *string,
) error {
	if req.Description != nil {
		*description = *req.Description
	}
	if req.Amount != nil {
		parsed, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", *req.Amount, err)
		}
		if parsed.IsNegative() {
			return fmt.Errorf("amount must not be negative")
		}
		*amount = parsed
	}
	if req.DueDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			return fmt.Errorf("invalid due date %q: %w", *req.DueDate, err)
		}
		*dueDate = parsed
	}
	if req.Status != nil {
		*status = entity.AccountStatus(*req.Status)
		if *status == entity.AccountStatusPending {
			*settledDate = nil
		}
	}
	if req.SettledDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.SettledDate)
		if err != nil {
			return fmt.Errorf("invalid settled date %q: %w", *req.SettledDate, err)
		}
		*settledDate = &parsed
		*status = entity.AccountStatusPaid
	}
	if req.ContactId != nil {
		*contactId = req.ContactId
	}
	if req.CategoryId != nil {
		*categoryId = req.CategoryId
	}
	if req.BankAccountId != nil {
		*bankAccountId = req.BankAccountId
	}
	if req.Reference != nil {
		*reference = *req.Reference
	}
	if req.Notes != nil {
		*notes = *req.Notes
	}
	return nil
}
