package service

import (
	"context"
	"errors"
	"fmt"

	"finance-manager-be/internal/dto"
	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/pkg/logger"
	"finance-manager-be/internal/repository/specification"
	"finance-manager-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrBankAccountNotFound = errors.New("bank account not found")

type IBankAccountService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateBankAccountRequest) (*dto.BankAccountResponse, error)
	Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.UpdateBankAccountRequest) (*dto.BankAccountResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Get(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.BankAccountResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.BankAccountResponse, error)
}

type bankAccountService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewBankAccountService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IBankAccountService {
	return &bankAccountService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *bankAccountService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateBankAccountRequest) (*dto.BankAccountResponse, error) {
	balance := decimal.Zero
	if req.InitialBalance != "" {
		parsed, err := decimal.NewFromString(req.InitialBalance)
		if err != nil {
			return nil, fmt.Errorf("invalid initial balance %q: %w", req.InitialBalance, err)
		}
		balance = parsed
	}

	account := &entity.BankAccount{
		UserId:         userId,
		Name:           req.Name,
		BankName:       req.BankName,
		Agency:         req.Agency,
		AccountNumber:  req.AccountNumber,
		Type:           entity.BankAccountType(req.Type),
		InitialBalance: balance,
		Active:         true,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.BankAccountRepository().Create(ctx, account); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return bankAccountToResponse(account), nil
}

func (s *bankAccountService) Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.UpdateBankAccountRequest) (*dto.BankAccountResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	account, err := uow.BankAccountRepository().FindOne(ctx, specification.ByID{ID: id}, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrBankAccountNotFound
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.BankName != nil {
		account.BankName = *req.BankName
	}
	if req.Agency != nil {
		account.Agency = *req.Agency
	}
	if req.AccountNumber != nil {
		account.AccountNumber = *req.AccountNumber
	}
	if req.Type != nil {
		account.Type = entity.BankAccountType(*req.Type)
	}
	if req.InitialBalance != nil {
		parsed, err := decimal.NewFromString(*req.InitialBalance)
		if err != nil {
			return nil, fmt.Errorf("invalid initial balance %q: %w", *req.InitialBalance, err)
		}
		account.InitialBalance = parsed
	}
	if req.Active != nil {
		account.Active = *req.Active
	}

	if err := uow.BankAccountRepository().Update(ctx, account); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return bankAccountToResponse(account), nil
}

func (s *bankAccountService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	account, err := uow.BankAccountRepository().FindOne(ctx, specification.ByID{ID: id}, specification.OwnedBy{UserID: userId})
	if err != nil {
		return err
	}
	if account == nil {
		return ErrBankAccountNotFound
	}

	if err := uow.BankAccountRepository().Delete(ctx, id); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *bankAccountService) Get(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.BankAccountResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	account, err := uow.BankAccountRepository().FindOne(ctx, specification.ByID{ID: id}, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrBankAccountNotFound
	}
	return bankAccountToResponse(account), nil
}

func (s *bankAccountService) List(ctx context.Context, userId uuid.UUID) ([]*dto.BankAccountResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	accounts, err := uow.BankAccountRepository().FindAll(ctx, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.BankAccountResponse, 0, len(accounts))
	for _, a := range accounts {
		result = append(result, bankAccountToResponse(a))
	}
	return result, nil
}

func bankAccountToResponse(a *entity.BankAccount) *dto.BankAccountResponse {
	return &dto.BankAccountResponse{
		Id:             a.Id,
		Name:           a.Name,
		BankName:       a.BankName,
		Agency:         a.Agency,
		AccountNumber:  a.AccountNumber,
		Type:           string(a.Type),
		InitialBalance: a.InitialBalance,
		Active:         a.Active,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
