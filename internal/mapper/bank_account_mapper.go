package mapper

import (
	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/model"
)

type BankAccountMapper struct{}

func NewBankAccountMapper() *BankAccountMapper {
	return &BankAccountMapper{}
}

func (m *BankAccountMapper) ToEntity(a *model.BankAccount) *entity.BankAccount {
	if a == nil {
		return nil
	}
	return &entity.BankAccount{
		Id:             a.Id,
		UserId:         a.UserId,
		Name:           a.Name,
		BankName:       a.BankName,
		Agency:         a.Agency,
		AccountNumber:  a.AccountNumber,
		Type:           entity.BankAccountType(a.Type),
		InitialBalance: a.InitialBalance,
		Active:         a.Active,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func (m *BankAccountMapper) ToModel(a *entity.BankAccount) *model.BankAccount {
	if a == nil {
		return nil
	}
	return &model.BankAccount{
		Id:             a.Id,
		UserId:         a.UserId,
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
