package mapper

import (
	"finance-manager-be/internal/entity"
	"finance-manager-be/internal/model"
)

type FinanceMapper struct{}

func NewFinanceMapper() *FinanceMapper {
	return &FinanceMapper{}
}

func (m *FinanceMapper) PayableToEntity(p *model.Payable) *entity.Payable {
	if p == nil {
		return nil
	}
	return &entity.Payable{
		Id:            p.Id,
		UserId:        p.UserId,
		Description:   p.Description,
		Amount:        p.Amount,
		DueDate:       p.DueDate,
		PaymentDate:   p.PaymentDate,
		Status:        entity.AccountStatus(p.Status),
		ContactId:     p.ContactId,
		CategoryId:    p.CategoryId,
		BankAccountId: p.BankAccountId,
		Reference:     p.Reference,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (m *FinanceMapper) PayableToModel(p *entity.Payable) *model.Payable {
	if p == nil {
		return nil
	}
	return &model.Payable{
		Id:            p.Id,
		UserId:        p.UserId,
		Description:   p.Description,
		Amount:        p.Amount,
		DueDate:       p.DueDate,
		PaymentDate:   p.PaymentDate,
		Status:        string(p.Status),
		ContactId:     p.ContactId,
		CategoryId:    p.CategoryId,
		BankAccountId: p.BankAccountId,
		Reference:     p.Reference,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (m *FinanceMapper) ReceivableToEntity(r *model.Receivable) *entity.Receivable {
	if r == nil {
		return nil
	}
	return &entity.Receivable{
		Id:            r.Id,
		UserId:        r.UserId,
		Description:   r.Description,
		Amount:        r.Amount,
		DueDate:       r.DueDate,
		ReceivedDate:  r.ReceivedDate,
		Status:        entity.AccountStatus(r.Status),
		ContactId:     r.ContactId,
		CategoryId:    r.CategoryId,
		BankAccountId: r.BankAccountId,
		Reference:     r.Reference,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (m *FinanceMapper) ReceivableToModel(r *entity.Receivable) *model.Receivable {
	if r == nil {
		return nil
	}
	return &model.Receivable{
		Id:            r.Id,
		UserId:        r.UserId,
		Description:   r.Description,
		Amount:        r.Amount,
		DueDate:       r.DueDate,
		ReceivedDate:  r.ReceivedDate,
		Status:        string(r.Status),
		ContactId:     r.ContactId,
		CategoryId:    r.CategoryId,
		BankAccountId: r.BankAccountId,
		Reference:     r.Reference,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
