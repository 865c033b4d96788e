package service

import (
	"testing"
	"time"

	"finance-manager-be/internal/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func sampleAccounts() ([]dto.AccountResponse, uuid.UUID, uuid.UUID) {
	contactId := uuid.New()
	categoryId := uuid.New()
	return []dto.AccountResponse{
		{
			Id:          uuid.New(),
			Description: "Aluguel do escritório",
			Amount:      decimal.NewFromInt(1200),
			DueDate:     "2025-06-05",
			Status:      "pending",
			IsOverdue:   true,
			ContactId:   &contactId,
			ContactName: "Imobiliária Silva",
		},
		{
			Id:          uuid.New(),
			Description: "Energia elétrica",
			Amount:      decimal.NewFromFloat(340.75),
			DueDate:     "2025-06-20",
			Status:      "pending",
			CategoryId:  &categoryId,
			Reference:   "NF-1042",
		},
		{
			Id:          uuid.New(),
			Description: "Internet",
			Amount:      decimal.NewFromInt(150),
			DueDate:     "2025-06-01",
			Status:      "paid",
			Notes:       "pago via pix",
		},
	}, contactId, categoryId
}

func TestFilterAccounts(t *testing.T) {
	items, contactId, categoryId := sampleAccounts()
	today := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter dto.AccountFilter
		want   int
	}{
		{"empty filter returns all", dto.AccountFilter{}, 3},
		{"status all returns all", dto.AccountFilter{Status: "all"}, 3},
		{"pending includes overdue", dto.AccountFilter{Status: "pending"}, 2},
		{"overdue pseudo-status", dto.AccountFilter{Status: "overdue"}, 1},
		{"paid", dto.AccountFilter{Status: "paid"}, 1},
		{"by contact", dto.AccountFilter{ContactId: &contactId}, 1},
		{"by category", dto.AccountFilter{CategoryId: &categoryId}, 1},
		{"date range", dto.AccountFilter{DateFrom: "2025-06-01", DateTo: "2025-06-10"}, 2},
		{"date range boundaries inclusive", dto.AccountFilter{DateFrom: "2025-06-05", DateTo: "2025-06-05"}, 1},
		{"month shorthand", dto.AccountFilter{Month: "2025-06"}, 3},
		{"month without match", dto.AccountFilter{Month: "2025-07"}, 0},
		{"min amount", dto.AccountFilter{MinAmount: "300"}, 2},
		{"max amount", dto.AccountFilter{MaxAmount: "200"}, 1},
		{"amount band", dto.AccountFilter{MinAmount: "100", MaxAmount: "500"}, 2},
		{"due within days", dto.AccountFilter{DueWithinDays: intPtr(7)}, 1},
		{"due within zero days", dto.AccountFilter{DueWithinDays: intPtr(0)}, 0},
		{"search in description", dto.AccountFilter{Search: "aluguel"}, 1},
		{"search in contact name", dto.AccountFilter{Search: "silva"}, 1},
		{"search in reference", dto.AccountFilter{Search: "nf-1042"}, 1},
		{"search in notes", dto.AccountFilter{Search: "PIX"}, 1},
		{"search without match", dto.AccountFilter{Search: "telefone"}, 0},
		{"combined status and search", dto.AccountFilter{Status: "pending", Search: "energia"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterAccounts(items, &tt.filter, today)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestFilterAccountsPreservesOrder(t *testing.T) {
	items, _, _ := sampleAccounts()
	today := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	got := FilterAccounts(items, &dto.AccountFilter{Status: "pending"}, today)
	assert.Equal(t, "Aluguel do escritório", got[0].Description)
	assert.Equal(t, "Energia elétrica", got[1].Description)
}

func TestSummarizeAccounts(t *testing.T) {
	items, _, _ := sampleAccounts()

	summary := SummarizeAccounts(items)

	assert.Equal(t, 3, summary.Count)
	assert.Equal(t, 2, summary.CountPending)
	assert.Equal(t, 1, summary.CountPaid)
	assert.Equal(t, 1, summary.CountOverdue)

	assert.True(t, summary.Total.Equal(decimal.NewFromFloat(1690.75)))
	// Overdue stays inside the pending bucket.
	assert.True(t, summary.TotalPending.Equal(decimal.NewFromFloat(1540.75)))
	assert.True(t, summary.TotalPaid.Equal(decimal.NewFromInt(150)))
	assert.True(t, summary.TotalOverdue.Equal(decimal.NewFromInt(1200)))
}

func TestSummarizeAccountsEmpty(t *testing.T) {
	summary := SummarizeAccounts(nil)
	assert.Equal(t, 0, summary.Count)
	assert.True(t, summary.Total.IsZero())
	assert.True(t, summary.TotalPending.IsZero())
}
