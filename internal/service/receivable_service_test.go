package service

import (
	"context"
	"testing"

	"finance-manager-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceivableCreateHasNoPlanCap(t *testing.T) {
	f := newFixture()
	userId := f.addUser("owner@example.com")
	svc := NewReceivableService(f.factory, testLogger)
	ctx := context.Background()

	// Only payables count against the free-tier limit.
	seedPayables(t, f, userId, 10)

	resp, err := svc.Create(ctx, userId, &dto.CreateAccountRequest{
		Description: "Venda à vista",
		Amount:      "500",
		DueDate:     "2025-07-10",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
}

func TestReceivableSettlementUsesReceivedDate(t *testing.T) {
	f := newFixture()
	userId := f.addUser("owner@example.com")
	svc := NewReceivableService(f.factory, testLogger)
	ctx := context.Background()

	created, err := svc.Create(ctx, userId, &dto.CreateAccountRequest{
		Description: "Fatura 42", Amount: "250", DueDate: "2025-06-25",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, userId, created.Id, &dto.UpdateAccountRequest{
		SettledDate: strPtr("2025-06-24"),
	})
	require.NoError(t, err)
	assert.Equal(t, "paid", updated.Status)
	require.NotNil(t, updated.SettledDate)
	assert.Equal(t, "2025-06-24", *updated.SettledDate)

	reopened, err := svc.Update(ctx, userId, created.Id, &dto.UpdateAccountRequest{
		Status: strPtr("pending"),
	})
	require.NoError(t, err)
	assert.Nil(t, reopened.SettledDate)
}

func TestReceivableListIsPerUser(t *testing.T) {
	f := newFixture()
	owner := f.addUser("owner@example.com")
	other := f.addUser("other@example.com")
	svc := NewReceivableService(f.factory, testLogger)
	ctx := context.Background()

	_, err := svc.Create(ctx, owner, &dto.CreateAccountRequest{
		Description: "Recebível", Amount: "75", DueDate: "2025-06-30",
	})
	require.NoError(t, err)

	mine, err := svc.List(ctx, owner, nil)
	require.NoError(t, err)
	assert.Len(t, mine.Items, 1)

	theirs, err := svc.List(ctx, other, nil)
	require.NoError(t, err)
	assert.Empty(t, theirs.Items)
}
