package service

import (
	"context"
	"testing"

	"finance-manager-be/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newPayableService(f *fixture) IPayableService {
	return NewPayableService(f.factory, f.entitlements, testLogger)
}

func TestPayableCreate(t *testing.T) {
	f := newFixture()
	userId := f.addUser("owner@example.com")
	svc := newPayableService(f)

	resp, err := svc.Create(context.Background(), userId, &dto.CreateAccountRequest{
		Description: "Aluguel",
		Amount:      "1200.50",
		DueDate:     "2025-07-01",
		Reference:   "REC-01",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.Id)
	assert.Equal(t, "Aluguel", resp.Description)
	assert.Equal(t, "1200.5", resp.Amount.String())
	assert.Equal(t, "2025-07-01", resp.DueDate)
	assert.Equal(t, "pending", resp.Status)
	assert.Nil(t, resp.SettledDate)
}

func TestPayableCreateRejectsBadInput(t *testing.T) {
	f := newFixture()
	userId := f.addUser("owner@example.com")
	svc := newPayableService(f)
	ctx := context.Background()

	_, err := svc.Create(ctx, userId, &dto.CreateAccountRequest{
		Description: "Conta", Amount: "-10", DueDate: "2025-07-01",
	})
	assert.ErrorContains(t, err, "negative")

	_, err = svc.Create(ctx, userId, &dto.CreateAccountRequest{
		Description: "Conta", Amount: "abc", DueDate: "2025-07-01",
	})
	assert.ErrorContains(t, err, "invalid amount")

	_, err = svc.Create(ctx, userId, &dto.CreateAccountRequest{
		Description: "Conta", Amount: "10", DueDate: "01/07/2025",
	})
	assert.ErrorContains(t, err, "invalid due date")
}

func TestPayableCreateBlockedAtPlanLimit(t *testing.T) {
	f := newFixture()
	userId := f.addUser("owner@example.com")
	svc := newPayableService(f)

	// Free tier caps payables at 10.
	seedPayables(t, f, userId, 10)

	_, err := svc.Create(context.Background(), userId, &dto.CreateAccountRequest{
		Description: "Uma a mais",
		Amount:      "50",
		DueDate:     "2025-07-01",
	})
	assert.ErrorIs(t, err, ErrLimitReached)
}

func TestPayableUpdatePartialFields(t *testing.T) {
	f := newFixture()
	userId := f.addUser("owner@example.com")
	svc := newPayableService(f)
	ctx := context.Background()

	created, err := svc.Create(ctx, userId, &dto.CreateAccountRequest{
		Description: "Energia",
		Amount:      "340.75",
		DueDate:     "2025-06-20",
		Notes:       "vence dia 20",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, userId, created.Id, &dto.UpdateAccountRequest{
		Amount: strPtr("355.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Energia", updated.Description)
	assert.Equal(t, "355", updated.Amount.String())
	assert.Equal(t, "2025-06-20", updated.DueDate)
	assert.Equal(t, "vence dia 20", updated.Notes)
}

func TestPayableUpdateSettledDateMarksPaid(t *testing.T) {
	f := newFixture()
	userId := f.addUser("owner@example.com")
	svc := newPayableService(f)
	ctx := context.Background()

	created, err := svc.Create(ctx, userId, &dto.CreateAccountRequest{
		Description: "Internet", Amount: "150", DueDate: "2025-06-10",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, userId, created.Id, &dto.UpdateAccountRequest{
		SettledDate: strPtr("2025-06-09"),
	})
	require.NoError(t, err)

	assert.Equal(t, "paid", updated.Status)
	require.NotNil(t, updated.SettledDate)
	assert.Equal(t, "2025-06-09", *updated.SettledDate)
}

func TestPayableUpdateBackToPendingClearsSettledDate(t *testing.T) {
	f := newFixture()
	userId := f.addUser("owner@example.com")
	svc := newPayableService(f)
	ctx := context.Background()

	created, err := svc.Create(ctx, userId, &dto.CreateAccountRequest{
		Description: "Internet", Amount: "150", DueDate: "2025-06-10",
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, userId, created.Id, &dto.UpdateAccountRequest{
		SettledDate: strPtr("2025-06-09"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, userId, created.Id, &dto.UpdateAccountRequest{
		Status: strPtr("pending"),
	})
	require.NoError(t, err)

	assert.Equal(t, "pending", updated.Status)
	assert.Nil(t, updated.SettledDate)
}

func TestPayableOwnershipIsEnforced(t *testing.T) {
	f := newFixture()
	owner := f.addUser("owner@example.com")
	intruder := f.addUser("other@example.com")
	svc := newPayableService(f)
	ctx := context.Background()

	created, err := svc.Create(ctx, owner, &dto.CreateAccountRequest{
		Description: "Sigilosa", Amount: "99", DueDate: "2025-06-30",
	})
	require.NoError(t, err)

	_, err = svc.Get(ctx, intruder, created.Id)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	_, err = svc.Update(ctx, intruder, created.Id, &dto.UpdateAccountRequest{Notes: strPtr("x")})
	assert.ErrorIs(t, err, ErrAccountNotFound)

	err = svc.Delete(ctx, intruder, created.Id)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	// The owner still sees the untouched entry.
	got, err := svc.Get(ctx, owner, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "Sigilosa", got.Description)
}

func TestPayableDelete(t *testing.T) {
	f := newFixture()
	userId := f.addUser("owner@example.com")
	svc := newPayableService(f)
	ctx := context.Background()

	created, err := svc.Create(ctx, userId, &dto.CreateAccountRequest{
		Description: "Temporária", Amount: "10", DueDate: "2025-06-30",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, userId, created.Id))

	_, err = svc.Get(ctx, userId, created.Id)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	err = svc.Delete(ctx, userId, created.Id)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestPayableListFiltersAndSummarizes(t *testing.T) {
	f := newFixture()
	userId := f.addUser("owner@example.com")
	svc := newPayableService(f)
	ctx := context.Background()

	first, err := svc.Create(ctx, userId, &dto.CreateAccountRequest{
		Description: "Aluguel", Amount: "1200", DueDate: "2025-06-05",
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, userId, &dto.CreateAccountRequest{
		Description: "Energia", Amount: "340", DueDate: "2099-01-01",
	})
	require.NoError(t, err)
	_, err = svc.Update(ctx, userId, first.Id, &dto.UpdateAccountRequest{
		SettledDate: strPtr("2025-06-04"),
	})
	require.NoError(t, err)

	all, err := svc.List(ctx, userId, nil)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
	assert.Equal(t, 2, all.Summary.Count)
	assert.Equal(t, 1, all.Summary.CountPaid)
	assert.Equal(t, 1, all.Summary.CountPending)
	assert.True(t, all.Summary.Total.Equal(all.Summary.TotalPaid.Add(all.Summary.TotalPending)))

	paid, err := svc.List(ctx, userId, &dto.AccountFilter{Status: "paid"})
	require.NoError(t, err)
	require.Len(t, paid.Items, 1)
	assert.Equal(t, "Aluguel", paid.Items[0].Description)
	assert.True(t, paid.Summary.TotalPaid.Equal(paid.Items[0].Amount))
}

func TestPayableListOnlyReturnsOwnEntries(t *testing.T) {
	f := newFixture()
	owner := f.addUser("owner@example.com")
	other := f.addUser("other@example.com")
	svc := newPayableService(f)
	ctx := context.Background()

	_, err := svc.Create(ctx, owner, &dto.CreateAccountRequest{
		Description: "Minha conta", Amount: "10", DueDate: "2025-06-30",
	})
	require.NoError(t, err)

	list, err := svc.List(ctx, other, nil)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}
