package service

import (
	"context"
	"testing"

	"github.com/FiyinfoluwaDav/Datathon-2025/internal/domain"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRestockFixture(t *testing.T) (*RestockService, *InventoryService) {
	t.Helper()
	store := memory.NewStore()
	return NewRestockService(store.Inventory(), store.Restock(), nil),
		NewInventoryService(store.Inventory(), nil)
}

func TestCreateManual(t *testing.T) {
	restock, inventory := newRestockFixture(t)
	ctx := context.Background()
	item := mustCreate(t, inventory, "Amoxicillin", 45, 10)

	req, err := restock.CreateManual(ctx, item.ID, 70, "High")
	require.NoError(t, err)
	assert.NotEmpty(t, req.ID)
	assert.Equal(t, item.ID, req.ItemID)
	assert.Equal(t, 70, req.Quantity)
	assert.Equal(t, domain.PriorityHigh, req.Priority)
	assert.Equal(t, domain.StatusPending, req.Status)
	assert.False(t, req.RequestedAt.IsZero())
}

func TestCreateManualDerivesPriority(t *testing.T) {
	restock, inventory := newRestockFixture(t)
	ctx := context.Background()

	// 45/10 = 4 days, which forecasts Critical.
	critical := mustCreate(t, inventory, "Amoxicillin", 45, 10)
	req, err := restock.CreateManual(ctx, critical.ID, 70, "")
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityCritical, req.Priority)

	// No usage signal falls back to Normal.
	unknown := mustCreate(t, inventory, "Rarely Used", 5, 0)
	req, err = restock.CreateManual(ctx, unknown.ID, 10, "")
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityNormal, req.Priority)
}

func TestCreateManualValidation(t *testing.T) {
	restock, inventory := newRestockFixture(t)
	ctx := context.Background()
	item := mustCreate(t, inventory, "Amoxicillin", 45, 10)

	_, err := restock.CreateManual(ctx, item.ID, 0, "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = restock.CreateManual(ctx, item.ID, 70, "Urgent")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = restock.CreateManual(ctx, 99, 70, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateManualDuplicateGuard(t *testing.T) {
	restock, inventory := newRestockFixture(t)
	ctx := context.Background()
	item := mustCreate(t, inventory, "Amoxicillin", 45, 10)

	_, err := restock.CreateManual(ctx, item.ID, 70, "")
	require.NoError(t, err)

	_, err = restock.CreateManual(ctx, item.ID, 70, "")
	assert.ErrorIs(t, err, domain.ErrDuplicateOpenRequest)
}

func TestListFilter(t *testing.T) {
	restock, inventory := newRestockFixture(t)
	ctx := context.Background()
	a := mustCreate(t, inventory, "Amoxicillin", 45, 10)
	b := mustCreate(t, inventory, "Bandages", 45, 10)

	pending, err := restock.CreateManual(ctx, a.ID, 70, "")
	require.NoError(t, err)
	approved, err := restock.CreateManual(ctx, b.ID, 70, "")
	require.NoError(t, err)
	_, err = restock.Approve(ctx, approved.ID, "")
	require.NoError(t, err)

	all, err := restock.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	got, err := restock.List(ctx, "pending")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pending.ID, got[0].ID)

	_, err = restock.List(ctx, "open")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestApproveFulfillFlow(t *testing.T) {
	restock, inventory := newRestockFixture(t)
	ctx := context.Background()
	item := mustCreate(t, inventory, "IV Fluids", 20, 10)

	req, err := restock.CreateManual(ctx, item.ID, 500, "")
	require.NoError(t, err)

	approved, err := restock.Approve(ctx, req.ID, "go ahead")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, approved.Status)
	assert.Equal(t, "go ahead", approved.Comments)

	fulfilled, err := restock.Fulfill(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFulfilled, fulfilled.Status)

	got, err := inventory.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 520, got.CurrentStock)
}

func TestFulfillPendingRejected(t *testing.T) {
	restock, inventory := newRestockFixture(t)
	ctx := context.Background()
	item := mustCreate(t, inventory, "IV Fluids", 20, 10)

	req, err := restock.CreateManual(ctx, item.ID, 500, "")
	require.NoError(t, err)

	_, err = restock.Fulfill(ctx, req.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	got, err := inventory.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, got.CurrentStock)
}

func TestDoubleFulfillRejected(t *testing.T) {
	restock, inventory := newRestockFixture(t)
	ctx := context.Background()
	item := mustCreate(t, inventory, "IV Fluids", 20, 10)

	req, err := restock.CreateManual(ctx, item.ID, 500, "")
	require.NoError(t, err)
	_, err = restock.Approve(ctx, req.ID, "")
	require.NoError(t, err)
	_, err = restock.Fulfill(ctx, req.ID)
	require.NoError(t, err)

	_, err = restock.Fulfill(ctx, req.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	got, err := inventory.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 520, got.CurrentStock)
}

func TestDeclineIsTerminal(t *testing.T) {
	restock, inventory := newRestockFixture(t)
	ctx := context.Background()
	item := mustCreate(t, inventory, "Masks", 45, 10)

	req, err := restock.CreateManual(ctx, item.ID, 70, "")
	require.NoError(t, err)

	declined, err := restock.Decline(ctx, req.ID, "budget hold")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDeclined, declined.Status)
	assert.Equal(t, "budget hold", declined.Comments)

	_, err = restock.Approve(ctx, req.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = restock.Fulfill(ctx, req.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestTransitionUnknownRequest(t *testing.T) {
	restock, _ := newRestockFixture(t)
	ctx := context.Background()

	_, err := restock.Approve(ctx, "no-such-id", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = restock.Fulfill(ctx, "no-such-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
