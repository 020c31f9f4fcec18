package memory

import (
	"context"
	"testing"
	"time"

	"github.com/FiyinfoluwaDav/Datathon-2025/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedItem(t *testing.T, s *Store, name string, stock int, usage float64) *domain.Item {
	t.Helper()
	item := &domain.Item{
		Name:         name,
		Category:     "Drug",
		Unit:         "tablets",
		CurrentStock: stock,
		DailyUsage:   usage,
	}
	require.NoError(t, s.Inventory().CreateItem(context.Background(), item))
	return item
}

func newRequest(itemID int64, quantity int) *domain.RestockRequest {
	return &domain.RestockRequest{
		ID:       uuid.NewString(),
		ItemID:   itemID,
		Quantity: quantity,
		Priority: domain.PriorityHigh,
		Status:   domain.StatusPending,
	}
}

func TestCreateItemAssignsIDs(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	first := seedItem(t, s, "Paracetamol", 100, 10)
	second := seedItem(t, s, "Gauze", 50, 2)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	got, err := s.Inventory().GetItem(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol", got.Name)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCreateItemRejectsDuplicateName(t *testing.T) {
	s := NewStore()
	seedItem(t, s, "Paracetamol", 100, 10)

	err := s.Inventory().CreateItem(context.Background(), &domain.Item{Name: "paracetamol", Category: "Drug"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetItemByName(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedItem(t, s, "Paracetamol", 100, 10)

	got, err := s.Inventory().GetItemByName(ctx, "PARACETAMOL")
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol", got.Name)

	_, err = s.Inventory().GetItemByName(ctx, "Ibuprofen")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjustStocks(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	gloves := seedItem(t, s, "Gloves", 10, 1)
	masks := seedItem(t, s, "Masks", 50, 2)

	got, err := s.Inventory().AdjustStocks(ctx, []domain.StockDelta{
		{ItemID: gloves.ID, Delta: -4},
		{ItemID: masks.ID, Delta: 10},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 6, got[0].CurrentStock)
	assert.Equal(t, 60, got[1].CurrentStock)
}

func TestAdjustStocksAccumulatesPerItem(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	item := seedItem(t, s, "Gloves", 10, 1)

	got, err := s.Inventory().AdjustStocks(ctx, []domain.StockDelta{
		{ItemID: item.ID, Delta: -4},
		{ItemID: item.ID, Delta: -3},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].CurrentStock)
}

func TestAdjustStocksRejectsNegativeResult(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	item := seedItem(t, s, "Gloves", 10, 1)

	_, err := s.Inventory().AdjustStocks(ctx, []domain.StockDelta{{ItemID: item.ID, Delta: -11}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// The failed adjustment must not touch the stored quantity.
	got, err := s.Inventory().GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.CurrentStock)
}

func TestAdjustStocksRejectionLeavesBatchUnapplied(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	first := seedItem(t, s, "Gloves", 100, 1)
	second := seedItem(t, s, "Masks", 10, 1)

	// The first delta is fine on its own; the second overdraws, so neither
	// may be applied.
	_, err := s.Inventory().AdjustStocks(ctx, []domain.StockDelta{
		{ItemID: first.ID, Delta: -30},
		{ItemID: second.ID, Delta: -11},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, err := s.Inventory().GetItem(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.CurrentStock)
	got, err = s.Inventory().GetItem(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.CurrentStock)
}

func TestAdjustStocksUnknownItem(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	item := seedItem(t, s, "Gloves", 10, 1)

	_, err := s.Inventory().AdjustStocks(ctx, []domain.StockDelta{
		{ItemID: item.ID, Delta: -4},
		{ItemID: 99, Delta: -1},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := s.Inventory().GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.CurrentStock)
}

func TestCreateRequestDuplicateGuard(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	item := seedItem(t, s, "Syringes", 20, 10)

	first := newRequest(item.ID, 70)
	require.NoError(t, s.Restock().Create(ctx, first))

	err := s.Restock().Create(ctx, newRequest(item.ID, 70))
	assert.ErrorIs(t, err, domain.ErrDuplicateOpenRequest)

	// Approved still counts as open.
	_, err = s.Restock().UpdateStatus(ctx, first.ID, domain.StatusPending, domain.StatusApproved, "")
	require.NoError(t, err)
	err = s.Restock().Create(ctx, newRequest(item.ID, 70))
	assert.ErrorIs(t, err, domain.ErrDuplicateOpenRequest)

	// Fulfillment closes the request and lifts the guard.
	_, err = s.Restock().Fulfill(ctx, first.ID)
	require.NoError(t, err)
	assert.NoError(t, s.Restock().Create(ctx, newRequest(item.ID, 70)))
}

func TestCreateRequestUnknownItem(t *testing.T) {
	s := NewStore()
	err := s.Restock().Create(context.Background(), newRequest(99, 10))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRequestCarriesItemName(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	item := seedItem(t, s, "Bandages", 5, 2)

	req := newRequest(item.ID, 14)
	require.NoError(t, s.Restock().Create(ctx, req))

	got, err := s.Restock().Get(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bandages", got.ItemName)
}

func TestListOrdersByRequestedAt(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	a := seedItem(t, s, "A", 5, 2)
	b := seedItem(t, s, "B", 5, 2)
	c := seedItem(t, s, "C", 5, 2)

	base := time.Now()
	newer := newRequest(b.ID, 10)
	newer.RequestedAt = base.Add(time.Minute)
	older := newRequest(a.ID, 10)
	older.RequestedAt = base
	oldest := newRequest(c.ID, 10)
	oldest.RequestedAt = base.Add(-time.Minute)

	for _, req := range []*domain.RestockRequest{newer, older, oldest} {
		require.NoError(t, s.Restock().Create(ctx, req))
	}

	got, err := s.Restock().List(ctx, domain.RequestFilter{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, oldest.ID, got[0].ID)
	assert.Equal(t, older.ID, got[1].ID)
	assert.Equal(t, newer.ID, got[2].ID)
}

func TestListFiltersByStatus(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	a := seedItem(t, s, "A", 5, 2)
	b := seedItem(t, s, "B", 5, 2)

	pending := newRequest(a.ID, 10)
	require.NoError(t, s.Restock().Create(ctx, pending))
	approved := newRequest(b.ID, 10)
	require.NoError(t, s.Restock().Create(ctx, approved))
	_, err := s.Restock().UpdateStatus(ctx, approved.ID, domain.StatusPending, domain.StatusApproved, "")
	require.NoError(t, err)

	got, err := s.Restock().List(ctx, domain.RequestFilter{Status: domain.StatusApproved})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, approved.ID, got[0].ID)
}

func TestUpdateStatusTransitions(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	item := seedItem(t, s, "Saline", 5, 2)

	req := newRequest(item.ID, 14)
	require.NoError(t, s.Restock().Create(ctx, req))

	got, err := s.Restock().UpdateStatus(ctx, req.ID, domain.StatusPending, domain.StatusApproved, "ok to order")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)
	assert.Equal(t, "ok to order", got.Comments)

	// Approving again fails the compare-and-set.
	_, err = s.Restock().UpdateStatus(ctx, req.ID, domain.StatusPending, domain.StatusApproved, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateStatusKeepsCommentWhenEmpty(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	item := seedItem(t, s, "Saline", 5, 2)

	req := newRequest(item.ID, 14)
	req.Comments = "auto-generated"
	require.NoError(t, s.Restock().Create(ctx, req))

	got, err := s.Restock().UpdateStatus(ctx, req.ID, domain.StatusPending, domain.StatusDeclined, "")
	require.NoError(t, err)
	assert.Equal(t, "auto-generated", got.Comments)
}

func TestFulfillBumpsStock(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	item := seedItem(t, s, "IV Fluids", 20, 10)

	req := newRequest(item.ID, 500)
	require.NoError(t, s.Restock().Create(ctx, req))
	_, err := s.Restock().UpdateStatus(ctx, req.ID, domain.StatusPending, domain.StatusApproved, "")
	require.NoError(t, err)

	got, err := s.Restock().Fulfill(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFulfilled, got.Status)

	stocked, err := s.Inventory().GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 520, stocked.CurrentStock)
}

func TestFulfillRequiresApproved(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	item := seedItem(t, s, "IV Fluids", 20, 10)

	req := newRequest(item.ID, 500)
	require.NoError(t, s.Restock().Create(ctx, req))

	_, err := s.Restock().Fulfill(ctx, req.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// Stock must be untouched after the rejected fulfillment.
	got, err := s.Inventory().GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, got.CurrentStock)
}

func TestFulfillTwice(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	item := seedItem(t, s, "IV Fluids", 20, 10)

	req := newRequest(item.ID, 500)
	require.NoError(t, s.Restock().Create(ctx, req))
	_, err := s.Restock().UpdateStatus(ctx, req.ID, domain.StatusPending, domain.StatusApproved, "")
	require.NoError(t, err)
	_, err = s.Restock().Fulfill(ctx, req.ID)
	require.NoError(t, err)

	_, err = s.Restock().Fulfill(ctx, req.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	got, err := s.Inventory().GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 520, got.CurrentStock)
}

func TestDeclinedIsTerminal(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	item := seedItem(t, s, "Masks", 5, 2)

	req := newRequest(item.ID, 14)
	require.NoError(t, s.Restock().Create(ctx, req))
	_, err := s.Restock().UpdateStatus(ctx, req.ID, domain.StatusPending, domain.StatusDeclined, "not needed")
	require.NoError(t, err)

	_, err = s.Restock().UpdateStatus(ctx, req.ID, domain.StatusPending, domain.StatusApproved, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// A declined request no longer blocks new ones.
	assert.NoError(t, s.Restock().Create(ctx, newRequest(item.ID, 14)))
}
