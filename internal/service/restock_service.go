package service

import (
	"context"
	"fmt"
	"time"

	"github.com/FiyinfoluwaDav/Datathon-2025/internal/cache"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/domain"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/forecast"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RestockService is the ledger boundary: manual request creation and the
// approve/decline/fulfill lifecycle. Automatic creation goes through the
// sweep, which commits policy output with Commit.
type RestockService struct {
	inventory repository.InventoryRepository
	requests  repository.RestockRepository
	cache     cache.LowStockCache
}

func NewRestockService(inventory repository.InventoryRepository, requests repository.RestockRepository, cacheImpl cache.LowStockCache) *RestockService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopLowStockCache()
	}
	return &RestockService{inventory: inventory, requests: requests, cache: cacheImpl}
}

// CreateManual files an operator-entered request, bypassing policy but not
// the duplicate-open-request guard. An empty priority label derives the
// priority from the item's current forecast, matching what the request form
// displays.
func (s *RestockService) CreateManual(ctx context.Context, itemID int64, quantity int, priorityLabel string) (*domain.RestockRequest, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", domain.ErrValidation)
	}

	item, err := s.inventory.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	var priority domain.Priority
	if priorityLabel == "" {
		fc := forecast.Forecast(item)
		if p, ok := fc.Tier.Priority(); ok {
			priority = p
		} else {
			priority = domain.PriorityNormal
		}
	} else {
		p, ok := domain.ParsePriority(priorityLabel)
		if !ok {
			return nil, fmt.Errorf("unknown priority %q: %w", priorityLabel, domain.ErrValidation)
		}
		priority = p
	}

	return s.Commit(ctx, domain.RequestSpec{
		ItemID:   itemID,
		Quantity: quantity,
		Priority: priority,
	})
}

// Commit turns a request spec into a pending ledger entry. The repository's
// atomic check-and-insert enforces the single-open-request invariant.
func (s *RestockService) Commit(ctx context.Context, spec domain.RequestSpec) (*domain.RestockRequest, error) {
	req := NewRequest(spec)
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	return req, nil
}

// NewRequest builds an unsaved pending request from a policy spec, assigning
// its id and timestamp.
func NewRequest(spec domain.RequestSpec) *domain.RestockRequest {
	return &domain.RestockRequest{
		ID:          uuid.NewString(),
		ItemID:      spec.ItemID,
		Quantity:    spec.Quantity,
		Priority:    spec.Priority,
		Status:      domain.StatusPending,
		RequestedAt: time.Now(),
	}
}

func (s *RestockService) Get(ctx context.Context, id string) (*domain.RestockRequest, error) {
	return s.requests.Get(ctx, id)
}

// List returns requests ordered by requested_at ascending. An empty label
// means all statuses; unknown labels are rejected.
func (s *RestockService) List(ctx context.Context, statusLabel string) ([]*domain.RestockRequest, error) {
	var filter domain.RequestFilter
	if statusLabel != "" {
		status, ok := domain.ParseRequestStatus(statusLabel)
		if !ok {
			return nil, fmt.Errorf("unknown status %q: %w", statusLabel, domain.ErrValidation)
		}
		filter.Status = status
	}

	return s.requests.List(ctx, filter)
}

// Approve moves a pending request to approved.
func (s *RestockService) Approve(ctx context.Context, id, comment string) (*domain.RestockRequest, error) {
	return s.requests.UpdateStatus(ctx, id, domain.StatusPending, domain.StatusApproved, comment)
}

// Decline moves a pending request to declined, a terminal state.
func (s *RestockService) Decline(ctx context.Context, id, comment string) (*domain.RestockRequest, error) {
	return s.requests.UpdateStatus(ctx, id, domain.StatusPending, domain.StatusDeclined, comment)
}

// Fulfill marks an approved request fulfilled and credits the item's stock.
// This is the only path by which replenishment reaches the catalog.
func (s *RestockService) Fulfill(ctx context.Context, id string) (*domain.RestockRequest, error) {
	req, err := s.requests.Fulfill(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("restock: cache invalidation failed")
	}

	return req, nil
}
