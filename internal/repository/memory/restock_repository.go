package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/FiyinfoluwaDav/Datathon-2025/internal/domain"
)

type restockRepository struct {
	store *Store
}

func (r *restockRepository) Create(ctx context.Context, req *domain.RestockRequest) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[req.ItemID]; !ok {
		return fmt.Errorf("item %d: %w", req.ItemID, domain.ErrNotFound)
	}
	if s.hasOpenLocked(req.ItemID) {
		return fmt.Errorf("item %d: %w", req.ItemID, domain.ErrDuplicateOpenRequest)
	}

	if req.RequestedAt.IsZero() {
		req.RequestedAt = time.Now()
	}
	s.requests[req.ID] = s.copyRequestLocked(req)

	return nil
}

func (r *restockRepository) Get(ctx context.Context, id string) (*domain.RestockRequest, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.requests[id]
	if !ok {
		return nil, fmt.Errorf("restock request %s: %w", id, domain.ErrNotFound)
	}

	return s.copyRequestLocked(req), nil
}

func (r *restockRepository) List(ctx context.Context, filter domain.RequestFilter) ([]*domain.RestockRequest, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	requests := make([]*domain.RestockRequest, 0, len(s.requests))
	for _, req := range s.requests {
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		requests = append(requests, s.copyRequestLocked(req))
	}
	sort.Slice(requests, func(i, j int) bool {
		if requests[i].RequestedAt.Equal(requests[j].RequestedAt) {
			return requests[i].ID < requests[j].ID
		}
		return requests[i].RequestedAt.Before(requests[j].RequestedAt)
	})

	return requests, nil
}

func (r *restockRepository) HasOpen(ctx context.Context, itemID int64) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.hasOpenLocked(itemID), nil
}

func (r *restockRepository) UpdateStatus(ctx context.Context, id string, from, to domain.RequestStatus, comment string) (*domain.RestockRequest, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[id]
	if !ok {
		return nil, fmt.Errorf("restock request %s: %w", id, domain.ErrNotFound)
	}
	if req.Status != from {
		return nil, fmt.Errorf("restock request %s is %s, not %s: %w", id, req.Status, from, domain.ErrInvalidTransition)
	}

	req.Status = to
	if comment != "" {
		req.Comments = comment
	}

	return s.copyRequestLocked(req), nil
}

func (r *restockRepository) Fulfill(ctx context.Context, id string) (*domain.RestockRequest, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[id]
	if !ok {
		return nil, fmt.Errorf("restock request %s: %w", id, domain.ErrNotFound)
	}
	if req.Status != domain.StatusApproved {
		return nil, fmt.Errorf("restock request %s is %s, not approved: %w", id, req.Status, domain.ErrInvalidTransition)
	}

	item, ok := s.items[req.ItemID]
	if !ok {
		return nil, fmt.Errorf("item %d: %w", req.ItemID, domain.ErrNotFound)
	}

	// Both writes happen under the same lock, so the stock bump and the
	// status change are observed together or not at all.
	item.CurrentStock += req.Quantity
	item.UpdatedAt = time.Now()
	req.Status = domain.StatusFulfilled

	return s.copyRequestLocked(req), nil
}
