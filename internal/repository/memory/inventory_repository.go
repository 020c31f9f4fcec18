package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/FiyinfoluwaDav/Datathon-2025/internal/domain"
)

type inventoryRepository struct {
	store *Store
}

func (r *inventoryRepository) CreateItem(ctx context.Context, item *domain.Item) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if strings.EqualFold(existing.Name, item.Name) {
			return fmt.Errorf("item %q: %w", item.Name, domain.ErrValidation)
		}
	}

	s.nextItemID++
	item.ID = s.nextItemID
	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	s.items[item.ID] = copyItem(item)

	return nil
}

func (r *inventoryRepository) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}

	return copyItem(item), nil
}

func (r *inventoryRepository) GetItemByName(ctx context.Context, name string) (*domain.Item, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if strings.EqualFold(item.Name, name) {
			return copyItem(item), nil
		}
	}

	return nil, fmt.Errorf("item %q: %w", name, domain.ErrNotFound)
}

func (r *inventoryRepository) ListItems(ctx context.Context) ([]*domain.Item, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*domain.Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, copyItem(item))
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})

	return items, nil
}

func (r *inventoryRepository) UpdateItem(ctx context.Context, item *domain.Item) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.items[item.ID]
	if !ok {
		return fmt.Errorf("item %d: %w", item.ID, domain.ErrNotFound)
	}

	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = time.Now()
	s.items[item.ID] = copyItem(item)

	return nil
}

func (r *inventoryRepository) AdjustStocks(ctx context.Context, deltas []domain.StockDelta) ([]*domain.Item, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	totals := make(map[int64]int, len(deltas))
	order := make([]int64, 0, len(deltas))
	for _, d := range deltas {
		if _, ok := s.items[d.ItemID]; !ok {
			return nil, fmt.Errorf("item %d: %w", d.ItemID, domain.ErrNotFound)
		}
		if _, seen := totals[d.ItemID]; !seen {
			order = append(order, d.ItemID)
		}
		totals[d.ItemID] += d.Delta
	}

	// Validate the whole batch before touching anything so a rejection
	// leaves every item exactly as it was.
	for _, id := range order {
		if next := s.items[id].CurrentStock + totals[id]; next < 0 {
			return nil, fmt.Errorf("stock for item %d would drop to %d: %w", id, next, domain.ErrValidation)
		}
	}

	now := time.Now()
	updated := make([]*domain.Item, 0, len(order))
	for _, id := range order {
		item := s.items[id]
		item.CurrentStock += totals[id]
		item.UpdatedAt = now
		updated = append(updated, copyItem(item))
	}

	return updated, nil
}
