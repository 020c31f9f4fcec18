package repository

import (
	"context"

	"github.com/FiyinfoluwaDav/Datathon-2025/internal/domain"
)

// InventoryRepository owns the item catalog.
type InventoryRepository interface {
	// CreateItem inserts a new item and assigns its ID.
	CreateItem(ctx context.Context, item *domain.Item) error

	// GetItem returns the item or domain.ErrNotFound.
	GetItem(ctx context.Context, id int64) (*domain.Item, error)

	// GetItemByName resolves an item by its (case-insensitive) name.
	GetItemByName(ctx context.Context, name string) (*domain.Item, error)

	// ListItems returns the full catalog ordered by name.
	ListItems(ctx context.Context) ([]*domain.Item, error)

	// UpdateItem persists descriptive fields, stock and usage rate.
	UpdateItem(ctx context.Context, item *domain.Item) error

	// AdjustStocks atomically applies a batch of stock deltas. Deltas for the
	// same item accumulate. If any item would end up with negative stock the
	// whole batch is rejected with domain.ErrValidation and no item changes;
	// unknown ids reject with domain.ErrNotFound the same way. On success the
	// updated items are returned in first-occurrence order.
	AdjustStocks(ctx context.Context, deltas []domain.StockDelta) ([]*domain.Item, error)
}
