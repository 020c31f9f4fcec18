package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/FiyinfoluwaDav/Datathon-2025/internal/cache"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/domain"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/forecast"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/repository"
	"github.com/rs/zerolog/log"
)

// DefaultLowStockThresholdDays is used when the low-stock query gets no
// explicit threshold.
const DefaultLowStockThresholdDays = 5

// InventoryService is the catalog boundary: intake, edits, consumption
// recording and the low-stock query.
type InventoryService struct {
	repo  repository.InventoryRepository
	cache cache.LowStockCache
}

func NewInventoryService(repo repository.InventoryRepository, cacheImpl cache.LowStockCache) *InventoryService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopLowStockCache()
	}
	return &InventoryService{repo: repo, cache: cacheImpl}
}

// UpdateItemInput carries partial item edits; nil fields stay unchanged.
type UpdateItemInput struct {
	Name         *string
	Category     *string
	Unit         *string
	CurrentStock *int
	DailyUsage   *float64
}

func (s *InventoryService) CreateItem(ctx context.Context, item domain.Item) (*domain.Item, error) {
	if err := validateItem(&item); err != nil {
		return nil, err
	}

	if err := s.repo.CreateItem(ctx, &item); err != nil {
		return nil, err
	}
	s.invalidateLowStock(ctx)

	return &item, nil
}

func (s *InventoryService) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *InventoryService) ListItems(ctx context.Context) ([]*domain.Item, error) {
	return s.repo.ListItems(ctx)
}

func (s *InventoryService) UpdateItem(ctx context.Context, id int64, in UpdateItemInput) (*domain.Item, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.CurrentStock != nil {
		item.CurrentStock = *in.CurrentStock
	}
	if in.DailyUsage != nil {
		item.DailyUsage = *in.DailyUsage
	}
	if err := validateItem(item); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	s.invalidateLowStock(ctx)

	return item, nil
}

// RecordConsumption applies a batch of usage entries as one atomic
// adjustment. Any invalid entry (non-positive quantity, unknown item, or an
// adjustment that would drive stock negative) rejects the whole batch and
// leaves every stock level unchanged.
func (s *InventoryService) RecordConsumption(ctx context.Context, updates []domain.StockUpdate) ([]*domain.Item, error) {
	if len(updates) == 0 {
		return nil, fmt.Errorf("no stock updates supplied: %w", domain.ErrValidation)
	}

	deltas := make([]domain.StockDelta, len(updates))
	for i, u := range updates {
		if u.QuantityUsed <= 0 {
			return nil, fmt.Errorf("quantity_used must be positive: %w", domain.ErrValidation)
		}

		item, err := s.resolveItem(ctx, u)
		if err != nil {
			return nil, err
		}
		deltas[i] = domain.StockDelta{ItemID: item.ID, Delta: -u.QuantityUsed}
	}

	updated, err := s.repo.AdjustStocks(ctx, deltas)
	if err != nil {
		return nil, err
	}
	s.invalidateLowStock(ctx)

	return updated, nil
}

// LowStock returns items whose forecast remaining days are at or below the
// threshold, soonest to run out first. Items without a usage signal are
// skipped; thresholds <= 0 fall back to the default.
func (s *InventoryService) LowStock(ctx context.Context, thresholdDays int) ([]*domain.LowStockItem, error) {
	if thresholdDays <= 0 {
		thresholdDays = DefaultLowStockThresholdDays
	}

	if cached, ok, err := s.cache.Get(ctx, thresholdDays); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("inventory: cache get low-stock failed")
	}

	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	lowStock := make([]*domain.LowStockItem, 0)
	for _, item := range items {
		fc := forecast.Forecast(item)
		if fc.Tier == domain.TierUnknown || fc.RemainingDays > thresholdDays {
			continue
		}
		lowStock = append(lowStock, &domain.LowStockItem{
			Item:          *item,
			RemainingDays: fc.RemainingDays,
		})
	}
	sortLowStock(lowStock)

	if err := s.cache.Set(ctx, thresholdDays, lowStock); err != nil {
		log.Warn().Err(err).Msg("inventory: cache set low-stock failed")
	}

	return lowStock, nil
}

func (s *InventoryService) resolveItem(ctx context.Context, u domain.StockUpdate) (*domain.Item, error) {
	if u.ItemID != 0 {
		return s.repo.GetItem(ctx, u.ItemID)
	}
	if strings.TrimSpace(u.ItemName) != "" {
		return s.repo.GetItemByName(ctx, u.ItemName)
	}

	return nil, fmt.Errorf("stock update needs item_id or item_name: %w", domain.ErrValidation)
}

func (s *InventoryService) invalidateLowStock(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("inventory: cache invalidation failed")
	}
}

func validateItem(item *domain.Item) error {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return fmt.Errorf("item name is required: %w", domain.ErrValidation)
	}
	if item.Category != domain.CategoryDrug && item.Category != domain.CategorySupply {
		return fmt.Errorf("category must be %q or %q: %w", domain.CategoryDrug, domain.CategorySupply, domain.ErrValidation)
	}
	if item.CurrentStock < 0 {
		return fmt.Errorf("current_stock cannot be negative: %w", domain.ErrValidation)
	}
	if item.DailyUsage < 0 {
		return fmt.Errorf("daily_usage cannot be negative: %w", domain.ErrValidation)
	}

	return nil
}

func sortLowStock(items []*domain.LowStockItem) {
	// Soonest-to-deplete first, name as tie-break for stable output.
	sort.Slice(items, func(i, j int) bool {
		if items[i].RemainingDays == items[j].RemainingDays {
			return items[i].Name < items[j].Name
		}
		return items[i].RemainingDays < items[j].RemainingDays
	})
}
