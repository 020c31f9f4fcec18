package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/FiyinfoluwaDav/Datathon-2025/internal/config"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	lowStockKeyPrefix     = "inventory:low_stock"
	lowStockScanBatchSize = 100
)

// LowStockCache caches low-stock query results per day threshold. Any stock
// mutation (consumption, item edits, fulfillment) invalidates the whole
// prefix since every threshold may be affected.
type LowStockCache interface {
	Get(ctx context.Context, thresholdDays int) ([]*domain.LowStockItem, bool, error)
	Set(ctx context.Context, thresholdDays int, items []*domain.LowStockItem) error
	InvalidateAll(ctx context.Context) error
}

type redisLowStockCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopLowStockCache struct{}

// NewLowStockCache builds the redis-backed cache, or a noop one when caching
// is disabled.
func NewLowStockCache(cfg config.CacheConfig) (LowStockCache, error) {
	if !cfg.Enabled {
		return &noopLowStockCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisLowStockCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopLowStockCache() LowStockCache {
	return &noopLowStockCache{}
}

func lowStockKey(thresholdDays int) string {
	return fmt.Sprintf("%s:%d", lowStockKeyPrefix, thresholdDays)
}

func (c *redisLowStockCache) Get(ctx context.Context, thresholdDays int) ([]*domain.LowStockItem, bool, error) {
	payload, err := c.client.Get(ctx, lowStockKey(thresholdDays)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var items []*domain.LowStockItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached low-stock items: %w", err)
	}

	return items, true, nil
}

func (c *redisLowStockCache) Set(ctx context.Context, thresholdDays int, items []*domain.LowStockItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode low-stock items: %w", err)
	}

	if err := c.client.Set(ctx, lowStockKey(thresholdDays), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisLowStockCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, lowStockKeyPrefix, lowStockScanBatchSize)
}

func (c *noopLowStockCache) Get(ctx context.Context, thresholdDays int) ([]*domain.LowStockItem, bool, error) {
	return nil, false, nil
}

func (c *noopLowStockCache) Set(ctx context.Context, thresholdDays int, items []*domain.LowStockItem) error {
	return nil
}

func (c *noopLowStockCache) InvalidateAll(ctx context.Context) error {
	return nil
}
