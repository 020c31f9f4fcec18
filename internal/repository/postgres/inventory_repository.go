package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/FiyinfoluwaDav/Datathon-2025/internal/domain"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type inventoryRepository struct {
	db *DB
}

func NewInventoryRepository(db *DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) CreateItem(ctx context.Context, item *domain.Item) error {
	query := `
		INSERT INTO items (name, category, unit, current_stock, daily_usage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		item.Name, item.Category, item.Unit, item.CurrentStock, item.DailyUsage,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("item %q already exists: %w", item.Name, domain.ErrValidation)
		}
		return fmt.Errorf("failed to insert item: %w", err)
	}

	return nil
}

func (r *inventoryRepository) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	query := `
		SELECT id, name, category, unit, current_stock, daily_usage, created_at, updated_at
		FROM items
		WHERE id = $1
	`

	var item domain.Item
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return &item, nil
}

func (r *inventoryRepository) GetItemByName(ctx context.Context, name string) (*domain.Item, error) {
	query := `
		SELECT id, name, category, unit, current_stock, daily_usage, created_at, updated_at
		FROM items
		WHERE lower(name) = lower($1)
	`

	var item domain.Item
	if err := r.db.GetContext(ctx, &item, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("item %q: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get item by name: %w", err)
	}

	return &item, nil
}

func (r *inventoryRepository) ListItems(ctx context.Context) ([]*domain.Item, error) {
	query := `
		SELECT id, name, category, unit, current_stock, daily_usage, created_at, updated_at
		FROM items
		ORDER BY name
	`

	var items []*domain.Item
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	return items, nil
}

func (r *inventoryRepository) UpdateItem(ctx context.Context, item *domain.Item) error {
	query := `
		UPDATE items
		SET name = $2, category = $3, unit = $4, current_stock = $5, daily_usage = $6, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		item.ID, item.Name, item.Category, item.Unit, item.CurrentStock, item.DailyUsage,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("item %d: %w", item.ID, domain.ErrNotFound)
	}

	return nil
}

func (r *inventoryRepository) AdjustStocks(ctx context.Context, deltas []domain.StockDelta) ([]*domain.Item, error) {
	totals := make(map[int64]int, len(deltas))
	order := make([]int64, 0, len(deltas))
	for _, d := range deltas {
		if _, seen := totals[d.ItemID]; !seen {
			order = append(order, d.ItemID)
		}
		totals[d.ItemID] += d.Delta
	}

	// Lock rows in ascending id order so concurrent batches cannot deadlock.
	lockOrder := make([]int64, len(order))
	copy(lockOrder, order)
	sort.Slice(lockOrder, func(i, j int) bool { return lockOrder[i] < lockOrder[j] })

	items := make([]*domain.Item, 0, len(order))
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		next := make(map[int64]int, len(order))
		for _, id := range lockOrder {
			var current int
			err := tx.QueryRowxContext(ctx,
				`SELECT current_stock FROM items WHERE id = $1 FOR UPDATE`, id,
			).Scan(&current)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
				}
				return fmt.Errorf("failed to lock item: %w", err)
			}

			after := current + totals[id]
			if after < 0 {
				return fmt.Errorf("stock for item %d would drop to %d: %w", id, after, domain.ErrValidation)
			}
			next[id] = after
		}

		query := `
			UPDATE items
			SET current_stock = $2, updated_at = NOW()
			WHERE id = $1
			RETURNING id, name, category, unit, current_stock, daily_usage, created_at, updated_at
		`
		for _, id := range order {
			var item domain.Item
			if err := tx.QueryRowxContext(ctx, query, id, next[id]).StructScan(&item); err != nil {
				return fmt.Errorf("failed to adjust stock: %w", err)
			}
			items = append(items, &item)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// isUniqueViolation reports a postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
