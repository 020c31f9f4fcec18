package domain

import "time"

// Item categories shown on the intake form.
const (
	CategoryDrug   = "Drug"
	CategorySupply = "Supply"
)

// Item is a consumable tracked by the facility catalog. CurrentStock never
// goes below zero; DailyUsage is the average units consumed per day and is
// recomputed externally or set by hand.
type Item struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Category     string    `json:"category" db:"category"`
	Unit         string    `json:"unit" db:"unit"`
	CurrentStock int       `json:"current_stock" db:"current_stock"`
	DailyUsage   float64   `json:"daily_usage" db:"daily_usage"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// RestockRequest asks for a replenishment of one item. Priority is fixed at
// creation; re-evaluation produces a new request instead of mutating it.
// ItemName is denormalized on reads for display and not stored.
type RestockRequest struct {
	ID          string        `json:"id" db:"id"`
	ItemID      int64         `json:"item_id" db:"item_id"`
	ItemName    string        `json:"item_name,omitempty" db:"item_name"`
	Quantity    int           `json:"quantity" db:"quantity"`
	Priority    Priority      `json:"priority" db:"priority"`
	Status      RequestStatus `json:"status" db:"status"`
	RequestedAt time.Time     `json:"requested_at" db:"requested_at"`
	Comments    string        `json:"comments" db:"comments"`
}

// RequestSpec is what the restock policy proposes for an item. The caller
// commits it to the ledger; the spec itself carries no identity or state.
type RequestSpec struct {
	ItemID   int64    `json:"item_id"`
	Quantity int      `json:"quantity"`
	Priority Priority `json:"priority"`
}

// Forecast is the depletion estimate for one item. RemainingDays is
// meaningful only when Tier is not TierUnknown.
type Forecast struct {
	RemainingDays int         `json:"remaining_days"`
	Tier          UrgencyTier `json:"tier"`
}

// LowStockItem is an item at or below a caller-supplied days-remaining
// threshold, as returned by the low-stock query.
type LowStockItem struct {
	Item
	RemainingDays int `json:"remaining_days"`
}

// StockUpdate records consumption of one item. Items may be addressed by id
// or, for convenience of the daily usage form, by name.
type StockUpdate struct {
	ItemID       int64  `json:"item_id"`
	ItemName     string `json:"item_name"`
	QuantityUsed int    `json:"quantity_used"`
}

// StockDelta is one resolved stock adjustment, ready for the repository.
// Negative deltas record consumption, positive ones corrections.
type StockDelta struct {
	ItemID int64
	Delta  int
}

// RequestFilter narrows restock request listings.
type RequestFilter struct {
	Status RequestStatus // zero value means all statuses
}

// SweepResult reports one full evaluation pass over the catalog. Every item
// lands in exactly one of the two buckets: Created holds the requests the
// sweep produced (unpersisted previews carry an empty ID), Skipped holds the
// ids of items that needed no request or already had an open one.
type SweepResult struct {
	Created []*RestockRequest `json:"created"`
	Skipped []int64           `json:"skipped"`
}
