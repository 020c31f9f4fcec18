// Package memory provides in-memory implementations of the repository
// interfaces. One Store backs both repositories so fulfillment can update a
// request and its item under a single lock, matching the transactional
// behavior of the postgres implementation. Used by tests and as the fallback
// when no database is configured.
package memory

import (
	"sync"

	"github.com/FiyinfoluwaDav/Datathon-2025/internal/domain"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/repository"
)

// Store holds the catalog and the ledger behind one mutex.
type Store struct {
	mu         sync.RWMutex
	items      map[int64]*domain.Item
	requests   map[string]*domain.RestockRequest
	nextItemID int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		items:    make(map[int64]*domain.Item),
		requests: make(map[string]*domain.RestockRequest),
	}
}

// Inventory returns the catalog view of the store.
func (s *Store) Inventory() repository.InventoryRepository {
	return &inventoryRepository{store: s}
}

// Restock returns the ledger view of the store.
func (s *Store) Restock() repository.RestockRepository {
	return &restockRepository{store: s}
}

// hasOpenLocked reports an open request for the item. Caller holds the lock.
func (s *Store) hasOpenLocked(itemID int64) bool {
	for _, req := range s.requests {
		if req.ItemID == itemID && req.Status.Open() {
			return true
		}
	}

	return false
}

func copyItem(item *domain.Item) *domain.Item {
	clone := *item
	return &clone
}

func (s *Store) copyRequestLocked(req *domain.RestockRequest) *domain.RestockRequest {
	clone := *req
	if item, ok := s.items[req.ItemID]; ok {
		clone.ItemName = item.Name
	}

	return &clone
}
