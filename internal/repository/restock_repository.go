package repository

import (
	"context"

	"github.com/FiyinfoluwaDav/Datathon-2025/internal/domain"
)

// RestockRepository owns the restock request ledger. Implementations must
// serialize mutations per item so two concurrent creates cannot both pass
// the open-request check.
type RestockRepository interface {
	// Create inserts a pending request. It fails with
	// domain.ErrDuplicateOpenRequest when the item already has an open
	// (pending or approved) request; the check and the insert are atomic.
	Create(ctx context.Context, req *domain.RestockRequest) error

	// Get returns the request or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.RestockRequest, error)

	// List returns requests ordered by requested_at ascending, optionally
	// narrowed by status.
	List(ctx context.Context, filter domain.RequestFilter) ([]*domain.RestockRequest, error)

	// HasOpen reports whether the item has a pending or approved request.
	HasOpen(ctx context.Context, itemID int64) (bool, error)

	// UpdateStatus moves a request from one status to another as a single
	// compare-and-set: domain.ErrInvalidTransition when the current status
	// is not `from`, domain.ErrNotFound for unknown ids. A non-empty comment
	// is recorded on the transition.
	UpdateStatus(ctx context.Context, id string, from, to domain.RequestStatus, comment string) (*domain.RestockRequest, error)

	// Fulfill marks an approved request fulfilled and adds its quantity to
	// the target item's stock. Both writes happen atomically; requests not
	// in approved state fail with domain.ErrInvalidTransition and leave the
	// stock unchanged.
	Fulfill(ctx context.Context, id string) (*domain.RestockRequest, error)
}
