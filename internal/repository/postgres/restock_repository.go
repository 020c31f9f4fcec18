package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/FiyinfoluwaDav/Datathon-2025/internal/domain"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/repository"
	"github.com/jmoiron/sqlx"
)

type restockRepository struct {
	db *DB
}

func NewRestockRepository(db *DB) repository.RestockRepository {
	return &restockRepository{db: db}
}

const requestColumns = `
	r.id, r.item_id, i.name AS item_name, r.quantity, r.priority,
	r.status, r.requested_at, r.comments
`

func (r *restockRepository) Create(ctx context.Context, req *domain.RestockRequest) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		// Serialize per item so two concurrent creates cannot both pass the
		// open-request check. The partial unique index on open requests is
		// the schema-level backstop.
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, req.ItemID); err != nil {
			return fmt.Errorf("failed to take item lock: %w", err)
		}

		var itemName string
		err := tx.QueryRowxContext(ctx, `SELECT name FROM items WHERE id = $1`, req.ItemID).Scan(&itemName)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("item %d: %w", req.ItemID, domain.ErrNotFound)
			}
			return fmt.Errorf("failed to resolve item: %w", err)
		}

		var hasOpen bool
		err = tx.QueryRowxContext(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM restock_requests
				WHERE item_id = $1 AND status IN ('pending', 'approved')
			)
		`, req.ItemID).Scan(&hasOpen)
		if err != nil {
			return fmt.Errorf("failed to check open requests: %w", err)
		}
		if hasOpen {
			return fmt.Errorf("item %d: %w", req.ItemID, domain.ErrDuplicateOpenRequest)
		}

		query := `
			INSERT INTO restock_requests (id, item_id, quantity, priority, status, requested_at, comments)
			VALUES ($1, $2, $3, $4, $5, NOW(), $6)
			RETURNING requested_at
		`
		err = tx.QueryRowxContext(ctx, query,
			req.ID, req.ItemID, req.Quantity, req.Priority, req.Status, req.Comments,
		).Scan(&req.RequestedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("item %d: %w", req.ItemID, domain.ErrDuplicateOpenRequest)
			}
			return fmt.Errorf("failed to insert restock request: %w", err)
		}

		req.ItemName = itemName
		return nil
	})
}

func (r *restockRepository) Get(ctx context.Context, id string) (*domain.RestockRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM restock_requests r
		JOIN items i ON i.id = r.item_id
		WHERE r.id = $1
	`

	var req domain.RestockRequest
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("restock request %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get restock request: %w", err)
	}

	return &req, nil
}

func (r *restockRepository) List(ctx context.Context, filter domain.RequestFilter) ([]*domain.RestockRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM restock_requests r
		JOIN items i ON i.id = r.item_id
	`

	var args []interface{}
	if filter.Status != "" {
		query += ` WHERE r.status = $1`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY r.requested_at ASC, r.id ASC`

	var requests []*domain.RestockRequest
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list restock requests: %w", err)
	}

	return requests, nil
}

func (r *restockRepository) HasOpen(ctx context.Context, itemID int64) (bool, error) {
	var hasOpen bool
	err := r.db.GetContext(ctx, &hasOpen, `
		SELECT EXISTS (
			SELECT 1 FROM restock_requests
			WHERE item_id = $1 AND status IN ('pending', 'approved')
		)
	`, itemID)
	if err != nil {
		return false, fmt.Errorf("failed to check open requests: %w", err)
	}

	return hasOpen, nil
}

func (r *restockRepository) UpdateStatus(ctx context.Context, id string, from, to domain.RequestStatus, comment string) (*domain.RestockRequest, error) {
	var req domain.RestockRequest

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		current, err := lockRequest(ctx, tx, id)
		if err != nil {
			return err
		}
		if current != from {
			return fmt.Errorf("restock request %s is %s, not %s: %w", id, current, from, domain.ErrInvalidTransition)
		}

		query := `
			UPDATE restock_requests
			SET status = $2,
			    comments = CASE WHEN $3 = '' THEN comments ELSE $3 END
			WHERE id = $1
		`
		if _, err := tx.ExecContext(ctx, query, id, to, comment); err != nil {
			return fmt.Errorf("failed to update restock request: %w", err)
		}

		return getRequestTx(ctx, tx, id, &req)
	})
	if err != nil {
		return nil, err
	}

	return &req, nil
}

func (r *restockRepository) Fulfill(ctx context.Context, id string) (*domain.RestockRequest, error) {
	var req domain.RestockRequest

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		current, err := lockRequest(ctx, tx, id)
		if err != nil {
			return err
		}
		if current != domain.StatusApproved {
			return fmt.Errorf("restock request %s is %s, not approved: %w", id, current, domain.ErrInvalidTransition)
		}

		// Stock bump and status change commit together or roll back together.
		res, err := tx.ExecContext(ctx, `
			UPDATE items
			SET current_stock = current_stock + (
				SELECT quantity FROM restock_requests WHERE id = $1
			), updated_at = NOW()
			WHERE id = (SELECT item_id FROM restock_requests WHERE id = $1)
		`, id)
		if err != nil {
			return fmt.Errorf("failed to apply replenishment: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("target item for request %s: %w", id, domain.ErrNotFound)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE restock_requests SET status = $2 WHERE id = $1`,
			id, domain.StatusFulfilled,
		); err != nil {
			return fmt.Errorf("failed to mark request fulfilled: %w", err)
		}

		return getRequestTx(ctx, tx, id, &req)
	})
	if err != nil {
		return nil, err
	}

	return &req, nil
}

// lockRequest locks the request row for the rest of the transaction and
// returns its current status.
func lockRequest(ctx context.Context, tx *sqlx.Tx, id string) (domain.RequestStatus, error) {
	var status domain.RequestStatus
	err := tx.QueryRowxContext(ctx,
		`SELECT status FROM restock_requests WHERE id = $1 FOR UPDATE`, id,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("restock request %s: %w", id, domain.ErrNotFound)
		}
		return "", fmt.Errorf("failed to lock restock request: %w", err)
	}

	return status, nil
}

func getRequestTx(ctx context.Context, tx *sqlx.Tx, id string, dest *domain.RestockRequest) error {
	query := `
		SELECT ` + requestColumns + `
		FROM restock_requests r
		JOIN items i ON i.id = r.item_id
		WHERE r.id = $1
	`
	if err := tx.GetContext(ctx, dest, query, id); err != nil {
		return fmt.Errorf("failed to reload restock request: %w", err)
	}

	return nil
}
