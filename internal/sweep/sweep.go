// Package sweep runs the auto-restock evaluation over the whole catalog:
// forecast each item, consult the restock policy, and commit the resulting
// specs to the ledger. Preview mode shares the exact same evaluation and
// only skips the ledger writes.
package sweep

import (
	"context"
	"errors"

	"github.com/FiyinfoluwaDav/Datathon-2025/internal/domain"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/forecast"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/policy"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/repository"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/service"
	"github.com/rs/zerolog/log"
)

type Sweep struct {
	inventory repository.InventoryRepository
	requests  repository.RestockRepository
	policy    *policy.Policy
}

func New(inventory repository.InventoryRepository, requests repository.RestockRepository, pol *policy.Policy) *Sweep {
	if pol == nil {
		pol = policy.New(policy.DefaultConfig())
	}
	return &Sweep{inventory: inventory, requests: requests, policy: pol}
}

// Run evaluates every catalog item exactly once. With commit=true, request
// specs are written to the ledger; a concurrent writer winning the race for
// an item demotes it to skipped rather than failing the sweep. With
// commit=false the returned requests are previews and carry no id.
//
// Running twice with no state change creates nothing on the second pass:
// the first pass's open requests make the policy decline every item.
func (s *Sweep) Run(ctx context.Context, commit bool) (*domain.SweepResult, error) {
	items, err := s.inventory.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	result := &domain.SweepResult{
		Created: []*domain.RestockRequest{},
		Skipped: []int64{},
	}

	for _, item := range items {
		fc := forecast.Forecast(item)

		hasOpen, err := s.requests.HasOpen(ctx, item.ID)
		if err != nil {
			return nil, err
		}

		spec := s.policy.Evaluate(item, fc, hasOpen)
		if spec == nil {
			result.Skipped = append(result.Skipped, item.ID)
			continue
		}

		req := service.NewRequest(*spec)
		req.ItemName = item.Name

		if commit {
			if err := s.requests.Create(ctx, req); err != nil {
				if errors.Is(err, domain.ErrDuplicateOpenRequest) {
					// Lost the race to a concurrent sweep or manual request.
					result.Skipped = append(result.Skipped, item.ID)
					continue
				}
				return nil, err
			}
			log.Info().
				Int64("item_id", item.ID).
				Str("item", item.Name).
				Str("priority", string(req.Priority)).
				Int("quantity", req.Quantity).
				Int("remaining_days", fc.RemainingDays).
				Msg("sweep: restock request created")
		} else {
			req.ID = ""
		}

		result.Created = append(result.Created, req)
	}

	return result, nil
}
