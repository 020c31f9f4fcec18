// Package policy decides whether a forecast warrants a new restock request.
// Evaluate has no side effects; committing the resulting spec to the ledger
// is the caller's job, which keeps the decision testable without storage.
package policy

import (
	"math"

	"github.com/FiyinfoluwaDav/Datathon-2025/internal/domain"
)

// Config holds the restock policy knobs.
type Config struct {
	// MinimumTier is the least urgent tier that still triggers an automatic
	// request. The default, TierHigh, means Critical and High trigger and
	// Normal does not.
	MinimumTier domain.UrgencyTier

	// TargetDays is how many days of usage the top-up quantity should cover.
	// The suggested quantity is ceil(daily_usage * TargetDays).
	TargetDays int

	// MinQuantity floors the suggested quantity so very low usage rates
	// still produce an orderable amount.
	MinQuantity int
}

// DefaultConfig mirrors the facility's standing order: one week of cover,
// triggered at High urgency or worse.
func DefaultConfig() Config {
	return Config{
		MinimumTier: domain.TierHigh,
		TargetDays:  7,
		MinQuantity: 1,
	}
}

// Policy evaluates forecasts against the configured thresholds.
type Policy struct {
	cfg Config
}

// New builds a policy, filling zero-valued knobs from DefaultConfig.
func New(cfg Config) *Policy {
	def := DefaultConfig()
	if cfg.MinimumTier == domain.TierUnknown {
		cfg.MinimumTier = def.MinimumTier
	}
	if cfg.TargetDays <= 0 {
		cfg.TargetDays = def.TargetDays
	}
	if cfg.MinQuantity <= 0 {
		cfg.MinQuantity = def.MinQuantity
	}

	return &Policy{cfg: cfg}
}

// Config returns the effective configuration.
func (p *Policy) Config() Config {
	return p.cfg
}

// Evaluate returns the request spec to commit for this item, or nil when no
// request is needed: the tier is Unknown, the tier is below the configured
// minimum, or an open request already exists for the item.
func (p *Policy) Evaluate(item *domain.Item, fc domain.Forecast, hasOpenRequest bool) *domain.RequestSpec {
	if fc.Tier == domain.TierUnknown || fc.Tier < p.cfg.MinimumTier {
		return nil
	}
	if hasOpenRequest {
		return nil
	}

	quantity := int(math.Ceil(item.DailyUsage * float64(p.cfg.TargetDays)))
	if quantity < p.cfg.MinQuantity {
		quantity = p.cfg.MinQuantity
	}

	priority, ok := fc.Tier.Priority()
	if !ok {
		return nil
	}

	return &domain.RequestSpec{
		ItemID:   item.ID,
		Quantity: quantity,
		Priority: priority,
	}
}
