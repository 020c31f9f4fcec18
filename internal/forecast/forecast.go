// Package forecast turns a stock record into a depletion estimate. It is
// pure: the same item always yields the same forecast, so sweeps can re-run
// it idempotently.
package forecast

import (
	"math"

	"github.com/FiyinfoluwaDav/Datathon-2025/internal/domain"
)

// Tier thresholds in days of remaining cover, inclusive.
const (
	CriticalDays = 5
	HighDays     = 10
)

// Forecast estimates how many whole days of stock remain for an item and
// classifies the urgency. Items with no usage signal (daily usage <= 0) get
// TierUnknown rather than a numeric infinity.
func Forecast(item *domain.Item) domain.Forecast {
	if item.DailyUsage <= 0 {
		return domain.Forecast{Tier: domain.TierUnknown}
	}

	days := int(math.Floor(float64(item.CurrentStock) / item.DailyUsage))

	return domain.Forecast{
		RemainingDays: days,
		Tier:          TierFor(days),
	}
}

// TierFor maps whole days of remaining cover to an urgency tier.
func TierFor(remainingDays int) domain.UrgencyTier {
	switch {
	case remainingDays <= CriticalDays:
		return domain.TierCritical
	case remainingDays <= HighDays:
		return domain.TierHigh
	default:
		return domain.TierNormal
	}
}
