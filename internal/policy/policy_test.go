package policy

import (
	"testing"

	"github.com/FiyinfoluwaDav/Datathon-2025/internal/domain"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/forecast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateNoAction(t *testing.T) {
	p := New(DefaultConfig())
	item := &domain.Item{ID: 1, CurrentStock: 45, DailyUsage: 10}

	tests := []struct {
		name    string
		fc      domain.Forecast
		hasOpen bool
	}{
		{"unknown tier", domain.Forecast{Tier: domain.TierUnknown}, false},
		{"normal tier", domain.Forecast{RemainingDays: 20, Tier: domain.TierNormal}, false},
		{"open request exists", domain.Forecast{RemainingDays: 2, Tier: domain.TierCritical}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, p.Evaluate(item, tt.fc, tt.hasOpen))
		})
	}
}

func TestEvaluateQuantityAndPriority(t *testing.T) {
	p := New(Config{TargetDays: 7})
	item := &domain.Item{ID: 7, CurrentStock: 45, DailyUsage: 10}

	spec := p.Evaluate(item, forecast.Forecast(item), false)
	require.NotNil(t, spec)
	assert.Equal(t, int64(7), spec.ItemID)
	assert.Equal(t, 70, spec.Quantity) // 10/day * 7 days
	assert.Equal(t, domain.PriorityCritical, spec.Priority)
}

func TestEvaluateHighTierPriority(t *testing.T) {
	p := New(DefaultConfig())
	item := &domain.Item{ID: 2, CurrentStock: 80, DailyUsage: 10}

	spec := p.Evaluate(item, forecast.Forecast(item), false)
	require.NotNil(t, spec)
	assert.Equal(t, domain.PriorityHigh, spec.Priority)
}

func TestEvaluateQuantityRoundsUpAndFloors(t *testing.T) {
	p := New(Config{TargetDays: 3, MinQuantity: 5})

	// 0.5/day * 3 days = 1.5, ceil to 2, floored to the 5 minimum.
	item := &domain.Item{ID: 3, CurrentStock: 1, DailyUsage: 0.5}
	spec := p.Evaluate(item, forecast.Forecast(item), false)
	require.NotNil(t, spec)
	assert.Equal(t, 5, spec.Quantity)
}

func TestEvaluateMinimumTierRaised(t *testing.T) {
	p := New(Config{MinimumTier: domain.TierCritical})

	high := &domain.Item{ID: 4, CurrentStock: 80, DailyUsage: 10}
	assert.Nil(t, p.Evaluate(high, forecast.Forecast(high), false))

	critical := &domain.Item{ID: 5, CurrentStock: 20, DailyUsage: 10}
	assert.NotNil(t, p.Evaluate(critical, forecast.Forecast(critical), false))
}

func TestNewFillsDefaults(t *testing.T) {
	p := New(Config{})
	cfg := p.Config()
	assert.Equal(t, domain.TierHigh, cfg.MinimumTier)
	assert.Equal(t, 7, cfg.TargetDays)
	assert.Equal(t, 1, cfg.MinQuantity)
}
