package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKellyFractionBreakEven(t *testing.T) {
	b := 0.909
	breakEven := 1 / (1 + b)

	assert.Zero(t, KellyFraction(breakEven, b))
	assert.Zero(t, KellyFraction(breakEven-0.05, b))
	assert.Greater(t, KellyFraction(breakEven+0.01, b), 0.0)
}

// Above break-even the Kelly fraction increases monotonically in the
// win probability.
func TestKellyFractionMonotone(t *testing.T) {
	b := 0.909
	prev := 0.0
	for p := 0.55; p <= 0.95; p += 0.05 {
		f := KellyFraction(p, b)
		assert.Greater(t, f, prev, "p=%g", p)
		prev = f
	}
}

func TestKellyFractionKnownValue(t *testing.T) {
	// f* = (0.909*0.6 - 0.4) / 0.909
	assert.InDelta(t, 0.15995598, KellyFraction(0.6, 0.909), 1e-6)
}

func TestKellyFractionInvalidPayout(t *testing.T) {
	assert.Zero(t, KellyFraction(0.9, 0))
	assert.Zero(t, KellyFraction(0.9, -1))
}

func TestRecommendStakeAppliesMultiplier(t *testing.T) {
	cfg := testBettingConfig()

	full := KellyFraction(0.6, cfg.PayoutOdds)
	stake := RecommendStake(cfg, 0.6)
	assert.InDelta(t, full*cfg.KellyMultiplier, stake, 1e-9)
}

func TestRecommendStakeCapped(t *testing.T) {
	cfg := testBettingConfig()

	stake := RecommendStake(cfg, 0.99)
	assert.Equal(t, cfg.MaxStakeFraction, stake)
}

func TestRecommendStakeNoEdgeNoBet(t *testing.T) {
	cfg := testBettingConfig()

	assert.Zero(t, RecommendStake(cfg, 0.4))
}
