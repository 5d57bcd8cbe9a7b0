package analysis

import (
	"github.com/evanchechak/basketball-injury-model/internal/config"
)

// KellyFraction returns the full Kelly stake for a bet paying b per unit
// on a win with win probability p: (b*p - q) / b. A non-positive
// fraction means the bet has no edge and the stake is zero.
func KellyFraction(winProb, payout float64) float64 {
	if payout <= 0 {
		return 0
	}
	f := (payout*winProb - (1 - winProb)) / payout
	if f < 0 {
		return 0
	}
	return f
}

// RecommendStake converts a win probability into a bankroll fraction:
// full Kelly scaled by the configured multiplier, then capped.
func RecommendStake(cfg config.BettingConfig, winProb float64) float64 {
	stake := KellyFraction(winProb, cfg.PayoutOdds) * cfg.KellyMultiplier
	if stake > cfg.MaxStakeFraction {
		return cfg.MaxStakeFraction
	}
	return stake
}
