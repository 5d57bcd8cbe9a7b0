package models

// BetSide represents the side of an over/under prop bet.
type BetSide string

const (
	BetSideOver  BetSide = "OVER"
	BetSideUnder BetSide = "UNDER"
)

// Opportunity is a mispriced prop line the model recommends acting on.
// Derived purely from an ImpactResult and a posted line; exists only as a
// returned value.
type Opportunity struct {
	TeammateID    int          `json:"teammate_id"`
	TeammateName  string       `json:"teammate_name"`
	Stat          StatCategory `json:"stat"`
	Prediction    float64      `json:"prediction"`
	PredictiveStd float64      `json:"predictive_std"`
	Line          float64      `json:"line"`
	Side          BetSide      `json:"side"`
	// WinProbability is the model's probability that the recommended
	// side wins.
	WinProbability float64 `json:"win_probability"`
	// Edge is the expected value per unit staked on the recommended
	// side, as a fraction (0.082 = 8.2%).
	Edge float64 `json:"edge"`
	// StakeFraction is the fractional-Kelly recommendation as a share
	// of bankroll.
	StakeFraction float64 `json:"stake_fraction"`
	// Impact carries the underlying with/without comparison for display.
	Impact ImpactResult `json:"impact"`
}

// SkipReason explains why a teammate with a posted line produced no
// opportunity.
type SkipReason string

const (
	SkipInsufficientData      SkipReason = "insufficient_data"
	SkipUndefinedDistribution SkipReason = "undefined_distribution"
	SkipNoGames               SkipReason = "no_games"
)

// SkippedTeammate records a teammate the finder could not evaluate.
type SkippedTeammate struct {
	TeammateName string     `json:"teammate_name"`
	Reason       SkipReason `json:"reason"`
	Detail       string     `json:"detail,omitempty"`
}
