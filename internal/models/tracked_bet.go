package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BetStatus represents the lifecycle state of a tracked bet.
type BetStatus string

const (
	BetStatusPending BetStatus = "pending"
	BetStatusSettled BetStatus = "settled"
	// BetStatusPush means the actual landed exactly on the line; the
	// stake is refunded.
	BetStatusPush BetStatus = "push"
)

// BetResult is the win/loss outcome of a settled bet.
type BetResult string

const (
	BetResultWin  BetResult = "win"
	BetResultLoss BetResult = "loss"
)

// TrackedBet is a prop bet recorded for performance tracking.
type TrackedBet struct {
	ID             uuid.UUID       `db:"id" json:"id" validate:"required,uuid4"`
	PlayerName     string          `db:"player_name" json:"player_name" validate:"required"`
	Stat           StatCategory    `db:"stat" json:"stat" validate:"required"`
	Line           float64         `db:"line" json:"line" validate:"required"`
	Side           BetSide         `db:"side" json:"side" validate:"required,oneof=OVER UNDER"`
	Prediction     float64         `db:"prediction" json:"prediction"`
	Amount         decimal.Decimal `db:"amount" json:"amount"`
	EdgePercent    float64         `db:"edge_percent" json:"edge_percent"`
	WinProbability float64         `db:"win_probability" json:"win_probability"`
	Notes          string          `db:"notes" json:"notes"`
	Status         BetStatus       `db:"status" json:"status" validate:"required"`
	Result         *BetResult      `db:"result" json:"result"`
	Actual         *float64        `db:"actual" json:"actual"`
	Profit         *decimal.Decimal `db:"profit" json:"profit"`
	PlacedAt       time.Time       `db:"placed_at" json:"placed_at" validate:"required"`
	SettledAt      *time.Time      `db:"settled_at" json:"settled_at"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// IsSettled checks if the bet has been resolved, including pushes.
func (b *TrackedBet) IsSettled() bool {
	return b.Status != BetStatusPending && b.SettledAt != nil
}

// ProfitValue returns the realized profit, zero for unsettled bets.
func (b *TrackedBet) ProfitValue() decimal.Decimal {
	if b.Profit == nil {
		return decimal.Zero
	}
	return *b.Profit
}

// ROI returns the return on investment percentage for a settled bet.
func (b *TrackedBet) ROI() float64 {
	if b.Amount.IsZero() {
		return 0
	}
	roi, _ := b.ProfitValue().Div(b.Amount).Mul(decimal.NewFromInt(100)).Float64()
	return roi
}
