// Package tracker records prop bets and settles them against actual
// results, keeping win-rate and ROI bookkeeping.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/evanchechak/basketball-injury-model/internal/config"
	"github.com/evanchechak/basketball-injury-model/internal/logger"
	"github.com/evanchechak/basketball-injury-model/internal/metrics"
	"github.com/evanchechak/basketball-injury-model/internal/models"
	"github.com/evanchechak/basketball-injury-model/internal/repository"
)

// ErrAlreadySettled is returned when settling a bet that is no longer
// pending.
var ErrAlreadySettled = errors.New("bet already settled")

// RecordRequest describes a bet to enter into the tracker.
type RecordRequest struct {
	PlayerName     string
	Stat           models.StatCategory
	Line           float64
	Side           models.BetSide
	Prediction     float64
	Amount         decimal.Decimal
	EdgePercent    float64
	WinProbability float64
	Notes          string
	PlacedAt       time.Time
}

// Summary aggregates settled-bet performance over a period.
type Summary struct {
	TotalBets   int
	Wins        int
	Losses      int
	Pushes      int
	TotalStaked decimal.Decimal
	TotalProfit decimal.Decimal
	WinRate     float64
	ROIPercent  float64
}

// Tracker manages the tracked-bet lifecycle.
type Tracker struct {
	repo   repository.BetRepository
	payout decimal.Decimal
	audit  *logger.AuditLogger
	log    *logrus.Logger
}

// NewTracker creates a bet tracker using the configured payout odds.
func NewTracker(repo repository.BetRepository, cfg config.BettingConfig, log *logrus.Logger) *Tracker {
	return &Tracker{
		repo:   repo,
		payout: decimal.NewFromFloat(cfg.PayoutOdds),
		audit:  logger.NewAuditLogger(log),
		log:    log,
	}
}

// Record validates and persists a new pending bet.
func (t *Tracker) Record(ctx context.Context, req RecordRequest) (*models.TrackedBet, error) {
	if req.PlayerName == "" {
		return nil, fmt.Errorf("player name is required")
	}
	if !req.Stat.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownStat, req.Stat)
	}
	if req.Side != models.BetSideOver && req.Side != models.BetSideUnder {
		return nil, fmt.Errorf("invalid bet side %q", req.Side)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("bet amount must be positive, got %s", req.Amount)
	}

	placedAt := req.PlacedAt
	if placedAt.IsZero() {
		placedAt = time.Now().UTC()
	}

	bet := &models.TrackedBet{
		ID:             uuid.New(),
		PlayerName:     req.PlayerName,
		Stat:           req.Stat,
		Line:           req.Line,
		Side:           req.Side,
		Prediction:     req.Prediction,
		Amount:         req.Amount,
		EdgePercent:    req.EdgePercent,
		WinProbability: req.WinProbability,
		Notes:          req.Notes,
		Status:         models.BetStatusPending,
		PlacedAt:       placedAt,
	}

	if err := t.repo.Create(ctx, bet); err != nil {
		return nil, fmt.Errorf("failed to record bet: %w", err)
	}

	t.audit.LogBetRecorded(bet)
	metrics.RecordBetRecorded()

	return bet, nil
}

// Settle resolves a pending bet against the actual stat value. An actual
// landing exactly on the line is a push: the stake is refunded and no
// win/loss result is assigned.
func (t *Tracker) Settle(ctx context.Context, id uuid.UUID, actual float64, settledAt time.Time) (*models.TrackedBet, error) {
	bet, err := t.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bet.Status != models.BetStatusPending {
		return nil, fmt.Errorf("%w: %s", ErrAlreadySettled, bet.ID)
	}

	if settledAt.IsZero() {
		settledAt = time.Now().UTC()
	}

	status, result, profit := t.resolve(bet, actual)

	bet.Status = status
	bet.Result = result
	bet.Actual = &actual
	bet.Profit = &profit
	bet.SettledAt = &settledAt

	if err := t.repo.Update(ctx, bet); err != nil {
		return nil, fmt.Errorf("failed to settle bet: %w", err)
	}

	t.audit.LogBetSettled(bet, actual, settledAt)
	metrics.RecordBetSettled(bet.Status)

	return bet, nil
}

// resolve determines the settlement outcome. Winning bets pay
// amount x payout odds; losing bets forfeit the stake.
func (t *Tracker) resolve(bet *models.TrackedBet, actual float64) (models.BetStatus, *models.BetResult, decimal.Decimal) {
	if actual == bet.Line {
		return models.BetStatusPush, nil, decimal.Zero
	}

	won := (bet.Side == models.BetSideOver && actual > bet.Line) ||
		(bet.Side == models.BetSideUnder && actual < bet.Line)

	if won {
		result := models.BetResultWin
		return models.BetStatusSettled, &result, bet.Amount.Mul(t.payout).Round(2)
	}

	result := models.BetResultLoss
	return models.BetStatusSettled, &result, bet.Amount.Neg()
}

// Pending returns all bets awaiting settlement, oldest first.
func (t *Tracker) Pending(ctx context.Context) ([]*models.TrackedBet, error) {
	bets, err := t.repo.GetPendingBets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending bets: %w", err)
	}

	metrics.UpdatePendingBets(float64(len(bets)))

	return bets, nil
}

// Summarize aggregates settled-bet performance within a date range.
func (t *Tracker) Summarize(ctx context.Context, start, end time.Time) (*Summary, error) {
	bets, err := t.repo.GetSettledBets(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load settled bets: %w", err)
	}

	summary := &Summary{
		TotalBets:   len(bets),
		TotalStaked: decimal.Zero,
		TotalProfit: decimal.Zero,
	}

	for _, bet := range bets {
		switch {
		case bet.Status == models.BetStatusPush:
			summary.Pushes++
		case bet.Result != nil && *bet.Result == models.BetResultWin:
			summary.Wins++
		case bet.Result != nil && *bet.Result == models.BetResultLoss:
			summary.Losses++
		}

		// Pushed stakes are refunded and excluded from ROI.
		if bet.Status != models.BetStatusPush {
			summary.TotalStaked = summary.TotalStaked.Add(bet.Amount)
		}
		summary.TotalProfit = summary.TotalProfit.Add(bet.ProfitValue())
	}

	if decided := summary.Wins + summary.Losses; decided > 0 {
		summary.WinRate = float64(summary.Wins) / float64(decided)
	}
	if summary.TotalStaked.IsPositive() {
		roi, _ := summary.TotalProfit.Div(summary.TotalStaked).Mul(decimal.NewFromInt(100)).Float64()
		summary.ROIPercent = roi
	}

	metrics.UpdateTrackerROI(summary.ROIPercent)

	t.log.WithFields(logrus.Fields{
		"total_bets":   summary.TotalBets,
		"wins":         summary.Wins,
		"losses":       summary.Losses,
		"pushes":       summary.Pushes,
		"total_profit": summary.TotalProfit.String(),
		"roi_percent":  summary.ROIPercent,
	}).Info("Tracker summary computed")

	return summary, nil
}
