package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/evanchechak/basketball-injury-model/internal/database"
	"github.com/evanchechak/basketball-injury-model/internal/models"
)

const trackedBetColumns = `id, player_name, stat, line, side, prediction, amount, edge_percent,
	       win_probability, notes, status, result, actual, profit, placed_at, settled_at,
	       created_at, updated_at`

// PostgresBetRepository implements BetRepository for PostgreSQL
type PostgresBetRepository struct {
	db *database.DB
}

// NewPostgresBetRepository creates a new bet repository
func NewPostgresBetRepository(db *database.DB) BetRepository {
	return &PostgresBetRepository{db: db}
}

// Create inserts a new tracked bet
func (b *PostgresBetRepository) Create(ctx context.Context, bet *models.TrackedBet) error {
	query := `
		INSERT INTO tracked_bets (id, player_name, stat, line, side, prediction, amount,
		                          edge_percent, win_probability, notes, status, placed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := b.db.GetPool().Exec(ctx, query,
		bet.ID, bet.PlayerName, bet.Stat, bet.Line, bet.Side, bet.Prediction, bet.Amount,
		bet.EdgePercent, bet.WinProbability, bet.Notes, bet.Status, bet.PlacedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create tracked bet: %w", err)
	}

	return nil
}

// GetByID retrieves a tracked bet by ID
func (b *PostgresBetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.TrackedBet, error) {
	query := `SELECT ` + trackedBetColumns + ` FROM tracked_bets WHERE id = $1`

	bet := &models.TrackedBet{}
	err := b.db.GetPool().QueryRow(ctx, query, id).Scan(
		&bet.ID, &bet.PlayerName, &bet.Stat, &bet.Line, &bet.Side, &bet.Prediction, &bet.Amount,
		&bet.EdgePercent, &bet.WinProbability, &bet.Notes, &bet.Status, &bet.Result, &bet.Actual,
		&bet.Profit, &bet.PlacedAt, &bet.SettledAt, &bet.CreatedAt, &bet.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tracked bet: %w", err)
	}

	return bet, nil
}

// Update updates a tracked bet's settlement fields
func (b *PostgresBetRepository) Update(ctx context.Context, bet *models.TrackedBet) error {
	query := `
		UPDATE tracked_bets SET
			status = $2, result = $3, actual = $4, profit = $5, settled_at = $6,
			notes = $7, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := b.db.GetPool().Exec(ctx, query,
		bet.ID, bet.Status, bet.Result, bet.Actual, bet.Profit, bet.SettledAt, bet.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update tracked bet: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// GetPendingBets retrieves all pending bets, oldest first
func (b *PostgresBetRepository) GetPendingBets(ctx context.Context) ([]*models.TrackedBet, error) {
	query := `SELECT ` + trackedBetColumns + `
		FROM tracked_bets
		WHERE status = 'pending'
		ORDER BY placed_at ASC`

	return b.queryBets(ctx, query)
}

// GetSettledBets retrieves all resolved bets within a date range,
// pushes included
func (b *PostgresBetRepository) GetSettledBets(ctx context.Context, start, end time.Time) ([]*models.TrackedBet, error) {
	query := `SELECT ` + trackedBetColumns + `
		FROM tracked_bets
		WHERE status <> 'pending' AND settled_at >= $1 AND settled_at <= $2
		ORDER BY settled_at DESC`

	return b.queryBets(ctx, query, start, end)
}

// GetByPlayer retrieves all bets recorded against a player
func (b *PostgresBetRepository) GetByPlayer(ctx context.Context, playerName string) ([]*models.TrackedBet, error) {
	query := `SELECT ` + trackedBetColumns + `
		FROM tracked_bets
		WHERE player_name = $1
		ORDER BY placed_at DESC`

	return b.queryBets(ctx, query, playerName)
}

func (b *PostgresBetRepository) queryBets(ctx context.Context, query string, args ...interface{}) ([]*models.TrackedBet, error) {
	rows, err := b.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracked bets: %w", err)
	}
	defer rows.Close()

	var bets []*models.TrackedBet
	for rows.Next() {
		bet := &models.TrackedBet{}
		err := rows.Scan(
			&bet.ID, &bet.PlayerName, &bet.Stat, &bet.Line, &bet.Side, &bet.Prediction, &bet.Amount,
			&bet.EdgePercent, &bet.WinProbability, &bet.Notes, &bet.Status, &bet.Result, &bet.Actual,
			&bet.Profit, &bet.PlacedAt, &bet.SettledAt, &bet.CreatedAt, &bet.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tracked bet: %w", err)
		}
		bets = append(bets, bet)
	}

	return bets, rows.Err()
}
