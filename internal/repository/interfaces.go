// Package repository provides data access for tracked bets.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/evanchechak/basketball-injury-model/internal/models"
)

// BetRepository defines the interface for tracked-bet data access
type BetRepository interface {
	Create(ctx context.Context, bet *models.TrackedBet) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.TrackedBet, error)
	Update(ctx context.Context, bet *models.TrackedBet) error
	GetPendingBets(ctx context.Context) ([]*models.TrackedBet, error)
	GetSettledBets(ctx context.Context, start, end time.Time) ([]*models.TrackedBet, error)
	GetByPlayer(ctx context.Context, playerName string) ([]*models.TrackedBet, error)
}
