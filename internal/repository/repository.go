package repository

import (
	"fmt"

	"github.com/evanchechak/basketball-injury-model/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Bet BetRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Bet: NewPostgresBetRepository(db),
	}, nil
}
