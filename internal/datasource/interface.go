// Package datasource fetches game logs, rosters and player indexes from
// external basketball statistics providers and snapshots them locally.
package datasource

import (
	"context"
	"errors"

	"github.com/evanchechak/basketball-injury-model/internal/models"
)

// DataSource defines the interface for fetching basketball data from
// external providers
type DataSource interface {
	// FetchPlayerGameLog retrieves a player's per-game box scores for a season
	FetchPlayerGameLog(ctx context.Context, playerID int, season string) ([]models.PlayerGameStat, error)

	// FetchTeamGameLog retrieves every game a team played in a season
	FetchTeamGameLog(ctx context.Context, teamID int, season string) ([]models.GameRecord, error)

	// FetchTeamRoster retrieves the current roster for a team
	FetchTeamRoster(ctx context.Context, teamID int, season string) ([]RosterEntry, error)

	// FindPlayer resolves a player name to an identifier, exact match on
	// the provider's display name
	FindPlayer(ctx context.Context, name string) (*PlayerInfo, error)

	// Name returns the name of the data source
	Name() string

	// IsEnabled returns whether this data source is currently enabled
	IsEnabled() bool
}

// RosterEntry represents one player on a team roster
type RosterEntry struct {
	PlayerID int    `json:"player_id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Number   string `json:"number"`
}

// PlayerInfo identifies a player in the provider's index
type PlayerInfo struct {
	PlayerID int    `json:"player_id"`
	Name     string `json:"name"`
	TeamID   int    `json:"team_id"`
	IsActive bool   `json:"is_active"`
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
	ErrCodeUnknown              = "unknown"
)

// Error constructors
var (
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotFound             = errors.New("data not found")
	ErrInvalidData          = errors.New("invalid data format")
	ErrNetworkError         = errors.New("network error")
	ErrServerError          = errors.New("server error")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
