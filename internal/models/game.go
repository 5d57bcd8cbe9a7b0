package models

import (
	"strings"
	"time"
)

// GameRecord identifies a single game instance for a team.
type GameRecord struct {
	GameID   string    `json:"game_id" validate:"required"`
	GameDate time.Time `json:"game_date" validate:"required"`
	Matchup  string    `json:"matchup"` // e.g. "PHI vs. BOS" or "PHI @ BOS"
	TeamID   int       `json:"team_id" validate:"required,gt=0"`
}

// IsHome reports whether the team played at home. The NBA matchup
// convention uses "vs." for home games and "@" for away games.
func (g *GameRecord) IsHome() bool {
	return strings.Contains(g.Matchup, "vs.")
}
