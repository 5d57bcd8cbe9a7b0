package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// StatCategory identifies a box-score stat column the model can evaluate.
type StatCategory string

const (
	StatPoints   StatCategory = "PTS"
	StatRebounds StatCategory = "REB"
	StatAssists  StatCategory = "AST"
	// StatPRA is the points+rebounds+assists composite commonly offered
	// as a player prop market.
	StatPRA StatCategory = "PRA"
)

// ParseStatCategory parses a stat column name, case-insensitively.
func ParseStatCategory(s string) (StatCategory, error) {
	switch StatCategory(strings.ToUpper(s)) {
	case StatPoints:
		return StatPoints, nil
	case StatRebounds:
		return StatRebounds, nil
	case StatAssists:
		return StatAssists, nil
	case StatPRA:
		return StatPRA, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStat, s)
	}
}

// Valid reports whether the category is one the model knows how to read.
func (s StatCategory) Valid() bool {
	_, err := ParseStatCategory(string(s))
	return err == nil
}

// PlayerGameStat is one player's box-score line for one game. Optional
// columns use pointers: a nil Minutes is an absent value, which is not
// the same thing as zero minutes played.
type PlayerGameStat struct {
	PlayerID   int       `json:"player_id" validate:"required,gt=0"`
	PlayerName string    `json:"player_name" validate:"required"`
	TeamID     int       `json:"team_id" validate:"required,gt=0"`
	GameID     string    `json:"game_id" validate:"required"`
	GameDate   time.Time `json:"game_date"`
	Matchup    string    `json:"matchup"`
	Minutes    *float64  `json:"minutes"`
	Points     *float64  `json:"points"`
	Rebounds   *float64  `json:"rebounds"`
	Assists    *float64  `json:"assists"`
}

// Played reports whether the row records actual participation: minutes
// present and greater than zero.
func (p *PlayerGameStat) Played() bool {
	return p.Minutes != nil && !math.IsNaN(*p.Minutes) && *p.Minutes > 0
}

// HasMinutes reports whether the minutes column carries a usable value.
// Rows with absent minutes must be flagged, never coerced to zero.
func (p *PlayerGameStat) HasMinutes() bool {
	return p.Minutes != nil && !math.IsNaN(*p.Minutes)
}

// StatValue returns the value of the requested stat column. The second
// return is false when the column (or any component of a composite) is
// absent or NaN on this row.
func (p *PlayerGameStat) StatValue(stat StatCategory) (float64, bool) {
	switch stat {
	case StatPoints:
		return deref(p.Points)
	case StatRebounds:
		return deref(p.Rebounds)
	case StatAssists:
		return deref(p.Assists)
	case StatPRA:
		pts, ok1 := deref(p.Points)
		reb, ok2 := deref(p.Rebounds)
		ast, ok3 := deref(p.Assists)
		if !ok1 || !ok2 || !ok3 {
			return 0, false
		}
		return pts + reb + ast, true
	default:
		return 0, false
	}
}

func deref(v *float64) (float64, bool) {
	if v == nil || math.IsNaN(*v) {
		return 0, false
	}
	return *v, true
}
