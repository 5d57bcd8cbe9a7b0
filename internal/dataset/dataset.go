// Package dataset holds the validated in-memory snapshot of game and
// player box-score tables that the analysis pipeline reads. It is the
// input boundary: tables are checked against the schema contract once,
// on construction, so the core never has to guess about column presence.
package dataset

import (
	"fmt"

	"github.com/evanchechak/basketball-injury-model/internal/models"
)

// PlayerRef identifies a distinct player appearing in the stat table.
type PlayerRef struct {
	ID   int
	Name string
}

// Dataset is an immutable snapshot of the two input tables. All analysis
// calls read from it; nothing mutates it after construction, so callers
// may share one snapshot across concurrent evaluations.
type Dataset struct {
	games []models.GameRecord
	stats []models.PlayerGameStat

	teamGames      map[int]map[string]struct{}
	rowsByPlayer   map[int][]models.PlayerGameStat
	playersByTeam  map[int][]PlayerRef
	flaggedMinutes int
}

// New validates the supplied tables and builds a snapshot. Structural
// problems (empty identifiers, duplicate game ids for a team) are fatal
// here: letting them through would corrupt every downstream estimate.
func New(games []models.GameRecord, stats []models.PlayerGameStat) (*Dataset, error) {
	ds := &Dataset{
		games:         games,
		stats:         stats,
		teamGames:     make(map[int]map[string]struct{}),
		rowsByPlayer:  make(map[int][]models.PlayerGameStat),
		playersByTeam: make(map[int][]PlayerRef),
	}

	for i, g := range games {
		if g.GameID == "" {
			return nil, fmt.Errorf("%w: game row %d has empty game id", models.ErrMalformedInput, i)
		}
		if g.TeamID <= 0 {
			return nil, fmt.Errorf("%w: game row %d has invalid team id %d", models.ErrMalformedInput, i, g.TeamID)
		}
		if ds.teamGames[g.TeamID] == nil {
			ds.teamGames[g.TeamID] = make(map[string]struct{})
		}
		if _, dup := ds.teamGames[g.TeamID][g.GameID]; dup {
			return nil, fmt.Errorf("%w: duplicate game id %s for team %d", models.ErrMalformedInput, g.GameID, g.TeamID)
		}
		ds.teamGames[g.TeamID][g.GameID] = struct{}{}
	}

	seenPlayer := make(map[int]map[int]struct{}) // team -> player ids
	for i, s := range stats {
		if s.PlayerID <= 0 || s.GameID == "" || s.TeamID <= 0 {
			return nil, fmt.Errorf("%w: stat row %d is missing an identifier", models.ErrMalformedInput, i)
		}
		if s.PlayerName == "" {
			return nil, fmt.Errorf("%w: stat row %d has empty player name", models.ErrMalformedInput, i)
		}
		if !s.HasMinutes() {
			// Absent minutes is not the same as zero minutes; count it
			// so the exclusion is auditable.
			ds.flaggedMinutes++
		}
		ds.rowsByPlayer[s.PlayerID] = append(ds.rowsByPlayer[s.PlayerID], s)
		if seenPlayer[s.TeamID] == nil {
			seenPlayer[s.TeamID] = make(map[int]struct{})
		}
		if _, ok := seenPlayer[s.TeamID][s.PlayerID]; !ok {
			seenPlayer[s.TeamID][s.PlayerID] = struct{}{}
			ds.playersByTeam[s.TeamID] = append(ds.playersByTeam[s.TeamID], PlayerRef{ID: s.PlayerID, Name: s.PlayerName})
		}
	}

	return ds, nil
}

// RequireStat verifies the requested stat column exists in the stat
// table before any per-teammate work begins. An unknown category, or a
// column with no usable value on any row, is a malformed-input failure.
func (d *Dataset) RequireStat(stat models.StatCategory) error {
	if !stat.Valid() {
		return fmt.Errorf("%w: stat column %q is not in the schema", models.ErrMalformedInput, stat)
	}
	for i := range d.stats {
		if _, ok := d.stats[i].StatValue(stat); ok {
			return nil
		}
	}
	return fmt.Errorf("%w: stat column %q has no values in the supplied table", models.ErrMalformedInput, stat)
}

// Games returns the game table.
func (d *Dataset) Games() []models.GameRecord { return d.games }

// PlayerStats returns the full stat table.
func (d *Dataset) PlayerStats() []models.PlayerGameStat { return d.stats }

// TeamGameIDs returns the set of game identifiers the team actually
// played, per the game table.
func (d *Dataset) TeamGameIDs(teamID int) map[string]struct{} {
	return d.teamGames[teamID]
}

// PlayerRows returns every stat row recorded for the player, in table
// order.
func (d *Dataset) PlayerRows(playerID int) []models.PlayerGameStat {
	return d.rowsByPlayer[playerID]
}

// TeamPlayers returns the distinct players with at least one stat row
// for the team, in first-appearance order.
func (d *Dataset) TeamPlayers(teamID int) []PlayerRef {
	return d.playersByTeam[teamID]
}

// FlaggedMinutesRows reports how many stat rows carried an absent
// minutes value and were therefore excluded from cohort membership.
func (d *Dataset) FlaggedMinutesRows() int { return d.flaggedMinutes }
