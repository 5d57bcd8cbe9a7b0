// Package analysis implements the injury impact pipeline: cohort
// splitting, significance testing, prediction, edge calculation and
// stake sizing.
package analysis

import (
	"github.com/evanchechak/basketball-injury-model/internal/dataset"
	"github.com/evanchechak/basketball-injury-model/internal/models"
)

// CohortSplit holds a teammate's stat observations partitioned by
// whether the injured player took the court in the same game.
type CohortSplit struct {
	With    []float64
	Without []float64
	// Excluded counts teammate rows dropped for absent minutes, an
	// absent or NaN stat value, or a game id not in the team's game
	// table. Rows where the teammate logged zero minutes are not
	// counted here; sitting out is not a data-quality problem.
	Excluded int
}

// Observations returns the total usable observation count across both
// cohorts.
func (c CohortSplit) Observations() int {
	return len(c.With) + len(c.Without)
}

// All returns both cohorts concatenated, without-cohort last.
func (c CohortSplit) All() []float64 {
	out := make([]float64, 0, c.Observations())
	out = append(out, c.With...)
	out = append(out, c.Without...)
	return out
}

// SplitCohorts partitions the teammate's game rows by the injured
// player's participation. A game belongs to the with-cohort when the
// injured player has a row for it with positive minutes; every other
// team game the teammate played goes to the without-cohort.
func SplitCohorts(ds *dataset.Dataset, injuredID, teammateID, teamID int, stat models.StatCategory) CohortSplit {
	played := make(map[string]struct{})
	for _, row := range ds.PlayerRows(injuredID) {
		if row.Played() {
			played[row.GameID] = struct{}{}
		}
	}

	teamGames := ds.TeamGameIDs(teamID)

	var split CohortSplit
	for _, row := range ds.PlayerRows(teammateID) {
		if _, ok := teamGames[row.GameID]; !ok {
			split.Excluded++
			continue
		}
		if !row.HasMinutes() {
			split.Excluded++
			continue
		}
		if !row.Played() {
			// Zero minutes: the teammate dressed but did not play.
			continue
		}
		value, ok := row.StatValue(stat)
		if !ok {
			split.Excluded++
			continue
		}
		if _, with := played[row.GameID]; with {
			split.With = append(split.With, value)
		} else {
			split.Without = append(split.Without, value)
		}
	}

	return split
}
