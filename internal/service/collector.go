// Package service orchestrates data collection from the stats provider
// into local snapshots the analysis pipeline can load.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/evanchechak/basketball-injury-model/internal/dataset"
	"github.com/evanchechak/basketball-injury-model/internal/datasource"
	"github.com/evanchechak/basketball-injury-model/internal/models"
)

// CollectionResult summarizes one team-season collection run.
type CollectionResult struct {
	TeamID   int
	Season   string
	Games    int
	Players  int
	StatRows int
	Errors   int
	Duration time.Duration
}

// Collector fetches a team's season of game logs from the provider and
// snapshots it locally.
type Collector struct {
	source datasource.DataSource
	store  *datasource.CSVStore
	log    *logrus.Logger
}

// NewCollector creates a collection service.
func NewCollector(source datasource.DataSource, store *datasource.CSVStore, log *logrus.Logger) *Collector {
	return &Collector{
		source: source,
		store:  store,
		log:    log,
	}
}

// CollectTeamSeason fetches the team game log, the roster, and every
// rostered player's game log for the season, then writes the snapshot.
// A single player's failed fetch is counted and skipped; the run only
// fails when the team-level fetches fail or nothing was collected.
func (c *Collector) CollectTeamSeason(ctx context.Context, teamID int, season string) (*CollectionResult, error) {
	startTime := time.Now()
	result := &CollectionResult{TeamID: teamID, Season: season}

	c.log.WithFields(logrus.Fields{
		"team_id": teamID,
		"season":  season,
		"source":  c.source.Name(),
	}).Info("Starting team season collection")

	games, err := c.source.FetchTeamGameLog(ctx, teamID, season)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch team game log: %w", err)
	}
	result.Games = len(games)

	roster, err := c.source.FetchTeamRoster(ctx, teamID, season)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch team roster: %w", err)
	}
	result.Players = len(roster)

	var stats []models.PlayerGameStat
	for _, entry := range roster {
		rows, err := c.source.FetchPlayerGameLog(ctx, entry.PlayerID, season)
		if err != nil {
			result.Errors++
			c.log.WithFields(logrus.Fields{
				"player_id": entry.PlayerID,
				"player":    entry.Name,
			}).WithError(err).Warn("Failed to fetch player game log, skipping")
			continue
		}

		// The game-log endpoint does not repeat the player's name on
		// each row; fill it from the roster.
		for i := range rows {
			if rows[i].PlayerName == "" {
				rows[i].PlayerName = entry.Name
			}
		}
		stats = append(stats, rows...)
	}
	result.StatRows = len(stats)

	if len(games) == 0 || len(stats) == 0 {
		return result, fmt.Errorf("collection produced no usable data for team %d in %s", teamID, season)
	}

	if err := c.store.SaveGames(games); err != nil {
		return result, fmt.Errorf("failed to save game snapshot: %w", err)
	}
	if err := c.store.SaveStats(stats); err != nil {
		return result, fmt.Errorf("failed to save stat snapshot: %w", err)
	}

	result.Duration = time.Since(startTime)
	c.log.WithFields(logrus.Fields{
		"team_id":   teamID,
		"season":    season,
		"games":     result.Games,
		"players":   result.Players,
		"stat_rows": result.StatRows,
		"errors":    result.Errors,
		"duration":  result.Duration.String(),
	}).Info("Team season collection complete")

	return result, nil
}

// LoadDataset reads the local snapshot and builds the validated dataset
// the analysis pipeline consumes.
func (c *Collector) LoadDataset() (*dataset.Dataset, error) {
	if !c.store.HasSnapshot() {
		return nil, fmt.Errorf("no local snapshot found, run a collection first")
	}

	games, err := c.store.LoadGames()
	if err != nil {
		return nil, fmt.Errorf("failed to load game snapshot: %w", err)
	}
	stats, err := c.store.LoadStats()
	if err != nil {
		return nil, fmt.Errorf("failed to load stat snapshot: %w", err)
	}

	ds, err := dataset.New(games, stats)
	if err != nil {
		return nil, err
	}

	if flagged := ds.FlaggedMinutesRows(); flagged > 0 {
		c.log.WithField("rows", flagged).Warn("Snapshot contains rows with absent minutes")
	}

	return ds, nil
}
