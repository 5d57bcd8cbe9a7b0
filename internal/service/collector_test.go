package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evanchechak/basketball-injury-model/internal/datasource"
	"github.com/evanchechak/basketball-injury-model/internal/models"
)

const (
	testTeamID = 1610612744
	testSeason = "2023-24"
)

type stubSource struct {
	games      []models.GameRecord
	roster     []datasource.RosterEntry
	logs       map[int][]models.PlayerGameStat
	failPlayer int
	fetchCalls int
}

func (s *stubSource) FetchPlayerGameLog(_ context.Context, playerID int, _ string) ([]models.PlayerGameStat, error) {
	s.fetchCalls++
	if playerID == s.failPlayer {
		return nil, errors.New("provider timeout")
	}
	return s.logs[playerID], nil
}

func (s *stubSource) FetchTeamGameLog(_ context.Context, _ int, _ string) ([]models.GameRecord, error) {
	return s.games, nil
}

func (s *stubSource) FetchTeamRoster(_ context.Context, _ int, _ string) ([]datasource.RosterEntry, error) {
	return s.roster, nil
}

func (s *stubSource) FindPlayer(_ context.Context, _ string) (*datasource.PlayerInfo, error) {
	return nil, datasource.ErrNotFound
}

func (s *stubSource) Name() string    { return "stub" }
func (s *stubSource) IsEnabled() bool { return true }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func fp(v float64) *float64 { return &v }

func seasonSource() *stubSource {
	date := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	games := []models.GameRecord{
		{GameID: "0022300551", GameDate: date, Matchup: "GSW vs. LAL", TeamID: testTeamID},
		{GameID: "0022300562", GameDate: date.AddDate(0, 0, 2), Matchup: "GSW @ SAC", TeamID: testTeamID},
	}
	row := func(playerID int, gameID string, minutes, points float64) models.PlayerGameStat {
		return models.PlayerGameStat{
			PlayerID: playerID,
			TeamID:   testTeamID,
			GameID:   gameID,
			GameDate: date,
			Minutes:  fp(minutes),
			Points:   fp(points),
			Rebounds: fp(5),
			Assists:  fp(4),
		}
	}
	return &stubSource{
		games: games,
		roster: []datasource.RosterEntry{
			{PlayerID: 201939, Name: "Star Guard", Position: "G", Number: "30"},
			{PlayerID: 202691, Name: "Second Option", Position: "G", Number: "11"},
		},
		logs: map[int][]models.PlayerGameStat{
			201939: {row(201939, "0022300551", 34, 28)},
			202691: {row(202691, "0022300551", 36, 24), row(202691, "0022300562", 35, 31)},
		},
	}
}

func newTestCollector(t *testing.T, source *stubSource) *Collector {
	t.Helper()
	store, err := datasource.NewCSVStore(t.TempDir(), quietLogger())
	require.NoError(t, err)
	return NewCollector(source, store, quietLogger())
}

func TestCollectTeamSeason(t *testing.T) {
	source := seasonSource()
	collector := newTestCollector(t, source)

	result, err := collector.CollectTeamSeason(context.Background(), testTeamID, testSeason)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Games)
	assert.Equal(t, 2, result.Players)
	assert.Equal(t, 3, result.StatRows)
	assert.Zero(t, result.Errors)
	assert.Equal(t, 2, source.fetchCalls)
}

func TestCollectBackfillsPlayerNames(t *testing.T) {
	source := seasonSource()
	collector := newTestCollector(t, source)

	_, err := collector.CollectTeamSeason(context.Background(), testTeamID, testSeason)
	require.NoError(t, err)

	ds, err := collector.LoadDataset()
	require.NoError(t, err)

	players := ds.TeamPlayers(testTeamID)
	require.Len(t, players, 2)
	names := map[int]string{}
	for _, p := range players {
		names[p.ID] = p.Name
	}
	assert.Equal(t, "Star Guard", names[201939])
	assert.Equal(t, "Second Option", names[202691])
}

func TestCollectSkipsFailedPlayer(t *testing.T) {
	source := seasonSource()
	source.failPlayer = 201939
	collector := newTestCollector(t, source)

	result, err := collector.CollectTeamSeason(context.Background(), testTeamID, testSeason)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Errors)
	assert.Equal(t, 2, result.StatRows)
}

func TestCollectNoDataFails(t *testing.T) {
	source := seasonSource()
	source.logs = map[int][]models.PlayerGameStat{}
	collector := newTestCollector(t, source)

	_, err := collector.CollectTeamSeason(context.Background(), testTeamID, testSeason)

	assert.Error(t, err)
}

func TestLoadDatasetWithoutSnapshot(t *testing.T) {
	collector := newTestCollector(t, seasonSource())

	_, err := collector.LoadDataset()

	assert.Error(t, err)
}
