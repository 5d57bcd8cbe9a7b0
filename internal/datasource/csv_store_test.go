package datasource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evanchechak/basketball-injury-model/internal/models"
)

func fp(v float64) *float64 { return &v }

func newTestStore(t *testing.T) *CSVStore {
	t.Helper()
	store, err := NewCSVStore(t.TempDir(), quietLogger())
	require.NoError(t, err)
	return store
}

func TestCSVStoreGamesRoundTrip(t *testing.T) {
	store := newTestStore(t)

	games := []models.GameRecord{
		{
			GameID:   "0022300641",
			GameDate: time.Date(2024, 1, 24, 0, 0, 0, 0, time.UTC),
			Matchup:  "GSW vs. ATL",
			TeamID:   1610612744,
		},
		{
			GameID:   "0022300630",
			GameDate: time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC),
			Matchup:  "GSW @ LAL",
			TeamID:   1610612744,
		},
	}

	require.NoError(t, store.SaveGames(games))
	loaded, err := store.LoadGames()
	require.NoError(t, err)
	assert.Equal(t, games, loaded)
}

func TestCSVStoreStatsRoundTripPreservesAbsentValues(t *testing.T) {
	store := newTestStore(t)

	stats := []models.PlayerGameStat{
		{
			PlayerID:   201939,
			PlayerName: "Star Guard",
			TeamID:     1610612744,
			GameID:     "0022300641",
			GameDate:   time.Date(2024, 1, 24, 0, 0, 0, 0, time.UTC),
			Matchup:    "GSW vs. ATL",
			Minutes:    fp(35.5),
			Points:     fp(30),
			Rebounds:   fp(5),
			Assists:    fp(11),
		},
		{
			PlayerID:   202691,
			PlayerName: "Second Option",
			TeamID:     1610612744,
			GameID:     "0022300641",
			GameDate:   time.Date(2024, 1, 24, 0, 0, 0, 0, time.UTC),
			Matchup:    "GSW vs. ATL",
			Minutes:    nil,
			Points:     nil,
			Rebounds:   nil,
			Assists:    nil,
		},
	}

	require.NoError(t, store.SaveStats(stats))
	loaded, err := store.LoadStats()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, stats, loaded)
	assert.Nil(t, loaded[1].Minutes, "absent minutes must not become zero")
}

func TestCSVStoreHasSnapshot(t *testing.T) {
	store := newTestStore(t)
	assert.False(t, store.HasSnapshot())

	require.NoError(t, store.SaveGames(nil))
	assert.False(t, store.HasSnapshot())

	require.NoError(t, store.SaveStats(nil))
	assert.True(t, store.HasSnapshot())
}

func TestCSVStoreLoadMissingFile(t *testing.T) {
	store := newTestStore(t)
	_, err := store.LoadGames()
	require.Error(t, err)
}

func TestCSVStoreLoadWrongShape(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveGames(nil))

	// Reading the games file through the stats loader must fail the
	// column contract, not fabricate values.
	_, err := store.read(gamesFileName, len(statsHeader))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrMalformedInput)
}
