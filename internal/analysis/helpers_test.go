package analysis

import (
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/evanchechak/basketball-injury-model/internal/config"
	"github.com/evanchechak/basketball-injury-model/internal/dataset"
	"github.com/evanchechak/basketball-injury-model/internal/models"
)

const (
	warriorsID = 1610612744
	starID     = 201939
	mateID     = 202691
	benchID    = 203110
	starName   = "Star Guard"
	mateName   = "Second Option"
	benchName  = "Bench Wing"
)

func testAnalysisConfig() config.AnalysisConfig {
	return config.AnalysisConfig{
		Alpha:               0.05,
		MinSampleSize:       5,
		MinObservations:     2,
		MinPredictiveStdDev: 0.1,
	}
}

func testBettingConfig() config.BettingConfig {
	return config.BettingConfig{
		PayoutOdds:       0.909,
		KellyMultiplier:  0.25,
		MaxStakeFraction: 0.05,
		MinEdge:          0.05,
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func fp(v float64) *float64 { return &v }

// seasonBuilder assembles a synthetic season for one team.
type seasonBuilder struct {
	games []models.GameRecord
	stats []models.PlayerGameStat
}

func newSeason() *seasonBuilder { return &seasonBuilder{} }

func (b *seasonBuilder) gameID(n int) string { return fmt.Sprintf("00223%05d", n) }

// addGame appends a team game and returns its identifier.
func (b *seasonBuilder) addGame(n int) string {
	id := b.gameID(n)
	b.games = append(b.games, models.GameRecord{
		GameID:   id,
		GameDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n),
		Matchup:  "GSW vs. LAL",
		TeamID:   warriorsID,
	})
	return id
}

// addRow appends a box-score row for the player in the given game.
func (b *seasonBuilder) addRow(playerID int, name, gameID string, minutes, points *float64) {
	b.stats = append(b.stats, models.PlayerGameStat{
		PlayerID:   playerID,
		PlayerName: name,
		TeamID:     warriorsID,
		GameID:     gameID,
		Minutes:    minutes,
		Points:     points,
		Rebounds:   fp(5),
		Assists:    fp(4),
	})
}

func (b *seasonBuilder) build(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(b.games, b.stats)
	require.NoError(t, err)
	return ds
}

// buildSeason creates a season where the star plays the first len(with)
// games and sits the rest; the teammate plays every game scoring the
// supplied values in order.
func buildSeason(t *testing.T, with, without []float64) *dataset.Dataset {
	t.Helper()
	b := newSeason()
	total := len(with) + len(without)
	for n := 0; n < total; n++ {
		id := b.addGame(n)
		if n < len(with) {
			b.addRow(starID, starName, id, fp(34), fp(27))
			b.addRow(mateID, mateName, id, fp(30), fp(with[n]))
		} else {
			b.addRow(mateID, mateName, id, fp(33), fp(without[n-len(with)]))
		}
	}
	return b.build(t)
}
