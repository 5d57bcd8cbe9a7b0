package datasource

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/evanchechak/basketball-injury-model/internal/models"
)

const (
	gamesFileName = "games.csv"
	statsFileName = "player_stats.csv"

	csvDateLayout = "2006-01-02"
)

var (
	gamesHeader = []string{"GAME_ID", "GAME_DATE", "MATCHUP", "TEAM_ID"}
	statsHeader = []string{"PLAYER_ID", "PLAYER_NAME", "TEAM_ID", "GAME_ID", "GAME_DATE", "MATCHUP", "MIN", "PTS", "REB", "AST"}
)

// CSVStore persists collected game and stat tables as local CSV
// snapshots so analyses can rerun without touching the provider.
type CSVStore struct {
	dir string
	log *logrus.Logger
}

// NewCSVStore creates a store rooted at dir, creating it if needed.
func NewCSVStore(dir string, log *logrus.Logger) (*CSVStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory %s: %w", dir, err)
	}
	return &CSVStore{dir: dir, log: log}, nil
}

// SaveGames writes the game table snapshot, replacing any previous one.
func (s *CSVStore) SaveGames(games []models.GameRecord) error {
	rows := make([][]string, 0, len(games))
	for _, g := range games {
		rows = append(rows, []string{
			g.GameID,
			g.GameDate.Format(csvDateLayout),
			g.Matchup,
			strconv.Itoa(g.TeamID),
		})
	}
	return s.write(gamesFileName, gamesHeader, rows)
}

// LoadGames reads the game table snapshot.
func (s *CSVStore) LoadGames() ([]models.GameRecord, error) {
	rows, err := s.read(gamesFileName, len(gamesHeader))
	if err != nil {
		return nil, err
	}

	games := make([]models.GameRecord, 0, len(rows))
	for i, row := range rows {
		teamID, err := strconv.Atoi(row[3])
		if err != nil {
			return nil, fmt.Errorf("%w: games row %d has non-numeric team id %q", models.ErrMalformedInput, i, row[3])
		}
		date, _ := time.Parse(csvDateLayout, row[1])
		games = append(games, models.GameRecord{
			GameID:   row[0],
			GameDate: date,
			Matchup:  row[2],
			TeamID:   teamID,
		})
	}
	return games, nil
}

// SaveStats writes the player stat table snapshot, replacing any
// previous one. Absent values round-trip as empty cells.
func (s *CSVStore) SaveStats(stats []models.PlayerGameStat) error {
	rows := make([][]string, 0, len(stats))
	for _, st := range stats {
		rows = append(rows, []string{
			strconv.Itoa(st.PlayerID),
			st.PlayerName,
			strconv.Itoa(st.TeamID),
			st.GameID,
			st.GameDate.Format(csvDateLayout),
			st.Matchup,
			formatOptional(st.Minutes),
			formatOptional(st.Points),
			formatOptional(st.Rebounds),
			formatOptional(st.Assists),
		})
	}
	return s.write(statsFileName, statsHeader, rows)
}

// LoadStats reads the player stat table snapshot.
func (s *CSVStore) LoadStats() ([]models.PlayerGameStat, error) {
	rows, err := s.read(statsFileName, len(statsHeader))
	if err != nil {
		return nil, err
	}

	stats := make([]models.PlayerGameStat, 0, len(rows))
	for i, row := range rows {
		playerID, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("%w: stats row %d has non-numeric player id %q", models.ErrMalformedInput, i, row[0])
		}
		teamID, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("%w: stats row %d has non-numeric team id %q", models.ErrMalformedInput, i, row[2])
		}
		date, _ := time.Parse(csvDateLayout, row[4])
		stats = append(stats, models.PlayerGameStat{
			PlayerID:   playerID,
			PlayerName: row[1],
			TeamID:     teamID,
			GameID:     row[3],
			GameDate:   date,
			Matchup:    row[5],
			Minutes:    parseOptional(row[6]),
			Points:     parseOptional(row[7]),
			Rebounds:   parseOptional(row[8]),
			Assists:    parseOptional(row[9]),
		})
	}
	return stats, nil
}

// HasSnapshot reports whether both table snapshots exist on disk.
func (s *CSVStore) HasSnapshot() bool {
	for _, name := range []string{gamesFileName, statsFileName} {
		if _, err := os.Stat(filepath.Join(s.dir, name)); err != nil {
			return false
		}
	}
	return true
}

func (s *CSVStore) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write rows to %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}

	s.log.WithFields(logrus.Fields{"file": path, "rows": len(rows)}).Info("Snapshot saved")
	return nil
}

func (s *CSVStore) read(name string, wantColumns int) ([][]string, error) {
	path := filepath.Join(s.dir, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", models.ErrMalformedInput, name)
	}
	if len(records[0]) != wantColumns {
		return nil, fmt.Errorf("%w: %s has %d columns, want %d", models.ErrMalformedInput, name, len(records[0]), wantColumns)
	}
	return records[1:], nil
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func parseOptional(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
