package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/evanchechak/basketball-injury-model/internal/metrics"
	"github.com/evanchechak/basketball-injury-model/internal/models"
)

const (
	nbaStatsSourceName = "nba_stats"

	playerGameLogEndpoint = "playergamelog"
	teamGameLogEndpoint   = "teamgamelog"
	teamRosterEndpoint    = "commonteamroster"
	allPlayersEndpoint    = "commonallplayers"

	regularSeason = "Regular Season"

	playerIndexCacheKey = "player_index"
)

// gameDateLayouts are the date formats the stats endpoints have been
// observed returning, newest first.
var gameDateLayouts = []string{"Jan 02, 2006", "2006-01-02T15:04:05", "2006-01-02"}

// TeamIDByAbbreviation maps franchise abbreviations to the provider's
// numeric team identifiers.
var TeamIDByAbbreviation = map[string]int{
	"ATL": 1610612737, "BOS": 1610612738, "BKN": 1610612751, "CHA": 1610612766,
	"CHI": 1610612741, "CLE": 1610612739, "DAL": 1610612742, "DEN": 1610612743,
	"DET": 1610612765, "GSW": 1610612744, "HOU": 1610612745, "IND": 1610612754,
	"LAC": 1610612746, "LAL": 1610612747, "MEM": 1610612763, "MIA": 1610612748,
	"MIL": 1610612749, "MIN": 1610612750, "NOP": 1610612740, "NYK": 1610612752,
	"OKC": 1610612760, "ORL": 1610612753, "PHI": 1610612755, "PHX": 1610612756,
	"POR": 1610612757, "SAC": 1610612758, "SAS": 1610612759, "TOR": 1610612761,
	"UTA": 1610612762, "WAS": 1610612764,
}

// LookupTeamID resolves a franchise abbreviation, case-insensitively.
func LookupTeamID(abbrev string) (int, bool) {
	id, ok := TeamIDByAbbreviation[strings.ToUpper(abbrev)]
	return id, ok
}

// NBAStatsClient implements DataSource against the public stats API.
// The endpoints are unauthenticated but reject requests without
// browser-like headers, and roster/index responses are cached to keep
// request volume down.
type NBAStatsClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	enabled    bool
	cache      *gocache.Cache
	log        *logrus.Logger
}

// NewNBAStatsClient creates a stats API client. cacheTTL bounds how long
// roster and player-index responses are reused.
func NewNBAStatsClient(httpClient *RateLimitedHTTPClient, baseURL string, cacheTTL time.Duration, enabled bool, log *logrus.Logger) *NBAStatsClient {
	if baseURL == "" {
		baseURL = "https://stats.nba.com/stats"
	}
	return &NBAStatsClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		enabled:    enabled,
		cache:      gocache.New(cacheTTL, 2*cacheTTL),
		log:        log,
	}
}

// StatsHeaders returns the request headers the stats endpoints require.
func StatsHeaders() http.Header {
	h := http.Header{}
	h.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36")
	h.Set("Accept", "application/json")
	h.Set("Referer", "https://www.nba.com/")
	h.Set("Origin", "https://www.nba.com")
	h.Set("x-nba-stats-origin", "stats")
	h.Set("x-nba-stats-token", "true")
	return h
}

// statsResponse is the envelope every stats endpoint returns: one or
// more named result sets, each a header row plus value rows.
type statsResponse struct {
	Resource   string      `json:"resource"`
	ResultSets []resultSet `json:"resultSets"`
}

type resultSet struct {
	Name    string          `json:"name"`
	Headers []string        `json:"headers"`
	RowSet  [][]interface{} `json:"rowSet"`
}

// columns maps header names to row indexes.
func (rs *resultSet) columns() map[string]int {
	idx := make(map[string]int, len(rs.Headers))
	for i, h := range rs.Headers {
		idx[strings.ToUpper(h)] = i
	}
	return idx
}

func (r *statsResponse) findResultSet(name string) (*resultSet, bool) {
	for i := range r.ResultSets {
		if strings.EqualFold(r.ResultSets[i].Name, name) {
			return &r.ResultSets[i], true
		}
	}
	return nil, false
}

// FetchPlayerGameLog retrieves a player's per-game box scores for a season
func (c *NBAStatsClient) FetchPlayerGameLog(ctx context.Context, playerID int, season string) ([]models.PlayerGameStat, error) {
	if !c.enabled {
		return nil, NewDataSourceError(nbaStatsSourceName, ErrCodeNetworkError, "data source is disabled", nil)
	}

	params := url.Values{
		"PlayerID":   {strconv.Itoa(playerID)},
		"Season":     {season},
		"SeasonType": {regularSeason},
	}

	resp, err := c.fetch(ctx, playerGameLogEndpoint, params)
	if err != nil {
		return nil, err
	}

	rs, ok := resp.findResultSet("PlayerGameLog")
	if !ok {
		return nil, NewDataSourceError(nbaStatsSourceName, ErrCodeInvalidData, "PlayerGameLog result set missing", nil)
	}

	cols := rs.columns()
	stats := make([]models.PlayerGameStat, 0, len(rs.RowSet))
	for _, row := range rs.RowSet {
		matchup := cellString(row, cols, "MATCHUP")
		stat := models.PlayerGameStat{
			PlayerID:   playerID,
			PlayerName: cellString(row, cols, "PLAYER_NAME"),
			TeamID:     teamIDFromMatchup(matchup),
			GameID:     cellString(row, cols, "GAME_ID"),
			GameDate:   parseGameDate(cellString(row, cols, "GAME_DATE")),
			Matchup:    matchup,
			Minutes:    cellMinutes(row, cols, "MIN"),
			Points:     cellFloat(row, cols, "PTS"),
			Rebounds:   cellFloat(row, cols, "REB"),
			Assists:    cellFloat(row, cols, "AST"),
		}
		stats = append(stats, stat)
	}

	c.log.WithFields(logrus.Fields{
		"player_id": playerID,
		"season":    season,
		"games":     len(stats),
	}).Debug("Fetched player game log")

	return stats, nil
}

// FetchTeamGameLog retrieves every game a team played in a season
func (c *NBAStatsClient) FetchTeamGameLog(ctx context.Context, teamID int, season string) ([]models.GameRecord, error) {
	if !c.enabled {
		return nil, NewDataSourceError(nbaStatsSourceName, ErrCodeNetworkError, "data source is disabled", nil)
	}

	params := url.Values{
		"TeamID":     {strconv.Itoa(teamID)},
		"Season":     {season},
		"SeasonType": {regularSeason},
	}

	resp, err := c.fetch(ctx, teamGameLogEndpoint, params)
	if err != nil {
		return nil, err
	}

	rs, ok := resp.findResultSet("TeamGameLog")
	if !ok {
		return nil, NewDataSourceError(nbaStatsSourceName, ErrCodeInvalidData, "TeamGameLog result set missing", nil)
	}

	cols := rs.columns()
	games := make([]models.GameRecord, 0, len(rs.RowSet))
	for _, row := range rs.RowSet {
		games = append(games, models.GameRecord{
			GameID:   cellString(row, cols, "GAME_ID"),
			GameDate: parseGameDate(cellString(row, cols, "GAME_DATE")),
			Matchup:  cellString(row, cols, "MATCHUP"),
			TeamID:   teamID,
		})
	}

	return games, nil
}

// FetchTeamRoster retrieves the current roster for a team
func (c *NBAStatsClient) FetchTeamRoster(ctx context.Context, teamID int, season string) ([]RosterEntry, error) {
	if !c.enabled {
		return nil, NewDataSourceError(nbaStatsSourceName, ErrCodeNetworkError, "data source is disabled", nil)
	}

	cacheKey := fmt.Sprintf("roster:%d:%s", teamID, season)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.([]RosterEntry), nil
	}

	params := url.Values{
		"TeamID": {strconv.Itoa(teamID)},
		"Season": {season},
	}

	resp, err := c.fetch(ctx, teamRosterEndpoint, params)
	if err != nil {
		return nil, err
	}

	rs, ok := resp.findResultSet("CommonTeamRoster")
	if !ok {
		return nil, NewDataSourceError(nbaStatsSourceName, ErrCodeInvalidData, "CommonTeamRoster result set missing", nil)
	}

	cols := rs.columns()
	roster := make([]RosterEntry, 0, len(rs.RowSet))
	for _, row := range rs.RowSet {
		roster = append(roster, RosterEntry{
			PlayerID: cellInt(row, cols, "PLAYER_ID"),
			Name:     cellString(row, cols, "PLAYER"),
			Position: cellString(row, cols, "POSITION"),
			Number:   cellString(row, cols, "NUM"),
		})
	}

	c.cache.Set(cacheKey, roster, gocache.DefaultExpiration)
	return roster, nil
}

// FindPlayer resolves a player name against the league player index,
// exact match on the provider's display name. The index is one large
// response, so it is fetched once per cache window.
func (c *NBAStatsClient) FindPlayer(ctx context.Context, name string) (*PlayerInfo, error) {
	if !c.enabled {
		return nil, NewDataSourceError(nbaStatsSourceName, ErrCodeNetworkError, "data source is disabled", nil)
	}

	index, err := c.playerIndex(ctx)
	if err != nil {
		return nil, err
	}

	for i := range index {
		if index[i].Name == name {
			return &index[i], nil
		}
	}

	return nil, NewDataSourceError(nbaStatsSourceName, ErrCodeNotFound, fmt.Sprintf("player %q not found", name), nil)
}

func (c *NBAStatsClient) playerIndex(ctx context.Context) ([]PlayerInfo, error) {
	if cached, ok := c.cache.Get(playerIndexCacheKey); ok {
		return cached.([]PlayerInfo), nil
	}

	params := url.Values{
		"IsOnlyCurrentSeason": {"1"},
		"LeagueID":            {"00"},
	}

	resp, err := c.fetch(ctx, allPlayersEndpoint, params)
	if err != nil {
		return nil, err
	}

	rs, ok := resp.findResultSet("CommonAllPlayers")
	if !ok {
		return nil, NewDataSourceError(nbaStatsSourceName, ErrCodeInvalidData, "CommonAllPlayers result set missing", nil)
	}

	cols := rs.columns()
	index := make([]PlayerInfo, 0, len(rs.RowSet))
	for _, row := range rs.RowSet {
		index = append(index, PlayerInfo{
			PlayerID: cellInt(row, cols, "PERSON_ID"),
			Name:     cellString(row, cols, "DISPLAY_FIRST_LAST"),
			TeamID:   cellInt(row, cols, "TEAM_ID"),
			IsActive: cellInt(row, cols, "ROSTERSTATUS") == 1,
		})
	}

	c.cache.Set(playerIndexCacheKey, index, gocache.DefaultExpiration)
	return index, nil
}

// Name returns the data source name
func (c *NBAStatsClient) Name() string {
	return nbaStatsSourceName
}

// IsEnabled returns whether this data source is enabled
func (c *NBAStatsClient) IsEnabled() bool {
	return c.enabled
}

// fetch issues a GET against one endpoint and decodes the result-set
// envelope.
func (c *NBAStatsClient) fetch(ctx context.Context, endpoint string, params url.Values) (*statsResponse, error) {
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())
	startTime := time.Now()

	resp, err := c.httpClient.Get(ctx, reqURL)
	if err != nil {
		metrics.RecordProviderRequest(endpoint, "network_error", time.Since(startTime).Seconds())
		return nil, NewDataSourceError(nbaStatsSourceName, ErrCodeNetworkError, fmt.Sprintf("failed to fetch %s", endpoint), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		metrics.RecordProviderRequest(endpoint, "rate_limited", time.Since(startTime).Seconds())
		return nil, NewDataSourceError(nbaStatsSourceName, ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	}
	if resp.StatusCode == http.StatusNotFound {
		metrics.RecordProviderRequest(endpoint, "not_found", time.Since(startTime).Seconds())
		return nil, NewDataSourceError(nbaStatsSourceName, ErrCodeNotFound, fmt.Sprintf("endpoint %s not found", endpoint), nil)
	}
	if resp.StatusCode != http.StatusOK {
		metrics.RecordProviderRequest(endpoint, "server_error", time.Since(startTime).Seconds())
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, NewDataSourceError(nbaStatsSourceName, ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var decoded statsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		metrics.RecordProviderRequest(endpoint, "invalid_data", time.Since(startTime).Seconds())
		return nil, NewDataSourceError(nbaStatsSourceName, ErrCodeInvalidData, "failed to parse response", err)
	}

	metrics.RecordProviderRequest(endpoint, "success", time.Since(startTime).Seconds())
	return &decoded, nil
}

// teamIDFromMatchup extracts the player's own team from a matchup label
// like "GSW vs. LAL" or "GSW @ LAL".
func teamIDFromMatchup(matchup string) int {
	fields := strings.Fields(matchup)
	if len(fields) == 0 {
		return 0
	}
	if id, ok := LookupTeamID(fields[0]); ok {
		return id
	}
	return 0
}

func parseGameDate(s string) time.Time {
	for _, layout := range gameDateLayouts {
		if t, err := time.Parse(layout, titleCaseMonth(s)); err == nil {
			return t
		}
	}
	return time.Time{}
}

// titleCaseMonth normalizes "APR 09, 2024" to "Apr 09, 2024" so the
// reference layout matches.
func titleCaseMonth(s string) string {
	if len(s) < 3 {
		return s
	}
	head := s[:3]
	return strings.ToUpper(head[:1]) + strings.ToLower(head[1:]) + s[3:]
}

func cellString(row []interface{}, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) || row[i] == nil {
		return ""
	}
	switch v := row[i].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func cellInt(row []interface{}, cols map[string]int, name string) int {
	i, ok := cols[name]
	if !ok || i >= len(row) || row[i] == nil {
		return 0
	}
	switch v := row[i].(type) {
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

func cellFloat(row []interface{}, cols map[string]int, name string) *float64 {
	i, ok := cols[name]
	if !ok || i >= len(row) || row[i] == nil {
		return nil
	}
	switch v := row[i].(type) {
	case float64:
		return &v
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
		return nil
	default:
		return nil
	}
}

// cellMinutes parses the MIN column, which arrives either as a number
// or as a "MM:SS" string.
func cellMinutes(row []interface{}, cols map[string]int, name string) *float64 {
	i, ok := cols[name]
	if !ok || i >= len(row) || row[i] == nil {
		return nil
	}
	switch v := row[i].(type) {
	case float64:
		return &v
	case string:
		if mm, ss, found := strings.Cut(v, ":"); found {
			m, err1 := strconv.ParseFloat(mm, 64)
			s, err2 := strconv.ParseFloat(ss, 64)
			if err1 != nil || err2 != nil {
				return nil
			}
			total := m + s/60
			return &total
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
		return nil
	default:
		return nil
	}
}
