package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evanchechak/basketball-injury-model/internal/models"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func sampleBet() *models.TrackedBet {
	return &models.TrackedBet{
		ID:             uuid.New(),
		PlayerName:     "Second Option",
		Stat:           models.StatPoints,
		Line:           25.5,
		Side:           models.BetSideOver,
		Prediction:     29.2,
		Amount:         decimal.NewFromInt(50),
		EdgePercent:    8.2,
		WinProbability: 0.62,
		Status:         models.BetStatusPending,
		PlacedAt:       time.Date(2024, 2, 3, 12, 0, 0, 0, time.UTC),
	}
}

func TestNewLoggerLevels(t *testing.T) {
	log := NewLogger("debug", "development")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log = NewLogger("nonsense", "development")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewLoggerProductionUsesJSON(t *testing.T) {
	log := NewLogger("info", "production")
	_, ok := log.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)

	log = NewLogger("info", "development")
	_, ok = log.Formatter.(*logrus.TextFormatter)
	assert.True(t, ok)
}

func TestAuditLoggerOpportunityReported(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogOpportunityReported("Star Guard", models.Opportunity{
		TeammateName:   "Second Option",
		Stat:           models.StatPoints,
		Line:           25.5,
		Side:           models.BetSideOver,
		Prediction:     29.2,
		WinProbability: 0.62,
		Edge:           0.082,
		StakeFraction:  0.012,
	})

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "Second Option", logEntry["teammate"])
	assert.Equal(t, "OVER", logEntry["side"])
	assert.Equal(t, "audit", logEntry["component"])
}

func TestAuditLoggerBetRecorded(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	bet := sampleBet()
	auditLogger.LogBetRecorded(bet)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, bet.ID.String(), logEntry["bet_id"])
	assert.Equal(t, "50", logEntry["amount"])
}

func TestAuditLoggerBetSettled(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	bet := sampleBet()
	result := models.BetResultWin
	profit := decimal.NewFromFloat(45.45)
	bet.Status = models.BetStatusSettled
	bet.Result = &result
	bet.Profit = &profit

	auditLogger.LogBetSettled(bet, 31, time.Date(2024, 2, 4, 4, 0, 0, 0, time.UTC))

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "win", logEntry["result"])
	assert.Equal(t, "45.45", logEntry["profit"])
}

func TestAuditLoggerSkippedTeammates(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogSkippedTeammates("Star Guard", []models.SkippedTeammate{
		{TeammateName: "Bench Wing", Reason: models.SkipInsufficientData, Detail: "1 game without"},
	})

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "Bench Wing", logEntry["teammate"])
	assert.Equal(t, "insufficient_data", logEntry["reason"])
}

func BenchmarkAuditLoggerBetRecorded(b *testing.B) {
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	auditLogger := NewAuditLogger(log)
	bet := sampleBet()

	for i := 0; i < b.N; i++ {
		auditLogger.LogBetRecorded(bet)
	}
}
