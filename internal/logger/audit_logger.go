// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/evanchechak/basketball-injury-model/internal/models"
)

// AuditLogger provides dedicated audit trail logging for betting
// recommendations and tracked bets.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogOpportunityReported logs a recommended opportunity from a scan.
func (al *AuditLogger) LogOpportunityReported(injuredPlayer string, opp models.Opportunity) {
	al.WithFields(logrus.Fields{
		"injured_player":  injuredPlayer,
		"teammate":        opp.TeammateName,
		"stat":            opp.Stat,
		"line":            opp.Line,
		"side":            opp.Side,
		"prediction":      opp.Prediction,
		"win_probability": opp.WinProbability,
		"edge":            opp.Edge,
		"stake_fraction":  opp.StakeFraction,
	}).Info("Opportunity reported")
}

// LogBetRecorded logs a bet entering the tracker.
func (al *AuditLogger) LogBetRecorded(bet *models.TrackedBet) {
	al.WithFields(logrus.Fields{
		"bet_id":          bet.ID,
		"player":          bet.PlayerName,
		"stat":            bet.Stat,
		"line":            bet.Line,
		"side":            bet.Side,
		"amount":          bet.Amount.String(),
		"edge_percent":    bet.EdgePercent,
		"win_probability": bet.WinProbability,
		"placed_at":       bet.PlacedAt.Unix(),
	}).Info("Bet recorded")
}

// LogBetSettled logs a bet settlement, pushes included.
func (al *AuditLogger) LogBetSettled(bet *models.TrackedBet, actual float64, settledAt time.Time) {
	fields := logrus.Fields{
		"bet_id":     bet.ID,
		"player":     bet.PlayerName,
		"stat":       bet.Stat,
		"line":       bet.Line,
		"side":       bet.Side,
		"actual":     actual,
		"status":     bet.Status,
		"profit":     bet.ProfitValue().String(),
		"settled_at": settledAt.Unix(),
	}
	if bet.Result != nil {
		fields["result"] = *bet.Result
	}
	al.WithFields(fields).Info("Bet settled")
}

// LogSkippedTeammates logs the teammates a scan could not evaluate.
func (al *AuditLogger) LogSkippedTeammates(injuredPlayer string, skipped []models.SkippedTeammate) {
	for _, s := range skipped {
		al.WithFields(logrus.Fields{
			"injured_player": injuredPlayer,
			"teammate":       s.TeammateName,
			"reason":         s.Reason,
			"detail":         s.Detail,
		}).Warn("Teammate skipped")
	}
}
