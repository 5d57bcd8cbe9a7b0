package analysis

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/evanchechak/basketball-injury-model/internal/config"
	"github.com/evanchechak/basketball-injury-model/internal/dataset"
	"github.com/evanchechak/basketball-injury-model/internal/models"
)

// MetricsRecorder receives finder outcomes for monitoring. A nil
// recorder disables recording.
type MetricsRecorder interface {
	RecordAnalysis(stat models.StatCategory)
	RecordOpportunity(side models.BetSide)
	RecordSkip(reason models.SkipReason)
}

// Request describes one opportunity scan: a team losing a player, the
// stat market to evaluate, and the posted lines keyed by teammate name.
// Names match the stat table's player-name column exactly, case
// included; a line for a name not on the roster is never evaluated.
type Request struct {
	InjuredPlayerID   int
	InjuredPlayerName string
	TeamID            int
	Stat              models.StatCategory
	Lines             map[string]float64
}

// Report is the outcome of a scan: actionable opportunities sorted by
// edge, plus a record of every teammate that could not be evaluated.
type Report struct {
	Opportunities []models.Opportunity
	Skipped       []models.SkippedTeammate
	Evaluated     int
}

// Finder scans a roster for mispriced prop lines around an injury.
type Finder struct {
	analyzer  *Analyzer
	predictor *Predictor
	betting   config.BettingConfig
	metrics   MetricsRecorder
	log       *logrus.Logger
}

// NewFinder creates a finder. The metrics recorder may be nil.
func NewFinder(analysisCfg config.AnalysisConfig, bettingCfg config.BettingConfig, metrics MetricsRecorder, log *logrus.Logger) *Finder {
	return &Finder{
		analyzer:  NewAnalyzer(analysisCfg, log),
		predictor: NewPredictor(analysisCfg),
		betting:   bettingCfg,
		metrics:   metrics,
		log:       log,
	}
}

// FindOpportunities evaluates every teammate with a posted line. A
// teammate that cannot be evaluated is skipped with a reason rather than
// failing the scan; only malformed input aborts.
func (f *Finder) FindOpportunities(ds *dataset.Dataset, req Request) (*Report, error) {
	if err := ds.RequireStat(req.Stat); err != nil {
		return nil, err
	}
	if len(req.Lines) == 0 {
		return &Report{}, nil
	}

	report := &Report{}
	for _, teammate := range ds.TeamPlayers(req.TeamID) {
		if teammate.ID == req.InjuredPlayerID {
			continue
		}
		line, ok := req.Lines[teammate.Name]
		if !ok {
			continue
		}

		report.Evaluated++
		if f.metrics != nil {
			f.metrics.RecordAnalysis(req.Stat)
		}

		opp, skip := f.evaluate(ds, req, teammate, line)
		if skip != nil {
			report.Skipped = append(report.Skipped, *skip)
			if f.metrics != nil {
				f.metrics.RecordSkip(skip.Reason)
			}
			continue
		}
		if opp != nil {
			report.Opportunities = append(report.Opportunities, *opp)
			if f.metrics != nil {
				f.metrics.RecordOpportunity(opp.Side)
			}
		}
	}

	sort.SliceStable(report.Opportunities, func(i, j int) bool {
		return report.Opportunities[i].Edge > report.Opportunities[j].Edge
	})

	f.log.WithFields(logrus.Fields{
		"injured_player":    req.InjuredPlayerName,
		"injured_player_id": req.InjuredPlayerID,
		"team_id":           req.TeamID,
		"stat":              req.Stat,
		"evaluated":         report.Evaluated,
		"opportunities":     len(report.Opportunities),
		"skipped":           len(report.Skipped),
	}).Info("Opportunity scan complete")

	return report, nil
}

// evaluate prices one teammate's line. It returns a skip record when the
// teammate cannot be evaluated, a nil opportunity when the edge is below
// the reporting threshold.
func (f *Finder) evaluate(ds *dataset.Dataset, req Request, teammate dataset.PlayerRef, line float64) (*models.Opportunity, *models.SkippedTeammate) {
	split := SplitCohorts(ds, req.InjuredPlayerID, teammate.ID, req.TeamID, req.Stat)
	if split.Observations() == 0 {
		return nil, &models.SkippedTeammate{
			TeammateName: teammate.Name,
			Reason:       models.SkipNoGames,
			Detail:       "no usable game observations",
		}
	}

	impact, err := f.analyzer.TestImpact(ds, req.InjuredPlayerID, teammate, req.TeamID, req.Stat)
	if err != nil {
		return nil, &models.SkippedTeammate{
			TeammateName: teammate.Name,
			Reason:       models.SkipInsufficientData,
			Detail:       err.Error(),
		}
	}

	if impact.Insufficient || impact.SampleWithout < f.analyzer.cfg.MinSampleSize {
		return nil, &models.SkippedTeammate{
			TeammateName: teammate.Name,
			Reason:       models.SkipInsufficientData,
			Detail: fmt.Sprintf("%d games with, %d games without",
				impact.SampleWith, impact.SampleWithout),
		}
	}

	prediction, err := f.predictor.Predict(split)
	if err != nil {
		return nil, &models.SkippedTeammate{
			TeammateName: teammate.Name,
			Reason:       models.SkipUndefinedDistribution,
			Detail:       err.Error(),
		}
	}

	edge, err := ComputeEdge(prediction.Value, prediction.StdDev, line, f.betting.PayoutOdds)
	if err != nil {
		if errors.Is(err, models.ErrUndefinedDistribution) {
			return nil, &models.SkippedTeammate{
				TeammateName: teammate.Name,
				Reason:       models.SkipUndefinedDistribution,
				Detail:       err.Error(),
			}
		}
		return nil, &models.SkippedTeammate{
			TeammateName: teammate.Name,
			Reason:       models.SkipInsufficientData,
			Detail:       err.Error(),
		}
	}

	if edge.Edge < f.betting.MinEdge {
		f.log.WithFields(logrus.Fields{
			"teammate": teammate.Name,
			"line":     line,
			"edge":     edge.Edge,
		}).Debug("Edge below reporting threshold")
		return nil, nil
	}

	return &models.Opportunity{
		TeammateID:     teammate.ID,
		TeammateName:   teammate.Name,
		Stat:           req.Stat,
		Prediction:     prediction.Value,
		PredictiveStd:  prediction.StdDev,
		Line:           line,
		Side:           edge.Side,
		WinProbability: edge.WinProbability,
		Edge:           edge.Edge,
		StakeFraction:  RecommendStake(f.betting, edge.WinProbability),
		Impact:         impact,
	}, nil
}
