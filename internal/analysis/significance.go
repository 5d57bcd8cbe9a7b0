package analysis

import (
	"errors"
	"math"

	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/evanchechak/basketball-injury-model/internal/config"
	"github.com/evanchechak/basketball-injury-model/internal/dataset"
	"github.com/evanchechak/basketball-injury-model/internal/models"
)

// ErrTooFewObservations is returned by WelchTTest when either sample has
// fewer than two values.
var ErrTooFewObservations = errors.New("too few observations for t-test")

// Summarize returns the mean and sample standard deviation of the
// values. A single observation has mean but no spread, so its standard
// deviation is reported as zero.
func Summarize(values []float64) (mean, stdDev float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean, _ = stats.Mean(values)
	if len(values) < 2 {
		return mean, 0
	}
	stdDev, _ = stats.StandardDeviationSample(values)
	return mean, stdDev
}

// WelchTTest runs a two-sided two-sample t-test without assuming equal
// variances, using the Welch-Satterthwaite degrees of freedom.
func WelchTTest(a, b []float64) (tStat, pValue float64, err error) {
	if len(a) < 2 || len(b) < 2 {
		return 0, 0, ErrTooFewObservations
	}

	meanA, _ := stats.Mean(a)
	meanB, _ := stats.Mean(b)
	varA, _ := stats.SampleVariance(a)
	varB, _ := stats.SampleVariance(b)

	na, nb := float64(len(a)), float64(len(b))
	se2 := varA/na + varB/nb

	if se2 == 0 {
		// Both samples are constant. Equal means carry no evidence of a
		// difference; unequal constant means are as extreme as it gets.
		if meanA == meanB {
			return 0, 1, nil
		}
		return math.Inf(sign(meanA - meanB)), 0, nil
	}

	tStat = (meanA - meanB) / math.Sqrt(se2)

	df := se2 * se2 / (math.Pow(varA/na, 2)/(na-1) + math.Pow(varB/nb, 2)/(nb-1))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	pValue = 2 * dist.CDF(-math.Abs(tStat))

	return tStat, pValue, nil
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}

// Analyzer computes with/without impact summaries for teammates of an
// injured player.
type Analyzer struct {
	cfg config.AnalysisConfig
	log *logrus.Logger
}

// NewAnalyzer creates an analyzer with the given statistical parameters.
func NewAnalyzer(cfg config.AnalysisConfig, log *logrus.Logger) *Analyzer {
	return &Analyzer{cfg: cfg, log: log}
}

// TestImpact splits the teammate's observations around the injured
// player's participation and tests whether the difference in means is
// significant. The p-value is left nil when either cohort is below the
// observation floor; a formally significant result is only marked
// Significant when both cohorts also clear the sample-size floor.
func (a *Analyzer) TestImpact(ds *dataset.Dataset, injuredID int, teammate dataset.PlayerRef, teamID int, stat models.StatCategory) (models.ImpactResult, error) {
	if !stat.Valid() {
		return models.ImpactResult{}, models.ErrUnknownStat
	}

	split := SplitCohorts(ds, injuredID, teammate.ID, teamID, stat)

	meanWith, stdWith := Summarize(split.With)
	meanWithout, stdWithout := Summarize(split.Without)

	result := models.ImpactResult{
		TeammateID:    teammate.ID,
		TeammateName:  teammate.Name,
		Stat:          stat,
		MeanWith:      meanWith,
		MeanWithout:   meanWithout,
		StdDevWith:    stdWith,
		StdDevWithout: stdWithout,
		SampleWith:    len(split.With),
		SampleWithout: len(split.Without),
		Difference:    meanWithout - meanWith,
		ExcludedRows:  split.Excluded,
	}

	if len(split.With) < a.cfg.MinObservations || len(split.Without) < a.cfg.MinObservations {
		result.Insufficient = true
		a.log.WithFields(logrus.Fields{
			"teammate":       teammate.Name,
			"stat":           stat,
			"sample_with":    result.SampleWith,
			"sample_without": result.SampleWithout,
		}).Debug("Too few observations to test impact")
		return result, nil
	}

	_, pValue, err := WelchTTest(split.Without, split.With)
	if err != nil {
		result.Insufficient = true
		return result, nil
	}

	result.PValue = &pValue
	result.Significant = pValue < a.cfg.Alpha &&
		result.SampleWith >= a.cfg.MinSampleSize &&
		result.SampleWithout >= a.cfg.MinSampleSize

	return result, nil
}
