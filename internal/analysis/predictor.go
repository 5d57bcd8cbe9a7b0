package analysis

import (
	"fmt"

	"github.com/evanchechak/basketball-injury-model/internal/config"
	"github.com/evanchechak/basketball-injury-model/internal/models"
)

// Prediction is the model's estimate of a teammate's performance in the
// injured player's absence, as a normal distribution.
type Prediction struct {
	Value  float64
	StdDev float64
	// Shrunk reports that the without-cohort was below the sample-size
	// floor and the estimate was pulled toward the full-sample mean.
	Shrunk bool
}

// Predictor turns cohort observations into a predictive distribution.
type Predictor struct {
	cfg config.AnalysisConfig
}

// NewPredictor creates a predictor with the given statistical parameters.
func NewPredictor(cfg config.AnalysisConfig) *Predictor {
	return &Predictor{cfg: cfg}
}

// Predict estimates the teammate's output for an upcoming game the
// injured player will miss. With enough without-cohort games the cohort
// mean and spread are used directly. A thin without-cohort is shrunk
// toward the full-sample mean with weight n/(n+floor), and the
// full-sample spread stands in for the cohort's. The standard deviation
// is floored so the distribution never collapses to a point.
func (p *Predictor) Predict(split CohortSplit) (Prediction, error) {
	if split.Observations() == 0 {
		return Prediction{}, fmt.Errorf("%w: no usable observations", models.ErrUndefinedDistribution)
	}

	n := len(split.Without)
	if n >= p.cfg.MinSampleSize {
		mean, stdDev := Summarize(split.Without)
		return Prediction{Value: mean, StdDev: p.floorStd(stdDev)}, nil
	}

	fullMean, fullStd := Summarize(split.All())
	if n == 0 {
		return Prediction{Value: fullMean, StdDev: p.floorStd(fullStd), Shrunk: true}, nil
	}

	withoutMean, _ := Summarize(split.Without)
	w := float64(n) / float64(n+p.cfg.MinSampleSize)
	value := w*withoutMean + (1-w)*fullMean

	return Prediction{Value: value, StdDev: p.floorStd(fullStd), Shrunk: true}, nil
}

func (p *Predictor) floorStd(stdDev float64) float64 {
	if stdDev < p.cfg.MinPredictiveStdDev {
		return p.cfg.MinPredictiveStdDev
	}
	return stdDev
}
