package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/evanchechak/basketball-injury-model/internal/models"
)

// EdgeResult prices both sides of an over/under line against the
// predictive distribution and keeps the better one.
type EdgeResult struct {
	Side models.BetSide
	// WinProbability is the model's probability that the recommended
	// side cashes.
	WinProbability float64
	// Edge is the expected value per unit staked on the recommended
	// side. Negative means the line is priced against the model.
	Edge float64
	// ProbOver is the raw probability mass above the line, kept for
	// display regardless of which side is recommended.
	ProbOver float64
}

// ComputeEdge prices the posted line against a normal predictive
// distribution. Payout is profit per unit staked on a win, so at -110
// pricing the two sides' expected values always sum to payout minus one.
func ComputeEdge(prediction, stdDev, line, payout float64) (EdgeResult, error) {
	if stdDev <= 0 || math.IsNaN(stdDev) || math.IsInf(stdDev, 0) {
		return EdgeResult{}, fmt.Errorf("%w: standard deviation %g", models.ErrUndefinedDistribution, stdDev)
	}
	if math.IsNaN(prediction) || math.IsInf(prediction, 0) {
		return EdgeResult{}, fmt.Errorf("%w: prediction %g", models.ErrUndefinedDistribution, prediction)
	}

	z := (line - prediction) / stdDev
	probOver := 1 - distuv.UnitNormal.CDF(z)
	probUnder := 1 - probOver

	evOver := probOver*payout - probUnder
	evUnder := probUnder*payout - probOver

	result := EdgeResult{ProbOver: probOver}
	if evOver >= evUnder {
		result.Side = models.BetSideOver
		result.WinProbability = probOver
		result.Edge = evOver
	} else {
		result.Side = models.BetSideUnder
		result.WinProbability = probUnder
		result.Edge = evUnder
	}

	return result, nil
}
