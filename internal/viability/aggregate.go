package viability

import (
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"
)

// Band thresholds. The primary insight uses the same values.
const (
	FavorableThreshold   = 70
	NeedsReviewThreshold = 45
)

// weightScale converts weights to integer basis points so the weighted
// sum is exact and independent of summation order.
const weightScale = 10000

// Weights are the per-layer contributions to the overall score. They must
// sum to 1.
type Weights struct {
	Competition float64 `json:"competition" mapstructure:"competition"`
	Transit     float64 `json:"transit" mapstructure:"transit"`
	Rent        float64 `json:"rent" mapstructure:"rent"`
	Demographic float64 `json:"demographic" mapstructure:"demographic"`
}

// DefaultWeights returns the standard weighting.
func DefaultWeights() Weights {
	return Weights{
		Competition: 0.35,
		Transit:     0.20,
		Rent:        0.25,
		Demographic: 0.20,
	}
}

// Sum returns the sum of all weights.
func (w Weights) Sum() float64 {
	return w.Competition + w.Transit + w.Rent + w.Demographic
}

// Validate checks that every weight is non-negative and that they sum to 1.
func (w Weights) Validate() error {
	var errs []string
	for name, v := range map[string]float64{
		"competition": w.Competition,
		"transit":     w.Transit,
		"rent":        w.Rent,
		"demographic": w.Demographic,
	} {
		if v < 0 {
			errs = append(errs, fmt.Sprintf("%s weight must be >= 0", name))
		}
	}
	if math.Abs(w.Sum()-1) > 1e-6 {
		errs = append(errs, fmt.Sprintf("weights must sum to 1, got %.4f", w.Sum()))
	}
	if len(errs) > 0 {
		return eris.Errorf("viability: invalid weights: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Overall combines the four layer scores.
func (w Weights) Overall(competition, transit, rent, demographic int) int {
	return WeightedScore(
		[]int{competition, transit, rent, demographic},
		[]float64{w.Competition, w.Transit, w.Rent, w.Demographic},
	)
}

// WeightedScore returns round(Σ scoreᵢ·weightᵢ) clamped to [0,100]. Pairs
// beyond the shorter slice are ignored. Exact halves round to even.
func WeightedScore(scores []int, weights []float64) int {
	n := min(len(scores), len(weights))
	var total int64
	for i := 0; i < n; i++ {
		total += int64(scores[i]) * int64(math.Round(weights[i]*weightScale))
	}
	overall := int(math.RoundToEven(float64(total) / weightScale))
	return max(0, min(100, overall))
}

// ClassifyBand maps an overall score to its verdict band.
func ClassifyBand(score int) Band {
	switch {
	case score >= FavorableThreshold:
		return BandFavorable
	case score >= NeedsReviewThreshold:
		return BandNeedsReview
	default:
		return BandHighRisk
	}
}
