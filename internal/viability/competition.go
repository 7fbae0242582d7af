package viability

import (
	"fmt"
	"math"
)

// Competition thresholds, in competitors per km² and stars.
const (
	lowDensity        = 2.0
	highDensity       = 5.0
	midDensityRating  = 3.8
	highDensityRating = 3.5
)

// CompetitorDensity returns competitors per km² inside a circle of
// radiusMeters. An empty list is density 0 for any radius.
func CompetitorDensity(count int, radiusMeters float64) float64 {
	if count == 0 {
		return 0
	}
	km := radiusMeters / 1000
	return float64(count) / (math.Pi * km * km)
}

// AverageRating is the mean of the ratings present. Unrated places are
// excluded; with no ratings at all it is 0.
func AverageRating(places []Place) float64 {
	var sum float64
	var n int
	for _, p := range places {
		if p.Rating == nil {
			continue
		}
		sum += *p.Rating
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// ScoreCompetition scores direct competition around the location.
func ScoreCompetition(competitors []Place, radiusMeters float64) LayerScore {
	n := len(competitors)
	density := CompetitorDensity(n, radiusMeters)
	avg := AverageRating(competitors)

	switch {
	case density < lowDensity:
		return LayerScore{85, TierGreen,
			fmt.Sprintf("%d competitors in the radius, low saturation", n)}
	case density < highDensity && avg < midDensityRating:
		return LayerScore{70, TierYellow,
			fmt.Sprintf("%d competitors with a low average rating (%.1f★), differentiation opportunity", n, avg)}
	case density < highDensity:
		return LayerScore{55, TierYellow,
			fmt.Sprintf("%d well-positioned competitors (%.1f★), active market", n, avg)}
	case avg < highDensityRating:
		return LayerScore{60, TierYellow,
			fmt.Sprintf("High density (%d places) but mediocre quality (%.1f★), room for a quality operator", n, avg)}
	default:
		return LayerScore{25, TierRed,
			fmt.Sprintf("Saturated zone: %d competitors with good ratings (%.1f★)", n, avg)}
	}
}
