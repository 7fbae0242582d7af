package viability

import (
	"fmt"

	"github.com/localscope/localscope-cli/internal/neighborhood"
)

// Demographic score bounds.
const (
	affinityBoost   = 15
	affinityPenalty = 20
	maxDemographic  = 95
	minDemographic  = 20
)

// ScoreDemographic scores how well the neighborhood's profile fits the
// business category.
func (e *Evaluator) ScoreDemographic(neighborhoodName, category string) LayerScore {
	p, _ := e.table.Lookup(neighborhoodName)
	return ScoreDemographicProfile(p, ClassifyCategory(category))
}

// ScoreDemographicProfile applies the fit ladder to an already classified
// category: boosts first, then penalties, then the neutral branch.
func ScoreDemographicProfile(p neighborhood.Profile, a Affinity) LayerScore {
	base := densityBase(p.Density)
	socio := p.Socioeconomic.Label()

	boost := (a == AffinityPremium && (p.Socioeconomic == neighborhood.SocioHigh || p.Socioeconomic == neighborhood.SocioMediumHigh)) ||
		(a == AffinityPopular && (p.Socioeconomic == neighborhood.SocioMedium || p.Socioeconomic == neighborhood.SocioLow))
	if boost {
		return LayerScore{min(base+affinityBoost, maxDemographic), TierGreen,
			fmt.Sprintf("Neighborhood profile compatible with the category · socioeconomic tier %s, density %s", socio, p.Density)}
	}

	penalty := (a == AffinityPremium && p.Socioeconomic == neighborhood.SocioLow) ||
		(a == AffinityPopular && p.Socioeconomic == neighborhood.SocioHigh)
	if penalty {
		return LayerScore{max(base-affinityPenalty, minDemographic), TierRed,
			fmt.Sprintf("Possible mismatch between the category and the neighborhood's socioeconomic profile (%s)", socio)}
	}

	tier := TierGreen
	if base < 70 {
		tier = TierYellow
	}
	return LayerScore{base, tier, fmt.Sprintf("Neighborhood profile %s, density %s", socio, p.Density)}
}

func densityBase(d neighborhood.DensityTier) int {
	switch d {
	case neighborhood.DensityHigh:
		return 80
	case neighborhood.DensityMedium:
		return 60
	default:
		return 40
	}
}
