package viability

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/localscope/localscope-cli/internal/neighborhood"
)

// ScoreRent scores entry cost from the neighborhood's curated price
// category and returns the raw rent per m² for display. The category is
// accepted for future per-category rent policies and is not used yet.
func (e *Evaluator) ScoreRent(neighborhoodName, _ string) (LayerScore, float64) {
	p, _ := e.table.Lookup(neighborhoodName)
	return scoreRent(p, e.lang), p.RentPerArea
}

func scoreRent(p neighborhood.Profile, lang language.Tag) LayerScore {
	rent := FormatRent(p.RentPerArea, lang)
	switch p.PriceCategory {
	case neighborhood.PricePremium:
		return LayerScore{35, TierRed,
			fmt.Sprintf("Premium zone · ~$%s/m², high rent, project the required sales volume carefully", rent)}
	case neighborhood.PriceEconomic:
		return LayerScore{85, TierGreen,
			fmt.Sprintf("Affordable zone · ~$%s/m², low entry cost", rent)}
	default:
		return LayerScore{65, TierYellow,
			fmt.Sprintf("Mid-value zone · ~$%s/m², reasonable risk/cost ratio", rent)}
	}
}

// FormatRent renders a rent figure as a whole number with the grouping
// separator of lang ("60,000" in English, "60.000" in Spanish).
func FormatRent(v float64, lang language.Tag) string {
	return message.NewPrinter(lang).Sprintf("%d", int64(math.Round(v)))
}
