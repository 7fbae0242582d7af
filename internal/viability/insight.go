package viability

// Insights evaluates the insight rules in order: one overall verdict, one
// competition note, optional transit/rent/demographic notes for the
// extreme tiers, then the competition+rent combination rules.
func Insights(competition, transit, rent, demographic Tier, overall int) []Insight {
	out := make([]Insight, 0, 7)

	switch ClassifyBand(overall) {
	case BandFavorable:
		out = append(out, Insight{"✅", "The location shows favorable conditions for opening the business."})
	case BandNeedsReview:
		out = append(out, Insight{"⚠️", "The location has potential but needs deeper analysis before deciding."})
	default:
		out = append(out, Insight{"❌", "The location has significant risk factors. Consider other options."})
	}

	switch competition {
	case TierGreen:
		out = append(out, Insight{"🏪", "Little direct competition in the radius, a window to establish a position."})
	case TierYellow:
		out = append(out, Insight{"🏪", "Moderate competition, differentiation in quality or offer will be key."})
	default:
		out = append(out, Insight{"🏪", "The category is saturated here, a strongly differentiated proposal is needed to compete."})
	}

	switch transit {
	case TierGreen:
		out = append(out, Insight{"🚌", "Excellent public transit access, which favors customer flow."})
	case TierRed:
		out = append(out, Insight{"🚌", "Poor transit access, the business will depend more on local customers."})
	}

	switch rent {
	case TierRed:
		out = append(out, Insight{"💰", "High rent for the area, make sure to project the sales volume needed."})
	case TierGreen:
		out = append(out, Insight{"💰", "Low entry cost, a favorable margin to reach break-even."})
	}

	switch demographic {
	case TierRed:
		out = append(out, Insight{"👥", "The neighborhood profile does not match the category well, check whether the target audience is in the area."})
	case TierGreen:
		out = append(out, Insight{"👥", "The neighborhood's socioeconomic profile is compatible with the category."})
	}

	if competition == TierRed && rent == TierRed {
		out = append(out, Insight{"🔴", "High competition and expensive rent: compounded risk."})
	}
	if competition == TierGreen && rent == TierGreen {
		out = append(out, Insight{"🟢", "Low competition with affordable rent: ideal entry combination."})
	}

	return out
}
