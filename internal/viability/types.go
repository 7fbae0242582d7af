// Package viability scores a prospective retail location from pre-fetched
// competitor, transit and neighborhood data. Every function here is pure:
// identical inputs always produce identical results.
package viability

// Tier is the favorability of one sub-score.
type Tier string

// Tiers, most favorable first.
const (
	TierGreen  Tier = "green"
	TierYellow Tier = "yellow"
	TierRed    Tier = "red"
)

// Band classifies the overall score.
type Band string

// Verdict bands.
const (
	BandFavorable   Band = "favorable"
	BandNeedsReview Band = "needs_review"
	BandHighRisk    Band = "high_risk"
)

// Coordinates is a WGS 84 point.
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Place is a competitor or transit stop returned by a places search.
type Place struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Rating   *float64    `json:"rating,omitempty"`
	Location Coordinates `json:"location"`
}

// LayerScore is the output of one sub-scorer.
type LayerScore struct {
	Score     int    `json:"score"`
	Tier      Tier   `json:"tier"`
	Rationale string `json:"rationale"`
}

// Insight is one human-readable observation.
type Insight struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
}

// Result is the full verdict for one location.
type Result struct {
	OverallScore int        `json:"overall_score"`
	Band         Band       `json:"verdict_band"`
	Competition  LayerScore `json:"competition"`
	Transit      LayerScore `json:"transit"`
	Rent         LayerScore `json:"rent"`
	Demographic  LayerScore `json:"demographic"`
	RentPerArea  float64    `json:"rent_per_area"`
	Neighborhood string     `json:"neighborhood"`
	Affinity     Affinity   `json:"affinity"`
	Insights     []Insight  `json:"insights"`
}
