package viability

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localscope/localscope-cli/internal/neighborhood"
)

func icons(in []Insight) []string {
	out := make([]string, len(in))
	for i, x := range in {
		out[i] = x.Icon
	}
	return out
}

func TestInsights(t *testing.T) {
	tests := []struct {
		name                                  string
		competition, transit, rent, demograph Tier
		overall                               int
		want                                  []string
	}{
		{"all yellow is the minimum", TierYellow, TierYellow, TierYellow, TierYellow, 60, []string{"⚠️", "🏪"}},
		{"compounded risk", TierRed, TierRed, TierRed, TierRed, 20, []string{"❌", "🏪", "🚌", "💰", "👥", "🔴"}},
		{"ideal entry", TierGreen, TierGreen, TierGreen, TierGreen, 88, []string{"✅", "🏪", "🚌", "💰", "👥", "🟢"}},
		{"transit yellow omitted", TierGreen, TierYellow, TierRed, TierGreen, 70, []string{"✅", "🏪", "💰", "👥"}},
		{"no combination when mixed", TierRed, TierGreen, TierGreen, TierYellow, 45, []string{"⚠️", "🏪", "🚌", "💰"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Insights(tt.competition, tt.transit, tt.rent, tt.demograph, tt.overall)
			assert.Equal(t, tt.want, icons(got))
			for _, in := range got {
				assert.NotEmpty(t, in.Text)
			}
		})
	}
}

func TestInsights_CompetitionText(t *testing.T) {
	assert.Contains(t, Insights(TierGreen, TierYellow, TierYellow, TierYellow, 60)[1].Text, "Little direct competition")
	assert.Contains(t, Insights(TierYellow, TierYellow, TierYellow, TierYellow, 60)[1].Text, "Moderate competition")
	assert.Contains(t, Insights(TierRed, TierYellow, TierYellow, TierYellow, 60)[1].Text, "saturated")
}

func scenarioInput() Input {
	return Input{
		Competitors:  rated(1, 4.5),
		TransitStops: rated(5, 0),
		Neighborhood: "Puerto Madero",
		Category:     "Cafetería / Café",
		RadiusMeters: 500,
	}
}

func TestEvaluate(t *testing.T) {
	e := NewEvaluator(neighborhood.DefaultTable())
	got := e.Evaluate(scenarioInput())

	assert.Equal(t, 85, got.Competition.Score)
	assert.Equal(t, TierGreen, got.Competition.Tier)
	assert.Equal(t, 90, got.Transit.Score)
	assert.Equal(t, 35, got.Rent.Score)
	assert.Equal(t, TierRed, got.Rent.Tier)
	assert.Contains(t, got.Rent.Rationale, "60,000")
	assert.Contains(t, got.Rent.Rationale, "/m²")
	assert.Equal(t, 75, got.Demographic.Score)
	assert.Equal(t, TierGreen, got.Demographic.Tier)

	assert.Equal(t, 72, got.OverallScore)
	assert.Equal(t, BandFavorable, got.Band)
	assert.InDelta(t, 60000, got.RentPerArea, 0.001)
	assert.Equal(t, "Puerto Madero", got.Neighborhood)
	assert.Equal(t, AffinityPremium, got.Affinity)
	assert.Equal(t, []string{"✅", "🏪", "🚌", "💰", "👥"}, icons(got.Insights))
}

func TestEvaluate_Idempotent(t *testing.T) {
	e := NewEvaluator(neighborhood.DefaultTable())
	in := scenarioInput()

	first := e.Evaluate(in)
	second := e.Evaluate(in)
	assert.Equal(t, first, second)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEvaluate_UnknownNeighborhoodUsesDefault(t *testing.T) {
	e := NewEvaluator(neighborhood.DefaultTable())
	got := e.Evaluate(Input{Neighborhood: "Narnia", Category: "Librería", RadiusMeters: 500})

	assert.Equal(t, neighborhood.DefaultKey, got.Neighborhood)
	assert.InDelta(t, 22000, got.RentPerArea, 0.001)
	assert.Equal(t, 85, got.Competition.Score)
	assert.Equal(t, 15, got.Transit.Score)
	assert.Equal(t, 65, got.Rent.Score)
	assert.Equal(t, 60, got.Demographic.Score)
	// 0.35*85 + 0.20*15 + 0.25*65 + 0.20*60 = 61.0
	assert.Equal(t, 61, got.OverallScore)
	assert.Equal(t, BandNeedsReview, got.Band)
}

func TestEvaluate_AccentInsensitiveNeighborhood(t *testing.T) {
	e := NewEvaluator(neighborhood.DefaultTable())
	got := e.Evaluate(Input{Neighborhood: "puerto madero", RadiusMeters: 500})
	assert.Equal(t, "Puerto Madero", got.Neighborhood)
	assert.Equal(t, 35, got.Rent.Score)
}

func TestEvaluate_CustomWeights(t *testing.T) {
	e := NewEvaluator(neighborhood.DefaultTable(), WithWeights(Weights{Competition: 1}))
	got := e.Evaluate(scenarioInput())

	assert.Equal(t, got.Competition.Score, got.OverallScore)
	assert.Equal(t, Weights{Competition: 1}, e.Weights())
}

func TestEvaluate_PopularCategoryInWealthyNeighborhood(t *testing.T) {
	e := NewEvaluator(neighborhood.DefaultTable())
	got := e.Evaluate(Input{
		Competitors:  rated(10, 4.2),
		Neighborhood: "Recoleta",
		Category:     "Almacén / Minimercado",
		RadiusMeters: 500,
	})

	assert.Equal(t, TierRed, got.Competition.Tier)
	assert.Equal(t, TierRed, got.Demographic.Tier)
	assert.Equal(t, BandHighRisk, got.Band)
	assert.Equal(t, "🔴", got.Insights[len(got.Insights)-1].Icon)
}
