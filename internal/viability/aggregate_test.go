package viability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultWeights_Valid(t *testing.T) {
	w := DefaultWeights()
	assert.NoError(t, w.Validate())
	assert.InDelta(t, 1.0, w.Sum(), 1e-9)
}

func TestWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
		wantErr string
	}{
		{"negative weight", Weights{Competition: 1.2, Transit: -0.2}, "transit weight must be >= 0"},
		{"sum below one", Weights{Competition: 0.5, Transit: 0.2}, "weights must sum to 1"},
		{"all zero", Weights{}, "got 0.0000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWeightedScore(t *testing.T) {
	w := DefaultWeights()

	tests := []struct {
		name                                  string
		competition, transit, rent, demograph int
		want                                  int
	}{
		{"all max", 85, 90, 85, 95, 88},
		{"all min", 25, 15, 35, 20, 24},
		{"half rounds up to even", 85, 90, 35, 75, 72},
		{"half rounds down to even", 55, 65, 65, 60, 60},
		{"whole number", 85, 65, 65, 60, 71},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.Overall(tt.competition, tt.transit, tt.rent, tt.demograph))
		})
	}
}

func TestWeightedScore_PermutationInvariant(t *testing.T) {
	weights := []float64{0.35, 0.20, 0.25, 0.20}
	scoreSets := [][]int{
		{85, 90, 35, 75},
		{55, 65, 65, 60},
		{25, 15, 85, 20},
		{70, 40, 65, 95},
	}

	var perms [][]int
	var permute func(prefix, rest []int)
	permute = func(prefix, rest []int) {
		if len(rest) == 0 {
			perms = append(perms, append([]int(nil), prefix...))
			return
		}
		for i := range rest {
			next := append(append([]int(nil), rest[:i]...), rest[i+1:]...)
			permute(append(prefix, rest[i]), next)
		}
	}
	permute(nil, []int{0, 1, 2, 3})
	assert.Len(t, perms, 24)

	for _, scores := range scoreSets {
		want := WeightedScore(scores, weights)
		for _, p := range perms {
			ps := make([]int, len(p))
			pw := make([]float64, len(p))
			for i, j := range p {
				ps[i] = scores[j]
				pw[i] = weights[j]
			}
			assert.Equal(t, want, WeightedScore(ps, pw), "permutation %v of %v", p, scores)
		}
	}
}

func TestWeightedScore_Clamped(t *testing.T) {
	assert.Equal(t, 100, WeightedScore([]int{250}, []float64{1}))
	assert.Equal(t, 0, WeightedScore([]int{-30}, []float64{1}))
}

func TestWeightedScore_ShorterSliceWins(t *testing.T) {
	assert.Equal(t, 50, WeightedScore([]int{100, 100, 100}, []float64{0.5}))
	assert.Equal(t, 0, WeightedScore(nil, []float64{0.5, 0.5}))
}

func TestClassifyBand(t *testing.T) {
	tests := []struct {
		score int
		want  Band
	}{
		{100, BandFavorable},
		{70, BandFavorable},
		{69, BandNeedsReview},
		{45, BandNeedsReview},
		{44, BandHighRisk},
		{0, BandHighRisk},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyBand(tt.score), "score %d", tt.score)
	}
}
