package viability

import (
	"github.com/localscope/localscope-cli/internal/textnorm"
)

// Affinity is the clientele a business category leans toward.
type Affinity int

// Affinities.
const (
	AffinityNeutral Affinity = iota
	AffinityPremium
	AffinityPopular
)

// String returns the affinity name.
func (a Affinity) String() string {
	switch a {
	case AffinityPremium:
		return "premium_leaning"
	case AffinityPopular:
		return "popular_leaning"
	default:
		return "neutral"
	}
}

// MarshalText encodes the affinity by name.
func (a Affinity) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Keywords matched against the folded category text. Spanish terms come
// from the Buenos Aires catalog, English ones serve free-text input.
var (
	PremiumKeywords = []string{
		"restaurant", "cafeteria", "cafe", "joyeria", "ropa", "indumentaria", "gym", "fitness",
		"coffee", "jewel", "apparel", "clothing", "boutique",
	}
	PopularKeywords = []string{
		"almacen", "ferreteria", "verduleria", "carniceria", "lavanderia", "farmacia",
		"grocery", "corner store", "convenience", "hardware", "produce", "greengrocer",
		"butcher", "laundry", "pharmacy", "drugstore",
	}
)

// ClassifyCategory resolves a free-text or catalog category to an
// affinity by case- and accent-insensitive substring match. Premium is
// checked first, so a category never resolves to both.
func ClassifyCategory(category string) Affinity {
	if _, ok := textnorm.ContainsAny(category, PremiumKeywords); ok {
		return AffinityPremium
	}
	if _, ok := textnorm.ContainsAny(category, PopularKeywords); ok {
		return AffinityPopular
	}
	return AffinityNeutral
}
