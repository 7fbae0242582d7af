package viability

import "fmt"

// ScoreTransit scores public transit access from the raw list of stop
// records. Duplicates across sub-queries are counted; use UniqueStops for
// display.
func ScoreTransit(stops []Place) LayerScore {
	n := len(stops)
	switch {
	case n >= 4:
		return LayerScore{90, TierGreen, fmt.Sprintf("%d transit stops in the radius, excellent access", n)}
	case n >= 2:
		return LayerScore{65, TierYellow, fmt.Sprintf("%d transit stops, average access", n)}
	case n == 1:
		return LayerScore{40, TierYellow, "Only 1 stop nearby, limited access"}
	default:
		return LayerScore{15, TierRed, "No public transit found in the radius"}
	}
}

// UniqueStops counts distinct stop identifiers. Stops without an
// identifier are counted individually.
func UniqueStops(stops []Place) int {
	seen := make(map[string]struct{}, len(stops))
	n := 0
	for _, s := range stops {
		if s.ID == "" {
			n++
			continue
		}
		if _, ok := seen[s.ID]; ok {
			continue
		}
		seen[s.ID] = struct{}{}
		n++
	}
	return n
}
