package mapview

import (
	"math"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/localscope/localscope-cli/internal/viability"
)

// Display limits.
const (
	CircleSegments = 64
	MaxCompetitors = 20
	MaxTransit     = 15
)

// Feature kinds, stored in the "kind" property.
const (
	KindCenter     = "center"
	KindRadius     = "radius"
	KindCompetitor = "competitor"
	KindTransit    = "transit"
)

// Build returns the analyzed point, its search radius, the first
// MaxCompetitors competitors and up to MaxTransit transit stops with
// duplicate locations removed.
func Build(center viability.Coordinates, radius float64, label string, competitors, transit []viability.Place) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{}

	fc.Features = append(fc.Features, &geojson.Feature{
		ID:       KindCenter,
		Geometry: point(center),
		Properties: map[string]interface{}{
			"kind":  KindCenter,
			"label": label,
		},
	})
	fc.Features = append(fc.Features, &geojson.Feature{
		ID:       KindRadius,
		Geometry: Circle(center, radius, CircleSegments),
		Properties: map[string]interface{}{
			"kind":          KindRadius,
			"radius_meters": radius,
		},
	})

	for _, p := range competitors[:min(len(competitors), MaxCompetitors)] {
		props := placeProps(KindCompetitor, center, p)
		if p.Rating != nil {
			props["rating"] = *p.Rating
		}
		fc.Features = append(fc.Features, &geojson.Feature{ID: p.ID, Geometry: point(p.Location), Properties: props})
	}

	stops := DedupeByLocation(transit, 5)
	for _, p := range stops[:min(len(stops), MaxTransit)] {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:         p.ID,
			Geometry:   point(p.Location),
			Properties: placeProps(KindTransit, center, p),
		})
	}
	return fc
}

func placeProps(kind string, center viability.Coordinates, p viability.Place) map[string]interface{} {
	return map[string]interface{}{
		"kind":            kind,
		"name":            p.Name,
		"distance_meters": math.Round(Haversine(center, p.Location)),
	}
}

func point(c viability.Coordinates) *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{c.Longitude, c.Latitude})
}

// DedupeByLocation keeps the first place at each location, comparing
// coordinates rounded to the given number of decimals.
func DedupeByLocation(places []viability.Place, decimals int) []viability.Place {
	scale := math.Pow(10, float64(decimals))
	type key struct{ lat, lng int64 }

	seen := make(map[key]struct{}, len(places))
	out := make([]viability.Place, 0, len(places))
	for _, p := range places {
		k := key{int64(math.Round(p.Location.Latitude * scale)), int64(math.Round(p.Location.Longitude * scale))}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out
}
