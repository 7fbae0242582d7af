// Package mapview renders an analysis as GeoJSON for map display.
package mapview

import (
	"math"

	"github.com/twpayne/go-geom"

	"github.com/localscope/localscope-cli/internal/viability"
)

const earthRadiusMeters = 6371008.8

func rad(deg float64) float64 { return deg * math.Pi / 180 }
func deg(rad float64) float64 { return rad * 180 / math.Pi }

// Haversine returns the great-circle distance between a and b in meters.
func Haversine(a, b viability.Coordinates) float64 {
	lat1, lat2 := rad(a.Latitude), rad(b.Latitude)
	dLat := lat2 - lat1
	dLng := rad(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Destination returns the point distance meters from origin along bearing
// (degrees clockwise from north).
func Destination(origin viability.Coordinates, bearing, distance float64) viability.Coordinates {
	lat1, lng1 := rad(origin.Latitude), rad(origin.Longitude)
	brg := rad(bearing)
	d := distance / earthRadiusMeters

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(brg))
	lng2 := lng1 + math.Atan2(math.Sin(brg)*math.Sin(d)*math.Cos(lat1), math.Cos(d)-math.Sin(lat1)*math.Sin(lat2))
	return viability.Coordinates{Latitude: deg(lat2), Longitude: deg(lng2)}
}

// Circle approximates a circle of radius meters around center with a closed
// ring of the given number of segments.
func Circle(center viability.Coordinates, radius float64, segments int) *geom.Polygon {
	if segments < 3 {
		segments = 3
	}
	flat := make([]float64, 0, 2*(segments+1))
	for i := 0; i < segments; i++ {
		p := Destination(center, 360*float64(i)/float64(segments), radius)
		flat = append(flat, p.Longitude, p.Latitude)
	}
	flat = append(flat, flat[0], flat[1])
	return geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)})
}
