// Package analysis runs a full location analysis: it geocodes the address,
// gathers competitors, transit stops and the neighborhood, then scores the
// location.
package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/localscope/localscope-cli/internal/catalog"
	"github.com/localscope/localscope-cli/internal/mapview"
	"github.com/localscope/localscope-cli/internal/neighborhood"
	"github.com/localscope/localscope-cli/internal/viability"
	"github.com/localscope/localscope-cli/pkg/geocode"
	"github.com/localscope/localscope-cli/pkg/places"
)

// Transit place types, searched in this order.
var TransitTypes = []string{"transit_station", "bus_station"}

// Request is one location to analyze.
type Request struct {
	Address  string `json:"address"`
	Category string `json:"category"`
	Radius   int    `json:"radius"`
}

// Limits bounds the search radius, in meters.
type Limits struct {
	Default int
	Min     int
	Max     int
}

// DefaultLimits returns the standard radius bounds.
func DefaultLimits() Limits {
	return Limits{Default: 500, Min: 200, Max: 1500}
}

// PlaceView is a place with its distance from the analyzed point.
type PlaceView struct {
	viability.Place
	DistanceMeters float64 `json:"distance_meters"`
}

// Report is the full outcome of one analysis.
type Report struct {
	ID                   string                     `json:"id"`
	Address              string                     `json:"address"`
	FormattedAddress     string                     `json:"formatted_address"`
	Location             viability.Coordinates      `json:"location"`
	Neighborhood         string                     `json:"neighborhood"`
	NeighborhoodResolved bool                       `json:"neighborhood_resolved"`
	Category             catalog.Category           `json:"category"`
	RadiusMeters         int                        `json:"radius_meters"`
	Competitors          []PlaceView                `json:"competitors"`
	TransitStops         []PlaceView                `json:"transit_stops"`
	CompetitorCount      int                        `json:"competitor_count"`
	TransitCount         int                        `json:"transit_count"`
	Result               viability.Result           `json:"result"`
	Map                  *geojson.FeatureCollection `json:"map"`
}

// Analyzer runs analyses. It is safe for concurrent use.
type Analyzer struct {
	geocoder  geocode.Client
	places    places.Client
	resolver  neighborhood.Resolver
	evaluator *viability.Evaluator
	limits    Limits
	language  string
	newID     func() string
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLimits overrides DefaultLimits.
func WithLimits(l Limits) Option {
	return func(a *Analyzer) {
		a.limits = l
	}
}

// WithLanguage sets the language requested from the places search.
func WithLanguage(lang string) Option {
	return func(a *Analyzer) {
		a.language = lang
	}
}

// WithIDFunc replaces the report id generator.
func WithIDFunc(f func() string) Option {
	return func(a *Analyzer) {
		a.newID = f
	}
}

// New creates an Analyzer.
func New(g geocode.Client, p places.Client, r neighborhood.Resolver, e *viability.Evaluator, opts ...Option) *Analyzer {
	a := &Analyzer{
		geocoder:  g,
		places:    p,
		resolver:  r,
		evaluator: e,
		limits:    DefaultLimits(),
		language:  "es",
		newID:     uuid.NewString,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Evaluator returns the scoring engine the analyzer uses.
func (a *Analyzer) Evaluator() *viability.Evaluator { return a.evaluator }

// Limits returns the active radius bounds.
func (a *Analyzer) Limits() Limits { return a.limits }

// Analyze runs one analysis. Bad input returns *InputError; a collaborator
// failure returns *ResolutionError.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*Report, error) {
	address, cat, radius, err := a.validate(req)
	if err != nil {
		return nil, err
	}

	geo, err := a.geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, &ResolutionError{Message: "could not geocode the address", Err: err}
	}
	if !geo.Matched {
		return nil, &ResolutionError{Message: "could not geocode the address, check that it is a valid street address"}
	}
	center := viability.Coordinates{Latitude: geo.Latitude, Longitude: geo.Longitude}

	f, err := a.fetch(ctx, center, cat, radius)
	if err != nil {
		return nil, &ResolutionError{Message: "could not fetch nearby places", Err: err}
	}

	result := a.evaluator.Evaluate(viability.Input{
		Competitors:  f.competitors,
		TransitStops: f.transit,
		Neighborhood: f.neighborhood,
		Category:     cat.Label,
		RadiusMeters: float64(radius),
	})

	report := &Report{
		ID:                   a.newID(),
		Address:              address,
		FormattedAddress:     geo.FormattedAddress,
		Location:             center,
		Neighborhood:         f.neighborhood,
		NeighborhoodResolved: f.resolved,
		Category:             cat,
		RadiusMeters:         radius,
		Competitors:          withDistance(center, f.competitors),
		TransitStops:         withDistance(center, f.transit),
		CompetitorCount:      len(f.competitors),
		TransitCount:         viability.UniqueStops(f.transit),
		Result:               result,
		Map:                  mapview.Build(center, float64(radius), geo.FormattedAddress, f.competitors, f.transit),
	}

	zap.L().Info("analysis: completed",
		zap.String("id", report.ID),
		zap.String("address", address),
		zap.String("category", cat.Label),
		zap.String("neighborhood", f.neighborhood),
		zap.Int("competitors", report.CompetitorCount),
		zap.Int("transit", report.TransitCount),
		zap.Int("score", result.OverallScore),
		zap.String("band", string(result.Band)),
	)
	return report, nil
}

func (a *Analyzer) validate(req Request) (string, catalog.Category, int, error) {
	address := strings.TrimSpace(req.Address)
	if address == "" {
		return "", catalog.Category{}, 0, &InputError{Field: "address", Message: "must not be empty"}
	}
	cat, ok := catalog.Resolve(req.Category)
	if !ok {
		return "", catalog.Category{}, 0, &InputError{Field: "category", Message: "must not be empty"}
	}
	radius := req.Radius
	if radius == 0 {
		radius = a.limits.Default
	}
	if radius < a.limits.Min || radius > a.limits.Max {
		return "", catalog.Category{}, 0, &InputError{
			Field:   "radius",
			Message: fmt.Sprintf("must be between %d and %d meters, got %d", a.limits.Min, a.limits.Max, radius),
		}
	}
	return address, cat, radius, nil
}

type fetched struct {
	competitors  []viability.Place
	transit      []viability.Place
	neighborhood string
	resolved     bool
}

// fetch runs the competitor search, both transit searches and the
// neighborhood lookup concurrently. Transit results keep the type order.
func (a *Analyzer) fetch(ctx context.Context, center viability.Coordinates, cat catalog.Category, radius int) (*fetched, error) {
	loc := places.LatLng{Lat: center.Latitude, Lng: center.Longitude}
	transitParts := make([][]viability.Place, len(TransitTypes))
	out := &fetched{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := a.places.NearbySearch(gctx, places.NearbyRequest{
			Location: loc, Radius: radius, Type: cat.Type, Keyword: cat.Keyword, Language: a.language,
		})
		if err != nil {
			return err
		}
		out.competitors = toPlaces(res)
		return nil
	})
	for i, typ := range TransitTypes {
		i, typ := i, typ
		g.Go(func() error {
			res, err := a.places.NearbySearch(gctx, places.NearbyRequest{
				Location: loc, Radius: radius, Type: typ, Language: a.language,
			})
			if err != nil {
				return err
			}
			transitParts[i] = toPlaces(res)
			return nil
		})
	}
	g.Go(func() error {
		out.neighborhood, out.resolved = a.resolver.Resolve(gctx, center.Latitude, center.Longitude)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.transit = []viability.Place{}
	for _, part := range transitParts {
		out.transit = append(out.transit, part...)
	}
	return out, nil
}

func toPlaces(in []places.Place) []viability.Place {
	out := make([]viability.Place, len(in))
	for i, p := range in {
		out[i] = viability.Place{
			ID:     p.PlaceID,
			Name:   p.Name,
			Rating: p.Rating,
			Location: viability.Coordinates{
				Latitude:  p.Geometry.Location.Lat,
				Longitude: p.Geometry.Location.Lng,
			},
		}
	}
	return out
}

func withDistance(center viability.Coordinates, in []viability.Place) []PlaceView {
	out := make([]PlaceView, len(in))
	for i, p := range in {
		out[i] = PlaceView{Place: p, DistanceMeters: mapview.Haversine(center, p.Location)}
	}
	return out
}
