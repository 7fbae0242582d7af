package viability

import (
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/localscope/localscope-cli/internal/neighborhood"
)

// Input is everything one evaluation needs, already fetched.
type Input struct {
	Competitors  []Place
	TransitStops []Place
	Neighborhood string
	Category     string
	RadiusMeters float64
}

// Evaluator scores locations against an injected reference table.
// It holds no mutable state and is safe for concurrent use.
type Evaluator struct {
	table   *neighborhood.Table
	weights Weights
	lang    language.Tag
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithWeights overrides DefaultWeights. Weights are not re-validated here;
// callers validate them once at load time.
func WithWeights(w Weights) Option {
	return func(e *Evaluator) {
		e.weights = w
	}
}

// WithLocale sets the language used to format rent figures.
func WithLocale(tag language.Tag) Option {
	return func(e *Evaluator) {
		e.lang = tag
	}
}

// NewEvaluator creates an Evaluator over table.
func NewEvaluator(table *neighborhood.Table, opts ...Option) *Evaluator {
	e := &Evaluator{
		table:   table,
		weights: DefaultWeights(),
		lang:    language.English,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Table returns the reference table the evaluator scores against.
func (e *Evaluator) Table() *neighborhood.Table { return e.table }

// Weights returns the active weights.
func (e *Evaluator) Weights() Weights { return e.weights }

// Evaluate runs the four sub-scorers, aggregates them and derives insights.
func (e *Evaluator) Evaluate(in Input) Result {
	affinity := ClassifyCategory(in.Category)
	profile, _ := e.table.Lookup(in.Neighborhood)

	competition := ScoreCompetition(in.Competitors, in.RadiusMeters)
	transit := ScoreTransit(in.TransitStops)
	rent := scoreRent(profile, e.lang)
	demographic := ScoreDemographicProfile(profile, affinity)

	overall := e.weights.Overall(competition.Score, transit.Score, rent.Score, demographic.Score)

	zap.L().Debug("viability: evaluated",
		zap.String("neighborhood", e.table.Resolve(in.Neighborhood)),
		zap.String("affinity", affinity.String()),
		zap.Int("competition", competition.Score),
		zap.Int("transit", transit.Score),
		zap.Int("rent", rent.Score),
		zap.Int("demographic", demographic.Score),
		zap.Int("overall", overall),
	)

	return Result{
		OverallScore: overall,
		Band:         ClassifyBand(overall),
		Competition:  competition,
		Transit:      transit,
		Rent:         rent,
		Demographic:  demographic,
		RentPerArea:  profile.RentPerArea,
		Neighborhood: e.table.Resolve(in.Neighborhood),
		Affinity:     affinity,
		Insights:     Insights(competition.Tier, transit.Tier, rent.Tier, demographic.Tier, overall),
	}
}
