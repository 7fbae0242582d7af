package main

import (
	"net/http"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/localscope/localscope-cli/internal/analysis"
	"github.com/localscope/localscope-cli/internal/config"
	"github.com/localscope/localscope-cli/internal/neighborhood"
	"github.com/localscope/localscope-cli/internal/viability"
	"github.com/localscope/localscope-cli/pkg/boundary"
	"github.com/localscope/localscope-cli/pkg/geocode"
	"github.com/localscope/localscope-cli/pkg/places"
)

// initEvaluator builds the scoring engine from config. It needs no network.
func initEvaluator(c *config.Config) (*viability.Evaluator, error) {
	table := neighborhood.DefaultTable()
	if c.Neighborhood.DataPath != "" {
		t, err := neighborhood.LoadFile(c.Neighborhood.DataPath)
		if err != nil {
			return nil, eris.Wrap(err, "load neighborhood table")
		}
		table = t
		zap.L().Info("loaded neighborhood table",
			zap.String("path", c.Neighborhood.DataPath),
			zap.Int("neighborhoods", table.Len()),
		)
	}

	return viability.NewEvaluator(table,
		viability.WithWeights(c.Scoring.Weights),
		viability.WithLocale(c.Scoring.LocaleTag()),
	), nil
}

// initResolver chains the local boundary index and the remote lookup,
// whichever are configured, ahead of the fallback name.
func initResolver(c *config.Config, hc *http.Client) (neighborhood.Resolver, error) {
	var resolvers []neighborhood.Resolver

	if c.Neighborhood.BoundariesPath != "" {
		idx, err := neighborhood.LoadBoundaries(c.Neighborhood.BoundariesPath, c.Neighborhood.NameField)
		if err != nil {
			return nil, eris.Wrap(err, "load neighborhood boundaries")
		}
		zap.L().Info("loaded neighborhood boundaries",
			zap.String("path", c.Neighborhood.BoundariesPath),
			zap.Int("polygons", idx.Len()),
		)
		resolvers = append(resolvers, idx)
	}

	if c.Neighborhood.ResolverURL != "" {
		resolvers = append(resolvers, boundary.NewClient(
			boundary.WithBaseURL(c.Neighborhood.ResolverURL),
			boundary.WithHTTPClient(hc),
			boundary.WithRetryPolicy(c.Retry.Policy()),
		))
	} else {
		zap.L().Debug("neighborhood resolver url not set, remote lookup disabled")
	}

	return neighborhood.NewChain(c.Neighborhood.FallbackName, resolvers...), nil
}

// initAnalyzer wires the Google clients, the resolver and the evaluator.
func initAnalyzer(mode string) (*analysis.Analyzer, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	eval, err := initEvaluator(cfg)
	if err != nil {
		return nil, err
	}

	hc := &http.Client{Timeout: cfg.Google.Timeout()}
	policy := cfg.Retry.Policy()

	geo := geocode.NewCachedClient(geocode.NewClient(cfg.Google.APIKey,
		geocode.WithBaseURL(cfg.Google.GeocodeURL),
		geocode.WithHTTPClient(hc),
		geocode.WithRateLimit(cfg.Google.RateLimitRPS),
		geocode.WithRegionSuffix(cfg.Google.RegionSuffix),
		geocode.WithLanguage(cfg.Google.Language),
		geocode.WithRetryPolicy(policy),
	))

	pc := places.NewClient(cfg.Google.APIKey,
		places.WithBaseURL(cfg.Google.PlacesURL),
		places.WithHTTPClient(hc),
		places.WithRateLimit(cfg.Google.RateLimitRPS),
		places.WithRetryPolicy(policy),
	)

	resolver, err := initResolver(cfg, hc)
	if err != nil {
		return nil, err
	}

	return analysis.New(geo, pc, resolver, eval,
		analysis.WithLimits(analysis.Limits{
			Default: cfg.Scoring.DefaultRadius,
			Min:     cfg.Scoring.MinRadius,
			Max:     cfg.Scoring.MaxRadius,
		}),
		analysis.WithLanguage(cfg.Google.Language),
	), nil
}
