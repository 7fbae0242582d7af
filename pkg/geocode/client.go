// Package geocode resolves free-text street addresses to coordinates with
// the Google Geocoding API.
package geocode

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/localscope/localscope-cli/internal/resilience"
)

// DefaultRegionSuffix scopes bare street addresses to the city.
const DefaultRegionSuffix = ", Buenos Aires, Argentina"

// Client geocodes addresses.
type Client interface {
	// Geocode resolves one address. A well-formed response with no match
	// is not an error: it returns a Result with Matched=false.
	Geocode(ctx context.Context, address string) (*Result, error)
}

// Result holds the geocoding output for an address.
type Result struct {
	Latitude         float64 `json:"lat"`
	Longitude        float64 `json:"lng"`
	FormattedAddress string  `json:"formatted_address"`
	Quality          string  `json:"quality"` // "rooftop", "range", "centroid", "approximate"
	Matched          bool    `json:"matched"`
}

// Option configures the geocoder.
type Option func(*geocoder)

// WithBaseURL overrides the Geocoding API endpoint.
func WithBaseURL(u string) Option {
	return func(g *geocoder) {
		g.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *geocoder) {
		g.httpClient = hc
	}
}

// WithRateLimit sets the requests-per-second limit.
func WithRateLimit(rps float64) Option {
	return func(g *geocoder) {
		g.limiter = rate.NewLimiter(rate.Limit(rps), max(1, int(rps)))
	}
}

// WithRegionSuffix replaces DefaultRegionSuffix. An empty suffix sends
// addresses unchanged.
func WithRegionSuffix(s string) Option {
	return func(g *geocoder) {
		g.regionSuffix = s
	}
}

// WithLanguage sets the language of formatted addresses.
func WithLanguage(lang string) Option {
	return func(g *geocoder) {
		g.language = lang
	}
}

// WithRetryPolicy overrides the retry policy for transient failures.
func WithRetryPolicy(p resilience.Policy) Option {
	return func(g *geocoder) {
		g.retry = p
	}
}

type geocoder struct {
	apiKey       string
	baseURL      string
	regionSuffix string
	language     string
	httpClient   *http.Client
	limiter      *rate.Limiter
	retry        resilience.Policy
}

// NewClient creates a Google geocoding Client.
func NewClient(apiKey string, opts ...Option) Client {
	g := &geocoder{
		apiKey:       apiKey,
		baseURL:      googleGeocodeURL,
		regionSuffix: DefaultRegionSuffix,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		limiter:      rate.NewLimiter(25, 25),
		retry:        resilience.DefaultPolicy().WithLogging("geocode", "google"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}
