// Package places is a client for the Google Places Nearby Search API.
package places

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/localscope/localscope-cli/internal/resilience"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/place"

// Client searches for places around a point.
type Client interface {
	NearbySearch(ctx context.Context, req NearbyRequest) ([]Place, error)
}

// LatLng is a WGS 84 point in the API's wire shape.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NearbyRequest selects places within Radius meters of Location. Type and
// Keyword are optional filters.
type NearbyRequest struct {
	Location LatLng
	Radius   int
	Type     string
	Keyword  string
	Language string
}

// Place is one Nearby Search result.
type Place struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Rating           *float64 `json:"rating,omitempty"`
	UserRatingsTotal int      `json:"user_ratings_total,omitempty"`
	Vicinity         string   `json:"vicinity,omitempty"`
	Types            []string `json:"types,omitempty"`
	Geometry         struct {
		Location LatLng `json:"location"`
	} `json:"geometry"`
}

// NearbyResponse is the Nearby Search response body.
type NearbyResponse struct {
	Results      []Place `json:"results"`
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message,omitempty"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit caps outgoing requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), max(1, int(rps)))
	}
}

// WithRetryPolicy overrides the retry policy for transient failures.
func WithRetryPolicy(p resilience.Policy) Option {
	return func(c *httpClient) {
		c.retry = p
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	retry   resilience.Policy
}

// NewClient creates a Places API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(10, 10),
		retry:   resilience.DefaultPolicy().WithLogging("places", "nearby_search"),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// NearbySearch returns the first page of results. ZERO_RESULTS is an empty
// slice; any other non-OK status is an error.
func (c *httpClient) NearbySearch(ctx context.Context, req NearbyRequest) ([]Place, error) {
	if c.apiKey == "" {
		return nil, eris.New("places: api key not configured")
	}

	params := url.Values{
		"location": {strconv.FormatFloat(req.Location.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(req.Location.Lng, 'f', -1, 64)},
		"radius":   {strconv.Itoa(req.Radius)},
		"key":      {c.apiKey},
	}
	if req.Type != "" {
		params.Set("type", req.Type)
	}
	if req.Keyword != "" {
		params.Set("keyword", req.Keyword)
	}
	if req.Language != "" {
		params.Set("language", req.Language)
	}
	reqURL := c.baseURL + "/nearbysearch/json?" + params.Encode()

	resp, err := resilience.DoVal(ctx, c.retry, func(ctx context.Context) (*NearbyResponse, error) {
		return c.get(ctx, reqURL)
	})
	if err != nil {
		return nil, eris.Wrapf(err, "places: nearby search type=%q keyword=%q", req.Type, req.Keyword)
	}

	switch resp.Status {
	case "OK":
		return resp.Results, nil
	case "ZERO_RESULTS":
		return []Place{}, nil
	default:
		return nil, eris.Errorf("places: nearby search status %s: %s", resp.Status, resp.ErrorMessage)
	}
}

func (c *httpClient) get(ctx context.Context, reqURL string) (*NearbyResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "places: rate limit")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "places: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	if err := resilience.CheckStatus("places", resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "places: read response")
	}

	var out NearbyResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, eris.Wrap(err, "places: unmarshal response")
	}
	if out.Status == "OVER_QUERY_LIMIT" || out.Status == "UNKNOWN_ERROR" {
		return nil, resilience.NewTransientError(eris.Errorf("places: status %s", out.Status), 0)
	}
	return &out, nil
}
