// Package boundary looks up the Buenos Aires neighborhood (barrio) that
// contains a point, using the city's open-data point query service.
package boundary

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/localscope/localscope-cli/internal/resilience"
)

const defaultBaseURL = "https://datosabiertos-apis.buenosaires.gob.ar/datasets/barrios/consultar_punto"

// Client resolves coordinates to a neighborhood name.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	retry   resilience.Policy
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the point query endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithRateLimit caps outgoing requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), max(1, int(rps)))
	}
}

// WithRetryPolicy overrides the retry policy.
func WithRetryPolicy(p resilience.Policy) Option {
	return func(c *Client) {
		c.retry = p
	}
}

// NewClient creates an open-data boundary client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 8 * time.Second},
		limiter: rate.NewLimiter(5, 5),
		retry:   resilience.Policy{MaxAttempts: 2},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Lookup returns the neighborhood containing (lat, lng). An empty name with
// a nil error means the service answered but knows no neighborhood there.
func (c *Client) Lookup(ctx context.Context, lat, lng float64) (string, error) {
	params := url.Values{
		"x": {strconv.FormatFloat(lng, 'f', -1, 64)},
		"y": {strconv.FormatFloat(lat, 'f', -1, 64)},
	}
	reqURL := c.baseURL + "?" + params.Encode()

	name, err := resilience.DoVal(ctx, c.retry, func(ctx context.Context) (string, error) {
		return c.fetch(ctx, reqURL)
	})
	if err != nil {
		return "", eris.Wrapf(err, "boundary: lookup %f,%f", lat, lng)
	}
	return name, nil
}

// Resolve adapts Lookup to the neighborhood resolver contract: any failure
// is reported as "no data" so scoring can fall back.
func (c *Client) Resolve(ctx context.Context, lat, lng float64) (string, bool) {
	name, err := c.Lookup(ctx, lat, lng)
	if err != nil {
		zap.L().Warn("boundary: lookup failed", zap.Float64("lat", lat), zap.Float64("lng", lng), zap.Error(err))
		return "", false
	}
	return name, name != ""
}

func (c *Client) fetch(ctx context.Context, reqURL string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "boundary: rate limit")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", eris.Wrap(err, "boundary: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() //nolint:errcheck

	if err := resilience.CheckStatus("boundary", resp); err != nil {
		return "", err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", eris.Wrap(err, "boundary: read response")
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", eris.Wrap(err, "boundary: unmarshal response")
	}
	return nameFrom(payload), nil
}

// nameFrom reads the neighborhood name, which the service has returned
// under both "nombre" and "NOMBRE".
func nameFrom(payload map[string]any) string {
	for _, key := range []string{"nombre", "NOMBRE", "barrio", "BARRIO"} {
		if s, ok := payload[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
