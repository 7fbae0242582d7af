package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/localscope/localscope-cli/internal/resilience"
)

const googleGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

type googleGeocodeResponse struct {
	Results      []googleResult `json:"results"`
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message"`
}

type googleResult struct {
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
		LocationType string `json:"location_type"`
	} `json:"geometry"`
	FormattedAddress string `json:"formatted_address"`
}

// Geocode resolves address, appending the region suffix unless the
// address already ends with it. Any status other than OK is a miss.
func (g *geocoder) Geocode(ctx context.Context, address string) (*Result, error) {
	if g.apiKey == "" {
		return nil, eris.New("geocode: google api key not configured")
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return &Result{Matched: false}, nil
	}

	params := url.Values{
		"address": {g.qualify(address)},
		"key":     {g.apiKey},
	}
	if g.language != "" {
		params.Set("language", g.language)
	}
	reqURL := g.baseURL + "?" + params.Encode()

	gr, err := resilience.DoVal(ctx, g.retry, func(ctx context.Context) (*googleGeocodeResponse, error) {
		return g.fetch(ctx, reqURL)
	})
	if err != nil {
		return nil, eris.Wrap(err, "geocode: google request")
	}

	if gr.Status != "OK" || len(gr.Results) == 0 {
		if gr.Status != "OK" && gr.Status != "ZERO_RESULTS" {
			zap.L().Warn("geocode: google returned no match",
				zap.String("status", gr.Status),
				zap.String("message", gr.ErrorMessage),
			)
		}
		return &Result{Matched: false}, nil
	}

	top := gr.Results[0]
	return &Result{
		Latitude:         top.Geometry.Location.Lat,
		Longitude:        top.Geometry.Location.Lng,
		FormattedAddress: top.FormattedAddress,
		Quality:          googleLocationTypeToQuality(top.Geometry.LocationType),
		Matched:          true,
	}, nil
}

func (g *geocoder) qualify(address string) string {
	suffix := strings.TrimSpace(strings.TrimPrefix(g.regionSuffix, ","))
	if suffix == "" || strings.HasSuffix(strings.ToLower(address), strings.ToLower(suffix)) {
		return address
	}
	return address + g.regionSuffix
}

func (g *geocoder) fetch(ctx context.Context, reqURL string) (*googleGeocodeResponse, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "geocode: google rate limit")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: google build request")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	if err := resilience.CheckStatus("geocode", resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: google read body")
	}

	var out googleGeocodeResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, eris.Wrap(err, "geocode: google parse response")
	}
	if out.Status == "OVER_QUERY_LIMIT" || out.Status == "UNKNOWN_ERROR" {
		return nil, resilience.NewTransientError(eris.Errorf("geocode: google status %s", out.Status), 0)
	}
	return &out, nil
}

// googleLocationTypeToQuality maps Google's location_type to our quality taxonomy.
func googleLocationTypeToQuality(locType string) string {
	switch strings.ToUpper(locType) {
	case "ROOFTOP":
		return "rooftop"
	case "RANGE_INTERPOLATED":
		return "range"
	case "GEOMETRIC_CENTER":
		return "centroid"
	default:
		return "approximate"
	}
}
