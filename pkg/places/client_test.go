package places

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localscope/localscope-cli/internal/resilience"
)

func newTestClient(t *testing.T, h http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient("test-key",
		WithBaseURL(srv.URL),
		WithRateLimit(1000),
		WithRetryPolicy(resilience.Policy{MaxAttempts: 3, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond}),
	)
}

func rating(v float64) *float64 { return &v }

func TestNearbySearch_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/nearbysearch/json", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "-34.6037,-58.3816", q.Get("location"))
		assert.Equal(t, "500", q.Get("radius"))
		assert.Equal(t, "cafe", q.Get("type"))
		assert.Equal(t, "cafeteria cafe", q.Get("keyword"))
		assert.Equal(t, "es", q.Get("language"))
		assert.Equal(t, "test-key", q.Get("key"))

		p := Place{PlaceID: "abc", Name: "Café Tortoni", Rating: rating(4.4)}
		p.Geometry.Location = LatLng{Lat: -34.6087, Lng: -58.3787}
		_ = json.NewEncoder(w).Encode(NearbyResponse{Status: "OK", Results: []Place{p, {PlaceID: "def", Name: "Sin rating"}}})
	})

	got, err := client.NearbySearch(context.Background(), NearbyRequest{
		Location: LatLng{Lat: -34.6037, Lng: -58.3816},
		Radius:   500,
		Type:     "cafe",
		Keyword:  "cafeteria cafe",
		Language: "es",
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Café Tortoni", got[0].Name)
	require.NotNil(t, got[0].Rating)
	assert.InDelta(t, 4.4, *got[0].Rating, 0.001)
	assert.InDelta(t, -34.6087, got[0].Geometry.Location.Lat, 1e-9)
	assert.Nil(t, got[1].Rating)
}

func TestNearbySearch_OptionalParamsOmitted(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.False(t, q.Has("type"))
		assert.False(t, q.Has("keyword"))
		assert.False(t, q.Has("language"))
		_ = json.NewEncoder(w).Encode(NearbyResponse{Status: "ZERO_RESULTS"})
	})

	got, err := client.NearbySearch(context.Background(), NearbyRequest{Radius: 200})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNearbySearch_DeniedStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(NearbyResponse{Status: "REQUEST_DENIED", ErrorMessage: "The provided API key is invalid."})
	})

	_, err := client.NearbySearch(context.Background(), NearbyRequest{Radius: 500})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REQUEST_DENIED")
	assert.Contains(t, err.Error(), "API key is invalid")
}

func TestNearbySearch_RetriesTransient(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		switch calls.Add(1) {
		case 1:
			w.WriteHeader(http.StatusServiceUnavailable)
		case 2:
			_ = json.NewEncoder(w).Encode(NearbyResponse{Status: "OVER_QUERY_LIMIT"})
		default:
			_ = json.NewEncoder(w).Encode(NearbyResponse{Status: "OK", Results: []Place{{PlaceID: "x"}}})
		}
	})

	got, err := client.NearbySearch(context.Background(), NearbyRequest{Radius: 500})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestNearbySearch_PermanentHTTPError(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.NearbySearch(context.Background(), NearbyRequest{Radius: 500})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 403")
	assert.Equal(t, int32(1), calls.Load())
}

func TestNearbySearch_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	})

	_, err := client.NearbySearch(context.Background(), NearbyRequest{Radius: 500})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestNearbySearch_MissingKey(t *testing.T) {
	_, err := NewClient("").NearbySearch(context.Background(), NearbyRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key not configured")
}
