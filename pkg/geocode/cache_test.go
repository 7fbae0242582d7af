package geocode

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingClient struct {
	calls  int
	result *Result
	err    error
}

func (c *countingClient) Geocode(context.Context, string) (*Result, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	r := *c.result
	return &r, nil
}

func TestCacheKey_FoldsVariants(t *testing.T) {
	assert.Equal(t, cacheKey("Av. Córdoba  1200"), cacheKey("av. cordoba 1200"))
	assert.NotEqual(t, cacheKey("Av. Córdoba 1200"), cacheKey("Av. Córdoba 1201"))
}

func TestCachedClient_Hit(t *testing.T) {
	next := &countingClient{result: &Result{Latitude: -34.6, Longitude: -58.4, Matched: true}}
	c := NewCachedClient(next)

	first, err := c.Geocode(context.Background(), "Av. Córdoba 1200")
	require.NoError(t, err)
	second, err := c.Geocode(context.Background(), "av. cordoba 1200")
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, c.Len())
}

func TestCachedClient_CachesMisses(t *testing.T) {
	next := &countingClient{result: &Result{Matched: false}}
	c := NewCachedClient(next)

	for i := 0; i < 3; i++ {
		r, err := c.Geocode(context.Background(), "Calle Falsa 123")
		require.NoError(t, err)
		assert.False(t, r.Matched)
	}
	assert.Equal(t, 1, next.calls)
}

func TestCachedClient_ErrorsNotCached(t *testing.T) {
	next := &countingClient{err: errors.New("boom")}
	c := NewCachedClient(next)

	_, err := c.Geocode(context.Background(), "x")
	require.Error(t, err)
	_, err = c.Geocode(context.Background(), "x")
	require.Error(t, err)

	assert.Equal(t, 2, next.calls)
	assert.Zero(t, c.Len())
}
