package geocode

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"go.uber.org/zap"

	"github.com/localscope/localscope-cli/internal/textnorm"
)

// cacheKey returns the SHA-256 hex of the folded address, so spelling
// variants that differ only in case, accents or spacing share an entry.
func cacheKey(address string) string {
	h := sha256.Sum256([]byte(textnorm.Fold(address)))
	return hex.EncodeToString(h[:])
}

// CachedClient memoizes successful lookups, misses included, for the life
// of the process. Errors are not cached.
type CachedClient struct {
	next Client

	mu      sync.RWMutex
	entries map[string]Result
}

// NewCachedClient wraps next with an in-memory cache.
func NewCachedClient(next Client) *CachedClient {
	return &CachedClient{next: next, entries: make(map[string]Result)}
}

// Geocode returns the cached result for address or asks the wrapped client.
func (c *CachedClient) Geocode(ctx context.Context, address string) (*Result, error) {
	key := cacheKey(address)

	c.mu.RLock()
	r, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		zap.L().Debug("geocode: cache hit", zap.String("address", address))
		return &r, nil
	}

	res, err := c.next.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = *res
	c.mu.Unlock()
	return res, nil
}

// Len returns the number of cached addresses.
func (c *CachedClient) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
