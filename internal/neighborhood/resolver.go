package neighborhood

import (
	"context"

	"go.uber.org/zap"
)

// Resolver maps a coordinate to a neighborhood name. A false second return
// is the "no data" signal; resolvers never fail a request.
type Resolver interface {
	Resolve(ctx context.Context, lat, lng float64) (string, bool)
}

// Chain tries each resolver in order and falls back to a fixed name when
// none of them knows the point.
type Chain struct {
	resolvers []Resolver
	fallback  string
}

// NewChain creates a Chain. Nil resolvers are dropped.
func NewChain(fallback string, resolvers ...Resolver) *Chain {
	c := &Chain{fallback: fallback}
	for _, r := range resolvers {
		if r != nil {
			c.resolvers = append(c.resolvers, r)
		}
	}
	return c
}

// Resolve implements Resolver. It always returns a name; the bool reports
// whether a resolver produced it (false means the fallback was used).
func (c *Chain) Resolve(ctx context.Context, lat, lng float64) (string, bool) {
	for _, r := range c.resolvers {
		if name, ok := r.Resolve(ctx, lat, lng); ok && name != "" {
			return name, true
		}
	}
	zap.L().Debug("neighborhood: no resolver matched, using fallback",
		zap.Float64("lat", lat),
		zap.Float64("lng", lng),
		zap.String("fallback", c.fallback),
	)
	return c.fallback, false
}
