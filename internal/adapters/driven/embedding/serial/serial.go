// Package serial wraps an embedding service with mutual exclusion and
// request-rate throttling.
//
// Local model runtimes handle one inference at a time; hosted APIs
// enforce request quotas. The gate serves both: a mutex keeps at most
// one embedding request in flight, and a token-bucket limiter spaces
// requests out.
package serial

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
)

// Ensure Gate implements the interface.
var _ driven.EmbeddingService = (*Gate)(nil)

// DefaultRequestsPerSecond is the default throttle. Generous for local
// runtimes, safe for hosted API free tiers.
const DefaultRequestsPerSecond = 10

// Gate serialises access to an inner embedding service.
type Gate struct {
	inner   driven.EmbeddingService
	limiter *rate.Limiter

	mu sync.Mutex
}

// Option configures a Gate.
type Option func(*Gate)

// WithRequestsPerSecond overrides the request throttle.
func WithRequestsPerSecond(rps float64) Option {
	return func(g *Gate) {
		if rps > 0 {
			g.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// New wraps inner with serialisation and throttling.
func New(inner driven.EmbeddingService, opts ...Option) *Gate {
	g := &Gate{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), 1),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Embed generates an embedding, holding the gate for the duration.
// Blank input short-circuits to a zero vector without touching the
// model runtime; blank text has no content to represent and the zero
// vector scores 0 against everything.
func (g *Gate) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return make([]float32, g.inner.Dimensions()), nil
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inner.Embed(ctx, text)
}

// EmbedBatch generates embeddings for multiple texts as one gated request.
func (g *Gate) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inner.EmbedBatch(ctx, texts)
}

// Dimensions returns the inner service's vector size.
func (g *Gate) Dimensions() int {
	return g.inner.Dimensions()
}

// ModelName returns the inner service's model name.
func (g *Gate) ModelName() string {
	return g.inner.ModelName()
}

// Ping forwards to the inner service, ungated; it is a health check,
// not an inference.
func (g *Gate) Ping(ctx context.Context) error {
	return g.inner.Ping(ctx)
}

// Close closes the inner service.
func (g *Gate) Close() error {
	return g.inner.Close()
}
