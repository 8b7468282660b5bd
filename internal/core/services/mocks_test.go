package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
)

// fakeEmbedder is a deterministic EmbeddingService for tests. Texts
// registered in vectors get their vector back; anything else gets a unit
// vector on the first axis. Failures can be injected per text or for
// every call.
type fakeEmbedder struct {
	mu      sync.Mutex
	dims    int
	vectors map[string][]float32
	failOn  map[string]error
	failAll error
	calls   []string

	// When set, Embed blocks until the channel is closed or the context
	// is cancelled.
	block chan struct{}
}

var _ driven.EmbeddingService = (*fakeEmbedder)(nil)

func newFakeEmbedder(dims int) *fakeEmbedder {
	return &fakeEmbedder{
		dims:    dims,
		vectors: make(map[string][]float32),
		failOn:  make(map[string]error),
	}
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	if err, ok := f.failOn[text]; ok {
		return nil, err
	}
	if vec, ok := f.vectors[text]; ok {
		out := make([]float32, len(vec))
		copy(out, vec)
		return out, nil
	}
	vec := make([]float32, f.dims)
	vec[0] = 1
	return vec, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vec, err := f.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out = append(out, vec)
	}
	return out, nil
}

func (f *fakeEmbedder) Dimensions() int    { return f.dims }
func (f *fakeEmbedder) ModelName() string  { return "fake-embed" }
func (f *fakeEmbedder) Ping(context.Context) error { return nil }
func (f *fakeEmbedder) Close() error       { return nil }

func (f *fakeEmbedder) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
