// Package embedding assembles the configured embedding provider.
package embedding

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/recall-cli/internal/adapters/driven/embedding/ollama"
	"github.com/custodia-labs/recall-cli/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/recall-cli/internal/adapters/driven/embedding/serial"
	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for connectivity validation.
const pingTimeout = 5 * time.Second

// Providers recognised by the factory.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// NewFromConfig builds the embedding service described by the
// configuration. Returns (nil, nil) when no provider is configured;
// the application then runs without semantic retrieval.
//
// The returned service is wrapped in a serialising gate, so callers can
// share it across goroutines without overwhelming a local provider.
func NewFromConfig(cfg driven.ConfigStore) (driven.EmbeddingService, error) {
	provider := cfg.GetString(driven.KeyEmbeddingProvider)
	if provider == "" {
		return nil, nil
	}

	var (
		svc driven.EmbeddingService
		err error
	)
	switch provider {
	case ProviderOllama:
		svc = ollama.NewEmbeddingService(ollama.Config{
			BaseURL:    cfg.GetString(driven.KeyEmbeddingBaseURL),
			Model:      cfg.GetString(driven.KeyEmbeddingModel),
			Dimensions: cfg.GetInt(driven.KeyEmbeddingDimensions),
		})
	case ProviderOpenAI:
		svc, err = openai.NewEmbeddingService(openai.Config{
			APIKey:     cfg.GetString(driven.KeyEmbeddingAPIKey),
			BaseURL:    cfg.GetString(driven.KeyEmbeddingBaseURL),
			Model:      cfg.GetString(driven.KeyEmbeddingModel),
			Dimensions: cfg.GetInt(driven.KeyEmbeddingDimensions),
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", provider)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}

	return serial.New(svc), nil
}

// Validate checks the service is reachable with a lightweight request.
// Run this at startup so a misconfigured provider fails loudly instead
// of failing on the first ingestion.
func Validate(ctx context.Context, svc driven.EmbeddingService) error {
	if svc == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		return fmt.Errorf("%w: service unreachable (%w). Run 'recall settings embedding' to fix",
			domain.ErrEmbeddingUnavailable, err)
	}
	return nil
}
