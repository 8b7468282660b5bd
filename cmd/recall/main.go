// Command recall is the entry point for the recall CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/recall-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/recall-cli/internal/adapters/driven/embedding"
	"github.com/custodia-labs/recall-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/recall-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/recall-cli/internal/core/services"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer store.Close()

	embedder, err := embedding.NewFromConfig(configStore)
	if err != nil {
		return err
	}
	if embedder != nil {
		defer embedder.Close()
		if err := embedding.Validate(context.Background(), embedder); err != nil {
			// Keep going: retrieval degrades to empty results and
			// ingestion stores chunks without vectors.
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	settings := configStore.RetrievalSettings()
	broker := services.NewStatusBroker()

	cli.SetServices(cli.Services{
		Ingestor:  services.NewIngestionService(store.DocumentStore(), embedder, broker, settings),
		Retriever: services.NewRetrievalService(store.DocumentStore(), embedder),
		Memory:    services.NewMemoryService(store.MemoryStore(), embedder),
		Config:    configStore,
		Embedder:  embedder,
	})
	cli.SetVersion(version)

	return cli.Execute()
}
