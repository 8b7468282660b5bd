// Package cli implements the recall command-line interface using cobra.
// Commands are thin: they parse flags, call driving ports, and format
// output. All behaviour lives in the core services.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
	"github.com/custodia-labs/recall-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services injected by the composition root before Execute.
var (
	ingestService    driving.Ingestor
	retrievalService driving.Retriever
	memoryService    driving.MemoryService
	configStore      driven.ConfigStore
	embedder         driven.EmbeddingService
)

// Services bundles everything the CLI commands need.
type Services struct {
	Ingestor  driving.Ingestor
	Retriever driving.Retriever
	Memory    driving.MemoryService
	Config    driven.ConfigStore
	Embedder  driven.EmbeddingService
}

// SetServices wires the driving ports into the command tree.
func SetServices(s Services) {
	ingestService = s.Ingestor
	retrievalService = s.Retriever
	memoryService = s.Memory
	configStore = s.Config
	embedder = s.Embedder
}

// SetVersion overrides the build version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "recall",
	Short: "Local retrieval engine for chat context",
	Long: `Recall augments AI chat with local context.

It ingests documents into an embedded knowledge base, retrieves the
most relevant chunks for a message, and keeps long-term memory facts
across conversations. Everything is stored locally in SQLite.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
	},
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
