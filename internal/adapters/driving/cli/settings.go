package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the retrieval knobs and the embedding provider.

Settings are stored in ~/.recall/config.toml. Values outside their
valid range are clamped when read, never rejected.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a retrieval knob",
	Long: `Set one of the retrieval knobs:

  chunk-size      characters per chunk (128-2048)
  chunk-overlap   characters shared between adjacent chunks (0-256)
  rag-limit       chunks returned per query (1-10)
  memory-limit    facts returned per memory search (1-10)
  memory-min-age  days a fact must age before retrieval (0-30)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one retrieval knob's effective value",
	Long:  `Prints the clamped value actually used, not the raw stored one.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure the embedding provider",
	Long:  `Interactively configure the provider used to embed chunks and facts.`,
	RunE:  runSettingsEmbedding,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	rootCmd.AddCommand(settingsCmd)
}

// knobKeys maps the user-facing knob names to configuration keys.
var knobKeys = map[string]string{
	"chunk-size":     driven.KeyChunkSize,
	"chunk-overlap":  driven.KeyChunkOverlap,
	"rag-limit":      driven.KeyRAGLimit,
	"memory-limit":   driven.KeyMemoryLimit,
	"memory-min-age": driven.KeyMemoryMinAgeDays,
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	settings := configStore.RetrievalSettings()

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Chunk size:      %d\n", settings.ChunkSize)
	cmd.Printf("  Chunk overlap:   %d\n", settings.ChunkOverlap)
	cmd.Printf("  RAG limit:       %d\n", settings.RAGLimit)
	cmd.Printf("  Memory limit:    %d\n", settings.MemoryLimit)
	cmd.Printf("  Memory min age:  %d days\n", settings.MemoryMinAgeDays)
	cmd.Println()

	cmd.Println("[Embedding]")
	provider := configStore.GetString(driven.KeyEmbeddingProvider)
	if provider == "" {
		cmd.Println("  Provider: (not set - retrieval will run without vectors)")
	} else {
		cmd.Printf("  Provider: %s\n", provider)
		if model := configStore.GetString(driven.KeyEmbeddingModel); model != "" {
			cmd.Printf("  Model: %s\n", model)
		}
		if baseURL := configStore.GetString(driven.KeyEmbeddingBaseURL); baseURL != "" {
			cmd.Printf("  Base URL: %s\n", baseURL)
		}
		if key := configStore.GetString(driven.KeyEmbeddingAPIKey); key != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(key))
		}
		if dims := configStore.GetInt(driven.KeyEmbeddingDimensions); dims != 0 {
			cmd.Printf("  Dimensions: %d\n", dims)
		}
	}
	cmd.Println()
	cmd.Printf("Config file: %s\n", configStore.Path())
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	if _, ok := knobKeys[args[0]]; !ok {
		return fmt.Errorf("unknown setting %q (see 'recall settings set --help')", args[0])
	}

	settings := configStore.RetrievalSettings()
	values := map[string]int{
		"chunk-size":     settings.ChunkSize,
		"chunk-overlap":  settings.ChunkOverlap,
		"rag-limit":      settings.RAGLimit,
		"memory-limit":   settings.MemoryLimit,
		"memory-min-age": settings.MemoryMinAgeDays,
	}
	cmd.Printf("%d\n", values[args[0]])
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, ok := knobKeys[args[0]]
	if !ok {
		return fmt.Errorf("unknown setting %q (see 'recall settings set --help')", args[0])
	}

	value, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("value for %s must be an integer: %w", args[0], err)
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}

	cmd.Printf("Set %s = %d\n", args[0], value)
	return nil
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Embedding provider:")
	cmd.Println("  1. ollama (local, default)")
	cmd.Println("  2. openai (hosted, requires API key)")
	cmd.Print("Choice [1]: ")
	provider := "ollama"
	if choice := readLine(reader); choice == "2" || strings.EqualFold(choice, "openai") {
		provider = "openai"
	}

	cmd.Print("Model (empty for provider default): ")
	model := readLine(reader)

	values := map[string]any{
		driven.KeyEmbeddingProvider: provider,
		driven.KeyEmbeddingModel:    model,
	}

	switch provider {
	case "ollama":
		cmd.Print("Base URL [http://localhost:11434]: ")
		if baseURL := readLine(reader); baseURL != "" {
			values[driven.KeyEmbeddingBaseURL] = baseURL
		}
	case "openai":
		cmd.Print("API key: ")
		apiKey := readSecret(reader)
		cmd.Println()
		if apiKey == "" {
			return errors.New("an API key is required for openai")
		}
		values[driven.KeyEmbeddingAPIKey] = apiKey
	}

	for key, value := range values {
		if err := configStore.Set(key, value); err != nil {
			return fmt.Errorf("failed to save setting: %w", err)
		}
	}

	cmd.Printf("Embedding provider set to %s.\n", provider)
	cmd.Println("Run 'recall memory reembed' and 'recall docs reprocess' to refresh stored vectors.")
	return nil
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// readSecret reads without echo when stdin is a terminal, falling back
// to a plain read when it is not (tests, pipes).
func readSecret(reader *bufio.Reader) string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		if secret, err := term.ReadPassword(int(os.Stdin.Fd())); err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
