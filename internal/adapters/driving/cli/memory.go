package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

var (
	memoryConversation string
	memoryMessage      string
	memoryLimit        int
	memoryMinAge       int
)

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Manage long-term memory facts",
	Long: `Memory stores facts extracted from prior conversations and retrieves
the ones relevant to a new message. Fresh facts are held back until
they are old enough to be worth repeating.`,
}

var memoryAddCmd = &cobra.Command{
	Use:   "add [fact]",
	Short: "Store a new fact",
	Args:  cobra.ExactArgs(1),
	RunE:  runMemoryAdd,
}

var memoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored facts",
	Args:  cobra.NoArgs,
	RunE:  runMemoryList,
}

var memorySearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Find facts relevant to a message",
	Args:  cobra.ExactArgs(1),
	RunE:  runMemorySearch,
}

var memoryArchiveCmd = &cobra.Command{
	Use:   "archive [memory-id]",
	Short: "Archive a fact",
	Long:  `Archived facts are hidden from retrieval but never hard-deleted.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runMemoryArchive,
}

var memoryReembedCmd = &cobra.Command{
	Use:   "reembed",
	Short: "Regenerate every fact's embedding",
	Long: `Reembed replaces each stored embedding with one from the active
model. Run this after switching embedding providers or models so old
and new vectors stay comparable. Entries that fail keep their
previous embedding.`,
	Args: cobra.NoArgs,
	RunE: runMemoryReembed,
}

func init() {
	memoryAddCmd.Flags().StringVar(&memoryConversation, "conversation", "", "Conversation the fact came from")
	memoryAddCmd.Flags().StringVar(&memoryMessage, "message", "", "Message the fact was extracted from")
	memorySearchCmd.Flags().IntVarP(&memoryLimit, "limit", "n", domain.DefaultMemoryLimit, "maximum number of results")
	memorySearchCmd.Flags().IntVar(&memoryMinAge, "min-age-days", domain.DefaultMemoryMinAgeDays, "exclude facts younger than this many days")

	memoryCmd.AddCommand(memoryAddCmd)
	memoryCmd.AddCommand(memoryListCmd)
	memoryCmd.AddCommand(memorySearchCmd)
	memoryCmd.AddCommand(memoryArchiveCmd)
	memoryCmd.AddCommand(memoryReembedCmd)
	rootCmd.AddCommand(memoryCmd)
}

func runMemoryAdd(cmd *cobra.Command, args []string) error {
	if memoryService == nil {
		return errors.New("memory service not configured")
	}

	entry, err := memoryService.Remember(cmd.Context(), memoryConversation, memoryMessage, args[0])
	if err != nil {
		return fmt.Errorf("failed to store fact: %w", err)
	}

	cmd.Printf("Remembered %s\n", entry.ID)
	if !entry.HasEmbedding() {
		cmd.Println("Note: no embedding was generated; the fact will be embedded on first retrieval.")
	}
	return nil
}

func runMemoryList(cmd *cobra.Command, _ []string) error {
	if memoryService == nil {
		return errors.New("memory service not configured")
	}

	entries, err := memoryService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list facts: %w", err)
	}

	if len(entries) == 0 {
		cmd.Println("No facts stored yet.")
		return nil
	}

	cmd.Println("Facts:")
	cmd.Println()
	for i := range entries {
		cmd.Printf("  %s\n", entries[i].ID)
		cmd.Printf("    %s\n", entries[i].Fact)
		cmd.Printf("    Created: %s\n", entries[i].CreatedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}
	cmd.Printf("Total: %d facts\n", len(entries))
	return nil
}

func runMemorySearch(cmd *cobra.Command, args []string) error {
	if memoryService == nil {
		return errors.New("memory service not configured")
	}

	limit := domain.ClampResultLimit(memoryLimit)
	minAge := domain.ClampMemoryMinAge(memoryMinAge)
	entries, err := memoryService.FindSimilarMemories(cmd.Context(), args[0], limit, minAge)
	if err != nil {
		return fmt.Errorf("memory search failed: %w", err)
	}

	if len(entries) == 0 {
		cmd.Println("No relevant facts found.")
		return nil
	}

	for i := range entries {
		cmd.Printf("  [%d] %s (%s)\n", i+1, entries[i].Fact, entries[i].ID)
	}
	return nil
}

func runMemoryArchive(cmd *cobra.Command, args []string) error {
	if memoryService == nil {
		return errors.New("memory service not configured")
	}

	if err := memoryService.Archive(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to archive fact: %w", err)
	}
	cmd.Printf("Archived %s\n", args[0])
	return nil
}

func runMemoryReembed(cmd *cobra.Command, _ []string) error {
	if memoryService == nil {
		return errors.New("memory service not configured")
	}

	var bar *progressbar.ProgressBar
	progress := func(current, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("re-embedding"),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = bar.Set(current)
	}

	result, err := memoryService.ReembedAll(cmd.Context(), progress)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("re-embedding failed: %w", err)
	}

	cmd.Printf("Re-embedded %d/%d facts", result.Processed, result.Total)
	if result.Failed > 0 {
		cmd.Printf(" (%d kept their previous embedding)", result.Failed)
	}
	cmd.Println()
	return nil
}
