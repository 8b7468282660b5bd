package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

var (
	queryLimit       int
	queryJSON        bool
	queryInteractive bool
)

var queryCmd = &cobra.Command{
	Use:   "query [message]",
	Short: "Retrieve the chunks most relevant to a message",
	Long: `Query embeds the message and ranks every embedded chunk in the
knowledge base by combined semantic and lexical relevance.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryLimit, "limit", "n", domain.DefaultRAGLimit, "maximum number of results")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output results as JSON")
	queryCmd.Flags().BoolVarP(&queryInteractive, "interactive", "i", false, "open the interactive TUI instead")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	if queryInteractive {
		return runTUI(cmd, nil)
	}
	if len(args) == 0 {
		return errors.New("a message is required unless --interactive is set")
	}

	results, err := retrievalService.SearchSimilarChunks(cmd.Context(), args[0], domain.ClampResultLimit(queryLimit))
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		return outputQueryJSON(cmd, results)
	}
	return outputQueryTable(cmd, results)
}

// chunkResult is the JSON shape for one retrieved chunk.
type chunkResult struct {
	ChunkID             string  `json:"chunk_id"`
	DocumentID          string  `json:"document_id"`
	DocumentName        string  `json:"document_name,omitempty"`
	ChunkIndex          int     `json:"chunk_index"`
	Content             string  `json:"content"`
	Score               float64 `json:"score"`
	EmbeddingSimilarity float64 `json:"embedding_similarity"`
	KeywordBoost        float64 `json:"keyword_boost"`
	ExactMatchBoost     float64 `json:"exact_match_boost"`
}

func chunkResults(cmd *cobra.Command, results []domain.ScoreResult[domain.Chunk]) []chunkResult {
	names := make(map[string]string)
	out := make([]chunkResult, 0, len(results))
	for _, r := range results {
		name, ok := names[r.Item.DocumentID]
		if !ok && ingestService != nil {
			if doc, err := ingestService.GetDocument(cmd.Context(), r.Item.DocumentID); err == nil {
				name = doc.Name
			}
			names[r.Item.DocumentID] = name
		}
		out = append(out, chunkResult{
			ChunkID:             r.Item.ID,
			DocumentID:          r.Item.DocumentID,
			DocumentName:        name,
			ChunkIndex:          r.Item.ChunkIndex,
			Content:             r.Item.Content,
			Score:               r.Score,
			EmbeddingSimilarity: r.EmbeddingSimilarity,
			KeywordBoost:        r.KeywordBoost,
			ExactMatchBoost:     r.ExactMatchBoost,
		})
	}
	return out
}

func outputQueryJSON(cmd *cobra.Command, results []domain.ScoreResult[domain.Chunk]) error {
	data, err := json.MarshalIndent(chunkResults(cmd, results), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputQueryTable(cmd *cobra.Command, results []domain.ScoreResult[domain.Chunk]) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, r := range chunkResults(cmd, results) {
		label := r.DocumentName
		if label == "" {
			label = r.DocumentID
		}
		cmd.Printf("  [%d] %s #%d (%.2f)\n", i+1, label, r.ChunkIndex, r.Score)
		cmd.Printf("      %s\n", snippet(r.Content, 160))
		cmd.Println()
	}
	return nil
}

// snippet collapses whitespace and truncates content for one-line display.
func snippet(content string, max int) string {
	oneLine := strings.Join(strings.Fields(content), " ")
	if len(oneLine) <= max {
		return oneLine
	}
	cut := oneLine[:max]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
