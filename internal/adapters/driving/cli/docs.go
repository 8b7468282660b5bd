package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage ingested documents",
	Long:  `List, inspect, delete, or reprocess documents in the knowledge base.`,
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all documents",
	Args:  cobra.NoArgs,
	RunE:  runDocsList,
}

var docsShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsShow,
}

var docsDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Remove a document and its chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsDelete,
}

var docsReprocessCmd = &cobra.Command{
	Use:   "reprocess [doc-id]",
	Short: "Rebuild a document's chunks and embeddings",
	Long: `Reprocess discards every chunk of the document and runs the full
chunk and embed pipeline again over its stored content. Useful after
changing the chunking settings or the embedding model.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocsReprocess,
}

// reprocessQuiet suppresses the progress bar for reprocess runs.
var reprocessQuiet bool

func init() {
	docsReprocessCmd.Flags().BoolVarP(&reprocessQuiet, "quiet", "q", false, "Suppress the progress bar")
	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsShowCmd)
	docsCmd.AddCommand(docsDeleteCmd)
	docsCmd.AddCommand(docsReprocessCmd)
	rootCmd.AddCommand(docsCmd)
}

func runDocsList(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingestion service not configured")
	}

	docs, err := ingestService.ListDocuments(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents ingested yet.")
		return nil
	}

	cmd.Println("Documents:")
	cmd.Println()
	for i := range docs {
		state := "pending"
		if docs[i].IsProcessed {
			state = fmt.Sprintf("%d chunks", docs[i].ChunkCount)
		}
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Name: %s (%s, %d bytes)\n", docs[i].Name, state, docs[i].SizeBytes)
		cmd.Println()
	}
	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocsShow(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingestion service not configured")
	}

	doc, err := ingestService.GetDocument(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Name:      %s\n", doc.Name)
	cmd.Printf("  Size:      %d bytes\n", doc.SizeBytes)
	cmd.Printf("  Processed: %t\n", doc.IsProcessed)
	cmd.Printf("  Chunks:    %d\n", doc.ChunkCount)
	cmd.Printf("  Created:   %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Updated:   %s\n", doc.UpdatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func runDocsDelete(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingestion service not configured")
	}

	if err := ingestService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	cmd.Printf("Deleted document %s\n", args[0])
	return nil
}

func runDocsReprocess(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingestion service not configured")
	}

	stopWatch := watchStatus(ingestService.Subscribe(), !reprocessQuiet)
	err := ingestService.Reprocess(cmd.Context(), args[0])
	stopWatch()
	if err != nil {
		return fmt.Errorf("failed to reprocess document: %w", err)
	}
	cmd.Printf("Reprocessed document %s\n", args[0])
	return nil
}
