package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/normalisers"
)

var ingestQuiet bool

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Add documents to the knowledge base",
	Long: `Ingest reads each file, strips its formatting, splits the text into
overlapping chunks and embeds them for retrieval. Re-ingesting a file
creates a new document; use "recall docs reprocess" to rebuild one.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVarP(&ingestQuiet, "quiet", "q", false, "Suppress the progress bar")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingestion service not configured")
	}

	for _, path := range args {
		doc, err := ingestFile(cmd, path)
		if err != nil {
			return fmt.Errorf("ingest %s: %w", path, err)
		}
		cmd.Printf("Ingested %q (%d chunks, id %s)\n", doc.Name, doc.ChunkCount, doc.ID)
	}
	return nil
}

func ingestFile(cmd *cobra.Command, path string) (*domain.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content, err := normalisers.ForPath(path).Normalise(raw)
	if err != nil {
		return nil, err
	}

	stopWatch := watchStatus(ingestService.Subscribe(), !ingestQuiet)
	doc, err := ingestService.Ingest(cmd.Context(), normalisers.Name(path, raw), content)
	stopWatch()
	return doc, err
}

// watchStatus renders status updates from the ingestor as a terminal
// progress bar until the returned stop function is called. When enabled
// is false it does nothing, so callers need no branching.
func watchStatus(updates <-chan domain.ProcessingStatus, enabled bool) (stop func()) {
	if !enabled {
		return func() {}
	}

	stopCh := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		bar := progressbar.NewOptions(100,
			progressbar.OptionSetDescription("starting"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionClearOnFinish(),
		)
		defer func() { _ = bar.Finish() }()

		for {
			select {
			case status := <-updates:
				if status.Step != "" {
					bar.Describe(status.Step)
				}
				_ = bar.Set(status.Progress)
			case <-stopCh:
				return
			}
		}
	}()

	return func() {
		close(stopCh)
		<-done
	}
}
