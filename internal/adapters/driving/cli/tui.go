package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal interface for recall.

Browse retrieval results, ingested documents and memory facts with
keyboard navigation.

Controls:
  tab      - Next view
  ↑/k, ↓/j - Navigate lists
  Enter    - Run query / list facts
  Esc      - Back to input
  a        - Archive selected fact
  ctrl+c   - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	// Panic recovery so a crashed TUI still prints a stack trace.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.New(&tui.Ports{
		Retriever: retrievalService,
		Memory:    memoryService,
		Ingestor:  ingestService,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	return app.Run()
}
