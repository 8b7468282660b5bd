package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recall-cli/internal/adapters/driving/watch"
)

var watchSettle time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and ingest new or changed files",
	Long: `Watch ingests every file created or modified in the directory once
it stops changing. Hidden files and editor temp files are skipped.
Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchSettle, "settle", watch.DefaultSettleDelay,
		"how long a file must stay unchanged before ingestion")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingestion service not configured")
	}

	watcher, err := watch.New(ingestService, args[0],
		watch.WithSettleDelay(watchSettle),
		watch.WithIngestCallback(func(path string, err error) {
			if err != nil {
				cmd.PrintErrf("Skipped %s: %v\n", path, err)
				return
			}
			cmd.Printf("Ingested %s\n", path)
		}),
	)
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", args[0])
	return watcher.Run(cmd.Context())
}
