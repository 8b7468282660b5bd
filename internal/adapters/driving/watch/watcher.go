// Package watch feeds the ingestion pipeline from filesystem events.
// It watches a single directory and ingests files after they stop
// changing, so editors that write in several bursts produce one
// document, not five.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
	"github.com/custodia-labs/recall-cli/internal/logger"
	"github.com/custodia-labs/recall-cli/internal/normalisers"
)

// DefaultSettleDelay is how long a file must stay unchanged before it
// is ingested.
const DefaultSettleDelay = 500 * time.Millisecond

// Watcher ingests files written to a directory.
type Watcher struct {
	ingestor driving.Ingestor
	dir      string
	settle   time.Duration

	// onIngest, when set, is called after each ingestion attempt.
	onIngest func(path string, err error)

	// onReady, when set, is called once the directory watch is
	// registered and events will be seen.
	onReady func()
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithSettleDelay overrides the settle delay.
func WithSettleDelay(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.settle = d
		}
	}
}

// WithIngestCallback registers a callback invoked after every ingestion
// attempt with the file path and its outcome.
func WithIngestCallback(fn func(path string, err error)) Option {
	return func(w *Watcher) {
		w.onIngest = fn
	}
}

// WithReadyCallback registers a callback invoked once Run has
// registered the directory and is receiving events.
func WithReadyCallback(fn func()) Option {
	return func(w *Watcher) {
		w.onReady = fn
	}
}

// New creates a watcher for dir. The directory must exist.
func New(ingestor driving.Ingestor, dir string, opts ...Option) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch directory: %s is not a directory", dir)
	}

	w := &Watcher{
		ingestor: ingestor,
		dir:      dir,
		settle:   DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run watches the directory until the context is cancelled. Files are
// ingested sequentially in event order once they settle; a file still
// being written keeps resetting its settle clock.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close() //nolint:errcheck

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	logger.Info("Watching %s", w.dir)
	if w.onReady != nil {
		w.onReady()
	}

	pending := make(map[string]time.Time)
	poll := w.settle / 4
	if poll < 10*time.Millisecond {
		poll = 10 * time.Millisecond
	}
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if ignored(event.Name) {
				continue
			}
			pending[event.Name] = time.Now()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)

		case <-ticker.C:
			for path, last := range pending {
				if time.Since(last) < w.settle {
					continue
				}
				delete(pending, path)
				w.ingestFile(ctx, path)
			}
		}
	}
}

func (w *Watcher) ingestFile(ctx context.Context, path string) {
	err := w.tryIngest(ctx, path)
	if err != nil {
		logger.Warn("Skipped %s: %v", path, err)
	}
	if w.onIngest != nil {
		w.onIngest(path, err)
	}
}

func (w *Watcher) tryIngest(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		// Deleted between the event and the settle window is not an error.
		return nil
	}
	if info.IsDir() {
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	content, err := normalisers.ForPath(path).Normalise(raw)
	if err != nil {
		return err
	}

	doc, err := w.ingestor.Ingest(ctx, normalisers.Name(path, raw), content)
	if err != nil {
		return err
	}
	logger.Info("Ingested %s as %s (%d chunks)", path, doc.ID, doc.ChunkCount)
	return nil
}

// ignored filters hidden files and well-known temp suffixes.
func ignored(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	switch {
	case strings.HasSuffix(base, "~"),
		strings.HasSuffix(base, ".swp"),
		strings.HasSuffix(base, ".tmp"):
		return true
	}
	return false
}
