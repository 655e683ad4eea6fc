package cli

import (
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ragdex-labs/ragdex-cli/internal/extractors"
	"github.com/ragdex-labs/ragdex-cli/internal/logger"
)

// watchDebounce coalesces the event bursts editors and downloads produce
// for a single file into one ingestion.
const watchDebounce = 2 * time.Second

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and ingest changed documents",
	Long: `Watch a directory tree and re-ingest documents as they are added
or modified. Without an argument the configured corpus root is watched.
Runs until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	root := cfg.Corpus.Root
	if len(args) == 1 {
		root = args[0]
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return fmt.Errorf("watch root %s is not a directory", root)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchTree(watcher, root); err != nil {
		return err
	}

	supported := make(map[string]struct{})
	for _, ext := range extractors.Defaults().Extensions() {
		supported[ext] = struct{}{}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	trace := logger.Pipeline("watch")
	cmd.Printf("Watching %s (Ctrl+C to stop)\n", root)

	var mu sync.Mutex
	pending := make(map[string]*time.Timer)

	ingestPath := func(path string) {
		mu.Lock()
		delete(pending, path)
		mu.Unlock()

		records, err := ingestService.IngestDocument(ctx, path)
		if err != nil {
			trace.Warn("%s: %v", path, err)
			return
		}
		if err := vectorStore.Upsert(ctx, records); err != nil {
			trace.Warn("store %s: %v", path, err)
			return
		}
		cmd.Printf("Re-ingested %s: %d chunks\n", path, len(records))
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}

			// New directories join the watch so nested drops are seen.
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if event.Has(fsnotify.Create) {
					if err := watchTree(watcher, event.Name); err != nil {
						trace.Warn("%v", err)
					}
				}
				continue
			}

			ext := strings.ToLower(filepath.Ext(event.Name))
			if _, ok := supported[ext]; !ok {
				continue
			}

			path := event.Name
			mu.Lock()
			if timer, ok := pending[path]; ok {
				timer.Stop()
			}
			pending[path] = time.AfterFunc(watchDebounce, func() { ingestPath(path) })
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			trace.Warn("%v", err)
		}
	}
}

// watchTree registers dir and every subdirectory with the watcher.
func watchTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
