package cli

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sz10101/vym/internal/logging"
)

// DefaultWatchDebounce coalesces the bursts of events editors produce on save.
const DefaultWatchDebounce = 100 * time.Millisecond

// WatchOptions configures RunWatch.
type WatchOptions struct {
	Path     string
	Debounce time.Duration
	Logger   *slog.Logger
	Out      io.Writer
}

// RunWatch runs the script at opts.Path once and again each time its content
// changes, until ctx ends. A run in progress is cancelled when the file
// changes. Script errors are logged, not returned.
func RunWatch(ctx context.Context, opts WatchOptions, run func(ctx context.Context) error) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultWatchDebounce
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	last, err := fileHash(opts.Path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", opts.Path, err)
	}
	defer watcher.Close()
	// Editors often replace the file instead of writing it, so watch the directory.
	if err := watcher.Add(filepath.Dir(opts.Path)); err != nil {
		return fmt.Errorf("watch %s: %w", opts.Path, err)
	}
	printSystemMessage(opts.Out, "watching %s", opts.Path)

	for {
		iterCtx, cancel := context.WithCancel(ctx)
		done := make(chan error, 1)
		finished := make(chan struct{})
		go func() {
			defer close(finished)
			done <- run(iterCtx)
		}()

		next, changed := waitForChange(ctx, watcher, opts, last, done, logger)
		cancel()
		<-finished
		if !changed {
			return nil
		}
		last = next
		logger.Info("change detected, rerunning", "path", opts.Path)
		printSystemMessage(opts.Out, "reloading %s", opts.Path)
	}
}

// waitForChange waits until the content hash differs from last and returns
// the new hash. It reports false when ctx ends first.
func waitForChange(ctx context.Context, w *fsnotify.Watcher, opts WatchOptions, last [md5.Size]byte, done <-chan error, logger *slog.Logger) ([md5.Size]byte, bool) {
	target := filepath.Clean(opts.Path)
	debounce := time.NewTimer(opts.Debounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return last, false
		case err := <-done:
			done = nil
			switch {
			case err == nil:
				printSystemMessage(opts.Out, "done, waiting for changes")
			case errors.Is(err, context.Canceled):
			default:
				logger.Error("script failed", "path", opts.Path, "err", err)
				printSystemMessage(opts.Out, "failed: %v", err)
			}
		case ev, ok := <-w.Events:
			if !ok {
				return last, false
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			debounce.Reset(opts.Debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return last, false
			}
			logger.Warn("watch error", "err", err)
		case <-debounce.C:
			h, err := fileHash(opts.Path)
			if err != nil {
				logger.Debug("watch read failed", "err", err)
				continue
			}
			if h != last {
				return h, true
			}
		}
	}
}

func fileHash(path string) ([md5.Size]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return [md5.Size]byte{}, fmt.Errorf("watch %s: %w", path, err)
	}
	return md5.Sum(data), nil
}
