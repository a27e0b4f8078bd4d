package classification

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last write before reloading.
const DefaultDebounce = 250 * time.Millisecond

// HintWatcher reloads a hints file into a detector whenever it changes.
// Invalid files are logged and ignored; the previous hint set stays active.
type HintWatcher struct {
	watcher  *fsnotify.Watcher
	detector *HintDetector
	stopCh   chan struct{}
	doneCh   chan struct{}
	path     string
	base     []Hint
	debounce time.Duration
	onReload []func()
	reloads  int
	mu       sync.Mutex
	running  bool
}

// NewHintWatcher creates a watcher for path. base is the hint set the file is merged onto.
func NewHintWatcher(path string, detector *HintDetector, base []Hint, debounce time.Duration) (*HintWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &HintWatcher{
		watcher:  watcher,
		detector: detector,
		path:     filepath.Clean(path),
		base:     base,
		debounce: debounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start watches the directory of the hints file so that editors replacing
// the file are noticed too.
func (hw *HintWatcher) Start(ctx context.Context) error {
	hw.mu.Lock()
	if hw.running {
		hw.mu.Unlock()
		return nil
	}
	hw.running = true
	hw.mu.Unlock()

	if err := hw.watcher.Add(filepath.Dir(hw.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", hw.path, err)
	}

	slog.Info("Watching hints file", "path", hw.path)
	go hw.run(ctx)

	return nil
}

// Stop ends watching and waits for the event loop to exit.
func (hw *HintWatcher) Stop() {
	hw.mu.Lock()
	if !hw.running {
		hw.mu.Unlock()
		_ = hw.watcher.Close()
		return
	}
	hw.running = false
	hw.mu.Unlock()

	close(hw.stopCh)
	<-hw.doneCh

	if err := hw.watcher.Close(); err != nil {
		slog.Warn("Failed to close hints watcher", "error", err)
	}
}

// OnReload registers fn to run after every successful reload.
func (hw *HintWatcher) OnReload(fn func()) {
	hw.mu.Lock()
	defer hw.mu.Unlock()
	hw.onReload = append(hw.onReload, fn)
}

// Reloads returns how many times the hints were successfully reloaded.
func (hw *HintWatcher) Reloads() int {
	hw.mu.Lock()
	defer hw.mu.Unlock()
	return hw.reloads
}

func (hw *HintWatcher) run(ctx context.Context) {
	defer close(hw.doneCh)

	timer := time.NewTimer(hw.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-hw.stopCh:
			return

		case event, ok := <-hw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != hw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(hw.debounce)

		case err, ok := <-hw.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Hints watcher error", "error", err)

		case <-timer.C:
			hw.reload()
		}
	}
}

func (hw *HintWatcher) reload() {
	extra, err := LoadHintsFile(hw.path)
	if err != nil {
		slog.Warn("Ignoring invalid hints file", "path", hw.path, "error", err)
		return
	}

	if err := hw.detector.UpdateHints(MergeHints(hw.base, extra)); err != nil {
		slog.Warn("Ignoring invalid hints file", "path", hw.path, "error", err)
		return
	}

	hw.mu.Lock()
	hw.reloads++
	callbacks := append([]func(){}, hw.onReload...)
	hw.mu.Unlock()

	slog.Info("Reloaded hints", "path", hw.path, "hints", hw.detector.HintCount())

	for _, fn := range callbacks {
		fn()
	}
}
