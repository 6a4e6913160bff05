package extension

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tabhost/tabhost/pkg/logger"
)

const reloadDebounce = 500 * time.Millisecond

// Watcher triggers a reload callback when manifest files under the extension
// root change. Events are debounced so one save produces one reload.
type Watcher struct {
	root      string
	watcher   *fsnotify.Watcher
	onReload  func()
	mu        sync.Mutex
	debounce  *time.Timer
	closeOnce sync.Once
}

// NewWatcher creates a watcher over root. onReload runs on the watcher
// goroutine after the debounce window closes.
func NewWatcher(root string, onReload func()) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		root:     root,
		watcher:  fsWatcher,
		onReload: onReload,
	}, nil
}

// Start begins watching the root tree and blocks until the context is
// canceled.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addTree(); err != nil {
		return err
	}
	defer w.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("extension watcher error", "error", err)
		}
	}
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		w.mu.Lock()
		if w.debounce != nil {
			w.debounce.Stop()
		}
		w.mu.Unlock()
		if err := w.watcher.Close(); err != nil {
			logger.Warn("failed to close extension watcher", "error", err)
		}
	})
}

func (w *Watcher) addTree() error {
	return filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// New directories need an explicit watch for their contents.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.watcher.Add(event.Name)
		}
	}
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return
	}
	logger.Debug("extension manifest change detected", "file", event.Name, "op", event.Op.String())
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(reloadDebounce, w.onReload)
}
