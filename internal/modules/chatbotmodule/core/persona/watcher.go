package persona

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
)

// ReloadFunc is called after every reload attempt. err is nil on success.
type ReloadFunc func(c *Catalog, err error)

// Watcher reloads a catalog file into a Store whenever it changes on disk.
// Bursts of events are collapsed into one reload after the debounce delay.
type Watcher struct {
	path     string
	store    *Store
	logger   hclog.Logger
	debounce time.Duration
	onReload ReloadFunc

	watcher *fsnotify.Watcher
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	timerMu sync.Mutex
	timer   *time.Timer
	reloadMu sync.Mutex
}

// NewWatcher creates a watcher for path. onReload may be nil.
func NewWatcher(path string, store *Store, debounce time.Duration, logger hclog.Logger, onReload ReloadFunc) (*Watcher, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		path:     filepath.Clean(path),
		store:    store,
		logger:   logger.Named("catalog-watcher"),
		debounce: debounce,
		onReload: onReload,
		watcher:  fw,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start watches the directory holding the catalog file. Watching the
// directory rather than the file survives editors that replace the file by
// rename.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.wg.Add(1)
	go w.eventLoop()

	w.logger.Info("watching persona catalog", "path", w.path, "debounce", w.debounce)
	return nil
}

// Stop ends the event loop, cancels any pending reload and waits for one
// already running. No reload publishes a catalog after Stop returns.
func (w *Watcher) Stop() error {
	w.cancel()
	err := w.watcher.Close()

	w.timerMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.timerMu.Unlock()

	w.wg.Wait()

	// wait out a reload that is already running
	w.reloadMu.Lock()
	w.reloadMu.Unlock()

	w.logger.Info("persona catalog watcher stopped")
	return err
}

func (w *Watcher) eventLoop() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("catalog file event", "op", event.Op.String())
			w.schedule()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", "error", err)

		case <-w.ctx.Done():
			return
		}
	}
}

func (w *Watcher) schedule() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	w.reloadMu.Lock()
	defer w.reloadMu.Unlock()
	if w.ctx.Err() != nil {
		return
	}

	records, err := LoadFile(w.path)
	var c *Catalog
	if err == nil {
		c, err = w.store.Replace(records)
	}

	if err != nil {
		w.logger.Warn("catalog reload rejected, keeping previous catalog", "path", w.path, "error", err)
	} else {
		w.logger.Info("persona catalog reloaded", "path", w.path, "personas", c.Len())
	}

	if w.onReload != nil {
		w.onReload(c, err)
	}
}
