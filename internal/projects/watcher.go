package projects

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 250 * time.Millisecond

// ReloadFunc receives the freshly loaded list, or the error that prevented it.
type ReloadFunc func([]Project, error)

// Watcher reloads a projects file whenever it changes on disk.
type Watcher struct {
	path     string
	debounce time.Duration
	onReload ReloadFunc
	logger   *zap.Logger

	fsw *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
	wg    sync.WaitGroup
}

// NewWatcher watches the directory holding path, since editors often replace
// the file instead of writing it in place.
func NewWatcher(path string, debounce time.Duration, onReload ReloadFunc, logger *zap.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{
		path:     abs,
		debounce: debounce,
		onReload: onReload,
		logger:   logger,
		fsw:      fsw,
	}, nil
}

// Run dispatches file events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) {
	defer w.close()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.trigger()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("projects watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.seq++
	seq := w.seq
	if w.timer != nil && w.timer.Stop() {
		w.wg.Done()
	}
	w.wg.Add(1)
	w.timer = time.AfterFunc(w.debounce, func() {
		defer w.wg.Done()
		w.mu.Lock()
		latest := seq == w.seq
		w.mu.Unlock()
		if !latest {
			return
		}
		list, err := Load(w.path)
		if err != nil {
			w.logger.Warn("projects reload failed", zap.String("path", w.path), zap.Error(err))
		} else {
			w.logger.Info("projects reloaded", zap.String("path", w.path), zap.Int("count", len(list)))
		}
		w.onReload(list, err)
	})
}

func (w *Watcher) close() {
	w.mu.Lock()
	w.seq++
	if w.timer != nil && w.timer.Stop() {
		// The callback will never run, so release its slot.
		w.wg.Done()
	}
	w.timer = nil
	w.mu.Unlock()
	w.wg.Wait()
	_ = w.fsw.Close()
}
