package command

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/robinovitch61/thr/internal/constants"
	"github.com/robinovitch61/thr/internal/dev"
)

// ThreadFileChangedMsg is sent when the watched thread file was written. Err is set if watching failed
type ThreadFileChangedMsg struct {
	Path string
	Err  error
}

// ThreadWatcher watches a single thread file. It is closed when its context is cancelled
type ThreadWatcher struct {
	ctx     context.Context
	watcher *fsnotify.Watcher
	path    string
}

func NewThreadWatcher(ctx context.Context, path string) (*ThreadWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("error resolving %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating file watcher: %w", err)
	}
	// watch the directory, since editors often replace the file rather than write to it
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("error watching %s: %w", abs, err)
	}
	go func() {
		<-ctx.Done()
		_ = w.Close()
	}()
	return &ThreadWatcher{ctx: ctx, watcher: w, path: abs}, nil
}

func (tw *ThreadWatcher) Path() string {
	return tw.path
}

// Close stops watching before the context is cancelled
func (tw *ThreadWatcher) Close() error {
	return tw.watcher.Close()
}

// WatchThreadFileCmd blocks until the thread file changes. Bursts of writes within constants.WatchDebounce are
// collapsed into one msg. Returns nil once the watcher is closed, so the caller re-issues it after each msg
func WatchThreadFileCmd(tw *ThreadWatcher) tea.Cmd {
	if tw == nil {
		return nil
	}
	return func() tea.Msg {
		for {
			select {
			case <-tw.ctx.Done():
				return nil
			case event, ok := <-tw.watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != tw.path || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
					continue
				}
				dev.DebugEvent().Str("event", event.String()).Msg("thread file changed")
				tw.drain(constants.WatchDebounce)
				return ThreadFileChangedMsg{Path: tw.path}
			case err, ok := <-tw.watcher.Errors:
				if !ok {
					return nil
				}
				return ThreadFileChangedMsg{Path: tw.path, Err: fmt.Errorf("error watching %s: %w", tw.path, err)}
			}
		}
	}
}

func (tw *ThreadWatcher) drain(d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	for {
		select {
		case <-timer.C:
			return
		case <-tw.ctx.Done():
			return
		case _, ok := <-tw.watcher.Events:
			if !ok {
				return
			}
		}
	}
}
