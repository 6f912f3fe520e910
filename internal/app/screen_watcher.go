package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"flowcraft/internal/frame"
	"flowcraft/internal/service"
)

// screenWatcher lets the user open a screen's markup in an external
// editor. Each edited screen gets a temp .html file; saves are picked
// up off disk and pushed back into the registry and the frontend.
type screenWatcher struct {
	ctx     context.Context
	app     *App
	watcher *fsnotify.Watcher

	mu       sync.RWMutex
	watching map[string]string // file path → screen ID
}

func newScreenWatcher(ctx context.Context, app *App) *screenWatcher {
	w := &screenWatcher{ctx: ctx, app: app, watching: make(map[string]string)}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		wailsRuntime.LogErrorf(ctx, "[Watcher] create failed, live edit disabled: %v", err)
		return w
	}
	w.watcher = fsw
	go w.watchLoop()
	return w
}

// EditScreenInEditor writes the screen's markup to a temp file and
// watches it for saves. Returns the path for the user to open.
func (a *App) EditScreenInEditor(screenID string) (string, error) {
	screen, ok := a.engine.Screen(screenID)
	if !ok {
		return "", fmt.Errorf("screen %s not found", screenID)
	}
	if screen.HTML == "" {
		return "", fmt.Errorf("screen has no markup to edit yet")
	}
	return a.watcher.Watch(screenID, screen.HTML)
}

// Watch materializes the markup on disk and registers the file.
func (w *screenWatcher) Watch(screenID, html string) (string, error) {
	if w.watcher == nil {
		return "", fmt.Errorf("file watching unavailable")
	}

	dir := filepath.Join(os.TempDir(), "flowcraft-edit")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, screenID+".html")
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return "", fmt.Errorf("write edit file: %w", err)
	}

	w.mu.Lock()
	w.watching[path] = screenID
	w.mu.Unlock()

	if err := w.watcher.Add(dir); err != nil {
		return "", fmt.Errorf("watch dir: %w", err)
	}
	return path, nil
}

// StopScreen stops watching the file backing one screen.
func (w *screenWatcher) StopScreen(screenID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, id := range w.watching {
		if id == screenID {
			delete(w.watching, path)
			os.Remove(path)
			break
		}
	}
}

// StopAll drops every watched file; used when the canvas resets.
func (w *screenWatcher) StopAll() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path := range w.watching {
		os.Remove(path)
		delete(w.watching, path)
	}
}

// Stop shuts the watcher down.
func (w *screenWatcher) Stop() {
	w.StopAll()
	if w.watcher != nil {
		w.watcher.Close()
	}
}

func (w *screenWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) {
				continue
			}
			absPath, _ := filepath.Abs(event.Name)
			w.mu.RLock()
			screenID, watched := w.watching[absPath]
			w.mu.RUnlock()
			if !watched {
				continue
			}

			content, err := os.ReadFile(absPath)
			if err != nil {
				wailsRuntime.LogErrorf(w.ctx, "[Watcher] read %s: %v", absPath, err)
				continue
			}

			cleaned := frame.StripToolScript(strings.TrimSpace(string(content)))
			if w.app.engine.UpdateScreenHTML(screenID, cleaned) {
				w.app.Emit(w.ctx, service.EventScreenUpdated, map[string]any{"id": screenID})
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			wailsRuntime.LogErrorf(w.ctx, "[Watcher] %v", err)
		}
	}
}
