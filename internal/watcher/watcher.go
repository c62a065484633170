/*
Copyright © 2025 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package watcher observes the sync root for template/stylesheet edits and
// drives the importers, debounced and validated so a half-written file
// never reaches the database. Modeled on the teacher's fsnotify-based
// dev-server watcher (serve/filewatcher.go), generalized to per-path
// debouncing, a validation gate, and an explicit pause/resume state
// machine the exporter can use for mutual exclusion.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cortalabs/forge-sync/internal/forgeerr"
	"github.com/cortalabs/forge-sync/internal/logging"
	"github.com/cortalabs/forge-sync/internal/router"
	"github.com/cortalabs/forge-sync/internal/syncfiles"
)

// State is the watcher's lifecycle state.
type State int

const (
	Stopped State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// TemplateImporter is the slice of syncfiles.TemplateImporter the watcher
// dispatches to.
type TemplateImporter interface {
	Import(ctx context.Context, key router.TemplateKey, body string) error
}

// StylesheetImporter is the slice of syncfiles.StylesheetImporter the
// watcher dispatches to.
type StylesheetImporter interface {
	Import(ctx context.Context, key router.StylesheetKey, css string) (syncfiles.ImportResult, error)
}

// Config configures a Watcher.
type Config struct {
	SyncRoot      string
	DebounceMs    int
	MaxFileBytes  int64
	Router        *router.Router
	Templates     TemplateImporter
	Stylesheets   StylesheetImporter
	Log           logging.Logger
	GraceOnStop   time.Duration // how long Stop waits for the event loop to exit
}

// Watcher observes SyncRoot and dispatches debounced, validated file
// changes into the configured importers. It owns no disk state of its
// own: FileWatcher is a pure demultiplexer over fsnotify events.
type Watcher struct {
	cfg Config

	mu    sync.Mutex
	state State
	fsw   *fsnotify.Watcher
	done  chan struct{}
	wg    sync.WaitGroup

	debouncer *debouncer
}

// New constructs a Watcher in the Stopped state. It does not touch the
// filesystem until Start is called.
func New(cfg Config) *Watcher {
	if cfg.DebounceMs <= 0 {
		cfg.DebounceMs = 500
	}
	if cfg.GraceOnStop <= 0 {
		cfg.GraceOnStop = 200 * time.Millisecond
	}
	w := &Watcher{cfg: cfg, state: Stopped}
	w.debouncer = newDebouncer(time.Duration(cfg.DebounceMs)*time.Millisecond, w.dispatch)
	return w
}

// State reports the current lifecycle state.
func (w *Watcher) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Start begins watching SyncRoot. Re-entering Start while already Running
// (or Paused) is a no-op.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != Stopped {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := addRecursive(fsw, w.cfg.SyncRoot); err != nil {
		fsw.Close()
		return err
	}

	// A previous Stop left the debouncer cancelled; re-arm it for this run.
	w.debouncer.mu.Lock()
	w.debouncer.stopped = false
	w.debouncer.mu.Unlock()

	w.fsw = fsw
	w.done = make(chan struct{})
	w.state = Running

	w.wg.Add(1)
	go w.loop(w.fsw, w.done)

	return nil
}

// Pause suspends dispatch without tearing down the underlying fsnotify
// watcher. Idempotent.
func (w *Watcher) Pause() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == Running {
		w.state = Paused
	}
}

// Resume un-suspends dispatch. Idempotent.
func (w *Watcher) Resume() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == Paused {
		w.state = Running
	}
}

// Stop cancels pending debounce jobs and halts the observer. Work already
// dispatched to an importer runs to completion in its own goroutine. Stop
// waits up to GraceOnStop for the event loop to exit; it does not wait for
// an import that is already in progress. Idempotent.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.state == Stopped {
		w.mu.Unlock()
		return
	}
	w.state = Stopped
	fsw := w.fsw
	done := w.done
	w.mu.Unlock()

	w.debouncer.cancelAll()
	if fsw != nil {
		fsw.Close()
	}
	if done != nil {
		close(done)
	}

	waited := make(chan struct{})
	go func() { w.wg.Wait(); close(waited) }()
	select {
	case <-waited:
	case <-time.After(w.cfg.GraceOnStop):
	}
}

func addRecursive(fsw *fsnotify.Watcher, root string) error {
	if err := fsw.Add(root); err != nil {
		return err
	}
	return filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() || p == root {
			return nil
		}
		if err := fsw.Add(p); err != nil {
			return err
		}
		return nil
	})
}

// loop is the watcher's single-threaded event demultiplexer: it filters
// out noise events and hands surviving paths to the debouncer, which
// offloads the actual dispatch.
func (w *Watcher) loop(fsw *fsnotify.Watcher, done chan struct{}) {
	defer w.wg.Done()
	for {
		select {
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !passesEventFilter(ev) {
				continue
			}
			w.debouncer.touch(ev.Name)

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			if w.cfg.Log != nil {
				w.cfg.Log.Error("watcher error: %v", err)
			}

		case <-done:
			return
		}
	}
}

// passesEventFilter keeps only modified, created, and moved events on
// regular-looking .html/.css files, and drops .tmp staging files (the
// atomic-rename siblings an export leaves behind).
func passesEventFilter(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(ev.Name)
	if strings.HasSuffix(base, ".tmp") {
		return false
	}
	ext := filepath.Ext(base)
	return ext == ".html" || ext == ".css"
}

// dispatch is called by the debouncer once a path has gone quiet. It
// re-validates, routes, reads, and imports the file's current contents.
func (w *Watcher) dispatch(path string) {
	w.mu.Lock()
	state := w.state
	w.mu.Unlock()
	if state != Running {
		// Paused (exporter running) or already stopped: drop silently.
		// An export in progress must never race an import of its own output.
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		// File no longer exists: drop.
		return
	}
	if info.Size() == 0 {
		if w.cfg.Log != nil {
			w.cfg.Log.Warning("dropping empty file event for %s", path)
		}
		return
	}
	if w.cfg.MaxFileBytes > 0 && info.Size() > w.cfg.MaxFileBytes {
		if w.cfg.Log != nil {
			w.cfg.Log.Error("dropping oversize file event for %s (%d bytes)", path, info.Size())
		}
		return
	}

	tk, sk, err := w.cfg.Router.ParsePath(path)
	if err != nil {
		// NotRoutable: ignore.
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if w.cfg.Log != nil {
			w.cfg.Log.Warning("failed to read %s: %v", path, err)
		}
		return
	}
	if len(data) == 0 {
		if w.cfg.Log != nil {
			w.cfg.Log.Warning("dropping file that went empty between stat and read: %s", path)
		}
		return
	}

	ctx := context.Background()

	switch {
	case tk != nil:
		if err := w.cfg.Templates.Import(ctx, *tk, string(data)); err != nil {
			if w.cfg.Log != nil {
				w.cfg.Log.Error("importing template %s: %v", path, err)
			}
		}

	case sk != nil:
		result, err := w.cfg.Stylesheets.Import(ctx, *sk, string(data))
		if err != nil {
			if w.cfg.Log != nil {
				w.cfg.Log.Error("importing stylesheet %s: %v", path, err)
			}
			return
		}
		if !result.CacheRefreshed && w.cfg.Log != nil {
			w.cfg.Log.Warning("%s: cache refresh unconfirmed for %s: %v", forgeerr.CacheStale, path, result.CacheErr)
		}
	}
}
