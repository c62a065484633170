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

package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortalabs/forge-sync/internal/router"
	"github.com/cortalabs/forge-sync/internal/syncfiles"
)

type fakeTemplateImporter struct {
	mu    sync.Mutex
	calls []router.TemplateKey
	body  string
}

func (f *fakeTemplateImporter) Import(_ context.Context, key router.TemplateKey, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, key)
	f.body = body
	return nil
}

func (f *fakeTemplateImporter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeStylesheetImporter struct {
	mu    sync.Mutex
	calls []router.StylesheetKey
}

func (f *fakeStylesheetImporter) Import(_ context.Context, key router.StylesheetKey, _ string) (syncfiles.ImportResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, key)
	return syncfiles.ImportResult{CacheRefreshed: true}, nil
}

func (f *fakeStylesheetImporter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestWatcher(t *testing.T, root string, tmpl TemplateImporter, css StylesheetImporter) *Watcher {
	t.Helper()
	return New(Config{
		SyncRoot:     root,
		DebounceMs:   30,
		MaxFileBytes: 1 << 20,
		Router:       router.New(root),
		Templates:    tmpl,
		Stylesheets:  css,
	})
}

// TestWatcherDispatchesDebouncedTemplateWrite is an end-to-end exercise of
// Start -> fsnotify event -> debounce -> route -> import, against a real
// filesystem and a real fsnotify watcher (in the spirit of the teacher's
// serve/filewatcher_test.go, which also drives the real OS notifier rather
// than faking it).
func TestWatcherDispatchesDebouncedTemplateWrite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping real fsnotify exercise in short mode")
	}

	root := t.TempDir()
	dir := filepath.Join(root, "template_sets", "Default", "ungrouped")
	require.NoError(t, os.MkdirAll(dir, 0755))

	tmpl := &fakeTemplateImporter{}
	css := &fakeStylesheetImporter{}
	w := newTestWatcher(t, root, tmpl, css)

	require.NoError(t, w.Start())
	defer w.Stop()

	time.Sleep(100 * time.Millisecond)

	target := filepath.Join(dir, "welcome.html")
	require.NoError(t, os.WriteFile(target, []byte("<b>hi</b>"), 0644))

	require.Eventually(t, func() bool {
		return tmpl.callCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, 0, css.callCount())
}

// TestWatcherPauseSuppressesDispatch verifies that while paused, surviving
// events are dropped rather than queued.
func TestWatcherPauseSuppressesDispatch(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping real fsnotify exercise in short mode")
	}

	root := t.TempDir()
	dir := filepath.Join(root, "template_sets", "Default", "ungrouped")
	require.NoError(t, os.MkdirAll(dir, 0755))

	tmpl := &fakeTemplateImporter{}
	css := &fakeStylesheetImporter{}
	w := newTestWatcher(t, root, tmpl, css)

	require.NoError(t, w.Start())
	defer w.Stop()
	w.Pause()
	assert.Equal(t, Paused, w.State())

	time.Sleep(100 * time.Millisecond)
	target := filepath.Join(dir, "welcome.html")
	require.NoError(t, os.WriteFile(target, []byte("<b>hi</b>"), 0644))

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, 0, tmpl.callCount(), "paused watcher must not dispatch")

	w.Resume()
	assert.Equal(t, Running, w.State())
}

func TestWatcherStateMachineTransitions(t *testing.T) {
	root := t.TempDir()
	w := newTestWatcher(t, root, &fakeTemplateImporter{}, &fakeStylesheetImporter{})

	assert.Equal(t, Stopped, w.State())

	require.NoError(t, w.Start())
	assert.Equal(t, Running, w.State())

	// Re-entrant start is a no-op.
	require.NoError(t, w.Start())
	assert.Equal(t, Running, w.State())

	w.Pause()
	assert.Equal(t, Paused, w.State())
	w.Pause() // idempotent
	assert.Equal(t, Paused, w.State())

	w.Resume()
	assert.Equal(t, Running, w.State())
	w.Resume() // idempotent
	assert.Equal(t, Running, w.State())

	w.Stop()
	assert.Equal(t, Stopped, w.State())
	w.Stop() // idempotent
	assert.Equal(t, Stopped, w.State())
}

func TestPassesEventFilterIgnoresTmpAndUnrelatedExtensions(t *testing.T) {
	cases := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"html write passes", fsnotify.Event{Name: "/sync/a.html", Op: fsnotify.Write}, true},
		{"css write passes", fsnotify.Event{Name: "/sync/a.css", Op: fsnotify.Write}, true},
		{"tmp staging file dropped", fsnotify.Event{Name: "/sync/a.html.tmp", Op: fsnotify.Write}, false},
		{"unrelated extension dropped", fsnotify.Event{Name: "/sync/a.txt", Op: fsnotify.Write}, false},
		{"chmod-only event dropped", fsnotify.Event{Name: "/sync/a.html", Op: fsnotify.Chmod}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, passesEventFilter(tc.ev))
		})
	}
}
