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
	"sync"
	"time"
)

// debouncer coalesces bursts of events on the same path into a single
// dispatch once the path has gone quiet for `window`. Each touch records
// last_seen[path] = now and, at fire time, a job reschedules itself if
// last_seen has advanced past the instant it was scheduled for — the same
// recheck-rather-than-reset approach the teacher's dev server uses for its
// debouncedFiles map in serve/filewatcher.go, generalized from one global
// timer to one timer per path.
type debouncer struct {
	window   time.Duration
	dispatch func(path string)

	mu       sync.Mutex
	lastSeen map[string]time.Time
	timers   map[string]*time.Timer
	stopped  bool
}

func newDebouncer(window time.Duration, dispatch func(path string)) *debouncer {
	return &debouncer{
		window:   window,
		dispatch: dispatch,
		lastSeen: make(map[string]time.Time),
		timers:   make(map[string]*time.Timer),
	}
}

// touch records an event for path and ensures a fire job is scheduled.
func (d *debouncer) touch(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	now := time.Now()
	d.lastSeen[path] = now

	if _, scheduled := d.timers[path]; scheduled {
		return
	}
	d.timers[path] = time.AfterFunc(d.window, func() { d.fire(path, now) })
}

// fire runs when a path's timer expires. If the path was touched again
// after this job was scheduled, it reschedules instead of dispatching;
// otherwise it dispatches and clears the path's bookkeeping.
func (d *debouncer) fire(path string, scheduledFor time.Time) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}

	seen, ok := d.lastSeen[path]
	if ok && seen.After(scheduledFor) {
		d.timers[path] = time.AfterFunc(d.window, func() { d.fire(path, seen) })
		d.mu.Unlock()
		return
	}

	delete(d.timers, path)
	delete(d.lastSeen, path)
	d.mu.Unlock()

	d.dispatch(path)
}

// cancelAll stops every pending timer and prevents new ones from being
// scheduled. Used by Watcher.Stop to guarantee no dispatch fires after
// the watcher has torn down.
func (d *debouncer) cancelAll() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	for path, t := range d.timers {
		t.Stop()
		delete(d.timers, path)
	}
	d.lastSeen = make(map[string]time.Time)
}
