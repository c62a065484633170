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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestDebouncerCoalescesBurstIntoSingleDispatch verifies rapid touches on
// the same path result in exactly one dispatch, fired after the quiet
// window.
func TestDebouncerCoalescesBurstIntoSingleDispatch(t *testing.T) {
	var mu sync.Mutex
	var dispatched []string

	d := newDebouncer(30*time.Millisecond, func(path string) {
		mu.Lock()
		defer mu.Unlock()
		dispatched = append(dispatched, path)
	})

	for i := 0; i < 5; i++ {
		d.touch("/sync/template_sets/Default/ungrouped/welcome.html")
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/sync/template_sets/Default/ungrouped/welcome.html"}, dispatched)
}

// TestDebouncerTracksPathsIndependently verifies two distinct paths each
// get their own dispatch, on their own schedule.
func TestDebouncerTracksPathsIndependently(t *testing.T) {
	var mu sync.Mutex
	dispatched := map[string]int{}

	d := newDebouncer(20*time.Millisecond, func(path string) {
		mu.Lock()
		defer mu.Unlock()
		dispatched[path]++
	})

	d.touch("/sync/a.html")
	d.touch("/sync/b.html")

	time.Sleep(80 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, dispatched["/sync/a.html"])
	assert.Equal(t, 1, dispatched["/sync/b.html"])
}

// TestDebouncerCancelAllStopsPendingDispatch verifies cancelAll prevents
// any scheduled job from firing, and that touch becomes a no-op
// afterwards — required for Watcher.Stop to guarantee no late dispatch.
func TestDebouncerCancelAllStopsPendingDispatch(t *testing.T) {
	var mu sync.Mutex
	fired := false

	d := newDebouncer(20*time.Millisecond, func(path string) {
		mu.Lock()
		defer mu.Unlock()
		fired = true
	})

	d.touch("/sync/a.html")
	d.cancelAll()
	d.touch("/sync/a.html") // post-cancel touch must not schedule anything

	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.False(t, fired, "cancelAll must prevent pending and future dispatch")
}

// TestDebouncerRefreshTouchDelaysDispatch verifies a touch arriving after
// the fire job was scheduled, but before it runs, pushes the dispatch out
// rather than firing on the stale schedule.
func TestDebouncerRefreshTouchDelaysDispatch(t *testing.T) {
	var mu sync.Mutex
	var fireTimes []time.Time

	d := newDebouncer(40*time.Millisecond, func(path string) {
		mu.Lock()
		defer mu.Unlock()
		fireTimes = append(fireTimes, time.Now())
	})

	start := time.Now()
	d.touch("/sync/a.html")
	time.Sleep(25 * time.Millisecond)
	d.touch("/sync/a.html") // re-touch before the 40ms window elapses

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if assert.Len(t, fireTimes, 1) {
		assert.GreaterOrEqual(t, fireTimes[0].Sub(start), 60*time.Millisecond)
	}
}
