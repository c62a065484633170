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

// Package forgeerr defines the error taxonomy shared by every core
// component: DB gateway, router, exporters, importers, watcher, sync
// service, cache refresher and plugin bridge. Callers use errors.Is against
// the sentinels here; components wrap them with fmt.Errorf("...: %w", ...)
// for context.
package forgeerr

import "errors"

var (
	// NotFound means a named entity (set, theme, stylesheet, template) is
	// absent.
	NotFound = errors.New("not found")

	// NotRoutable means a disk path does not map into the sync layout.
	// The watcher treats this as "ignore".
	NotRoutable = errors.New("not routable")

	// Invalid means content or shape violates a contract: empty file,
	// oversize file, wrong suffix.
	Invalid = errors.New("invalid")

	// TransientIO covers timeouts, connection resets, lock contention.
	// The caller may retry; components never retry on their own.
	TransientIO = errors.New("transient io error")

	// BridgeFailure covers subprocess timeout, non-zero exit, or an
	// unparseable envelope from the plugin bridge.
	BridgeFailure = errors.New("bridge failure")

	// CacheStale means the cache refresher could not confirm the forum
	// refreshed its compiled CSS. Never propagated as a hard error.
	CacheStale = errors.New("cache refresh unconfirmed")

	// Fatal marks an error the process cannot continue past: a programmer
	// error such as a broken router bijection, or a startup configuration
	// error such as a missing database password (forumdb.Open). It is
	// returned as an error, not panicked.
	Fatal = errors.New("fatal invariant violation")
)

// Kind returns the stable taxonomy string for err, for inclusion in a
// tool-call result's error kind field. Returns "" if err doesn't match
// any known sentinel.
func Kind(err error) string {
	switch {
	case errors.Is(err, NotFound):
		return "NotFound"
	case errors.Is(err, NotRoutable):
		return "NotRoutable"
	case errors.Is(err, Invalid):
		return "Invalid"
	case errors.Is(err, TransientIO):
		return "TransientIO"
	case errors.Is(err, BridgeFailure):
		return "BridgeFailure"
	case errors.Is(err, CacheStale):
		return "CacheStale"
	case errors.Is(err, Fatal):
		return "Fatal"
	default:
		return ""
	}
}
