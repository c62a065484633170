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

// Package syncfiles is the disk<->database synchronisation layer: the
// atomic exporters that materialise template and stylesheet rows as files,
// and the importers that ingest edited files back into the forum schema.
package syncfiles

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ExportStats is returned by every Export call.
type ExportStats struct {
	FilesWritten int
	Groups       int // groups covered for templates, stylesheet count for themes
	Duration     time.Duration
}

// writeAtomic writes data to target via a same-directory .tmp sibling and
// rename, so an external observer (the watcher, a forum admin browsing
// sync_root) never sees target in a missing or truncated intermediate
// state. On any error it best-effort removes the .tmp file before
// propagating.
func writeAtomic(target string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating directory for %q: %w", target, err)
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming %q to %q: %w", tmp, target, err)
	}
	return nil
}
