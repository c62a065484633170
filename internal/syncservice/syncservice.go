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

// Package syncservice owns the lifecycle of the exporters and the
// watcher, and enforces the one rule that spans both: export and
// live-watch dispatch never run concurrently against the same sync root.
// It is the component the MCP tool surface and the CLI both sit on top
// of.
package syncservice

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cortalabs/forge-sync/internal/logging"
	"github.com/cortalabs/forge-sync/internal/syncfiles"
	"github.com/cortalabs/forge-sync/internal/watcher"
)

// TemplateExporter is the slice of syncfiles.TemplateExporter the service
// depends on.
type TemplateExporter interface {
	Export(ctx context.Context, setName string) (syncfiles.ExportStats, error)
}

// StylesheetExporter is the slice of syncfiles.StylesheetExporter the
// service depends on.
type StylesheetExporter interface {
	Export(ctx context.Context, themeName string) (syncfiles.ExportStats, error)
}

// Status is a point-in-time snapshot for the get_status operation.
type Status struct {
	WatcherState     string
	LastExportAt     time.Time
	LastExportTarget string
	LastExportStats  syncfiles.ExportStats
	LastExportErr    string
}

// Service wires the two exporters and the watcher together, guarding the
// exporters with the watcher's pause/resume so an export never races a
// live file-change dispatch over the same rows.
type Service struct {
	Templates   TemplateExporter
	Stylesheets StylesheetExporter
	Watcher     *watcher.Watcher
	Log         logging.Logger

	mu           sync.Mutex
	lastExportAt time.Time
	lastTarget   string
	lastStats    syncfiles.ExportStats
	lastErr      error
}

// New builds a Service. The watcher is constructed by the caller (it
// needs the importers and router) and handed in already configured but
// not yet started.
func New(templates TemplateExporter, stylesheets StylesheetExporter, w *watcher.Watcher, log logging.Logger) *Service {
	return &Service{Templates: templates, Stylesheets: stylesheets, Watcher: w, Log: log}
}

// ExportTemplateSet exports one template set, pausing the watcher for the
// duration so it never imports the files this export is mid-write on, and
// resuming it afterward regardless of outcome.
func (s *Service) ExportTemplateSet(ctx context.Context, setName string) (syncfiles.ExportStats, error) {
	return s.runExclusive(setName, func() (syncfiles.ExportStats, error) {
		return s.Templates.Export(ctx, setName)
	})
}

// ExportTheme exports one theme's stylesheets under the same invariant.
func (s *Service) ExportTheme(ctx context.Context, themeName string) (syncfiles.ExportStats, error) {
	return s.runExclusive(themeName, func() (syncfiles.ExportStats, error) {
		return s.Stylesheets.Export(ctx, themeName)
	})
}

// runExclusive pauses the watcher, runs fn, resumes the watcher, and
// records the outcome for GetStatus. Resume always runs, even if fn
// panics or returns an error — the watcher must never be left paused by
// a failed export.
func (s *Service) runExclusive(target string, fn func() (syncfiles.ExportStats, error)) (syncfiles.ExportStats, error) {
	wasRunning := s.Watcher != nil && s.Watcher.State() == watcher.Running
	if wasRunning {
		s.Watcher.Pause()
		defer s.Watcher.Resume()
	}

	stats, err := fn()

	s.mu.Lock()
	s.lastExportAt = time.Now()
	s.lastTarget = target
	s.lastStats = stats
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		return stats, fmt.Errorf("exporting %q: %w", target, err)
	}
	return stats, nil
}

// StartWatcher starts the live file watcher. No-op if already running.
func (s *Service) StartWatcher() error {
	if s.Watcher == nil {
		return fmt.Errorf("syncservice: no watcher configured")
	}
	return s.Watcher.Start()
}

// StopWatcher stops the live file watcher. No-op if already stopped.
func (s *Service) StopWatcher() {
	if s.Watcher != nil {
		s.Watcher.Stop()
	}
}

// GetStatus returns the current watcher state and the outcome of the most
// recent export, if any.
func (s *Service) GetStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := "stopped"
	if s.Watcher != nil {
		state = s.Watcher.State().String()
	}

	st := Status{
		WatcherState:     state,
		LastExportAt:     s.lastExportAt,
		LastExportTarget: s.lastTarget,
		LastExportStats:  s.lastStats,
	}
	if s.lastErr != nil {
		st.LastExportErr = s.lastErr.Error()
	}
	return st
}
