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

// Package logging provides the Logger interface shared by every core
// component, with a pterm-backed implementation (styling switched off when
// stderr is not a terminal) and an in-memory implementation for tests.
package logging

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// Logger is the logging interface used throughout the core.
type Logger interface {
	Info(msg string, args ...any)
	Warning(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
}

// ptermLogger writes colored, leveled lines to stderr via pterm. stdout is
// reserved for the MCP stdio transport, so production code must never
// configure pterm's default output to stdout.
type ptermLogger struct {
	verbose bool
	mu      sync.Mutex
}

// NewLogger creates a pterm-backed Logger. verbose enables Debug output.
// Styling is disabled when stderr is not an interactive terminal (a pipe,
// a log file, a process supervisor) so captured logs don't carry ANSI
// escapes.
func NewLogger(verbose bool) Logger {
	pterm.SetDefaultOutput(os.Stderr)
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		pterm.DisableStyling()
	}
	return &ptermLogger{verbose: verbose}
}

func (l *ptermLogger) log(printer pterm.PrefixPrinter, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	printer.Println(fmt.Sprintf("%s %s", time.Now().Format("15:04:05"), fmt.Sprintf(msg, args...)))
}

func (l *ptermLogger) Info(msg string, args ...any)    { l.log(pterm.Info, msg, args...) }
func (l *ptermLogger) Warning(msg string, args ...any) { l.log(pterm.Warning, msg, args...) }
func (l *ptermLogger) Error(msg string, args ...any)   { l.log(pterm.Error, msg, args...) }
func (l *ptermLogger) Debug(msg string, args ...any) {
	if l.verbose {
		l.log(pterm.Debug, msg, args...)
	}
}

// MemoryLogger is a test double that records formatted lines per level.
type MemoryLogger struct {
	mu    sync.Mutex
	lines map[string][]string
}

// NewMemoryLogger creates a Logger suitable for assertions in tests.
func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{lines: make(map[string][]string)}
}

func (l *MemoryLogger) add(level, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines[level] = append(l.lines[level], fmt.Sprintf(msg, args...))
}

func (l *MemoryLogger) Info(msg string, args ...any)    { l.add("info", msg, args...) }
func (l *MemoryLogger) Warning(msg string, args ...any) { l.add("warning", msg, args...) }
func (l *MemoryLogger) Error(msg string, args ...any)   { l.add("error", msg, args...) }
func (l *MemoryLogger) Debug(msg string, args ...any)   { l.add("debug", msg, args...) }

// Lines returns a copy of the recorded lines for level ("info", "warning",
// "error", "debug").
func (l *MemoryLogger) Lines(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines[level]))
	copy(out, l.lines[level])
	return out
}
