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

// Package pluginbridge drives an external interpreter as a fresh
// subprocess per call to install, activate, and configure plugin and
// theme workspaces. There is no long-lived bridge process and no shared
// state across calls: every invocation starts a new interpreter, writes
// its fixed argument vector, and parses the first JSON object found on
// stdout as the result envelope.
package pluginbridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/cortalabs/forge-sync/internal/forgeerr"
	"github.com/cortalabs/forge-sync/internal/logging"
)

// DefaultTimeout is the subprocess deadline for a bridge call.
const DefaultTimeout = 30 * time.Second

// Verb is one of the fixed bridge actions.
type Verb string

const (
	VerbPluginInstall    Verb = "plugin:install"
	VerbPluginActivate   Verb = "plugin:activate"
	VerbPluginDeactivate Verb = "plugin:deactivate"
	VerbPluginUninstall  Verb = "plugin:uninstall"
	VerbThemeCreate      Verb = "theme:create"
	VerbThemeSetProperty Verb = "theme:set_property"
	VerbThemeGet         Verb = "theme:get"
)

// Envelope is the bridge script's result contract.
type Envelope struct {
	OK       bool            `json:"ok"`
	Data     json.RawMessage `json:"data"`
	Error    string          `json:"error,omitempty"`
	Warnings []string        `json:"warnings,omitempty"`

	// CorrelationID is stamped by the bridge on the way out (not part of
	// the subprocess's JSON) so callers can tie a log line back to a
	// specific invocation even though each call is a fresh process.
	CorrelationID string `json:"-"`
}

// Bridge drives Interpreter/Script as a subprocess for every call.
type Bridge struct {
	Interpreter string
	Script      string
	WorkDir     string
	Timeout     time.Duration
	Log         logging.Logger

	// runCommand is overridable in tests so the subprocess exec can be
	// stubbed out without touching a real interpreter binary.
	runCommand func(ctx context.Context, name string, args []string, dir string) ([]byte, []byte, error)
}

// New returns a Bridge with the default 30s timeout.
func New(interpreter, script, workDir string, log logging.Logger) *Bridge {
	return &Bridge{
		Interpreter: interpreter,
		Script:      script,
		WorkDir:     workDir,
		Timeout:     DefaultTimeout,
		Log:         log,
	}
}

// Call invokes verb with the given key/value arguments. A fresh
// correlation id is generated per call and stamped onto the returned
// envelope and this call's error and log messages; it is not passed to
// the subprocess.
func (b *Bridge) Call(ctx context.Context, verb Verb, kv map[string]string) (Envelope, error) {
	correlationID := uuid.NewString()

	timeout := b.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := []string{b.Script, "--action=" + string(verb), "--json"}
	for _, k := range sortedKeys(kv) {
		args = append(args, fmt.Sprintf("%s=%s", k, kv[k]))
	}

	run := b.runCommand
	if run == nil {
		run = runSubprocess
	}

	stdout, stderr, err := run(ctx, b.Interpreter, args, b.WorkDir)
	if ctx.Err() != nil {
		return Envelope{CorrelationID: correlationID}, fmt.Errorf("bridge call %s [%s] timed out after %s: %w", verb, correlationID, timeout, forgeerr.BridgeFailure)
	}

	env, parseErr := parseEnvelope(stdout)
	if parseErr != nil {
		if len(stderr) > 0 && b.Log != nil {
			b.Log.Error("bridge call %s [%s] stderr: %s", verb, correlationID, string(stderr))
		}
		return Envelope{CorrelationID: correlationID}, fmt.Errorf("bridge call %s [%s]: unparseable envelope: %w", verb, correlationID, forgeerr.BridgeFailure)
	}
	env.CorrelationID = correlationID

	// On a non-zero exit, an envelope that carries an error message is
	// reported (below) in place of the raw stderr. A non-zero exit whose
	// envelope has no error message is a BridgeFailure even if the
	// envelope says ok.
	if err != nil && env.Error == "" {
		if len(stderr) > 0 && b.Log != nil {
			b.Log.Error("bridge call %s [%s] exited non-zero with stderr: %s", verb, correlationID, string(stderr))
		}
		return env, fmt.Errorf("bridge call %s [%s] exited non-zero: %w", verb, correlationID, forgeerr.BridgeFailure)
	}

	if !env.OK {
		return env, fmt.Errorf("bridge call %s [%s] reported failure %q: %w", verb, correlationID, env.Error, forgeerr.BridgeFailure)
	}

	return env, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// parseEnvelope scans stdout for the first valid JSON object, tolerating
// any non-JSON preamble a noisy interpreter might emit.
func parseEnvelope(stdout []byte) (Envelope, error) {
	start := bytes.IndexByte(stdout, '{')
	if start < 0 {
		return Envelope{}, fmt.Errorf("no JSON object found in bridge output")
	}
	dec := json.NewDecoder(bytes.NewReader(stdout[start:]))
	var env Envelope
	if err := dec.Decode(&env); err != nil {
		return Envelope{}, fmt.Errorf("decoding bridge envelope: %w", err)
	}
	return env, nil
}

func runSubprocess(ctx context.Context, name string, args []string, dir string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
