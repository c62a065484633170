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

package pluginbridge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubBridge(stdout, stderr string, cmdErr error) *Bridge {
	b := New("php", "bridge.php", "/forum", nil)
	b.runCommand = func(_ context.Context, _ string, _ []string, _ string) ([]byte, []byte, error) {
		return []byte(stdout), []byte(stderr), cmdErr
	}
	return b
}

func TestCallParsesSuccessEnvelope(t *testing.T) {
	b := stubBridge(`{"ok": true, "data": {"codename": "foo"}}`, "", nil)

	env, err := b.Call(context.Background(), VerbPluginInstall, map[string]string{"codename": "foo"})
	require.NoError(t, err)
	assert.True(t, env.OK)
	assert.NotEmpty(t, env.CorrelationID)
}

func TestCallToleratesNoisyPreamble(t *testing.T) {
	b := stubBridge("PHP warning: deprecated foo\n{\"ok\": true}", "", nil)

	env, err := b.Call(context.Background(), VerbThemeGet, map[string]string{"codename": "foo"})
	require.NoError(t, err)
	assert.True(t, env.OK)
}

func TestCallReturnsBridgeFailureOnUnparseableOutput(t *testing.T) {
	b := stubBridge("no json here at all", "stack trace", nil)

	_, err := b.Call(context.Background(), VerbPluginActivate, map[string]string{"codename": "foo"})
	assert.ErrorContains(t, err, "unparseable envelope")
}

func TestCallPrefersParseableEnvelopeOverNonZeroExit(t *testing.T) {
	b := stubBridge(`{"ok": false, "error": "already installed"}`, "", errors.New("exit status 1"))

	env, err := b.Call(context.Background(), VerbPluginInstall, map[string]string{"codename": "foo"})
	assert.Error(t, err)
	assert.False(t, env.OK)
	assert.Equal(t, "already installed", env.Error)
}

func TestCallReturnsBridgeFailureOnNonZeroExitWithNoEnvelope(t *testing.T) {
	b := stubBridge("", "segfault", errors.New("exit status 139"))

	_, err := b.Call(context.Background(), VerbPluginInstall, map[string]string{"codename": "foo"})
	assert.Error(t, err)
}

func TestCallReturnsBridgeFailureOnEnvelopeOKFalse(t *testing.T) {
	b := stubBridge(`{"ok": false, "error": "not found"}`, "", nil)

	_, err := b.Call(context.Background(), VerbPluginUninstall, map[string]string{"codename": "foo"})
	assert.ErrorContains(t, err, "not found")
}

func TestCallTimesOutAndReportsBridgeFailure(t *testing.T) {
	b := New("php", "bridge.php", "/forum", nil)
	b.Timeout = 10 * time.Millisecond
	b.runCommand = func(ctx context.Context, _ string, _ []string, _ string) ([]byte, []byte, error) {
		select {
		case <-time.After(100 * time.Millisecond):
			return []byte(`{"ok": true}`), nil, nil
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}

	_, err := b.Call(context.Background(), VerbPluginInstall, map[string]string{"codename": "foo"})
	assert.ErrorContains(t, err, "timed out")
}

func TestEachCallCarriesAUniqueCorrelationID(t *testing.T) {
	b := stubBridge(`{"ok": true}`, "", nil)

	first, err := b.Call(context.Background(), VerbPluginInstall, map[string]string{"codename": "foo"})
	require.NoError(t, err)
	second, err := b.Call(context.Background(), VerbPluginInstall, map[string]string{"codename": "foo"})
	require.NoError(t, err)

	assert.NotEqual(t, first.CorrelationID, second.CorrelationID)
}

func TestWorkspaceHelpersDriveExpectedVerbs(t *testing.T) {
	var seenArgs []string
	b := New("php", "bridge.php", "/forum", nil)
	b.runCommand = func(_ context.Context, _ string, args []string, _ string) ([]byte, []byte, error) {
		seenArgs = args
		return []byte(`{"ok": true}`), nil, nil
	}

	_, err := b.InstallPlugin(context.Background(), "my-plugin", VisibilityPublic)
	require.NoError(t, err)
	assert.Contains(t, seenArgs, "--action=plugin:install")
	assert.Contains(t, seenArgs, "codename=my-plugin")
	assert.Contains(t, seenArgs, "visibility=public")

	_, err = b.UninstallTheme(context.Background(), "my-theme")
	require.NoError(t, err)
	assert.Contains(t, seenArgs, "--action=plugin:uninstall")
	assert.Contains(t, seenArgs, "codename=my-theme")

	_, err = b.InstallTheme(context.Background(), "my-theme", VisibilityPublic, "default")
	require.NoError(t, err)
	assert.Contains(t, seenArgs, "--action=theme:create")
	assert.Contains(t, seenArgs, "codename=my-theme")
	assert.Contains(t, seenArgs, "templateset=default")
	assert.Contains(t, seenArgs, "editortheme=default")

	_, err = b.SetThemeProperty(context.Background(), "my-theme", "pagebackground", "#fff")
	require.NoError(t, err)
	assert.Contains(t, seenArgs, "--action=theme:set_property")
	assert.Contains(t, seenArgs, "key=pagebackground")
	assert.Contains(t, seenArgs, "value=#fff")

	_, err = b.GetTheme(context.Background(), "my-theme")
	require.NoError(t, err)
	assert.Contains(t, seenArgs, "--action=theme:get")
	assert.Contains(t, seenArgs, "codename=my-theme")
}
