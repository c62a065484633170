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

package syncfiles

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cortalabs/forge-sync/internal/forgeerr"
	"github.com/cortalabs/forge-sync/internal/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateExporterWritesEveryRowAndGroupsThem(t *testing.T) {
	dir := t.TempDir()
	store := newFakeTemplateStore()
	store.addSet("Default Templates", 1)
	store.addTemplate(1, "forumdisplay_announcement", "<p>ann</p>", 1)
	store.addTemplate(1, "forumdisplay_thread", "<p>thread</p>", 1)
	store.addTemplate(1, "footer", "<footer></footer>", 1)

	exp := &TemplateExporter{
		DB:       store,
		Router:   router.New(dir),
		Resolver: router.NewGroupResolver([]string{"forumdisplay_"}),
	}

	stats, err := exp.Export(context.Background(), "Default Templates")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.FilesWritten)
	assert.Equal(t, 2, stats.Groups) // forumdisplay_, ungrouped

	body, err := os.ReadFile(filepath.Join(dir, "template_sets", "Default Templates", "forumdisplay_", "forumdisplay_announcement.html"))
	require.NoError(t, err)
	assert.Equal(t, "<p>ann</p>", string(body))

	body, err = os.ReadFile(filepath.Join(dir, "template_sets", "Default Templates", router.UngroupedDir, "footer.html"))
	require.NoError(t, err)
	assert.Equal(t, "<footer></footer>", string(body))
}

func TestTemplateExporterUnknownSetIsNotFound(t *testing.T) {
	dir := t.TempDir()
	exp := &TemplateExporter{
		DB:       newFakeTemplateStore(),
		Router:   router.New(dir),
		Resolver: router.NewGroupResolver(nil),
	}
	_, err := exp.Export(context.Background(), "Missing Set")
	require.Error(t, err)
	assert.ErrorIs(t, err, forgeerr.NotFound)
}

func TestTemplateExporterIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	store := newFakeTemplateStore()
	store.addSet("Default Templates", 1)
	store.addTemplate(1, "footer", "<footer></footer>", 1)

	exp := &TemplateExporter{DB: store, Router: router.New(dir), Resolver: router.NewGroupResolver(nil)}

	_, err := exp.Export(context.Background(), "Default Templates")
	require.NoError(t, err)
	path := filepath.Join(dir, "template_sets", "Default Templates", router.UngroupedDir, "footer.html")
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = exp.Export(context.Background(), "Default Templates")
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
