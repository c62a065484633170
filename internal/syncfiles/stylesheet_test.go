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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cortalabs/forge-sync/internal/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStylesheetExporterWritesEveryRow(t *testing.T) {
	dir := t.TempDir()
	store := newFakeStylesheetStore()
	store.addTheme("Default", 1)
	store.addStylesheet(1, "global.css", "body{color:red}")

	exp := &StylesheetExporter{DB: store, Router: router.New(dir)}
	stats, err := exp.Export(context.Background(), "Default")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FilesWritten)

	body, err := os.ReadFile(filepath.Join(dir, "styles", "Default", "global.css"))
	require.NoError(t, err)
	assert.Equal(t, "body{color:red}", string(body))
}

type fakeCacheRefresher struct {
	calls     int
	themeName string
	sheetName string
	confirmed bool
	err       error
}

func (f *fakeCacheRefresher) Refresh(_ context.Context, themeName, stylesheetName string) (bool, error) {
	f.calls++
	f.themeName = themeName
	f.sheetName = stylesheetName
	return f.confirmed, f.err
}

func TestStylesheetImporterCreatesAndRefreshesCache(t *testing.T) {
	store := newFakeStylesheetStore()
	store.addTheme("Default", 1)
	cache := &fakeCacheRefresher{confirmed: true}

	im := &StylesheetImporter{DB: store, Cache: cache}
	result, err := im.Import(context.Background(), router.StylesheetKey{ThemeName: "Default", StylesheetName: "global.css"}, "body{}")
	require.NoError(t, err)
	assert.True(t, result.CacheRefreshed)
	assert.Equal(t, 1, cache.calls)
	assert.Equal(t, "Default", cache.themeName)
	assert.Equal(t, "global.css", cache.sheetName)

	row := store.stylesheets[1]["global.css"]
	assert.Equal(t, "body{}", row.CSS)
	assert.Equal(t, "global.css", row.CacheFile)
}

func TestStylesheetImporterKeepsDBWriteOnCacheFailure(t *testing.T) {
	store := newFakeStylesheetStore()
	store.addTheme("Default", 1)
	cache := &fakeCacheRefresher{confirmed: false, err: errors.New("http 500")}

	im := &StylesheetImporter{DB: store, Cache: cache}
	result, err := im.Import(context.Background(), router.StylesheetKey{ThemeName: "Default", StylesheetName: "global.css"}, "body{}")
	require.NoError(t, err, "DB write succeeds even when cache refresh fails")
	assert.False(t, result.CacheRefreshed)
	assert.Error(t, result.CacheErr)

	row := store.stylesheets[1]["global.css"]
	assert.Equal(t, "body{}", row.CSS)
}
