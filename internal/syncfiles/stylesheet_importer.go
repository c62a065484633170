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
	"fmt"

	"github.com/cortalabs/forge-sync/internal/router"
)

// CacheRefresher is the narrow interface StylesheetImporter needs from
// internal/cacherefresh.Client. Declared here, not there, so syncfiles does
// not import the HTTP client package; cacherefresh.Client satisfies it
// structurally.
type CacheRefresher interface {
	Refresh(ctx context.Context, themeName, stylesheetName string) (confirmed bool, err error)
}

// StylesheetImporter ingests an edited stylesheet file, creating or
// updating the row, then signals the CacheRefresher. A refresh failure is
// non-fatal: the DB write already succeeded.
type StylesheetImporter struct {
	DB    StylesheetStore
	Cache CacheRefresher
}

// ImportResult reports whether the cache refresh was confirmed, so the
// caller can surface a CacheStale warning without treating the import as a
// failure.
type ImportResult struct {
	CacheRefreshed bool
	CacheErr       error
}

// Import writes css to the (theme, stylesheet) row named by key and
// attempts a cache refresh.
func (im *StylesheetImporter) Import(ctx context.Context, key router.StylesheetKey, css string) (ImportResult, error) {
	theme, err := im.DB.GetThemeByName(ctx, key.ThemeName)
	if err != nil {
		return ImportResult{}, fmt.Errorf("importing stylesheet %q/%q: %w", key.ThemeName, key.StylesheetName, err)
	}

	if err := im.DB.ImportStylesheet(ctx, theme.TID, key.StylesheetName, css); err != nil {
		return ImportResult{}, fmt.Errorf("importing stylesheet %q/%q: %w", key.ThemeName, key.StylesheetName, err)
	}

	if im.Cache == nil {
		return ImportResult{}, nil
	}
	confirmed, cacheErr := im.Cache.Refresh(ctx, key.ThemeName, key.StylesheetName)
	return ImportResult{CacheRefreshed: confirmed, CacheErr: cacheErr}, nil
}
