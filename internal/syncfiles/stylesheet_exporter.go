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
	"time"

	"github.com/cortalabs/forge-sync/internal/router"
)

// StylesheetExporter materialises one theme's stylesheet rows as files
// under styles/{theme_name}/{stylesheet_name}.
type StylesheetExporter struct {
	DB     StylesheetStore
	Router *router.Router
}

// Export streams the theme's stylesheets in name order and atomically
// writes each one. Returns forgeerr.NotFound if the theme does not exist.
func (e *StylesheetExporter) Export(ctx context.Context, themeName string) (ExportStats, error) {
	start := time.Now()

	theme, err := e.DB.GetThemeByName(ctx, themeName)
	if err != nil {
		return ExportStats{}, fmt.Errorf("exporting theme %q: %w", themeName, err)
	}

	rows, err := e.DB.ListStylesheets(ctx, theme.TID)
	if err != nil {
		return ExportStats{}, fmt.Errorf("exporting theme %q: %w", themeName, err)
	}

	for _, row := range rows {
		target := e.Router.StylesheetPath(themeName, row.Name)
		if err := writeAtomic(target, []byte(row.CSS)); err != nil {
			return ExportStats{}, fmt.Errorf("exporting stylesheet %q/%q: %w", themeName, row.Name, err)
		}
	}

	return ExportStats{
		FilesWritten: len(rows),
		Groups:       len(rows),
		Duration:     time.Since(start),
	}, nil
}
