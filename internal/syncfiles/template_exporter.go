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
	"sort"
	"time"

	"github.com/cortalabs/forge-sync/internal/forumdb"
	"github.com/cortalabs/forge-sync/internal/router"
)

// TemplateExporter materialises one template set's rows as files under
// template_sets/{set_name}/{group}/{title}.html.
type TemplateExporter struct {
	DB       TemplateStore
	Router   *router.Router
	Resolver *router.GroupResolver
}

// Export streams the set's rows in (group, title) lexicographic order and
// atomically writes each one. Returns forgeerr.NotFound if the set does
// not exist.
func (e *TemplateExporter) Export(ctx context.Context, setName string) (ExportStats, error) {
	start := time.Now()

	set, err := e.DB.GetTemplateSetByName(ctx, setName)
	if err != nil {
		return ExportStats{}, fmt.Errorf("exporting template set %q: %w", setName, err)
	}

	rows, err := e.DB.ListTemplates(ctx, set.SID)
	if err != nil {
		return ExportStats{}, fmt.Errorf("exporting template set %q: %w", setName, err)
	}

	type placedRow struct {
		group string
		row   forumdb.Template
	}
	placed := make([]placedRow, len(rows))
	groups := make(map[string]struct{})
	for i, row := range rows {
		group := e.Resolver.Resolve(row.Title)
		placed[i] = placedRow{group: group, row: row}
		groups[group] = struct{}{}
	}

	sort.Slice(placed, func(i, j int) bool {
		if placed[i].group != placed[j].group {
			return placed[i].group < placed[j].group
		}
		return placed[i].row.Title < placed[j].row.Title
	})

	for _, p := range placed {
		target := e.Router.TemplatePath(setName, p.group, p.row.Title)
		if err := writeAtomic(target, []byte(p.row.Body)); err != nil {
			return ExportStats{}, fmt.Errorf("exporting template %q/%q: %w", setName, p.row.Title, err)
		}
	}

	return ExportStats{
		FilesWritten: len(placed),
		Groups:       len(groups),
		Duration:     time.Since(start),
	}, nil
}
