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

package forumdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cortalabs/forge-sync/internal/forgeerr"
)

// GetTemplateSetByName resolves a named set. Returns forgeerr.NotFound if
// no row with that name exists.
func (g *Gateway) GetTemplateSetByName(ctx context.Context, name string) (*TemplateSet, error) {
	query := fmt.Sprintf("SELECT sid, title FROM %s WHERE title = ?", g.table("templatesets"))
	row := g.db.QueryRowContext(ctx, query, name)

	var set TemplateSet
	if err := row.Scan(&set.SID, &set.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("template set %q: %w", name, forgeerr.NotFound)
		}
		return nil, fmt.Errorf("querying template set %q: %w: %v", name, forgeerr.TransientIO, err)
	}
	return &set, nil
}
