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
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cortalabs/forge-sync/internal/forgeerr"
)

// GetThemeByName resolves a named theme. Returns forgeerr.NotFound if no
// row with that name exists.
func (g *Gateway) GetThemeByName(ctx context.Context, name string) (*Theme, error) {
	query := fmt.Sprintf("SELECT tid, name, pid, def, properties, stylesheets, allowedgroups FROM %s WHERE name = ?", g.table("themes"))
	row := g.db.QueryRowContext(ctx, query, name)

	var t Theme
	var propsJSON string
	var def int
	if err := row.Scan(&t.TID, &t.Name, &t.PID, &def, &propsJSON, &t.Stylesheets, &t.AllowedGroups); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("theme %q: %w", name, forgeerr.NotFound)
		}
		return nil, fmt.Errorf("querying theme %q: %w: %v", name, forgeerr.TransientIO, err)
	}
	t.Def = def != 0
	t.Properties = map[string]string{}
	if propsJSON != "" {
		_ = json.Unmarshal([]byte(propsJSON), &t.Properties)
	}
	return &t, nil
}

// DefaultThemeProperties returns the minimal valid properties map for a
// newly created theme: templateset set to templateSetName and editortheme
// set to "default". Nothing is read from a parent theme; every other
// property is left for an operator to set afterward via SetThemeProperty.
func DefaultThemeProperties(templateSetName string) map[string]string {
	return map[string]string{
		"templateset": templateSetName,
		"editortheme": "default",
	}
}
