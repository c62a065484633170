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

// ListTemplates returns every template row for sid, ordered by title. The
// exporter groups and re-sorts these by (group, title) itself since group
// membership is not stored in the schema.
func (g *Gateway) ListTemplates(ctx context.Context, sid int) ([]Template, error) {
	query := fmt.Sprintf("SELECT tid, sid, title, template, version FROM %s WHERE sid = ? ORDER BY title", g.table("templates"))
	rows, err := g.db.QueryContext(ctx, query, sid)
	if err != nil {
		return nil, fmt.Errorf("listing templates for set %d: %w: %v", sid, forgeerr.TransientIO, err)
	}
	defer rows.Close()

	var out []Template
	for rows.Next() {
		var t Template
		if err := rows.Scan(&t.TID, &t.SID, &t.Title, &t.Body, &t.Version); err != nil {
			return nil, fmt.Errorf("scanning template row: %w: %v", forgeerr.TransientIO, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// getTemplateByTitle fetches the (sid, title) row inside tx, or nil if
// absent. It is unexported: all callers go through ImportTemplate's
// transaction so the inheritance decision and the write are atomic.
func getTemplateByTitle(ctx context.Context, tx *sql.Tx, table string, sid int, title string) (*Template, error) {
	query := fmt.Sprintf("SELECT tid, sid, title, template, version FROM %s WHERE sid = ? AND title = ?", table)
	row := tx.QueryRowContext(ctx, query, sid, title)

	var t Template
	if err := row.Scan(&t.TID, &t.SID, &t.Title, &t.Body, &t.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying template (sid=%d, title=%q): %w: %v", sid, title, forgeerr.TransientIO, err)
	}
	return &t, nil
}

// ImportTemplate applies the master/custom inheritance rules as a single
// transaction: it never leaves a partially-applied row behind.
func (g *Gateway) ImportTemplate(ctx context.Context, sid int, title, body string) error {
	table := g.table("templates")
	return g.WithTx(ctx, func(tx *sql.Tx) error {
		master, err := getTemplateByTitle(ctx, tx, table, SetIDMaster, title)
		if err != nil {
			return err
		}
		custom, err := getTemplateByTitle(ctx, tx, table, sid, title)
		if err != nil {
			return err
		}

		switch decideTemplateAction(master, custom) {
		case ActionUpdateCustom:
			_, err := tx.ExecContext(ctx,
				fmt.Sprintf("UPDATE %s SET template = ? WHERE tid = ?", table), body, custom.TID)
			if err != nil {
				return fmt.Errorf("updating template (sid=%d, title=%q): %w: %v", sid, title, forgeerr.TransientIO, err)
			}
			return nil

		case ActionInsertWithMasterVersion:
			_, err := tx.ExecContext(ctx,
				fmt.Sprintf("INSERT INTO %s (sid, title, template, version) VALUES (?, ?, ?, ?)", table),
				sid, title, body, master.Version)
			if err != nil {
				return fmt.Errorf("inserting custom template (sid=%d, title=%q): %w: %v", sid, title, forgeerr.TransientIO, err)
			}
			return nil

		default: // ActionInsertWithDefaultVersion
			_, err := tx.ExecContext(ctx,
				fmt.Sprintf("INSERT INTO %s (sid, title, template, version) VALUES (?, ?, ?, ?)", table),
				sid, title, body, DefaultTemplateVersion)
			if err != nil {
				return fmt.Errorf("inserting template (sid=%d, title=%q): %w: %v", sid, title, forgeerr.TransientIO, err)
			}
			return nil
		}
	})
}
