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
	"time"

	"github.com/cortalabs/forge-sync/internal/forgeerr"
)

// ListStylesheets returns every stylesheet row for tid, ordered by name.
func (g *Gateway) ListStylesheets(ctx context.Context, tid int) ([]Stylesheet, error) {
	query := fmt.Sprintf("SELECT sid, tid, name, css, cachefile, lastmodified FROM %s WHERE tid = ? ORDER BY name", g.table("themestylesheets"))
	rows, err := g.db.QueryContext(ctx, query, tid)
	if err != nil {
		return nil, fmt.Errorf("listing stylesheets for theme %d: %w: %v", tid, forgeerr.TransientIO, err)
	}
	defer rows.Close()

	var out []Stylesheet
	for rows.Next() {
		var s Stylesheet
		if err := rows.Scan(&s.SID, &s.TID, &s.Name, &s.CSS, &s.CacheFile, &s.LastModified); err != nil {
			return nil, fmt.Errorf("scanning stylesheet row: %w: %v", forgeerr.TransientIO, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func getStylesheetByName(ctx context.Context, tx *sql.Tx, table string, tid int, name string) (*Stylesheet, error) {
	query := fmt.Sprintf("SELECT sid, tid, name, css, cachefile, lastmodified FROM %s WHERE tid = ? AND name = ?", table)
	row := tx.QueryRowContext(ctx, query, tid, name)

	var s Stylesheet
	if err := row.Scan(&s.SID, &s.TID, &s.Name, &s.CSS, &s.CacheFile, &s.LastModified); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying stylesheet (tid=%d, name=%q): %w: %v", tid, name, forgeerr.TransientIO, err)
	}
	return &s, nil
}

// ImportStylesheet creates or updates a stylesheet row for (tid, name):
// update body and bump lastmodified if it exists, otherwise insert with
// cachefile = name.
func (g *Gateway) ImportStylesheet(ctx context.Context, tid int, name, css string) error {
	table := g.table("themestylesheets")
	now := time.Now().Unix()
	return g.WithTx(ctx, func(tx *sql.Tx) error {
		existing, err := getStylesheetByName(ctx, tx, table, tid, name)
		if err != nil {
			return err
		}

		if existing != nil {
			_, err := tx.ExecContext(ctx,
				fmt.Sprintf("UPDATE %s SET css = ?, lastmodified = ? WHERE sid = ?", table),
				css, now, existing.SID)
			if err != nil {
				return fmt.Errorf("updating stylesheet (tid=%d, name=%q): %w: %v", tid, name, forgeerr.TransientIO, err)
			}
			return nil
		}

		_, err = tx.ExecContext(ctx,
			fmt.Sprintf("INSERT INTO %s (tid, name, css, cachefile, lastmodified) VALUES (?, ?, ?, ?, ?)", table),
			tid, name, css, name, now)
		if err != nil {
			return fmt.Errorf("inserting stylesheet (tid=%d, name=%q): %w: %v", tid, name, forgeerr.TransientIO, err)
		}
		return nil
	})
}
