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

// Package forumdb is the typed CRUD gateway over the forum's MySQL schema:
// template sets, templates, themes and stylesheets. Every statement is
// parameterised; no string-built SQL ever carries a caller-supplied value.
//
// Transactions are cursor-scoped: WithTx opens one, a panic or returned
// error rolls it back, a clean return commits it. The gateway never spins
// up its own goroutine or worker pool to acquire a connection — acquisition
// happens directly on the calling goroutine so a saturated pool degrades to
// the driver's own connection timeout rather than deadlocking two nested
// executors against each other.
package forumdb

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"github.com/cortalabs/forge-sync/internal/forgeerr"
)

// Sentinel template-set ids from the forum schema.
const (
	SetIDMaster = -2
	SetIDGlobal = -1
)

// DefaultTemplateVersion is used when a custom override is inserted for a
// title that has no master.
const DefaultTemplateVersion = 1800

// Config describes how to reach the forum database.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	Prefix   string
}

func (c Config) dsn() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&multiStatements=false",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

// Gateway is the shared DB handle. It is safe for concurrent use by
// multiple worker-pool tasks: *sql.DB already pools connections.
type Gateway struct {
	db     *sql.DB
	prefix string
}

// Open connects to the forum database and verifies it is reachable.
func Open(cfg Config) (*Gateway, error) {
	if cfg.Password == "" {
		return nil, fmt.Errorf("database.password is required: %w", forgeerr.Fatal)
	}
	db, err := sql.Open("mysql", cfg.dsn())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w: %v", forgeerr.TransientIO, err)
	}
	return &Gateway{db: db, prefix: cfg.Prefix}, nil
}

// Close releases the underlying connection pool.
func (g *Gateway) Close() error {
	return g.db.Close()
}

// Ping checks connectivity, used by the health command.
func (g *Gateway) Ping(ctx context.Context) error {
	if err := g.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", forgeerr.TransientIO, err)
	}
	return nil
}

// table returns the prefixed table name for entity, e.g. "mybb_templates".
func (g *Gateway) table(entity string) string {
	return g.prefix + entity
}

// WithTx opens a single cursor-scoped transaction, passes it to fn, and
// commits on a nil return or rolls back otherwise (including on panic,
// which is re-raised after rollback).
func (g *Gateway) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w: %v", forgeerr.TransientIO, err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
		}
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w: %v", forgeerr.TransientIO, err)
	}
	return nil
}
