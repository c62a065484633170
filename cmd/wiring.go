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

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/cortalabs/forge-sync/internal/cacherefresh"
	"github.com/cortalabs/forge-sync/internal/forumdb"
	"github.com/cortalabs/forge-sync/internal/logging"
	"github.com/cortalabs/forge-sync/internal/pluginbridge"
	"github.com/cortalabs/forge-sync/internal/router"
	"github.com/cortalabs/forge-sync/internal/syncfiles"
	"github.com/cortalabs/forge-sync/internal/syncservice"
	"github.com/cortalabs/forge-sync/internal/watcher"
)

// app bundles every component NewServer/export/health need, all built
// from the same viper-resolved configuration.
type app struct {
	db      *forumdb.Gateway
	service *syncservice.Service
	bridge  *pluginbridge.Bridge
	log     logging.Logger

	syncRoot   string
	forumURL   string
	debounceMs int
}

// buildApp reads the layered config (flag > env > file > default) and
// wires the DB gateway, router, exporters, importers, watcher, sync
// service, cache refresher, and plugin bridge together.
func buildApp(log logging.Logger) (*app, error) {
	dbCfg := forumdb.Config{
		Host:     viper.GetString("db.host"),
		Port:     viper.GetInt("db.port"),
		User:     viper.GetString("db.user"),
		Password: viper.GetString("db.password"),
		Database: viper.GetString("db.database"),
		Prefix:   viper.GetString("db.prefix"),
	}
	db, err := forumdb.Open(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to forum database: %w", err)
	}

	syncRoot := viper.GetString("sync_root")
	forumURL := viper.GetString("forum_url")
	debounceMs := viper.GetInt("debounce_ms")
	maxFileBytes := viper.GetInt64("max_file_bytes")

	r := router.New(syncRoot)
	groups := viper.GetStringSlice("groups")
	resolver := router.NewGroupResolver(groups)

	cache := cacherefresh.New(forumURL, viper.GetString("forum_token"), log)

	templateExporter := &syncfiles.TemplateExporter{DB: db, Router: r, Resolver: resolver}
	stylesheetExporter := &syncfiles.StylesheetExporter{DB: db, Router: r}
	templateImporter := &syncfiles.TemplateImporter{DB: db}
	stylesheetImporter := &syncfiles.StylesheetImporter{DB: db, Cache: cache}

	w := watcher.New(watcher.Config{
		SyncRoot:     syncRoot,
		DebounceMs:   debounceMs,
		MaxFileBytes: maxFileBytes,
		Router:       r,
		Templates:    templateImporter,
		Stylesheets:  stylesheetImporter,
		Log:          log,
	})

	service := syncservice.New(templateExporter, stylesheetExporter, w, log)

	var bridge *pluginbridge.Bridge
	if phpBinary := viper.GetString("php_binary"); phpBinary != "" {
		bridge = pluginbridge.New(phpBinary, viper.GetString("bridge_script"), viper.GetString("forum_root"), log)
		if secs := viper.GetInt("bridge_timeout_s"); secs > 0 {
			bridge.Timeout = time.Duration(secs) * time.Second
		}
	}

	return &app{
		db:         db,
		service:    service,
		bridge:     bridge,
		log:        log,
		syncRoot:   syncRoot,
		forumURL:   forumURL,
		debounceMs: debounceMs,
	}, nil
}
