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
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cortalabs/forge-sync/internal/logging"
)

// healthCmd runs a handful of startup diagnostics: DB reachability,
// sync_root writability, and bridge script presence if one is configured.
// It exits non-zero on the first failed check so it is usable as a
// process-supervisor readiness probe.
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check database connectivity and sync_root writability",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.NewLogger(viper.GetBool("verbose"))

		a, err := buildApp(log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer a.db.Close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if err := a.db.Ping(ctx); err != nil {
			return fmt.Errorf("database ping: %w", err)
		}
		log.Info("database reachable")

		probe := filepath.Join(a.syncRoot, ".forge-sync-health")
		if err := os.MkdirAll(a.syncRoot, 0o755); err != nil {
			return fmt.Errorf("sync_root %q not writable: %w", a.syncRoot, err)
		}
		if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
			return fmt.Errorf("sync_root %q not writable: %w", a.syncRoot, err)
		}
		os.Remove(probe)
		log.Info("sync_root %q writable", a.syncRoot)

		if a.bridge != nil {
			if _, err := os.Stat(viper.GetString("bridge_script")); err != nil {
				return fmt.Errorf("bridge_script not found: %w", err)
			}
			log.Info("bridge script present")
		}

		log.Info("all checks passed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
