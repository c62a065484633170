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
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cortalabs/forge-sync/internal/logging"
)

// syncCmd runs the live file watcher in the foreground, outside of an MCP
// session — useful when forge-sync is driven by a process supervisor
// rather than an AI client.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run the live file watcher in the foreground",
	Long: `Start the file watcher and block until interrupted. Edits under
sync_root are debounced, validated, and imported back into the forum
database exactly as they would be if an mcp-connected client issued
sync_start.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.NewLogger(viper.GetBool("verbose"))
		a, err := buildApp(log)
		if err != nil {
			return err
		}
		defer a.db.Close()

		if err := a.service.StartWatcher(); err != nil {
			return err
		}
		defer a.service.StopWatcher()

		log.Info("watching %s (debounce %dms)", a.syncRoot, a.debounceMs)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		log.Info("shutting down watcher...")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
