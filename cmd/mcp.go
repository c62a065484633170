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

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	MCP "github.com/cortalabs/forge-sync/mcp"
	"github.com/cortalabs/forge-sync/internal/logging"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Launch the MCP server over stdio",
	Long: `Launch a Model Context Protocol (MCP) server exposing the sync
service and plugin bridge as a tool surface: export_templates,
export_stylesheets, sync_start, sync_stop, sync_status,
plugin_install/_activate/_deactivate/_uninstall,
theme_install/_set_property/_get/_uninstall.

Eagerly starts the live file watcher on launch, same as the standalone
sync command does.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// CRITICAL: redirect all pterm output to stderr immediately so
		// log lines never contaminate the MCP stdio transport's stdout.
		pterm.SetDefaultOutput(os.Stderr)

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

		server := MCP.NewServer(MCP.Config{
			SyncRoot:   a.syncRoot,
			ForumURL:   a.forumURL,
			DebounceMs: a.debounceMs,
		}, a.service, a.bridge)

		return server.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
