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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cortalabs/forge-sync/internal/logging"
)

var exportSetName string
var exportThemeName string

func init() {
	exportCmd.Flags().StringVar(&exportSetName, "set", "", "Template set to export")
	exportCmd.Flags().StringVar(&exportThemeName, "theme", "", "Theme to export")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a template set and/or a theme's stylesheets to disk",
	Long: `Export materialises rows from the forum database as files under
sync_root, the same operation the mcp tool surface exposes as
export_templates and export_stylesheets. At least one of --set or --theme
must be given; both may be given to export in one invocation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportSetName == "" && exportThemeName == "" {
			return fmt.Errorf("at least one of --set or --theme is required")
		}

		log := logging.NewLogger(viper.GetBool("verbose"))
		a, err := buildApp(log)
		if err != nil {
			return err
		}
		defer a.db.Close()

		ctx := cmd.Context()

		if exportSetName != "" {
			stats, err := a.service.ExportTemplateSet(ctx, exportSetName)
			if err != nil {
				return err
			}
			log.Info("exported template set %q: %d files across %d groups in %s", exportSetName, stats.FilesWritten, stats.Groups, stats.Duration)
		}

		if exportThemeName != "" {
			stats, err := a.service.ExportTheme(ctx, exportThemeName)
			if err != nil {
				return err
			}
			log.Info("exported theme %q: %d stylesheets in %s", exportThemeName, stats.FilesWritten, stats.Duration)
		}

		return nil
	},
}
