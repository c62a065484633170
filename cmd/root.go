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
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "forge-sync",
	Short: "Mirror forum templates and stylesheets to disk and back",
	Long: `forge-sync keeps a forum's template sets and theme stylesheets
synchronised with a working directory on disk: export snapshots rows as
files so they can be edited with ordinary editors and version control,
and a live watcher ingests edits back into the database as they happen.

Tools provided (over the mcp subcommand's stdio transport):
- export_templates / export_stylesheets
- sync_start / sync_stop / sync_status
- plugin_install / _activate / _deactivate / _uninstall
- theme_install / _set_property / _get / _uninstall`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// expandPath expands ~, handles relative and absolute paths
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			path = home
		} else if strings.HasPrefix(path, "~/") {
			path = filepath.Join(home, path[2:])
		}
	}
	return filepath.Abs(path)
}

func initConfig() {
	cfgFile := viper.GetString("configFile")

	viper.SetConfigType("yaml")
	viper.SetConfigName("forge-sync")
	if cwd, err := os.Getwd(); err == nil {
		viper.AddConfigPath(filepath.Join(cwd, ".config"))
		viper.AddConfigPath(cwd)
	}

	if viper.GetBool("verbose") {
		pterm.EnableDebugMessages()
	}

	if cfgFile != "" {
		expanded, err := expandPath(cfgFile)
		cobra.CheckErr(err)
		viper.SetConfigFile(expanded)
	}

	if err := viper.ReadInConfig(); err == nil {
		pterm.Debug.Println("Using config file:", viper.ConfigFileUsed())
	}

	// Environment-sourced values win over file-sourced defaults:
	// DB_HOST overrides db.host, SYNC_ROOT overrides sync_root, etc.
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()
}

func setDefaults() {
	viper.SetDefault("debounce_ms", 500)
	viper.SetDefault("max_file_bytes", 5*1024*1024)
	viper.SetDefault("bridge_timeout_s", 30)
	viper.SetDefault("db.prefix", "")
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().String("config", "", "config file (default: $CWD/.config/forge-sync.yaml or $CWD/forge-sync.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose logging output")
	viper.BindPFlag("configFile", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}
