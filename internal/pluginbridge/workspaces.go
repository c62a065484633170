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

package pluginbridge

import (
	"context"

	"github.com/cortalabs/forge-sync/internal/forumdb"
)

// Visibility is a PluginWorkspace's collaborator-facing visibility.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// workspaceArgs builds the common codename[, visibility] argument map
// shared by every plugin/theme verb.
func workspaceArgs(codename string, visibility Visibility) map[string]string {
	args := map[string]string{"codename": codename}
	if visibility != "" {
		args["visibility"] = string(visibility)
	}
	return args
}

// InstallPlugin drives plugin:install for codename.
func (b *Bridge) InstallPlugin(ctx context.Context, codename string, visibility Visibility) (Envelope, error) {
	return b.Call(ctx, VerbPluginInstall, workspaceArgs(codename, visibility))
}

// ActivatePlugin drives plugin:activate for codename.
func (b *Bridge) ActivatePlugin(ctx context.Context, codename string) (Envelope, error) {
	return b.Call(ctx, VerbPluginActivate, workspaceArgs(codename, ""))
}

// DeactivatePlugin drives plugin:deactivate for codename.
func (b *Bridge) DeactivatePlugin(ctx context.Context, codename string) (Envelope, error) {
	return b.Call(ctx, VerbPluginDeactivate, workspaceArgs(codename, ""))
}

// UninstallPlugin drives plugin:uninstall for codename.
func (b *Bridge) UninstallPlugin(ctx context.Context, codename string) (Envelope, error) {
	return b.Call(ctx, VerbPluginUninstall, workspaceArgs(codename, ""))
}

// InstallTheme drives theme:create for codename, seeding it with the
// default property set from forumdb.DefaultThemeProperties (templateset
// set to templateSetName, editortheme "default", everything else left for
// a later SetThemeProperty call). The tool surface calls this operation
// theme_install; the bridge verb underneath is theme:create.
func (b *Bridge) InstallTheme(ctx context.Context, codename string, visibility Visibility, templateSetName string) (Envelope, error) {
	args := workspaceArgs(codename, visibility)
	for k, v := range forumdb.DefaultThemeProperties(templateSetName) {
		args[k] = v
	}
	return b.Call(ctx, VerbThemeCreate, args)
}

// SetThemeProperty drives theme:set_property for codename.
func (b *Bridge) SetThemeProperty(ctx context.Context, codename, key, value string) (Envelope, error) {
	args := workspaceArgs(codename, "")
	args["key"] = key
	args["value"] = value
	return b.Call(ctx, VerbThemeSetProperty, args)
}

// GetTheme drives theme:get for codename.
func (b *Bridge) GetTheme(ctx context.Context, codename string) (Envelope, error) {
	return b.Call(ctx, VerbThemeGet, workspaceArgs(codename, ""))
}

// UninstallTheme drives theme_uninstall at the tool surface. There is no
// theme-specific uninstall verb; a theme is a PluginWorkspace with
// type=theme, so removal goes through the same plugin:uninstall verb
// that removes any other workspace by codename.
func (b *Bridge) UninstallTheme(ctx context.Context, codename string) (Envelope, error) {
	return b.Call(ctx, VerbPluginUninstall, workspaceArgs(codename, ""))
}
