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

// Package mcp exposes the sync service and plugin bridge as a Model
// Context Protocol tool surface over stdio. It holds no business logic of
// its own: every tool handler is a thin translation from MCP call-tool
// arguments to a syncservice.Service or pluginbridge.Bridge call, and back
// to a tool result: an error flag and a text message, which for errors
// starts with the taxonomy kind in brackets.
package mcp

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cortalabs/forge-sync/internal/forgeerr"
	"github.com/cortalabs/forge-sync/internal/pluginbridge"
	"github.com/cortalabs/forge-sync/internal/syncservice"
)

// Config carries the values sync_status reports alongside watcher state.
type Config struct {
	SyncRoot   string
	ForumURL   string
	DebounceMs int
}

// Server is the forge-sync MCP server.
type Server struct {
	cfg     Config
	service *syncservice.Service
	bridge  *pluginbridge.Bridge
	server  *sdkmcp.Server
}

// NewServer builds a Server wired to service and bridge. bridge may be
// nil if no php_binary/bridge_script is configured; the plugin/theme
// tools then return a BridgeFailure-kinded error on every call.
func NewServer(cfg Config, service *syncservice.Service, bridge *pluginbridge.Bridge) *Server {
	s := &Server{
		cfg:     cfg,
		service: service,
		bridge:  bridge,
		server: sdkmcp.NewServer(&sdkmcp.Implementation{
			Name:    "forge-sync",
			Version: "1.0.0",
		}, nil),
	}
	s.setupTools()
	return s
}

// Run serves the MCP protocol over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &sdkmcp.StdioTransport{})
}

func (s *Server) setupTools() {
	sdkmcp.AddTool(s.server, &sdkmcp.Tool{
		Name:        "export_templates",
		Description: "Export a template set's rows to disk under sync_root/template_sets",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args struct {
		SetName string `json:"set_name" jsonschema:"Name of the template set to export"`
	}) (*sdkmcp.CallToolResult, any, error) {
		stats, err := s.service.ExportTemplateSet(ctx, args.SetName)
		return toolResult(err, fmt.Sprintf("exported %d files across %d groups in %s", stats.FilesWritten, stats.Groups, stats.Duration))
	})

	sdkmcp.AddTool(s.server, &sdkmcp.Tool{
		Name:        "export_stylesheets",
		Description: "Export a theme's stylesheets to disk under sync_root/styles",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args struct {
		ThemeName string `json:"theme_name" jsonschema:"Name of the theme to export"`
	}) (*sdkmcp.CallToolResult, any, error) {
		stats, err := s.service.ExportTheme(ctx, args.ThemeName)
		return toolResult(err, fmt.Sprintf("exported %d stylesheets in %s", stats.FilesWritten, stats.Duration))
	})

	sdkmcp.AddTool(s.server, &sdkmcp.Tool{
		Name:        "sync_start",
		Description: "Start the live file watcher",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args struct{}) (*sdkmcp.CallToolResult, any, error) {
		err := s.service.StartWatcher()
		return toolResult(err, s.service.Watcher.State().String())
	})

	sdkmcp.AddTool(s.server, &sdkmcp.Tool{
		Name:        "sync_stop",
		Description: "Stop the live file watcher",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args struct{}) (*sdkmcp.CallToolResult, any, error) {
		s.service.StopWatcher()
		return toolResult(nil, s.service.Watcher.State().String())
	})

	sdkmcp.AddTool(s.server, &sdkmcp.Tool{
		Name:        "sync_status",
		Description: "Report watcher state and the last export's outcome",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args struct{}) (*sdkmcp.CallToolResult, any, error) {
		status := s.service.GetStatus()
		msg := fmt.Sprintf(
			"state=%s sync_root=%s forum_url=%s debounce_ms=%d last_export_target=%q last_export_err=%q",
			status.WatcherState, s.cfg.SyncRoot, s.cfg.ForumURL, s.cfg.DebounceMs,
			status.LastExportTarget, status.LastExportErr,
		)
		return toolResult(nil, msg)
	})

	s.addWorkspaceTool("plugin_install", "Install a plugin workspace", func(ctx context.Context, codename string, vis pluginbridge.Visibility) (pluginbridge.Envelope, error) {
		return s.bridge.InstallPlugin(ctx, codename, vis)
	})
	s.addWorkspaceTool("plugin_activate", "Activate a plugin workspace", func(ctx context.Context, codename string, _ pluginbridge.Visibility) (pluginbridge.Envelope, error) {
		return s.bridge.ActivatePlugin(ctx, codename)
	})
	s.addWorkspaceTool("plugin_deactivate", "Deactivate a plugin workspace", func(ctx context.Context, codename string, _ pluginbridge.Visibility) (pluginbridge.Envelope, error) {
		return s.bridge.DeactivatePlugin(ctx, codename)
	})
	s.addWorkspaceTool("plugin_uninstall", "Uninstall a plugin workspace", func(ctx context.Context, codename string, _ pluginbridge.Visibility) (pluginbridge.Envelope, error) {
		return s.bridge.UninstallPlugin(ctx, codename)
	})
	sdkmcp.AddTool(s.server, &sdkmcp.Tool{
		Name:        "theme_install",
		Description: "Install a theme workspace whose templateset property names the given template set (editortheme defaults to \"default\")",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args struct {
		Codename        string `json:"codename" jsonschema:"Workspace codename"`
		Visibility      string `json:"visibility,omitempty" jsonschema:"Optional visibility: public or private"`
		TemplateSetName string `json:"template_set_name" jsonschema:"Template set recorded as the new theme's templateset property"`
	}) (*sdkmcp.CallToolResult, any, error) {
		if s.bridge == nil {
			return toolResult(fmt.Errorf("no plugin bridge configured: %w", forgeerr.BridgeFailure), "")
		}
		env, err := s.bridge.InstallTheme(ctx, args.Codename, pluginbridge.Visibility(args.Visibility), args.TemplateSetName)
		if err != nil {
			return toolResult(err, "")
		}
		return toolResult(nil, fmt.Sprintf("ok (correlation_id=%s)", env.CorrelationID))
	})

	s.addWorkspaceTool("theme_uninstall", "Uninstall a theme workspace", func(ctx context.Context, codename string, _ pluginbridge.Visibility) (pluginbridge.Envelope, error) {
		return s.bridge.UninstallTheme(ctx, codename)
	})

	sdkmcp.AddTool(s.server, &sdkmcp.Tool{
		Name:        "theme_set_property",
		Description: "Set a single property on an existing theme workspace",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args struct {
		Codename string `json:"codename" jsonschema:"Workspace codename"`
		Key      string `json:"key" jsonschema:"Property name"`
		Value    string `json:"value" jsonschema:"Property value"`
	}) (*sdkmcp.CallToolResult, any, error) {
		if s.bridge == nil {
			return toolResult(fmt.Errorf("no plugin bridge configured: %w", forgeerr.BridgeFailure), "")
		}
		env, err := s.bridge.SetThemeProperty(ctx, args.Codename, args.Key, args.Value)
		if err != nil {
			return toolResult(err, "")
		}
		return toolResult(nil, fmt.Sprintf("ok (correlation_id=%s)", env.CorrelationID))
	})

	sdkmcp.AddTool(s.server, &sdkmcp.Tool{
		Name:        "theme_get",
		Description: "Fetch a theme workspace's current properties from the bridge",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args struct {
		Codename string `json:"codename" jsonschema:"Workspace codename"`
	}) (*sdkmcp.CallToolResult, any, error) {
		if s.bridge == nil {
			return toolResult(fmt.Errorf("no plugin bridge configured: %w", forgeerr.BridgeFailure), "")
		}
		env, err := s.bridge.GetTheme(ctx, args.Codename)
		if err != nil {
			return toolResult(err, "")
		}
		return toolResult(nil, string(env.Data))
	})
}

// addWorkspaceTool registers one of the plugin_*/theme_* tools, each of
// which shares the same {codename [, visibility]} -> bridge envelope
// shape.
func (s *Server) addWorkspaceTool(name, description string, call func(ctx context.Context, codename string, visibility pluginbridge.Visibility) (pluginbridge.Envelope, error)) {
	sdkmcp.AddTool(s.server, &sdkmcp.Tool{
		Name:        name,
		Description: description,
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args struct {
		Codename   string `json:"codename" jsonschema:"Workspace codename"`
		Visibility string `json:"visibility,omitempty" jsonschema:"Optional visibility: public or private"`
	}) (*sdkmcp.CallToolResult, any, error) {
		if s.bridge == nil {
			return toolResult(fmt.Errorf("no plugin bridge configured: %w", forgeerr.BridgeFailure), "")
		}
		env, err := call(ctx, args.Codename, pluginbridge.Visibility(args.Visibility))
		if err != nil {
			return toolResult(err, "")
		}
		return toolResult(nil, fmt.Sprintf("ok (correlation_id=%s)", env.CorrelationID))
	})
}

// toolResult renders err/message as a CallToolResult. A nil err is a
// success carrying message as its text; a non-nil err sets IsError and
// carries the error text, prefixed with its stable taxonomy kind in
// brackets when it matches forgeerr's sentinels. No warnings list is
// included.
func toolResult(err error, message string) (*sdkmcp.CallToolResult, any, error) {
	if err != nil {
		kind := forgeerr.Kind(err)
		text := err.Error()
		if kind != "" {
			text = fmt.Sprintf("[%s] %s", kind, text)
		}
		return &sdkmcp.CallToolResult{
			IsError: true,
			Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: text}},
		}, nil, nil
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: message}},
	}, nil, nil
}
