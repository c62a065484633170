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

// Package router implements the pure bijection between logical template/
// stylesheet keys and their paths under the sync root, plus the group
// resolver that decides which directory a template falls under.
package router

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cortalabs/forge-sync/internal/forgeerr"
)

const (
	templateSetsDir = "template_sets"
	stylesDir       = "styles"

	// UngroupedDir is the reserved group name used when no configured
	// group is a prefix of a template's title.
	UngroupedDir = "ungrouped"
)

// TemplateKey identifies a single template row by its disk coordinates.
type TemplateKey struct {
	SetName string
	Group   string
	Title   string
}

// StylesheetKey identifies a single stylesheet row by its disk coordinates.
type StylesheetKey struct {
	ThemeName       string
	StylesheetName string
}

// Router is a pure, total bijection between logical keys and paths rooted
// at SyncRoot. It holds no state beyond the root and never touches disk.
type Router struct {
	SyncRoot string
}

// New returns a Router rooted at syncRoot, cleaned with filepath.Clean;
// callers are expected to pass an absolute path.
func New(syncRoot string) *Router {
	return &Router{SyncRoot: filepath.Clean(syncRoot)}
}

// TemplatePath builds the disk path for (setName, group, title). group is
// used verbatim — callers pass the group already resolved by GroupResolver,
// which returns the reserved UngroupedDir name itself rather than leaving
// this function guess at a default, so build/parse stay an exact bijection.
func (r *Router) TemplatePath(setName, group, title string) string {
	return filepath.Join(r.SyncRoot, templateSetsDir, setName, group, title+".html")
}

// StylesheetPath builds the disk path for (themeName, stylesheetName).
// stylesheetName is used verbatim. ParsePath returns the name exactly as
// given here when it ends in ".css"; a path whose file name has any other
// suffix is reported as NotRoutable, so only ".css" names round-trip.
func (r *Router) StylesheetPath(themeName, stylesheetName string) string {
	return filepath.Join(r.SyncRoot, stylesDir, themeName, stylesheetName)
}

// ParsePath maps a disk path back to a logical key. It returns exactly one
// of (*TemplateKey, nil, nil), (nil, *StylesheetKey, nil), or
// (nil, nil, err) with err wrapping forgeerr.NotRoutable.
func (r *Router) ParsePath(path string) (*TemplateKey, *StylesheetKey, error) {
	clean := filepath.Clean(path)
	rel, err := filepath.Rel(r.SyncRoot, clean)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return nil, nil, fmt.Errorf("%q is outside sync root %q: %w", path, r.SyncRoot, forgeerr.NotRoutable)
	}

	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 2 {
		return nil, nil, fmt.Errorf("%q has too few path segments: %w", path, forgeerr.NotRoutable)
	}

	switch parts[0] {
	case templateSetsDir:
		if len(parts) != 4 {
			return nil, nil, fmt.Errorf("%q is not a routable template path: %w", path, forgeerr.NotRoutable)
		}
		setName, group, file := parts[1], parts[2], parts[3]
		if filepath.Ext(file) != ".html" {
			return nil, nil, fmt.Errorf("%q does not have a .html suffix: %w", path, forgeerr.NotRoutable)
		}
		title := strings.TrimSuffix(file, filepath.Ext(file))
		return &TemplateKey{SetName: setName, Group: group, Title: title}, nil, nil

	case stylesDir:
		if len(parts) != 3 {
			return nil, nil, fmt.Errorf("%q is not a routable stylesheet path: %w", path, forgeerr.NotRoutable)
		}
		themeName, name := parts[1], parts[2]
		if filepath.Ext(name) != ".css" {
			return nil, nil, fmt.Errorf("%q does not have a .css suffix: %w", path, forgeerr.NotRoutable)
		}
		return nil, &StylesheetKey{ThemeName: themeName, StylesheetName: name}, nil

	default:
		return nil, nil, fmt.Errorf("%q is not under template_sets/ or styles/: %w", path, forgeerr.NotRoutable)
	}
}
