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

package syncfiles

import (
	"context"

	"github.com/cortalabs/forge-sync/internal/forumdb"
)

// TemplateStore is the slice of forumdb.Gateway that TemplateExporter and
// TemplateImporter need. Declaring it here, narrower than the gateway
// itself, lets tests substitute an in-memory fake.
type TemplateStore interface {
	GetTemplateSetByName(ctx context.Context, name string) (*forumdb.TemplateSet, error)
	ListTemplates(ctx context.Context, sid int) ([]forumdb.Template, error)
	ImportTemplate(ctx context.Context, sid int, title, body string) error
}

// StylesheetStore is the slice of forumdb.Gateway that StylesheetExporter
// and StylesheetImporter need.
type StylesheetStore interface {
	GetThemeByName(ctx context.Context, name string) (*forumdb.Theme, error)
	ListStylesheets(ctx context.Context, tid int) ([]forumdb.Stylesheet, error)
	ImportStylesheet(ctx context.Context, tid int, name, css string) error
}

var (
	_ TemplateStore   = (*forumdb.Gateway)(nil)
	_ StylesheetStore = (*forumdb.Gateway)(nil)
)
