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
	"fmt"

	"github.com/cortalabs/forge-sync/internal/forgeerr"
	"github.com/cortalabs/forge-sync/internal/forumdb"
)

// fakeTemplateStore is an in-memory TemplateStore for exporter/importer
// tests, keyed the same way the real schema is: (sid, title) unique.
type fakeTemplateStore struct {
	sets      map[string]int // name -> sid
	templates map[int]map[string]forumdb.Template
}

func newFakeTemplateStore() *fakeTemplateStore {
	return &fakeTemplateStore{
		sets:      map[string]int{},
		templates: map[int]map[string]forumdb.Template{},
	}
}

func (f *fakeTemplateStore) addSet(name string, sid int) {
	f.sets[name] = sid
	if f.templates[sid] == nil {
		f.templates[sid] = map[string]forumdb.Template{}
	}
}

func (f *fakeTemplateStore) addTemplate(sid int, title, body string, version int) {
	if f.templates[sid] == nil {
		f.templates[sid] = map[string]forumdb.Template{}
	}
	f.templates[sid][title] = forumdb.Template{SID: sid, Title: title, Body: body, Version: version}
}

func (f *fakeTemplateStore) GetTemplateSetByName(_ context.Context, name string) (*forumdb.TemplateSet, error) {
	sid, ok := f.sets[name]
	if !ok {
		return nil, fmt.Errorf("set %q: %w", name, forgeerr.NotFound)
	}
	return &forumdb.TemplateSet{SID: sid, Name: name}, nil
}

func (f *fakeTemplateStore) ListTemplates(_ context.Context, sid int) ([]forumdb.Template, error) {
	var out []forumdb.Template
	for _, t := range f.templates[sid] {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTemplateStore) ImportTemplate(_ context.Context, sid int, title, body string) error {
	master, hasMaster := f.templates[forumdb.SetIDMaster][title]
	custom, hasCustom := f.templates[sid][title]

	var masterPtr, customPtr *forumdb.Template
	if hasMaster {
		masterPtr = &master
	}
	if hasCustom {
		customPtr = &custom
	}

	switch {
	case customPtr != nil:
		custom.Body = body
		f.templates[sid][title] = custom
	case masterPtr != nil:
		f.addTemplate(sid, title, body, master.Version)
	default:
		f.addTemplate(sid, title, body, forumdb.DefaultTemplateVersion)
	}
	return nil
}

// fakeStylesheetStore is an in-memory StylesheetStore.
type fakeStylesheetStore struct {
	themes      map[string]int // name -> tid
	stylesheets map[int]map[string]forumdb.Stylesheet
}

func newFakeStylesheetStore() *fakeStylesheetStore {
	return &fakeStylesheetStore{
		themes:      map[string]int{},
		stylesheets: map[int]map[string]forumdb.Stylesheet{},
	}
}

func (f *fakeStylesheetStore) addTheme(name string, tid int) {
	f.themes[name] = tid
	if f.stylesheets[tid] == nil {
		f.stylesheets[tid] = map[string]forumdb.Stylesheet{}
	}
}

func (f *fakeStylesheetStore) addStylesheet(tid int, name, css string) {
	if f.stylesheets[tid] == nil {
		f.stylesheets[tid] = map[string]forumdb.Stylesheet{}
	}
	f.stylesheets[tid][name] = forumdb.Stylesheet{TID: tid, Name: name, CSS: css, CacheFile: name}
}

func (f *fakeStylesheetStore) GetThemeByName(_ context.Context, name string) (*forumdb.Theme, error) {
	tid, ok := f.themes[name]
	if !ok {
		return nil, fmt.Errorf("theme %q: %w", name, forgeerr.NotFound)
	}
	return &forumdb.Theme{TID: tid, Name: name}, nil
}

func (f *fakeStylesheetStore) ListStylesheets(_ context.Context, tid int) ([]forumdb.Stylesheet, error) {
	var out []forumdb.Stylesheet
	for _, s := range f.stylesheets[tid] {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStylesheetStore) ImportStylesheet(_ context.Context, tid int, name, css string) error {
	f.addStylesheet(tid, name, css)
	return nil
}

var (
	_ TemplateStore   = (*fakeTemplateStore)(nil)
	_ StylesheetStore = (*fakeStylesheetStore)(nil)
)
