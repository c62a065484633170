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

package forumdb

// TemplateSet is a named collection of templates. SetIDMaster and
// SetIDGlobal are reserved sentinel ids outside the user-set namespace.
type TemplateSet struct {
	SID  int
	Name string
}

// Template is one row of the templates table. For any (SID, Title) there is
// at most one row; a row with SID == SetIDMaster is the master of Title.
type Template struct {
	TID     int
	SID     int
	Title   string
	Body    string
	Version int
}

// Theme is a container for stylesheets with a parent pointer and a
// properties map required by the forum's admin UI.
type Theme struct {
	TID           int
	Name          string
	PID           int
	Def           bool
	Properties    map[string]string
	Stylesheets   string
	AllowedGroups string
}

// Stylesheet is one row of the themestylesheets table, unique per
// (TID, Name).
type Stylesheet struct {
	SID          int
	TID          int
	Name         string
	CSS          string
	CacheFile    string
	LastModified int64 // unix seconds
}
