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

// TemplateAction is the decision ImportTemplate makes given the presence
// or absence of a master and a custom row.
type TemplateAction int

const (
	// ActionUpdateCustom updates the existing custom row's body only.
	ActionUpdateCustom TemplateAction = iota
	// ActionInsertWithMasterVersion inserts a custom row inheriting the
	// master's version.
	ActionInsertWithMasterVersion
	// ActionInsertWithDefaultVersion inserts a custom row with
	// DefaultTemplateVersion.
	ActionInsertWithDefaultVersion
)

// decideTemplateAction is the pure core of the import inheritance table:
//
//	master exists | custom exists | action
//	yes           | yes           | UPDATE custom row's body only
//	yes           | no            | INSERT custom row with master's version
//	no            | yes           | UPDATE custom row's body only
//	no            | no            | INSERT custom row with default version
func decideTemplateAction(master, custom *Template) TemplateAction {
	switch {
	case custom != nil:
		return ActionUpdateCustom
	case master != nil:
		return ActionInsertWithMasterVersion
	default:
		return ActionInsertWithDefaultVersion
	}
}
