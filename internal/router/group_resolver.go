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

package router

import "sort"

// GroupResolver assigns a template title to a group by longest-prefix
// match, falling back to UngroupedDir. It is pure and idempotent.
type GroupResolver struct {
	groups []string // sorted, longest first, ties broken lexicographically
}

// NewGroupResolver builds a resolver from the known group prefixes (e.g.
// "forumdisplay_", "showthread_"). Order of the input is irrelevant.
func NewGroupResolver(groups []string) *GroupResolver {
	sorted := make([]string, len(groups))
	copy(sorted, groups)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j]) // longest first
		}
		return sorted[i] < sorted[j] // lexicographic tiebreak
	})
	return &GroupResolver{groups: sorted}
}

// Resolve returns the group assigned to title: the longest configured
// prefix that matches, or UngroupedDir if none does.
func (g *GroupResolver) Resolve(title string) string {
	for _, prefix := range g.groups {
		if len(title) >= len(prefix) && title[:len(prefix)] == prefix {
			return prefix
		}
	}
	return UngroupedDir
}
