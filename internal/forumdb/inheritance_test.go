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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecideTemplateAction(t *testing.T) {
	master := &Template{TID: 1, SID: SetIDMaster, Title: "welcome", Version: 42}
	custom := &Template{TID: 2, SID: 3, Title: "welcome", Version: 42}

	cases := []struct {
		name           string
		master, custom *Template
		want           TemplateAction
	}{
		{"master and custom exist", master, custom, ActionUpdateCustom},
		{"master exists, no custom", master, nil, ActionInsertWithMasterVersion},
		{"no master, custom exists", nil, custom, ActionUpdateCustom},
		{"neither exists", nil, nil, ActionInsertWithDefaultVersion},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, decideTemplateAction(c.master, c.custom))
		})
	}
}
