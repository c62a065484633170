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

	"github.com/cortalabs/forge-sync/internal/router"
)

// TemplateImporter ingests an edited template file back into the forum
// schema, honouring the master/custom inheritance model. It never
// retries; the caller (the watcher) decides whether to back off.
type TemplateImporter struct {
	DB TemplateStore
}

// Import applies body as the new template content for key's (set, title).
// key.Group is not used: group membership is not stored, since it is
// re-derived from the title on every export.
func (im *TemplateImporter) Import(ctx context.Context, key router.TemplateKey, body string) error {
	set, err := im.DB.GetTemplateSetByName(ctx, key.SetName)
	if err != nil {
		return fmt.Errorf("importing template %q/%q: %w", key.SetName, key.Title, err)
	}

	if err := im.DB.ImportTemplate(ctx, set.SID, key.Title, body); err != nil {
		return fmt.Errorf("importing template %q/%q: %w", key.SetName, key.Title, err)
	}
	return nil
}
