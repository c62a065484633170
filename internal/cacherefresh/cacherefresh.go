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

// Package cacherefresh issues the out-of-band HTTP call that tells the
// forum to recompile a stylesheet's cached CSS. Every failure mode
// (timeout, transport error, non-2xx, success=false, malformed JSON) is
// non-fatal: the DB write that triggered the refresh already succeeded,
// and a stale cache self-heals on the next change.
package cacherefresh

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cortalabs/forge-sync/internal/logging"
)

// Timeout is the fixed per-request deadline for a cache refresh call.
const Timeout = 10 * time.Second

// Client issues cache-invalidation requests to a forum instance.
type Client struct {
	ForumURL string
	Token    string
	HTTP     *http.Client
	Log      logging.Logger
}

// New returns a Client with the 10s timeout configured, ready to use.
func New(forumURL, token string, log logging.Logger) *Client {
	return &Client{
		ForumURL: strings.TrimRight(forumURL, "/"),
		Token:    token,
		HTTP:     &http.Client{Timeout: Timeout},
		Log:      log,
	}
}

type cacheResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Refresh POSTs to {forum_url}/cachecss.php and returns true only on HTTP
// 2xx with a JSON body carrying success=true. It never returns an error to
// a degree that would fail the caller's import: all failure paths are
// logged and returned as (false, err) so the caller can attach a
// CacheStale warning without treating the import itself as failed.
func (c *Client) Refresh(ctx context.Context, themeName, stylesheetName string) (bool, error) {
	form := url.Values{
		"theme_name": {themeName},
		"stylesheet": {stylesheetName},
	}
	if c.Token != "" {
		form.Set("token", c.Token)
	}

	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ForumURL+"/cachecss.php", strings.NewReader(form.Encode()))
	if err != nil {
		c.logf("building cache refresh request for %s/%s: %v", themeName, stylesheetName, err)
		return false, fmt.Errorf("building cache refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.logf("cache refresh request failed for %s/%s: %v", themeName, stylesheetName, err)
		return false, fmt.Errorf("cache refresh request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logf("cache refresh for %s/%s returned HTTP %d", themeName, stylesheetName, resp.StatusCode)
		return false, fmt.Errorf("cache refresh returned HTTP %d", resp.StatusCode)
	}

	var body cacheResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logf("cache refresh for %s/%s returned unparseable body: %v", themeName, stylesheetName, err)
		return false, fmt.Errorf("decoding cache refresh response: %w", err)
	}

	if !body.Success {
		c.logf("cache refresh for %s/%s reported success=false: %s", themeName, stylesheetName, body.Message)
		return false, fmt.Errorf("cache refresh reported failure: %s", body.Message)
	}

	return true, nil
}

func (c *Client) logf(msg string, args ...any) {
	if c.Log != nil {
		c.Log.Warning(msg, args...)
	}
}
