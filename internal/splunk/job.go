// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package splunk

import (
	"context"
	"net/http"
	"strings"
)

// Normalize returns the query as submitted to the service: trimmed, and
// prefixed with the search keyword when not already present. Applying it
// twice returns the same string; a blank query normalizes to "search".
func Normalize(query string) string {
	q := strings.TrimSpace(query)
	if strings.HasPrefix(q, "search") {
		return q
	}
	return strings.TrimSpace("search " + q)
}

// Submit creates an asynchronous search job and returns its id. A zero
// session authenticates first; submission never goes out without one. A
// response without a sid field (or without a body) yields ErrNoJob.
func (c *Client) Submit(ctx context.Context, query string, sess Session) (string, error) {
	if sess == "" {
		var err error
		sess, err = c.Authenticate(ctx)
		if err != nil {
			return "", err
		}
	}

	// Assembled by hand: search strings must reach the service byte for
	// byte, unsorted and unescaped.
	body := withOutputMode("search=" + Normalize(query) + "&required_field_list=*")

	data, err := c.send(ctx, "submit", http.MethodPost, c.jobsURL, body, sess)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrNoJob
	}

	rs, err := decodeBody("submit", data)
	if err != nil {
		return "", err
	}
	sid := stringField(rs, "sid")
	if sid == "" {
		return "", ErrNoJob
	}
	return sid, nil
}
