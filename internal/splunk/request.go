// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package splunk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// outputModeParam asks the service for JSON responses. Every request carries
// it exactly once.
const outputModeParam = "output_mode=json"

// withOutputMode appends the JSON output directive to a form body.
func withOutputMode(body string) string {
	return body + "&" + outputModeParam
}

// withOutputModeURL appends the JSON output directive as a query parameter,
// joining with "&" when the URL already has a query string and "?" otherwise.
func withOutputModeURL(rawURL string) string {
	if strings.Contains(rawURL, "?") {
		return rawURL + "&" + outputModeParam
	}
	return rawURL + "?" + outputModeParam
}

// send issues one request and returns the raw response body. Form bodies are
// sent as application/x-www-form-urlencoded; a non-zero session adds the
// Authorization header. Non-2xx responses become a *StatusError carrying the
// status line.
func (c *Client) send(ctx context.Context, op, method, rawURL, body string, sess Session) ([]byte, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("creating %s request: %w", op, err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if sess != "" {
		req.Header.Set("Authorization", string(sess))
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Op: op, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", op, err)
	}
	return data, nil
}
