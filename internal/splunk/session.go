// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package splunk

import (
	"context"
	"net/http"
)

// Session is the full Authorization header value of an authenticated
// session ("Splunk <key>"). The zero value means no session.
type Session string

// Authenticate exchanges the client's credentials for a session. A response
// that succeeds at the HTTP level but carries no sessionKey field (or no
// body at all) yields ErrNoSession.
func (c *Client) Authenticate(ctx context.Context) (Session, error) {
	body := withOutputMode("username=" + c.creds.Username + "&password=" + c.creds.Password)

	data, err := c.send(ctx, "login", http.MethodPost, c.loginURL, body, "")
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrNoSession
	}

	rs, err := decodeBody("login", data)
	if err != nil {
		return "", err
	}
	key := stringField(rs, "sessionKey")
	if key == "" {
		return "", ErrNoSession
	}
	return Session(authScheme + " " + key), nil
}
