// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package splunk

import (
	"context"
	"errors"
)

// Query runs the full search lifecycle: authenticate once, submit the job,
// and poll for its results. The session from the single login is reused for
// both follow-on requests.
//
// A login or submission that succeeds at the HTTP level but yields no usable
// session or job id is not an error here: Query returns an empty result and
// issues no further requests. Transport, decode, and job failures propagate.
func (c *Client) Query(ctx context.Context, query string) (ResultSet, error) {
	sess, err := c.Authenticate(ctx)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return nil, nil
		}
		return nil, err
	}

	sid, err := c.Submit(ctx, query, sess)
	if err != nil {
		if errors.Is(err, ErrNoJob) {
			return nil, nil
		}
		return nil, err
	}

	return c.Poll(ctx, sid, sess)
}
