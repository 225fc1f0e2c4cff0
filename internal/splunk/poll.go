// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package splunk

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// pollState classifies one results response.
type pollState int

const (
	pollPending pollState = iota
	pollReady
	pollFailed
)

// pollOutcome is the decoded result of a single poll.
type pollOutcome struct {
	state   pollState
	results ResultSet
	reason  string
}

// Poll requests the job's results until the service produces them. HTTP 204,
// an empty body, and an empty JSON document all mean the job is still
// running. Unless ContentReadyCheck is set, a FATAL entry in the results
// messages marks the job failed and Poll returns a *JobError; any other
// non-empty document is the final result, returned verbatim.
//
// The loop honors the configured poll interval, attempt cap, and timeout.
// All three default to zero: an uncapped tight loop that stops only on
// results, job failure, a request error, or ctx cancellation.
func (c *Client) Poll(ctx context.Context, sid string, sess Session) (ResultSet, error) {
	if c.pollTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.pollTimeout)
		defer cancel()
	}

	resultsURL := withOutputModeURL(c.jobsURL + "/" + sid + "/results")

	for attempt := 1; ; attempt++ {
		out, err := c.pollOnce(ctx, resultsURL, sess)
		if err != nil {
			return nil, err
		}
		switch out.state {
		case pollReady:
			return out.results, nil
		case pollFailed:
			return nil, &JobError{SID: sid, Reason: out.reason}
		}

		if c.pollMaxAttempts > 0 && attempt >= c.pollMaxAttempts {
			return nil, fmt.Errorf("%w after %d attempts", ErrPollBudget, attempt)
		}
		if err := c.waitInterval(ctx); err != nil {
			return nil, err
		}
	}
}

// pollOnce issues one results request and classifies the response.
func (c *Client) pollOnce(ctx context.Context, resultsURL string, sess Session) (pollOutcome, error) {
	data, err := c.send(ctx, "poll", http.MethodGet, resultsURL, "", sess)
	if err != nil {
		return pollOutcome{}, err
	}
	if len(data) == 0 {
		return pollOutcome{state: pollPending}, nil
	}

	rs, err := decodeBody("poll", data)
	if err != nil {
		return pollOutcome{}, err
	}
	if rs.IsEmpty() {
		return pollOutcome{state: pollPending}, nil
	}

	if !c.contentReadyCheck {
		if reason := fatalMessage(rs); reason != "" {
			return pollOutcome{state: pollFailed, reason: reason}, nil
		}
	}
	return pollOutcome{state: pollReady, results: rs}, nil
}

// fatalMessage returns the text of the first FATAL entry in the results
// messages, or "" when there is none.
func fatalMessage(rs ResultSet) string {
	msgs, ok := rs["messages"].([]any)
	if !ok {
		return ""
	}
	for _, m := range msgs {
		entry, ok := m.(map[string]any)
		if !ok {
			continue
		}
		typ, _ := entry["type"].(string)
		if !strings.EqualFold(typ, "FATAL") {
			continue
		}
		if text, _ := entry["text"].(string); text != "" {
			return text
		}
		return "search job failed"
	}
	return ""
}

// waitInterval pauses between polls. A zero interval still yields to ctx
// cancellation so a stuck job cannot spin past its deadline.
func (c *Client) waitInterval(ctx context.Context) error {
	if c.pollInterval <= 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.pollInterval):
		return nil
	}
}
