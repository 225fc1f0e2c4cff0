// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package splunk

import (
	"errors"
	"fmt"
)

// StatusError reports a non-2xx HTTP response from the service. Op names the
// request that failed: login, submit, or poll.
type StatusError struct {
	Op         string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("splunk %s returned HTTP %s", e.Op, e.Status)
}

// DecodeError reports a response body that was present but not valid JSON.
// It is distinct from an empty response, which is never a decode failure.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("parsing splunk %s response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// JobError reports a search job the service marked as failed.
type JobError struct {
	SID    string
	Reason string
}

func (e *JobError) Error() string {
	return fmt.Sprintf("splunk job %s failed: %s", e.SID, e.Reason)
}

var (
	// ErrNoSession reports a login response that carried no session key.
	ErrNoSession = errors.New("splunk: no session key in login response")

	// ErrNoJob reports a submission response that carried no job id.
	ErrNoJob = errors.New("splunk: no job id in submission response")

	// ErrPollBudget reports that the configured poll attempt cap was reached
	// before the job produced results.
	ErrPollBudget = errors.New("splunk: poll attempts exhausted")
)
