// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package splunk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/splunk-search/pkg/types"
)

// lifecycleServer counts the requests of one full query run and captures
// the submit body.
type lifecycleServer struct {
	logins, submits, polls int
	submitBody             string
	submitAuth             string
	pollAuth               string

	loginHandler func(w http.ResponseWriter)
	pollHandler  func(w http.ResponseWriter, poll int)
}

func (s *lifecycleServer) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/servicesNS/admin/search/auth/login":
			s.logins++
			if s.loginHandler != nil {
				s.loginHandler(w)
				return
			}
			fmt.Fprint(w, `{"sessionKey":"SK1"}`)
		case r.URL.Path == "/servicesNS/admin/search/search/jobs":
			s.submits++
			data, _ := io.ReadAll(r.Body)
			s.submitBody = string(data)
			s.submitAuth = r.Header.Get("Authorization")
			fmt.Fprint(w, `{"sid":"169.55"}`)
		case strings.HasSuffix(r.URL.Path, "/results"):
			s.polls++
			s.pollAuth = r.Header.Get("Authorization")
			if s.pollHandler != nil {
				s.pollHandler(w, s.polls)
				return
			}
			fmt.Fprint(w, resultsDoc)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}
}

// --- the full lifecycle ---

func TestQueryPendingThenReady(t *testing.T) {
	srv := &lifecycleServer{
		pollHandler: func(w http.ResponseWriter, poll int) {
			if poll == 1 {
				return // empty body: still running
			}
			fmt.Fprint(w, resultsDoc)
		},
	}
	ts := httptest.NewTLSServer(srv.handler(t))
	defer ts.Close()

	c := newTestClient(t, ts, types.ServiceConfig{}, Credentials{})
	rs, err := c.Query(context.Background(), "x")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}

	if srv.logins != 1 {
		t.Errorf("logins = %d, want exactly 1 per Query", srv.logins)
	}
	if srv.submits != 1 {
		t.Errorf("submits = %d, want 1", srv.submits)
	}
	if srv.polls != 2 {
		t.Errorf("polls = %d, want exactly 2", srv.polls)
	}

	rows := rs.Rows()
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want the second poll's results", len(rows))
	}
	row, _ := rows[0].(map[string]any)
	if row["count"] != "42" {
		t.Errorf("count = %v, want the decoded second response", row["count"])
	}
}

func TestQueryThreadsOneSession(t *testing.T) {
	srv := &lifecycleServer{}
	ts := httptest.NewTLSServer(srv.handler(t))
	defer ts.Close()

	c := newTestClient(t, ts, types.ServiceConfig{}, Credentials{})
	if _, err := c.Query(context.Background(), "index=main"); err != nil {
		t.Fatalf("Query: %v", err)
	}

	if srv.logins != 1 {
		t.Fatalf("logins = %d, want 1 (submit and poll reuse the session)", srv.logins)
	}
	if srv.submitAuth != "Splunk SK1" {
		t.Errorf("submit Authorization = %q, want %q", srv.submitAuth, "Splunk SK1")
	}
	if srv.pollAuth != "Splunk SK1" {
		t.Errorf("poll Authorization = %q, want %q", srv.pollAuth, "Splunk SK1")
	}
}

func TestQuerySubmitBody(t *testing.T) {
	srv := &lifecycleServer{}
	ts := httptest.NewTLSServer(srv.handler(t))
	defer ts.Close()

	c := newTestClient(t, ts, types.ServiceConfig{}, Credentials{})
	if _, err := c.Query(context.Background(), "sourcetype=things | dedup id"); err != nil {
		t.Fatalf("Query: %v", err)
	}

	want := "search=search sourcetype=things | dedup id&required_field_list=*&output_mode=json"
	if srv.submitBody != want {
		t.Errorf("submit body = %q, want %q", srv.submitBody, want)
	}
}

// --- failure and empty paths ---

func TestQueryLoginHTTPError(t *testing.T) {
	srv := &lifecycleServer{
		loginHandler: func(w http.ResponseWriter) { w.WriteHeader(http.StatusServiceUnavailable) },
	}
	ts := httptest.NewTLSServer(srv.handler(t))
	defer ts.Close()

	c := newTestClient(t, ts, types.ServiceConfig{}, Credentials{})
	_, err := c.Query(context.Background(), "x")

	var se *StatusError
	if !errors.As(err, &se) || se.Op != "login" {
		t.Fatalf("error = %v, want *StatusError from login", err)
	}
	if srv.submits != 0 || srv.polls != 0 {
		t.Errorf("submits = %d, polls = %d, want none after a login failure", srv.submits, srv.polls)
	}
}

func TestQueryNoSessionReturnsEmpty(t *testing.T) {
	srv := &lifecycleServer{
		loginHandler: func(w http.ResponseWriter) { fmt.Fprint(w, `{"code":7}`) },
	}
	ts := httptest.NewTLSServer(srv.handler(t))
	defer ts.Close()

	c := newTestClient(t, ts, types.ServiceConfig{}, Credentials{})
	rs, err := c.Query(context.Background(), "x")
	if err != nil {
		t.Fatalf("a missing session is an empty result, not an error; got %v", err)
	}
	if rs != nil {
		t.Errorf("result = %v, want nil", rs)
	}
	if srv.submits != 0 || srv.polls != 0 {
		t.Errorf("submits = %d, polls = %d, want none without a session", srv.submits, srv.polls)
	}
}

func TestQueryNoJobReturnsEmpty(t *testing.T) {
	var polls int
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/servicesNS/admin/search/auth/login":
			fmt.Fprint(w, `{"sessionKey":"SK1"}`)
		case r.URL.Path == "/servicesNS/admin/search/search/jobs":
			fmt.Fprint(w, `{}`)
		default:
			polls++
		}
	}))
	defer ts.Close()

	c := newTestClient(t, ts, types.ServiceConfig{}, Credentials{})
	rs, err := c.Query(context.Background(), "x")
	if err != nil {
		t.Fatalf("a missing job id is an empty result, not an error; got %v", err)
	}
	if rs != nil {
		t.Errorf("result = %v, want nil", rs)
	}
	if polls != 0 {
		t.Errorf("polls = %d, want none without a job id", polls)
	}
}

func TestQueryPollErrorPropagates(t *testing.T) {
	srv := &lifecycleServer{
		pollHandler: func(w http.ResponseWriter, _ int) { w.WriteHeader(http.StatusInternalServerError) },
	}
	ts := httptest.NewTLSServer(srv.handler(t))
	defer ts.Close()

	c := newTestClient(t, ts, types.ServiceConfig{}, Credentials{})
	_, err := c.Query(context.Background(), "x")

	var se *StatusError
	if !errors.As(err, &se) || se.Op != "poll" {
		t.Fatalf("error = %v, want *StatusError from poll", err)
	}
	if srv.polls != 1 {
		t.Errorf("polls = %d, want 1 (request errors stop the loop)", srv.polls)
	}
}
