// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package splunk

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/pdiddy/splunk-search/pkg/types"
)

// --- test helpers ---

// newTestClient points a client at ts, which must be a TLS server; the
// insecure toggle accepts its self-signed certificate. Zero creds default
// to admin/changeme.
func newTestClient(t *testing.T, ts *httptest.Server, cfg types.ServiceConfig, creds Credentials) *Client {
	t.Helper()

	u, err := url.Parse(ts.URL)
	if err != nil {
		t.Fatal(err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatal(err)
	}

	cfg.Host = u.Hostname()
	cfg.Port = port
	cfg.AllowInsecureTLS = true

	if creds == (Credentials{}) {
		creds = Credentials{Username: "admin", Password: "changeme"}
	}

	c, err := NewClient(creds, cfg)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// --- construction ---

func TestNewClientDerivesURLs(t *testing.T) {
	tests := []struct {
		name      string
		cfg       types.ServiceConfig
		wantLogin string
		wantJobs  string
	}{
		{
			"default port",
			types.ServiceConfig{Host: "splunk.example.com"},
			"https://splunk.example.com:8089/servicesNS/admin/search/auth/login",
			"https://splunk.example.com:8089/servicesNS/admin/search/search/jobs",
		},
		{
			"explicit port",
			types.ServiceConfig{Host: "10.0.0.5", Port: 9089},
			"https://10.0.0.5:9089/servicesNS/admin/search/auth/login",
			"https://10.0.0.5:9089/servicesNS/admin/search/search/jobs",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(Credentials{Username: "admin", Password: "pw"}, tt.cfg)
			if err != nil {
				t.Fatalf("NewClient: %v", err)
			}
			if c.loginURL != tt.wantLogin {
				t.Errorf("loginURL = %q, want %q", c.loginURL, tt.wantLogin)
			}
			if c.jobsURL != tt.wantJobs {
				t.Errorf("jobsURL = %q, want %q", c.jobsURL, tt.wantJobs)
			}
		})
	}
}

func TestNewClientValidation(t *testing.T) {
	tests := []struct {
		name    string
		creds   Credentials
		cfg     types.ServiceConfig
		wantErr string
	}{
		{"missing host", Credentials{Username: "admin"}, types.ServiceConfig{}, "host"},
		{"missing username", Credentials{}, types.ServiceConfig{Host: "splunk.local"}, "username"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.creds, tt.cfg)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestWithHTTPClientOverridesDefault(t *testing.T) {
	hc := &http.Client{}
	c, err := NewClient(
		Credentials{Username: "admin", Password: "pw"},
		types.ServiceConfig{Host: "splunk.local"},
		WithHTTPClient(hc),
	)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.httpClient != hc {
		t.Error("WithHTTPClient should replace the constructed client")
	}
}
