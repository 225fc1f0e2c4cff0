// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package splunk implements a client for the Splunk search REST API:
// session authentication, asynchronous job submission, and result polling,
// always over HTTPS.
package splunk

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pdiddy/splunk-search/internal/httputil"
	"github.com/pdiddy/splunk-search/pkg/types"
)

const (
	// DefaultPort is the Splunk management port.
	DefaultPort = 8089

	loginPath = "/servicesNS/admin/search/auth/login"
	jobsPath  = "/servicesNS/admin/search/search/jobs"

	// authScheme prefixes session keys in the Authorization header.
	authScheme = "Splunk"
)

// Credentials identify the account used to authenticate. The client holds
// them for login requests only; nothing in this package writes them to disk.
type Credentials struct {
	Username string
	Password string
}

// Client talks to one Splunk deployment. All fields are fixed at
// construction, so a Client is safe for concurrent use.
type Client struct {
	creds      Credentials
	loginURL   string
	jobsURL    string
	httpClient *http.Client
	userAgent  string

	pollInterval      time.Duration
	pollMaxAttempts   int
	pollTimeout       time.Duration
	contentReadyCheck bool
}

// Option adjusts a Client at construction time.
type Option func(*Client)

// WithHTTPClient substitutes the HTTP client used for all requests. The
// default is built from the service configuration by httputil.NewClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient builds a client for the deployment described by cfg. The service
// URLs are derived here, once; construction performs no I/O.
func NewClient(creds Credentials, cfg types.ServiceConfig, opts ...Option) (*Client, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("host is required")
	}
	if creds.Username == "" {
		return nil, fmt.Errorf("username is required")
	}

	port := cfg.Port
	if port == 0 {
		port = DefaultPort
	}
	base := fmt.Sprintf("https://%s:%d", cfg.Host, port)

	c := &Client{
		creds:             creds,
		loginURL:          base + loginPath,
		jobsURL:           base + jobsPath,
		httpClient:        httputil.NewClient(cfg.Timeout, cfg.AllowInsecureTLS),
		userAgent:         cfg.UserAgent,
		pollInterval:      cfg.PollInterval,
		pollMaxAttempts:   cfg.PollMaxAttempts,
		pollTimeout:       cfg.PollTimeout,
		contentReadyCheck: cfg.ContentReadyCheck,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}
