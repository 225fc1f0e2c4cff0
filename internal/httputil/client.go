// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP client construction shared across commands.
package httputil

import (
	"crypto/tls"
	"net/http"
	"time"
)

// NewClient builds an *http.Client with an explicit transport. When insecure
// is true, certificate verification is skipped on this client's transport
// only, never process-wide. Splunk deployments commonly run on self-signed
// certificates, so lab and test instances need the insecure toggle.
func NewClient(timeout time.Duration, insecure bool) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: insecure,
		},
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}
