package types

import "time"

// HTTPConfig holds shared HTTP settings used by commands that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "splunk-search/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ServiceConfig holds the coordinates and behavior of one Splunk deployment.
// Credentials are deliberately not part of this struct: they come from flags,
// the secrets directory, or an interactive prompt, and are never written to
// disk alongside the rest of the configuration.
type ServiceConfig struct {
	HTTPConfig `yaml:",inline"`

	// Host is the Splunk management hostname or IP address. Required.
	Host string `json:"host" yaml:"host"`

	// Port is the management port (default 8089).
	Port int `json:"port" yaml:"port"`

	// WebPort is the Splunk Web port used to build job links (default 8000).
	WebPort int `json:"web_port" yaml:"web_port"`

	// AllowInsecureTLS disables certificate verification for this client
	// only. Splunk ships with self-signed certificates, so lab and test
	// deployments commonly need this.
	AllowInsecureTLS bool `json:"allow_insecure_tls" yaml:"allow_insecure_tls"`

	// PollInterval is the pause between result polls. Zero polls in a
	// tight loop.
	PollInterval time.Duration `json:"poll_interval" yaml:"poll_interval"`

	// PollMaxAttempts caps the number of polls per job. Zero means unlimited.
	PollMaxAttempts int `json:"poll_max_attempts" yaml:"poll_max_attempts"`

	// PollTimeout bounds the total time spent polling one job. Zero means
	// no bound.
	PollTimeout time.Duration `json:"poll_timeout" yaml:"poll_timeout"`

	// ContentReadyCheck treats any non-empty poll body as a finished job
	// instead of inspecting job messages. Compatibility switch for servers
	// whose results endpoint carries no message metadata.
	ContentReadyCheck bool `json:"content_ready_check" yaml:"content_ready_check"`
}

// HistoryConfig holds settings for the local search history store.
type HistoryConfig struct {
	// Dir is the directory holding the history database (default ".splunk-search").
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of history rows returned (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Config groups all tool configuration.
type Config struct {
	Service ServiceConfig `json:"service" yaml:"service"`
	History HistoryConfig `json:"history" yaml:"history"`
}
