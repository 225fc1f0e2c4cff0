// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/splunk-search/internal/splunk"
	"github.com/pdiddy/splunk-search/pkg/types"
)

const (
	defaultTimeout    = 60 * time.Second
	defaultUserAgent  = "splunk-search/0.1"
	defaultWebPort    = 8000
	defaultHistoryDir = ".splunk-search"
)

// serviceConfig merges the service settings for one deployment. Flags win
// over the config file and environment, which win over defaults.
func serviceConfig(cmd *cobra.Command) (types.ServiceConfig, error) {
	cfg := types.ServiceConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   defaultTimeout,
			UserAgent: defaultUserAgent,
		},
		Host:    viper.GetString("service.host"),
		Port:    viper.GetInt("service.port"),
		WebPort: viper.GetInt("service.web_port"),

		AllowInsecureTLS:  viper.GetBool("service.allow_insecure_tls"),
		PollInterval:      viper.GetDuration("service.poll_interval"),
		PollMaxAttempts:   viper.GetInt("service.poll_max_attempts"),
		PollTimeout:       viper.GetDuration("service.poll_timeout"),
		ContentReadyCheck: viper.GetBool("service.content_ready_check"),
	}
	if t := viper.GetDuration("service.timeout"); t > 0 {
		cfg.Timeout = t
	}
	if cfg.WebPort == 0 {
		cfg.WebPort = defaultWebPort
	}

	if cmd.Flags().Changed("host") {
		cfg.Host, _ = cmd.Flags().GetString("host")
	}
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("insecure") {
		cfg.AllowInsecureTLS, _ = cmd.Flags().GetBool("insecure")
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout, _ = cmd.Flags().GetDuration("timeout")
	}
	if cmd.Flags().Changed("interval") {
		cfg.PollInterval, _ = cmd.Flags().GetDuration("interval")
	}
	if cmd.Flags().Changed("max-attempts") {
		cfg.PollMaxAttempts, _ = cmd.Flags().GetInt("max-attempts")
	}
	if cmd.Flags().Changed("poll-timeout") {
		cfg.PollTimeout, _ = cmd.Flags().GetDuration("poll-timeout")
	}
	if cmd.Flags().Changed("content-ready") {
		cfg.ContentReadyCheck, _ = cmd.Flags().GetBool("content-ready")
	}

	if cfg.Port == 0 {
		cfg.Port = splunk.DefaultPort
	}

	if cfg.Host == "" {
		return cfg, fmt.Errorf("host required: set --host, service.host in the config file, or SPLUNK_SEARCH_SERVICE_HOST")
	}
	return cfg, nil
}

// historyConfig merges the history store settings.
func historyConfig() types.HistoryConfig {
	cfg := types.HistoryConfig{
		Dir:        viper.GetString("history.dir"),
		MaxResults: viper.GetInt("history.max_results"),
	}
	if cfg.Dir == "" {
		cfg.Dir = defaultHistoryDir
	}
	return cfg
}

// credentials resolves the username and password: flags first, then the
// secrets directory, then the environment, and finally a masked prompt
// for the password.
func credentials(cmd *cobra.Command) (splunk.Credentials, error) {
	flagUser, _ := cmd.Flags().GetString("username")
	flagPass, _ := cmd.Flags().GetString("password")

	creds := splunk.Credentials{
		Username: secretDefault("splunk-username", flagUser),
		Password: secretDefault("splunk-password", flagPass),
	}
	if creds.Username == "" {
		creds.Username = viper.GetString("service.username")
	}
	if creds.Password == "" {
		creds.Password = viper.GetString("service.password")
	}

	if creds.Username == "" {
		return creds, fmt.Errorf("username required: set --username, a .secrets/splunk-username file, or SPLUNK_SEARCH_SERVICE_USERNAME")
	}

	if creds.Password == "" {
		prompt := promptui.Prompt{
			Label: fmt.Sprintf("Password for %s", creds.Username),
			Mask:  '*',
		}
		pass, err := prompt.Run()
		if err != nil {
			return creds, fmt.Errorf("reading password: %w", err)
		}
		creds.Password = pass
	}

	return creds, nil
}
