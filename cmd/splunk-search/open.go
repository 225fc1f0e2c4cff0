// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open <sid>",
	Short: "Open a search job in Splunk Web",
	Long: `Open launches the default browser on the Splunk Web page for a search
job. The sid can come from a previous query run or from history list.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	openCmd.Flags().String("host", "", "Splunk hostname")
	openCmd.Flags().Int("web-port", 0, "Splunk Web port (default 8000)")

	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	cfg, err := serviceConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("web-port") {
		cfg.WebPort, _ = cmd.Flags().GetInt("web-port")
	}

	jobURL := fmt.Sprintf("https://%s:%d/en-US/app/search/search?sid=%s", cfg.Host, cfg.WebPort, args[0])
	if err := browser.OpenURL(jobURL); err != nil {
		return fmt.Errorf("opening %s: %w", jobURL, err)
	}
	fmt.Printf("Opened %s\n", jobURL)
	return nil
}
