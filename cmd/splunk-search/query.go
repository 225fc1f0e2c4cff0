// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/splunk-search/internal/history"
	"github.com/pdiddy/splunk-search/internal/splunk"
	"github.com/pdiddy/splunk-search/pkg/types"
)

var queryCmd = &cobra.Command{
	Use:   "query <search string>",
	Short: "Run a search and print its results",
	Long: `Query authenticates against the Splunk deployment, submits the search
as an asynchronous job, and polls until results arrive. The search string is
prefixed with the "search" keyword when it does not already start with it.

Results print as a table by default, or as JSON with --json. Executed
searches are recorded in the local history unless --no-history is set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().String("host", "", "Splunk management hostname")
	queryCmd.Flags().Int("port", splunk.DefaultPort, "Splunk management port")
	queryCmd.Flags().Bool("insecure", false, "skip TLS certificate verification")
	queryCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	queryCmd.Flags().Duration("interval", 0, "pause between result polls (default none)")
	queryCmd.Flags().Int("max-attempts", 0, "maximum result polls, 0 for unlimited")
	queryCmd.Flags().Duration("poll-timeout", 0, "total polling time limit, 0 for none")
	queryCmd.Flags().Bool("content-ready", false, "treat any non-empty poll body as finished")
	queryCmd.Flags().String("username", "", "Splunk username")
	queryCmd.Flags().String("password", "", "Splunk password (prefer .secrets/splunk-password)")
	queryCmd.Flags().Bool("json", false, "output results as JSON")
	queryCmd.Flags().String("save", "", "write the search and its results to a YAML file")
	queryCmd.Flags().Bool("no-history", false, "do not record this search in the history")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	rawQuery := strings.Join(args, " ")

	cfg, err := serviceConfig(cmd)
	if err != nil {
		return err
	}
	creds, err := credentials(cmd)
	if err != nil {
		return err
	}

	client, err := splunk.NewClient(creds, cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	started := time.Now()

	// Stepwise rather than client.Query so the sid is known for the
	// history record even when polling fails.
	sess, err := client.Authenticate(ctx)
	if errors.Is(err, splunk.ErrNoSession) {
		fmt.Fprintln(os.Stderr, "Login succeeded but returned no session key.")
		return nil
	}
	if err != nil {
		return err
	}

	sid, err := client.Submit(ctx, rawQuery, sess)
	if errors.Is(err, splunk.ErrNoJob) {
		fmt.Fprintln(os.Stderr, "Submission succeeded but returned no job id.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Submitted job %s\n", sid)

	rs, pollErr := client.Poll(ctx, sid, sess)
	took := time.Since(started)

	noHistory, _ := cmd.Flags().GetBool("no-history")
	if !noHistory {
		recordSearch(ctx, cfg, rawQuery, sid, rs, took, pollErr)
	}
	if pollErr != nil {
		return pollErr
	}
	fmt.Fprintf(os.Stderr, "Job finished in %v\n", took.Round(time.Millisecond))

	if path, _ := cmd.Flags().GetString("save"); path != "" {
		service := splunk.QueryFileService{Host: cfg.Host, Port: cfg.Port}
		if err := splunk.WriteQueryFile(path, rawQuery, service, sid, rs, took); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved to %s\n", path)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return splunk.FormatJSON(rs, os.Stdout)
	}
	splunk.FormatTable(rs, os.Stdout)
	return nil
}

// recordSearch writes one history entry. History failures warn but never
// fail the search itself.
func recordSearch(ctx context.Context, cfg types.ServiceConfig, rawQuery, sid string, rs splunk.ResultSet, took time.Duration, pollErr error) {
	store, err := history.NewStore(historyConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	entry := history.Entry{
		SID:         sid,
		Query:       rawQuery,
		Normalized:  splunk.Normalize(rawQuery),
		Host:        cfg.Host,
		Started:     time.Now().Add(-took),
		DurationMS:  took.Milliseconds(),
		ResultCount: len(rs.Rows()),
		Status:      history.StatusCompleted,
	}
	switch {
	case pollErr != nil:
		entry.Status = history.StatusFailed
		entry.Error = pollErr.Error()
	case len(rs.Rows()) == 0:
		entry.Status = history.StatusEmpty
	}

	if _, err := store.Record(ctx, entry); err != nil {
		fmt.Fprintf(os.Stderr, "warning: recording history: %v\n", err)
	}
}
