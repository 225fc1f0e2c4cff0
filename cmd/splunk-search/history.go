// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/splunk-search/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the local search history (list, search, show, prune)",
	Long: `History manages the local SQLite database of executed searches. Use
subcommands to list recent searches, search past query strings, show one
entry, or prune old entries.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent searches, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(historyConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.Recent(context.Background(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistoryOutput(entries, jsonOutput)
}

// --- search subcommand ---

var historySearchCmd = &cobra.Command{
	Use:   "search <match>",
	Short: "Full-text search over past query strings",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHistorySearch,
}

func runHistorySearch(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(historyConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.Find(context.Background(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistoryOutput(entries, jsonOutput)
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show <id or sid>",
	Short: "Show one recorded search",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(historyConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(entry)
}

// --- prune subcommand ---

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the most recent searches",
	RunE:  runHistoryPrune,
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(historyConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	keep, _ := cmd.Flags().GetInt("keep")
	removed, err := store.Prune(context.Background(), keep)
	if err != nil {
		return err
	}

	fmt.Printf("Pruned %d search(es), kept the %d most recent.\n", removed, keep)
	return nil
}

// --- shared output ---

func formatHistoryOutput(entries []history.Entry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No searches recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-19s  %-20s  %-50s  %-9s  %s\n",
		"Started", "SID", "Query", "Status", "Results")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for _, e := range entries {
		query := e.Query
		if len(query) > 50 {
			query = query[:47] + "..."
		}
		sid := e.SID
		if len(sid) > 20 {
			sid = sid[:17] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-19s  %-20s  %-50s  %-9s  %s\n",
			e.Started.Local().Format("2006-01-02 15:04:05"),
			sid, query, e.Status, strconv.Itoa(e.ResultCount))
	}

	fmt.Fprintf(os.Stdout, "\n%d searches\n", len(entries))
	return nil
}

func init() {
	historyCmd.PersistentFlags().Int("limit", 0, "maximum number of entries to return")
	historyCmd.PersistentFlags().Bool("json", false, "output entries as JSON")
	historyPruneCmd.Flags().Int("keep", 100, "number of most recent searches to keep")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historySearchCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}
