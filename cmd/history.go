/*
Copyright © 2025 SubstantialCattle5, nilaysharan.com
*/
package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/substantialcattle5/cleanfiles/internal/history"
	"github.com/substantialcattle5/cleanfiles/internal/ui"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View past cleanup sessions",
	Long: `View recent cleanup sessions, filter failed ones, export them to CSV, or
view detailed info about a single session.

Example:
  cleanfiles history
  cleanfiles history --limit 3 --failed
  cleanfiles history --id 5f0c...
  cleanfiles history --export sessions.csv`,
	Args: cobra.NoArgs,
	RunE: showHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("limit", "n", 10, "Number of sessions to show, 0 for all")
	historyCmd.Flags().Bool("failed", false, "Show only failed or interrupted sessions")
	historyCmd.Flags().String("id", "", "Show detailed info for a specific session ID")
	historyCmd.Flags().String("export", "", "Write the selected sessions to this CSV file, - for stdout")
	addHistoryFlag(historyCmd)
}

func showHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	failedOnly, _ := cmd.Flags().GetBool("failed")
	id, _ := cmd.Flags().GetString("id")
	export, _ := cmd.Flags().GetString("export")

	path, err := historyPath(cmd)
	if err != nil {
		return err
	}
	h, err := history.LoadHistory(path)
	if err != nil {
		return err
	}

	records := h.Last(0)
	if failedOnly {
		filtered := records[:0]
		for _, r := range records {
			if r.Status != statusCompleted {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}

	out := cmd.OutOrStdout()

	if id != "" {
		for _, r := range records {
			if r.ID == id {
				showDetailedRecord(out, r)
				return nil
			}
		}
		return fmt.Errorf("no session found with ID %s", id)
	}

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	if export != "" {
		return exportCSV(cmd, export, records)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No sessions recorded yet")
		return nil
	}

	fmt.Fprintf(out, "Last %d session(s) from %s:\n", len(records), path)
	fmt.Fprintln(out, ui.HistoryTable(records))
	return nil
}

func showDetailedRecord(out io.Writer, r history.SessionRecord) {
	fmt.Fprintf(out, "Session ID: %s\nDate: %s\nMode: %s\n", r.ID, r.Timestamp, r.Mode)
	fmt.Fprintln(out, "Directories:")
	for _, dir := range r.Directories {
		fmt.Fprintf(out, "  - %s\n", dir)
	}
	fmt.Fprintf(out, "Groups: %d of %d reviewed\n", r.Groups, r.TotalGroups)
	names := make([]string, 0, len(r.Actions))
	for name := range r.Actions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %s: %d\n", name, r.Actions[name])
	}
	fmt.Fprintf(out, "Failures: %d\n", r.Failures)
	fmt.Fprintf(out, "Duration: %.2fs\n", float64(r.DurationMs)/1000)
	fmt.Fprintf(out, "Status: %s\n", r.Status)
	if r.Error != "" {
		fmt.Fprintln(out, "Error:", r.Error)
	}
}

func exportCSV(cmd *cobra.Command, path string, records []history.SessionRecord) error {
	var w io.Writer = cmd.OutOrStdout()
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("cannot create CSV file: %w", err)
		}
		defer f.Close()
		w = f
	}

	writer := csv.NewWriter(w)
	_ = writer.Write([]string{"id", "timestamp", "mode", "directories", "groups", "total_groups", "failures", "duration_ms", "status", "error"})
	for _, r := range records {
		_ = writer.Write([]string{
			r.ID,
			r.Timestamp,
			r.Mode,
			strings.Join(r.Directories, ";"),
			strconv.Itoa(r.Groups),
			strconv.Itoa(r.TotalGroups),
			strconv.Itoa(r.Failures),
			strconv.FormatInt(r.DurationMs, 10),
			r.Status,
			r.Error,
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	if path != "-" {
		fmt.Fprintln(cmd.ErrOrStderr(), "Exported CSV to", path)
	}
	return nil
}
