// Package runs implements the runs command: inspect the SQLite run
// history the pipeline commands record.
package runs

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"courseminer/internal/common"
	"courseminer/pkg/db"
)

func RunsAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	database, err := db.Open()
	if err != nil {
		logger.Error("failed to open run history", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	if c.IsSet("run") {
		return showRunItems(database, int64(c.Int("run")), c.Bool("failed"))
	}

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		logger.Error("failed to list runs", "error", err)
		os.Exit(2)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet")
		return nil
	}

	fmt.Printf("%-5s %-10s %-20s %6s %8s %8s %9s %7s\n",
		"ID", "COMMAND", "STARTED", "TOTAL", "SUCCESS", "SKIPPED", "FILTERED", "ERRORS")
	for _, r := range runs {
		fmt.Printf("%-5d %-10s %-20s %6d %8d %8d %9d %7d\n",
			r.RunID, r.Command, r.StartedAt.Format("2006-01-02 15:04:05"),
			r.TotalCount, r.SuccessCount, r.SkippedCount, r.FilteredCount, r.ErrorCount)
	}
	return nil
}

func showRunItems(database *db.DB, runID int64, failedOnly bool) error {
	run, err := database.GetRun(runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	items, err := database.RunItems(runID, failedOnly)
	if err != nil {
		return fmt.Errorf("failed to load run items: %w", err)
	}

	fmt.Printf("Run %d (%s): %d total, %d success, %d errors\nStore: %s\n\n",
		run.RunID, run.Command, run.TotalCount, run.SuccessCount, run.ErrorCount, run.StorePath)
	if len(items) == 0 {
		fmt.Println("No matching items")
		return nil
	}
	for _, item := range items {
		if item.ErrorMessage != "" {
			fmt.Printf("  %-10s %s (%dms): %s\n", item.Status, item.Key, item.DurationMS, item.ErrorMessage)
		} else {
			fmt.Printf("  %-10s %s (%dms)\n", item.Status, item.Key, item.DurationMS)
		}
	}
	return nil
}
