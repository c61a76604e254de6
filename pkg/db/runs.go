package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Run represents one pipeline invocation.
type Run struct {
	RunID         int64
	Command       string
	StartedAt     time.Time
	FinishedAt    time.Time
	StorePath     string
	TotalCount    int
	SuccessCount  int
	SkippedCount  int
	FilteredCount int
	ErrorCount    int
}

// RunItem is the recorded outcome for one work item within a run.
type RunItem struct {
	Key          string
	Status       string
	ErrorMessage string
	DurationMS   int64
}

// StartRun inserts a new run row and returns its ID.
func (db *DB) StartRun(command, storePath string, totalCount int) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO runs (command, store_path, total_count)
		VALUES (?, ?, ?)
	`, command, storePath, totalCount)
	if err != nil {
		return 0, fmt.Errorf("failed to create run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

// FinishRun stamps the end time and final counts on a run.
func (db *DB) FinishRun(runID int64, success, skipped, filtered, errors int) error {
	_, err := db.Exec(`
		UPDATE runs
		SET finished_at = CURRENT_TIMESTAMP,
		    success_count = ?, skipped_count = ?, filtered_count = ?, error_count = ?
		WHERE run_id = ?
	`, success, skipped, filtered, errors, runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// InsertRunItem records one item outcome. An item reported twice in the
// same run keeps the latest status.
func (db *DB) InsertRunItem(runID int64, key, status, errorMessage string, duration time.Duration) error {
	var errMsg any
	if errorMessage != "" {
		errMsg = errorMessage
	}

	_, err := db.Exec(`
		INSERT INTO run_items (run_id, key, status, error_message, duration_ms)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(run_id, key) DO UPDATE SET
			status = excluded.status,
			error_message = excluded.error_message,
			duration_ms = excluded.duration_ms
	`, runID, key, status, errMsg, duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("failed to insert run item: %w", err)
	}
	return nil
}

// GetRun retrieves a run by its ID.
func (db *DB) GetRun(runID int64) (*Run, error) {
	var run Run
	var finishedAt sql.NullTime
	err := db.QueryRow(`
		SELECT run_id, command, started_at, finished_at, store_path,
		       total_count, success_count, skipped_count, filtered_count, error_count
		FROM runs
		WHERE run_id = ?
	`, runID).Scan(
		&run.RunID,
		&run.Command,
		&run.StartedAt,
		&finishedAt,
		&run.StorePath,
		&run.TotalCount,
		&run.SuccessCount,
		&run.SkippedCount,
		&run.FilteredCount,
		&run.ErrorCount,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	if finishedAt.Valid {
		run.FinishedAt = finishedAt.Time
	}
	return &run, nil
}

// ListRuns retrieves runs ordered by most recent first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `
		SELECT run_id, command, started_at, finished_at, store_path,
		       total_count, success_count, skipped_count, filtered_count, error_count
		FROM runs
		ORDER BY run_id DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var finishedAt sql.NullTime
		if err := rows.Scan(&r.RunID, &r.Command, &r.StartedAt, &finishedAt, &r.StorePath,
			&r.TotalCount, &r.SuccessCount, &r.SkippedCount, &r.FilteredCount, &r.ErrorCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if finishedAt.Valid {
			r.FinishedAt = finishedAt.Time
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// RunItems retrieves item outcomes for a run, optionally only failures.
func (db *DB) RunItems(runID int64, failedOnly bool) ([]RunItem, error) {
	query := `
		SELECT key, status, error_message, duration_ms
		FROM run_items
		WHERE run_id = ?
	`
	if failedOnly {
		query += " AND status = 'error'"
	}
	query += " ORDER BY item_id"

	rows, err := db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run items: %w", err)
	}
	defer rows.Close()

	var items []RunItem
	for rows.Next() {
		var item RunItem
		var errMsg sql.NullString
		var durationMS sql.NullInt64
		if err := rows.Scan(&item.Key, &item.Status, &errMsg, &durationMS); err != nil {
			return nil, fmt.Errorf("failed to scan run item: %w", err)
		}
		if errMsg.Valid {
			item.ErrorMessage = errMsg.String
		}
		if durationMS.Valid {
			item.DurationMS = durationMS.Int64
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
