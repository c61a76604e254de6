package db

import (
	"path/filepath"
	"testing"
	"time"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := OpenAt(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenAt() error = %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestRunLifecycle(t *testing.T) {
	database := setupTestDB(t)

	runID, err := database.StartRun("extract", "out/extracted.json", 10)
	if err != nil {
		t.Fatalf("StartRun() error = %v", err)
	}

	run, err := database.GetRun(runID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if run.Command != "extract" || run.TotalCount != 10 {
		t.Errorf("run = %+v", run)
	}
	if !run.FinishedAt.IsZero() {
		t.Error("FinishedAt set before FinishRun")
	}

	if err := database.FinishRun(runID, 7, 1, 1, 1); err != nil {
		t.Fatalf("FinishRun() error = %v", err)
	}

	run, err = database.GetRun(runID)
	if err != nil {
		t.Fatalf("GetRun() after finish error = %v", err)
	}
	if run.SuccessCount != 7 || run.SkippedCount != 1 || run.FilteredCount != 1 || run.ErrorCount != 1 {
		t.Errorf("counts = %+v", run)
	}
	if run.FinishedAt.IsZero() {
		t.Error("FinishedAt not set by FinishRun")
	}
}

func TestRunItems(t *testing.T) {
	database := setupTestDB(t)

	runID, err := database.StartRun("parse", "out/parsed.json", 3)
	if err != nil {
		t.Fatalf("StartRun() error = %v", err)
	}

	if err := database.InsertRunItem(runID, "a.pdf", "success", "", 120*time.Millisecond); err != nil {
		t.Fatalf("InsertRunItem() error = %v", err)
	}
	if err := database.InsertRunItem(runID, "b.pdf", "error", "timeout", 30*time.Second); err != nil {
		t.Fatalf("InsertRunItem() error = %v", err)
	}
	if err := database.InsertRunItem(runID, "c.pdf", "skipped", "", 0); err != nil {
		t.Fatalf("InsertRunItem() error = %v", err)
	}

	items, err := database.RunItems(runID, false)
	if err != nil {
		t.Fatalf("RunItems() error = %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}
	if items[0].Key != "a.pdf" || items[0].DurationMS != 120 {
		t.Errorf("items[0] = %+v", items[0])
	}

	failed, err := database.RunItems(runID, true)
	if err != nil {
		t.Fatalf("RunItems(failedOnly) error = %v", err)
	}
	if len(failed) != 1 || failed[0].Key != "b.pdf" || failed[0].ErrorMessage != "timeout" {
		t.Errorf("failed = %+v", failed)
	}
}

func TestInsertRunItemUpsert(t *testing.T) {
	database := setupTestDB(t)

	runID, err := database.StartRun("classify", "out/classified.json", 1)
	if err != nil {
		t.Fatalf("StartRun() error = %v", err)
	}

	if err := database.InsertRunItem(runID, "CSC 438", "error", "rate limited", time.Second); err != nil {
		t.Fatalf("InsertRunItem() error = %v", err)
	}
	if err := database.InsertRunItem(runID, "CSC 438", "success", "", 2*time.Second); err != nil {
		t.Fatalf("InsertRunItem() retry error = %v", err)
	}

	items, err := database.RunItems(runID, false)
	if err != nil {
		t.Fatalf("RunItems() error = %v", err)
	}
	if len(items) != 1 || items[0].Status != "success" || items[0].ErrorMessage != "" {
		t.Errorf("items = %+v, want single success row", items)
	}
}

func TestListRuns(t *testing.T) {
	database := setupTestDB(t)

	for i := 0; i < 3; i++ {
		if _, err := database.StartRun("extract", "out/extracted.json", i); err != nil {
			t.Fatalf("StartRun() error = %v", err)
		}
	}

	runs, err := database.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len(runs) = %d, want 2", len(runs))
	}
	if runs[0].RunID < runs[1].RunID {
		t.Error("ListRuns not ordered most recent first")
	}
}
