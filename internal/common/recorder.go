package common

import (
	"log/slog"

	"courseminer/pkg/db"
	"courseminer/pkg/pipeline"
)

// RunRecorder mirrors pipeline outcomes into the SQLite run history. The
// history is advisory: any database failure is logged and ignored so the
// pipeline itself is never blocked by it. A nil recorder is a no-op.
type RunRecorder struct {
	database *db.DB
	runID    int64
	logger   *slog.Logger
}

// StartRunRecorder opens the run-history database and registers a new run.
// Returns nil (safe to use) when the database cannot be opened.
func StartRunRecorder(logger *slog.Logger, command, storePath string, totalCount int) *RunRecorder {
	database, err := db.Open()
	if err != nil {
		logger.Warn("Run history unavailable", "error", err)
		return nil
	}

	runID, err := database.StartRun(command, storePath, totalCount)
	if err != nil {
		logger.Warn("Failed to register run", "error", err)
		_ = database.Close()
		return nil
	}

	return &RunRecorder{database: database, runID: runID, logger: logger}
}

// OnResult records one item outcome. Wire it as pipeline.Options.OnResult.
func (r *RunRecorder) OnResult(info pipeline.ResultInfo) {
	if r == nil {
		return
	}
	if err := r.database.InsertRunItem(r.runID, info.Key, string(info.Status), info.Error, info.Duration); err != nil {
		r.logger.Warn("Failed to record run item", "key", info.Key, "error", err)
	}
}

// Finish stamps the final counts and closes the database.
func (r *RunRecorder) Finish(sum pipeline.Summary) {
	if r == nil {
		return
	}
	if err := r.database.FinishRun(r.runID, sum.Success, sum.Skipped, sum.Filtered, sum.Errors); err != nil {
		r.logger.Warn("Failed to finalize run record", "error", err)
	}
	_ = r.database.Close()
}
