// Package pipeline runs a batch of work items through a worker pool,
// merging per-item results into a persisted store so interrupted or
// partially failed runs can resume without redoing completed work.
//
// The same loop backs text extraction, syllabus parsing, course
// classification, and profile crawling; the per-item work is an injected
// Processor the pipeline never looks inside.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"courseminer/pkg/store"
)

// Item is one unit of work: a stable identity key plus the payload the
// processor needs. Items are immutable once enumerated.
type Item[P any] struct {
	Key     string
	Payload P
}

// Result is the outcome of processing one item.
type Result[A any] struct {
	Key      string
	Status   store.Status
	Artifact A
	Error    string
}

// Processor performs the actual unit of work. A returned error marks the
// item as failed; it never aborts the batch.
type Processor[P, A any] func(ctx context.Context, item Item[P]) (A, error)

// Filter is an optional secondary predicate applied before dispatch.
// Implementations must return exclude=false when the criterion cannot be
// determined: ambiguous items are processed, never silently dropped.
type Filter[P any] func(item Item[P]) (exclude bool, reason string)

// Summary holds the per-run counts.
type Summary struct {
	Total    int
	Success  int
	Skipped  int
	Filtered int
	Errors   int
}

// Options configures a Run.
type Options struct {
	// Workers is the pool size; values below 1 run strictly sequential.
	Workers int
	// ProgressEvery is the collection cadence (in completed items) for
	// progress logging and incremental persistence. Defaults to 10.
	ProgressEvery int
	// Force reprocesses items that already have a success record.
	Force bool
	// Logger receives progress snapshots. Defaults to slog.Default().
	Logger *slog.Logger
	// OnResult, if set, is called from the collector for every dispatched
	// item in completion order.
	OnResult func(res ResultInfo)
}

// ResultInfo is the observer view of one completed item.
type ResultInfo struct {
	Key      string
	Status   store.Status
	Error    string
	Done     int
	Total    int
	Duration time.Duration
}

type timedResult[A any] struct {
	res Result[A]
	dur time.Duration
}

// Run processes items through proc, merging outcomes into st.
//
// Items whose key already has a success record are skipped (unless Force);
// items excluded by filter are counted as filtered and not persisted, so a
// future run with a different filter can still pick them up. Prior error
// records are always retried. The merged store is persisted incrementally
// at the progress cadence and once more at the end; a persistence failure
// is the only fatal error.
func Run[P, A any](ctx context.Context, items []Item[P], proc Processor[P, A], filter Filter[P], st *store.Store[A], opts Options) (Summary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	cadence := opts.ProgressEvery
	if cadence < 1 {
		cadence = 10
	}

	summary := Summary{Total: len(items)}

	notified := 0
	notify := func(info ResultInfo) {
		if opts.OnResult == nil {
			return
		}
		notified++
		info.Done = notified
		info.Total = len(items)
		opts.OnResult(info)
	}

	// Filter phase.
	pending := make([]Item[P], 0, len(items))
	for _, it := range items {
		if !opts.Force && st.HasSuccess(it.Key) {
			summary.Skipped++
			notify(ResultInfo{Key: it.Key, Status: store.StatusSkipped})
			continue
		}
		if filter != nil {
			if exclude, reason := filter(it); exclude {
				summary.Filtered++
				logger.Debug("Item filtered", "key", it.Key, "reason", reason)
				notify(ResultInfo{Key: it.Key, Status: store.StatusFiltered})
				continue
			}
		}
		pending = append(pending, it)
	}
	logger.Info("Dispatching batch",
		"total", summary.Total, "pending", len(pending),
		"skipped", summary.Skipped, "filtered", summary.Filtered,
		"workers", workers)

	if workers > len(pending) && len(pending) > 0 {
		workers = len(pending)
	}

	// Dispatch phase: teacher-shaped jobs/results channels + WaitGroup.
	jobs := make(chan Item[P], len(pending))
	results := make(chan timedResult[A], len(pending))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for it := range jobs {
				started := time.Now()
				res := invoke(ctx, proc, it)
				results <- timedResult[A]{res: res, dur: time.Since(started)}
			}
		}()
	}

	for _, it := range pending {
		jobs <- it
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	// Collection phase: single owner of the store.
	done := 0
	for tr := range results {
		done++
		res := tr.res
		switch res.Status {
		case store.StatusSuccess:
			summary.Success++
		case store.StatusError:
			summary.Errors++
		}
		st.Put(store.Record[A]{
			Key:       res.Key,
			Status:    res.Status,
			Artifact:  res.Artifact,
			Error:     res.Error,
			UpdatedAt: time.Now().UTC(),
		})
		notify(ResultInfo{
			Key:      res.Key,
			Status:   res.Status,
			Error:    res.Error,
			Duration: tr.dur,
		})
		if done%cadence == 0 {
			logger.Info("Progress",
				"done", done, "pending", len(pending),
				"success", summary.Success, "errors", summary.Errors)
			if err := st.Persist(); err != nil {
				logger.Warn("Incremental persist failed, results held in memory", "error", err)
			}
		}
	}

	// Persist phase. Failure here is fatal: in-memory results would
	// otherwise be lost silently.
	if err := st.Persist(); err != nil {
		return summary, fmt.Errorf("failed to persist %d results to %s: %w", st.Len(), st.Path(), err)
	}

	logger.Info("Batch complete",
		"total", summary.Total, "success", summary.Success,
		"skipped", summary.Skipped, "filtered", summary.Filtered,
		"errors", summary.Errors)
	return summary, nil
}

// invoke runs the processor for one item, converting returned errors and
// panics into error results so one item cannot take down the batch.
func invoke[P, A any](ctx context.Context, proc Processor[P, A], it Item[P]) (res Result[A]) {
	res = Result[A]{Key: it.Key}
	defer func() {
		if r := recover(); r != nil {
			res.Status = store.StatusError
			res.Error = fmt.Sprintf("processor panic: %v", r)
		}
	}()

	artifact, err := proc(ctx, it)
	if err != nil {
		res.Status = store.StatusError
		res.Error = err.Error()
		return res
	}
	res.Status = store.StatusSuccess
	res.Artifact = artifact
	return res
}
