// Package batch checks many documents with a worker pool. Runs are
// independent: no mutable state is shared between documents, which is
// what makes per-document parallelism safe.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"snipref/internal/checker"
	"snipref/internal/report"
)

// Result pairs a document path with its check report. The report is
// present even for aborted runs.
type Result struct {
	Path   string
	Report *report.Report
}

// workerState holds shared mutable state for the check workers.
type workerState struct {
	mu      sync.Mutex
	reports map[string]*report.Report
}

// setReport records the report for one path.
func (ws *workerState) setReport(path string, r *report.Report) {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	ws.reports[path] = r
}

// Run checks every path using a pool of workers and returns results in
// input order. Per-document aborts land in the corresponding report;
// only context cancellation surfaces as an error.
func Run(ctx context.Context, c *checker.Checker, paths []string, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	workers = min(workers, max(1, len(paths)))

	pathChan := make(chan string, workers)
	state := &workerState{reports: make(map[string]*report.Report, len(paths))}

	var wg sync.WaitGroup

	wg.Add(workers)

	for range workers {
		go worker(ctx, &wg, c, pathChan, state)
	}

feed:
	for _, path := range paths {
		select {
		case pathChan <- path:
		case <-ctx.Done():
			break feed
		}
	}

	close(pathChan)
	wg.Wait()

	if ctx.Err() != nil {
		return nil, fmt.Errorf("batch check: %w", ctx.Err())
	}

	return collect(paths, state), nil
}

// worker is the body of each check goroutine.
func worker(ctx context.Context, wg *sync.WaitGroup, c *checker.Checker, pathChan <-chan string, state *workerState) {
	defer wg.Done()

	for path := range pathChan {
		if ctx.Err() != nil {
			return
		}

		// CheckPath reports fatal per-document errors inside the
		// report; they must not stop the batch.
		r, _ := c.CheckPath(path)

		state.setReport(path, r)
	}
}

// collect orders the recorded reports by the original path order.
func collect(paths []string, state *workerState) []Result {
	results := make([]Result, 0, len(paths))
	seen := make(map[string]bool, len(paths))

	for _, path := range paths {
		if seen[path] {
			continue
		}

		seen[path] = true

		r, ok := state.reports[path]
		if !ok {
			continue
		}

		results = append(results, Result{Path: path, Report: r})
	}

	return results
}

// Passed reports whether every completed result passed and none aborted.
func Passed(results []Result) bool {
	for _, res := range results {
		if res.Report.Aborted || !res.Report.Passed {
			return false
		}
	}

	return true
}
