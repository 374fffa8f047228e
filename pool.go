package qsim

import (
	"context"

	"github.com/theapemachine/errnie"
	"golang.org/x/sync/errgroup"
)

/*
RunBatch runs independent jobs on up to workers goroutines and returns their
results in job order. Simulators are not safe for concurrent use, so every
job builds its own; the options, including any Metrics, are shared.

A failing job does not stop the others: its error is on its Result. The
returned error is only set when ctx ends before every job was handed out,
in which case unstarted jobs carry ctx's error.
*/
func RunBatch(ctx context.Context, workers int, jobs []Job, opts ...Option) ([]Result, error) {
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	errnie.Info("RunBatch - %d jobs on %d workers", len(jobs), workers)

	results := make([]Result, len(jobs))
	done := make([]bool, len(jobs))
	queue := make(chan indexedJob, workers)

	var group errgroup.Group
	for i := 0; i < workers; i++ {
		w := &worker{id: i, opts: opts, jobs: queue, results: results, done: done}
		group.Go(func() error {
			w.start(ctx)
			return nil
		})
	}

	dispatched := 0
dispatch:
	for i, job := range jobs {
		select {
		case <-ctx.Done():
			break dispatch
		case queue <- indexedJob{index: i, job: job}:
			dispatched++
		}
	}
	close(queue)
	_ = group.Wait()

	if err := ctx.Err(); err != nil {
		for i := range results {
			if !done[i] {
				results[i] = Result{ID: jobs[i].ID, Err: err}
			}
		}
		if dispatched < len(jobs) {
			return results, err
		}
	}
	return results, nil
}

// MergeCounts adds up the bitstring counts of every successful result.
func MergeCounts(results []Result) map[string]int {
	total := make(map[string]int)
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		for bits, n := range r.Counts {
			total[bits] += n
		}
	}
	return total
}
