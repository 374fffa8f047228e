package qsim

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"
	"github.com/theapemachine/errnie"
)

type indexedJob struct {
	index int
	job   Job
}

// worker drains jobs until the channel closes or ctx is done. Each job gets
// its own simulator and random source, so workers share nothing but opts.
type worker struct {
	id      int
	opts    []Option
	jobs    <-chan indexedJob
	results []Result
	done    []bool
}

func (w *worker) start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case next, ok := <-w.jobs:
			if !ok {
				return
			}
			w.results[next.index] = w.processJob(ctx, next.job)
			w.done[next.index] = true
		}
	}
}

func (w *worker) processJob(ctx context.Context, job Job) (result Result) {
	result.ID = job.ID
	start := time.Now()
	defer func() {
		result.Duration = time.Since(start)
		if result.Err != nil {
			errnie.Info("worker %d - job %s failed: %v", w.id, job.ID, result.Err)
		}
	}()

	rng := rand.New(rand.NewPCG(job.Seed, job.Seed^0x9e3779b97f4a7c15))
	sim, err := NewSimulator(job.Kind, job.Qubits, rng, w.opts...)
	if err != nil {
		result.Err = err
		return result
	}

	for _, gate := range job.Gates {
		if err := ctx.Err(); err != nil {
			result.Err = err
			return result
		}
		if err := sim.DoGate(gate); err != nil {
			result.Err = errors.Wrapf(err, "job %s: %s", job.ID, gate.Name)
			return result
		}
		if job.Noise == nil {
			continue
		}
		if err := sim.DoPostGateNoise(job.Noise.Channel, job.Noise.Prob, gate.Qubits); err != nil {
			result.Err = errors.Wrapf(err, "job %s: noise after %s", job.ID, gate.Name)
			return result
		}
	}

	if job.Shots > 0 {
		if result.Samples, err = sim.SampleBitstrings(job.Shots); err != nil {
			result.Err = errors.Wrapf(err, "job %s: sampling", job.ID)
			return result
		}
		result.Counts = CountBitstrings(result.Samples)
	}

	for _, obs := range job.Observables {
		value, err := sim.Expectation(obs)
		if err != nil {
			result.Err = errors.Wrapf(err, "job %s: expectation", job.ID)
			return result
		}
		result.Expectations = append(result.Expectations, value)
	}

	return result
}
