package qsim

import (
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Operation labels used by Metrics.
const (
	OpGate        = "gate"
	OpMeasurement = "measurement"
	OpSample      = "sample"
	OpExpectation = "expectation"
	OpNoise       = "noise"
	OpReset       = "reset"
)

/*
Metrics counts simulator operations and tracks their latency. A single
Metrics may be shared by several simulators, including simulators owned by
different goroutines, so it is the one synchronized type in the package.
*/
type Metrics struct {
	mu sync.RWMutex

	Operations   map[string]int64
	Failures     map[string]int64
	SkippedNoise int64
	ShotsSampled int64

	AverageLatency time.Duration
	P95Latency     time.Duration
	P99Latency     time.Duration

	count      int64
	latencies  []time.Duration
	windowSize int
}

func NewMetrics() *Metrics {
	return &Metrics{
		Operations: make(map[string]int64),
		Failures:   make(map[string]int64),
		latencies:  make([]time.Duration, 0, 1000), // last 1000 operations
		windowSize: 1000,
	}
}

/*
record is meant to be deferred with a pointer to the caller's named error
result, so the outcome is read when the operation returns. It is safe on a
nil receiver.
*/
func (m *Metrics) record(op string, start time.Time, err *error) {
	if m == nil {
		return
	}
	duration := time.Since(start)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Operations[op]++
	if err != nil && *err != nil {
		m.Failures[op]++
	}
	m.count++
	m.observeLatency(duration)
}

func (m *Metrics) recordSkippedNoise() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SkippedNoise++
}

func (m *Metrics) recordShots(n int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ShotsSampled += int64(n)
}

// observeLatency folds duration into the running mean and recomputes the
// tail percentiles over the most recent windowSize operations.
func (m *Metrics) observeLatency(duration time.Duration) {
	m.AverageLatency += (duration - m.AverageLatency) / time.Duration(m.count)

	if len(m.latencies) == m.windowSize {
		copy(m.latencies, m.latencies[1:])
		m.latencies = m.latencies[:m.windowSize-1]
	}
	m.latencies = append(m.latencies, duration)

	window := make([]float64, len(m.latencies))
	for i, d := range m.latencies {
		window[i] = float64(d)
	}
	sort.Float64s(window)

	m.P95Latency = time.Duration(stat.Quantile(0.95, stat.Empirical, window, nil))
	m.P99Latency = time.Duration(stat.Quantile(0.99, stat.Empirical, window, nil))
}

// Count returns how many times op ran.
func (m *Metrics) Count(op string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Operations[op]
}

func (m *Metrics) ExportMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ops := make(map[string]int64, len(m.Operations))
	for k, v := range m.Operations {
		ops[k] = v
	}
	failures := make(map[string]int64, len(m.Failures))
	for k, v := range m.Failures {
		failures[k] = v
	}

	return map[string]interface{}{
		"operations":    ops,
		"failures":      failures,
		"skipped_noise": m.SkippedNoise,
		"shots_sampled": m.ShotsSampled,
		"avg_latency":   m.AverageLatency.Microseconds(),
		"p95_latency":   m.P95Latency.Microseconds(),
		"p99_latency":   m.P99Latency.Microseconds(),
	}
}
