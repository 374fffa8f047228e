package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/theapemachine/qsim"
)

type runSettings struct {
	qubits  int
	shots   int
	seed    uint64
	density bool
	noise   string
	prob    float64
	runs    int
	workers int
}

func settingsFromViper(v *viper.Viper) runSettings {
	return runSettings{
		qubits:  v.GetInt("qubits"),
		shots:   v.GetInt("shots"),
		seed:    v.GetUint64("seed"),
		density: v.GetBool("density"),
		noise:   v.GetString("noise"),
		prob:    v.GetFloat64("prob"),
		runs:    v.GetInt("runs"),
		workers: v.GetInt("workers"),
	}
}

// jobs splits the shots over the runs, seeding run i with seed+i.
func (s runSettings) jobs(name string, kind qsim.Kind, gates []qsim.Gate) []qsim.Job {
	var noise *qsim.NoiseSpec
	if s.noise != "" {
		noise = &qsim.NoiseSpec{Channel: s.noise, Prob: s.prob}
	}

	var observables []qsim.Observable
	if kind == qsim.Wavefunction {
		for q := 0; q < s.qubits; q++ {
			observables = append(observables, qsim.NewPauliTerm(qsim.PauliZ, q, 1))
		}
	}

	jobs := make([]qsim.Job, s.runs)
	for i := range jobs {
		shots := s.shots / s.runs
		if i < s.shots%s.runs {
			shots++
		}
		jobs[i] = qsim.Job{
			ID:          fmt.Sprintf("%s-%d", name, i),
			Kind:        kind,
			Qubits:      s.qubits,
			Seed:        s.seed + uint64(i),
			Gates:       gates,
			Noise:       noise,
			Shots:       shots,
			Observables: observables,
		}
	}
	return jobs
}

func runCircuit(v *viper.Viper, name string, out io.Writer) error {
	build, ok := circuits[name]
	if !ok {
		return errors.Errorf("unknown circuit %q, want one of %v", name, circuitNames())
	}

	settings := settingsFromViper(v)
	if settings.qubits < minQubits[name] {
		return errors.Errorf("circuit %s needs at least %d qubits, got %d", name, minQubits[name], settings.qubits)
	}
	if settings.runs < 1 {
		settings.runs = 1
	}
	if settings.seed == 0 {
		settings.seed = uint64(time.Now().UnixNano())
	}

	kind := qsim.Wavefunction
	if settings.density {
		kind = qsim.Density
	}

	metrics := qsim.NewMetrics()
	results, err := qsim.RunBatch(context.Background(), settings.workers,
		settings.jobs(name, kind, build(settings.qubits)),
		qsim.WithConfig(qsim.ConfigFromViper(v)),
		qsim.WithMetrics(metrics),
	)
	if err != nil {
		return err
	}
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}

	report := newReport(name, kind, settings)
	counts := qsim.MergeCounts(results)
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		report.addCount(k, counts[k])
	}

	// Expectations are exact and identical across runs.
	for q, value := range results[0].Expectations {
		report.addExpectation(fmt.Sprintf("<Z%d>", q), real(value))
	}

	report.metrics = metrics.ExportMetrics()
	_, err = io.WriteString(out, report.render())
	return err
}
