package qsim

import "time"

/*
Job describes one independent run: a fresh simulator of Kind on Qubits
qubits seeded with Seed, the Gates applied in order with optional noise
after each, then Shots samples and the listed Observables evaluated on the
final state.
*/
type Job struct {
	ID          string
	Kind        Kind
	Qubits      int
	Seed        uint64
	Gates       []Gate
	Noise       *NoiseSpec
	Shots       int
	Observables []Observable
}

// NoiseSpec names a channel applied to a gate's qubits after every gate.
type NoiseSpec struct {
	Channel string
	Prob    float64
}

// Result is what a Job produced. Err is set when any step failed, in which
// case the other fields hold whatever was computed before the failure.
type Result struct {
	ID           string
	Samples      [][]int
	Counts       map[string]int
	Expectations []complex128
	Duration     time.Duration
	Err          error
}
