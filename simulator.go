package qsim

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

/*
Simulator is the capability contract shared by the two state representations.
Callers translate their own program representation into calls against it and
issue them strictly in order; every call completes its mutation before it
returns.

The set of implementations is closed: WavefunctionSimulator holds a pure
state vector, DensitySimulator a density matrix. Each implements the full
contract and fails explicitly for what it cannot do:

  - DoPostGateNoise on a WavefunctionSimulator returns ErrUnsupportedOperation,
    since stochastic noise has no pure-state representation in general.
  - Expectation on a DensitySimulator returns ErrNotImplemented.

Stochastic calls (DoMeasurement, SampleBitstrings) need the random source
handed to the constructor and return ErrMissingRandomSource without one.
*/
type Simulator interface {
	NumQubits() int

	// DoGate lifts a named gate onto its qubits and applies it.
	DoGate(gate Gate) error

	// DoGateMatrix applies an arbitrary matrix to the given qubits. The
	// matrix is not checked for unitarity.
	DoGateMatrix(m *Matrix, qubits []int) error

	// DoMeasurement projectively measures one qubit, collapses the state and
	// returns the bit.
	DoMeasurement(qubit int) (int, error)

	// SampleBitstrings draws n outcomes of measuring every qubit without
	// touching the state. Row i holds qubit j in column j.
	SampleBitstrings(n int) ([][]int, error)

	Expectation(obs Observable) (complex128, error)

	// DoPostGateNoise applies a named single-qubit channel to each listed
	// qubit independently and in sequence.
	DoPostGateNoise(noiseType string, prob float64, qubits []int) error

	// Reset restores the initial state.
	Reset()

	simulator()
}

// Kind selects a Simulator implementation.
type Kind int

const (
	Wavefunction Kind = iota
	Density
)

func (k Kind) String() string {
	switch k {
	case Wavefunction:
		return "wavefunction"
	case Density:
		return "density"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

/*
NewSimulator builds the Simulator of the given kind. rng may be shared with
other simulators for reproducible joint experiments; it is never copied or
reseeded, and a nil rng disables stochastic operations.
*/
func NewSimulator(kind Kind, nQubits int, rng *rand.Rand, opts ...Option) (Simulator, error) {
	switch kind {
	case Wavefunction:
		return NewWavefunctionSimulator(nQubits, rng, opts...)
	case Density:
		return NewDensitySimulator(nQubits, rng, opts...)
	default:
		return nil, errors.Wrapf(ErrUnsupportedOperation, "simulator kind %v", kind)
	}
}

// Option configures a simulator at construction.
type Option func(*options)

type options struct {
	config  *Config
	logger  *log.Logger
	metrics *Metrics
	noise   NoiseChannels
}

func WithConfig(config *Config) Option {
	return func(o *options) {
		o.config = config
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(o *options) {
		o.metrics = metrics
	}
}

// WithNoiseChannels replaces the default channel registry.
func WithNoiseChannels(channels NoiseChannels) Option {
	return func(o *options) {
		o.noise = channels
	}
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.config == nil {
		o.config = NewConfig()
	}
	if o.logger == nil {
		o.logger = log.Default()
	}
	if o.noise == nil {
		o.noise = DefaultNoiseChannels()
	}
	return o
}

func checkQubitCount(nQubits int) error {
	if nQubits <= 0 {
		return errors.Wrapf(ErrInvalidQubitCount, "got %d", nQubits)
	}
	return nil
}
