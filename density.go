package qsim

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"
	"github.com/theapemachine/errnie"
	"gonum.org/v1/gonum/cmplxs"
)

/*
DensitySimulator stores a possibly mixed state as a dense 2^n x 2^n density
matrix. Besides the Simulator contract it supports Kraus-channel noise and a
configurable initial state that Reset returns to.
*/
type DensitySimulator struct {
	nQubits        int
	rng            *rand.Rand
	density        *Matrix
	initialDensity *Matrix
	options
}

func NewDensitySimulator(nQubits int, rng *rand.Rand, opts ...Option) (*DensitySimulator, error) {
	if err := checkQubitCount(nQubits); err != nil {
		return nil, err
	}

	errnie.Info("NewDensitySimulator - qubits %d, stochastic %v", nQubits, rng != nil)

	s := &DensitySimulator{
		nQubits:        nQubits,
		rng:            rng,
		initialDensity: zeroProjector(nQubits),
		options:        buildOptions(opts),
	}
	s.density = s.initialDensity.Clone()
	return s, nil
}

// zeroProjector returns |00...0><00...0|.
func zeroProjector(nQubits int) *Matrix {
	dim := dimension(nQubits)
	m := NewMatrix(dim, dim, nil)
	m.Set(0, 0, 1)
	return m
}

func (s *DensitySimulator) simulator() {}

func (s *DensitySimulator) NumQubits() int {
	return s.nQubits
}

// Density returns a copy of the current density matrix.
func (s *DensitySimulator) Density() *Matrix {
	return s.density.Clone()
}

// InitialState returns a copy of the state Reset restores.
func (s *DensitySimulator) InitialState() *Matrix {
	return s.initialDensity.Clone()
}

// Probabilities returns the real part of the diagonal of the density matrix.
func (s *DensitySimulator) Probabilities() []float64 {
	probs := make([]float64, s.density.Rows)
	for i := range probs {
		probs[i] = real(s.density.At(i, i))
	}
	return probs
}

/*
SetInitialState changes the state that Reset restores; the current density
matrix is left alone, so call Reset to start from it. A nil matrix restores
the default |00...0> initial state.

The matrix must be square with side 2^n and pass ValidateState under the
configured tolerances; on rejection nothing changes and the error is either
ErrDimensionMismatch or an *InvalidStateError. The matrix is copied.
*/
func (s *DensitySimulator) SetInitialState(m *Matrix) error {
	if m == nil {
		s.initialDensity = zeroProjector(s.nQubits)
		return nil
	}

	if !m.IsSquare() || len(m.Data) != m.Rows*m.Cols {
		return errors.Wrapf(ErrDimensionMismatch, "state matrix is %dx%d, not square", m.Rows, m.Cols)
	}
	if dim := dimension(s.nQubits); m.Rows != dim {
		return errors.Wrapf(ErrDimensionMismatch, "state matrix is %dx%d, simulator has %d qubits", m.Rows, m.Cols, s.nQubits)
	}
	if err := ValidateState(m, s.config.Rtol, s.config.Atol); err != nil {
		return err
	}

	errnie.Info("SetInitialState - custom %dx%d initial density", m.Rows, m.Cols)
	s.initialDensity = m.Clone()
	return nil
}

func (s *DensitySimulator) DoGate(gate Gate) (err error) {
	defer s.metrics.record(OpGate, time.Now(), &err)

	unitary, err := LiftGate(gate, s.nQubits)
	if err != nil {
		return err
	}
	return s.conjugate(unitary)
}

func (s *DensitySimulator) DoGateMatrix(m *Matrix, qubits []int) (err error) {
	defer s.metrics.record(OpGate, time.Now(), &err)

	unitary, err := LiftMatrix(m, qubits, s.nQubits)
	if err != nil {
		return err
	}
	return s.conjugate(unitary)
}

// conjugate replaces ρ with UρU†.
func (s *DensitySimulator) conjugate(u *Matrix) error {
	density, err := s.density.Sandwich(u)
	if err != nil {
		return err
	}
	s.density = density
	return nil
}

/*
DoMeasurement measures qubit with probability of zero Tr(P0 ρ), collapsing ρ
to KρK† with K = P0/√p0 or P1/√(1-p0).
*/
func (s *DensitySimulator) DoMeasurement(qubit int) (bit int, err error) {
	defer s.metrics.record(OpMeasurement, time.Now(), &err)

	if s.rng == nil {
		return 0, ErrMissingRandomSource
	}
	if err = checkQubit(qubit, s.nQubits); err != nil {
		return 0, err
	}

	measure0, err := LiftMatrix(P0, []int{qubit}, s.nQubits)
	if err != nil {
		return 0, err
	}
	projected, err := measure0.Mul(s.density)
	if err != nil {
		return 0, err
	}
	probZero := real(projected.Trace())

	if s.rng.Float64() < probZero {
		return 0, s.conjugate(measure0.Scale(complex(1/math.Sqrt(probZero), 0)))
	}

	measure1, err := LiftMatrix(P1, []int{qubit}, s.nQubits)
	if err != nil {
		return 0, err
	}
	return 1, s.conjugate(measure1.Scale(complex(1/math.Sqrt(1-probZero), 0)))
}

// SampleBitstrings samples with the configured TolFactor.
func (s *DensitySimulator) SampleBitstrings(n int) ([][]int, error) {
	return s.SampleBitstringsTol(n, s.config.TolFactor)
}

/*
SampleBitstringsTol draws n outcomes from the diagonal of ρ. Imaginary parts
up to machine epsilon times tolFactor are dropped and negative rounding noise
is clamped to zero before renormalizing. ρ is not modified.
*/
func (s *DensitySimulator) SampleBitstringsTol(n int, tolFactor float64) (samples [][]int, err error) {
	defer s.metrics.record(OpSample, time.Now(), &err)

	if s.rng == nil {
		return nil, ErrMissingRandomSource
	}
	probs, err := diagonalProbabilities(s.density, tolFactor)
	if err != nil {
		return nil, err
	}
	if samples, err = sampleBitstrings(s.rng, probs, s.nQubits, n); err != nil {
		return nil, err
	}
	s.metrics.recordShots(n)
	return samples, nil
}

/*
DoPostGateNoise applies the named channel to every listed qubit, one qubit at
a time: ρ ← Σ_k K_k ρ K_k† with each K_k lifted onto that qubit alone. Several
qubits therefore get independent single-qubit noise, never a joint channel.

A probability within NoiseEpsilon of zero leaves ρ untouched and logs a
warning instead.
*/
func (s *DensitySimulator) DoPostGateNoise(noiseType string, prob float64, qubits []int) (err error) {
	defer s.metrics.record(OpNoise, time.Now(), &err)

	if _, err = s.noise.lookup(noiseType); err != nil {
		return err
	}
	if math.Abs(prob) <= s.config.NoiseEpsilon {
		s.logger.Warn("Skipping post-gate noise because probability is close to 0",
			"noise", noiseType, "prob", prob)
		s.metrics.recordSkippedNoise()
		return nil
	}

	kraus, err := s.noise.KrausOperators(noiseType, prob)
	if err != nil {
		return err
	}
	for _, k := range kraus {
		if k.Rows != 2 || k.Cols != 2 {
			return errors.Wrapf(ErrDimensionMismatch, "%s Kraus operator is %dx%d, want 2x2", noiseType, k.Rows, k.Cols)
		}
	}
	for _, q := range qubits {
		if err = checkQubit(q, s.nQubits); err != nil {
			return err
		}
	}

	for _, q := range qubits {
		dim := dimension(s.nQubits)
		next := NewMatrix(dim, dim, nil)

		for _, k := range kraus {
			lifted, err := LiftMatrix(k, []int{q}, s.nQubits)
			if err != nil {
				return err
			}
			term, err := s.density.Sandwich(lifted)
			if err != nil {
				return err
			}
			cmplxs.Add(next.Data, term.Data)
		}

		s.density = next
	}

	return nil
}

func (s *DensitySimulator) Expectation(obs Observable) (complex128, error) {
	return 0, errors.Wrap(ErrNotImplemented, "expectation on a density matrix")
}

// Reset restores ρ to the configured initial state.
func (s *DensitySimulator) Reset() {
	defer s.metrics.record(OpReset, time.Now(), nil)

	s.density = s.initialDensity.Clone()
}
