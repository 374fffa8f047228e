// wavefunction.go
package qsim

import (
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/theapemachine/errnie"
	"gonum.org/v1/gonum/cmplxs"
)

/*
WavefunctionSimulator stores a pure state as a flat vector of 2^n amplitudes
over the computational basis, ordered lexicographically with qubit 0 as the
rightmost bit. It favours readability over speed: every operator is lifted to
a full 2^n x 2^n matrix before it is applied.
*/
type WavefunctionSimulator struct {
	nQubits int
	rng     *rand.Rand
	wf      []complex128
	options
}

func NewWavefunctionSimulator(nQubits int, rng *rand.Rand, opts ...Option) (*WavefunctionSimulator, error) {
	if err := checkQubitCount(nQubits); err != nil {
		return nil, err
	}

	errnie.Info("NewWavefunctionSimulator - qubits %d, stochastic %v", nQubits, rng != nil)

	s := &WavefunctionSimulator{
		nQubits: nQubits,
		rng:     rng,
		wf:      make([]complex128, dimension(nQubits)),
		options: buildOptions(opts),
	}
	s.wf[0] = 1
	return s, nil
}

func (s *WavefunctionSimulator) simulator() {}

func (s *WavefunctionSimulator) NumQubits() int {
	return s.nQubits
}

// Wavefunction returns a copy of the amplitudes.
func (s *WavefunctionSimulator) Wavefunction() []complex128 {
	out := make([]complex128, len(s.wf))
	copy(out, s.wf)
	return out
}

// Probabilities returns |amplitude|² for every basis state.
func (s *WavefunctionSimulator) Probabilities() []float64 {
	probs := make([]float64, len(s.wf))
	cmplxs.Abs(probs, s.wf)
	for i, a := range probs {
		probs[i] = a * a
	}
	return probs
}

func (s *WavefunctionSimulator) DoGate(gate Gate) (err error) {
	defer s.metrics.record(OpGate, time.Now(), &err)

	unitary, err := LiftGate(gate, s.nQubits)
	if err != nil {
		return err
	}
	return s.apply(unitary)
}

func (s *WavefunctionSimulator) DoGateMatrix(m *Matrix, qubits []int) (err error) {
	defer s.metrics.record(OpGate, time.Now(), &err)

	unitary, err := LiftMatrix(m, qubits, s.nQubits)
	if err != nil {
		return err
	}
	return s.apply(unitary)
}

func (s *WavefunctionSimulator) apply(unitary *Matrix) error {
	wf, err := unitary.MulVec(s.wf)
	if err != nil {
		return err
	}
	s.wf = wf
	return nil
}

/*
DoMeasurement measures qubit in the computational basis. The probability of
reading 0 is <ψ|P0|ψ> with P0 the projector onto the qubit's zero subspace;
a uniform draw below it collapses the state with P0/√p0 and returns 0,
otherwise the state collapses with P1/√(1-p0) and 1 is returned.
*/
func (s *WavefunctionSimulator) DoMeasurement(qubit int) (bit int, err error) {
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
	projected, err := measure0.MulVec(s.wf)
	if err != nil {
		return 0, err
	}
	probZero := real(cmplxs.Dot(projected, projected))

	if s.rng.Float64() < probZero {
		cmplxs.Scale(complex(1/math.Sqrt(probZero), 0), projected)
		s.wf = projected
		return 0, nil
	}

	measure1, err := LiftMatrix(P1, []int{qubit}, s.nQubits)
	if err != nil {
		return 0, err
	}
	if projected, err = measure1.MulVec(s.wf); err != nil {
		return 0, err
	}
	cmplxs.Scale(complex(1/math.Sqrt(1-probZero), 0), projected)
	s.wf = projected
	return 1, nil
}

// SampleBitstrings samples from |amplitude|² without collapsing the state.
func (s *WavefunctionSimulator) SampleBitstrings(n int) (samples [][]int, err error) {
	defer s.metrics.record(OpSample, time.Now(), &err)

	if s.rng == nil {
		return nil, ErrMissingRandomSource
	}
	if samples, err = sampleBitstrings(s.rng, s.Probabilities(), s.nQubits, n); err != nil {
		return nil, err
	}
	s.metrics.recordShots(n)
	return samples, nil
}

/*
Expectation computes Σ c_t <ψ|P_t|ψ> over the Pauli terms of obs. Each term's
Paulis are lifted one qubit at a time and applied to a copy of the state.
*/
func (s *WavefunctionSimulator) Expectation(obs Observable) (value complex128, err error) {
	defer s.metrics.record(OpExpectation, time.Now(), &err)

	for _, term := range obs.Terms() {
		psi := s.Wavefunction()

		qubits := make([]int, 0, len(term.Ops))
		for q := range term.Ops {
			qubits = append(qubits, q)
		}
		sort.Ints(qubits)

		for _, q := range qubits {
			op := term.Ops[q]
			if op == PauliI {
				continue
			}
			lifted, err := liftedPauli(op, q, s.nQubits)
			if err != nil {
				return 0, err
			}
			if psi, err = lifted.MulVec(psi); err != nil {
				return 0, err
			}
		}

		value += term.Coefficient * cmplxs.Dot(s.wf, psi)
	}

	return value, nil
}

// Reset returns to |00...0>.
func (s *WavefunctionSimulator) Reset() {
	defer s.metrics.record(OpReset, time.Now(), nil)

	for i := range s.wf {
		s.wf[i] = 0
	}
	s.wf[0] = 1
}

func (s *WavefunctionSimulator) DoPostGateNoise(noiseType string, prob float64, qubits []int) error {
	return errors.Wrapf(ErrUnsupportedOperation, "%s noise on a pure state", noiseType)
}
