package qsim

import (
	"math/rand/v2"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// machineEpsilon is the float64 spacing at 1.0.
const machineEpsilon = 0x1p-52

/*
sampleBitstrings draws n basis states from the categorical distribution
probs and returns them as rows with qubit 0 in column 0. probs is not
required to be normalized.
*/
func sampleBitstrings(rng *rand.Rand, probs []float64, nQubits, n int) ([][]int, error) {
	if rng == nil {
		return nil, ErrMissingRandomSource
	}
	if n < 0 {
		return nil, errors.Errorf("qsim: cannot draw %d samples", n)
	}
	if floats.Sum(probs) <= 0 {
		return nil, errors.Wrap(ErrInvalidState, "state carries no probability mass")
	}

	patterns := AllBitstrings(nQubits)
	dist := distuv.NewCategorical(probs, rng)

	out := make([][]int, n)
	for i := range out {
		out[i] = reversed(patterns[int(dist.Rand())])
	}
	return out, nil
}

/*
diagonalProbabilities reads the diagonal of a density matrix as a probability
vector. Entries whose imaginary part is within machineEpsilon*tolFactor are
taken as real, negative rounding noise is clamped to zero, and the result is
renormalized.
*/
func diagonalProbabilities(density *Matrix, tolFactor float64) ([]float64, error) {
	tol := machineEpsilon * tolFactor
	probs := make([]float64, density.Rows)

	for i := range probs {
		d := density.At(i, i)
		if imag(d) > tol || imag(d) < -tol {
			return nil, errors.Wrapf(ErrInvalidState, "diagonal entry %d is %v, not real within %g", i, d, tol)
		}
		if p := real(d); p > 0 {
			probs[i] = p
		}
	}

	total := floats.Sum(probs)
	if total <= 0 {
		return nil, errors.Wrap(ErrInvalidState, "density matrix carries no probability mass")
	}
	floats.Scale(1/total, probs)
	return probs, nil
}

// CountBitstrings tallies samples keyed by their qubit-0-first string form.
func CountBitstrings(samples [][]int) map[string]int {
	counts := make(map[string]int)
	buf := make([]byte, 0, 16)
	for _, row := range samples {
		buf = buf[:0]
		for _, bit := range row {
			buf = append(buf, byte('0'+bit))
		}
		counts[string(buf)]++
	}
	return counts
}
