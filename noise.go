package qsim

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// KrausFamily builds the Kraus operators of a noise channel for probability p.
type KrausFamily func(p float64) []*Matrix

/*
NoiseChannels is a registry of named single-qubit noise channels. Simulators
resolve the channel named in DoPostGateNoise against their registry and only
ever consume the resulting operator set.
*/
type NoiseChannels map[string]KrausFamily

// DefaultNoiseChannels returns a fresh registry holding the standard channels.
func DefaultNoiseChannels() NoiseChannels {
	return NoiseChannels{
		"relaxation":    relaxationOperators,
		"dephasing":     dephasingOperators,
		"depolarizing":  depolarizingOperators,
		"phase_flip":    pauliChannel("Z"),
		"bit_flip":      pauliChannel("X"),
		"bitphase_flip": pauliChannel("Y"),
	}
}

// Register adds or replaces a channel.
func (nc NoiseChannels) Register(name string, family KrausFamily) {
	nc[name] = family
}

func (nc NoiseChannels) Names() []string {
	names := make([]string, 0, len(nc))
	for name := range nc {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (nc NoiseChannels) lookup(name string) (KrausFamily, error) {
	family, ok := nc[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedOperation, "unknown noise channel %q", name)
	}
	return family, nil
}

// KrausOperators resolves a channel and builds its operators for p.
func (nc NoiseChannels) KrausOperators(name string, p float64) ([]*Matrix, error) {
	family, err := nc.lookup(name)
	if err != nil {
		return nil, err
	}
	if p < 0 || p > 1 || math.IsNaN(p) {
		return nil, errors.Wrapf(ErrInvalidProbability, "%s noise with p=%v", name, p)
	}
	return family(p), nil
}

// relaxation is amplitude damping towards |0⟩.
func relaxationOperators(p float64) []*Matrix {
	return []*Matrix{
		NewMatrixFromRows([][]complex128{{1, 0}, {0, real2c(math.Sqrt(1 - p))}}),
		NewMatrixFromRows([][]complex128{{0, real2c(math.Sqrt(p))}, {0, 0}}),
	}
}

func dephasingOperators(p float64) []*Matrix {
	return []*Matrix{
		pauli("I").Scale(real2c(math.Sqrt(1 - p/2))),
		pauli("Z").Scale(real2c(math.Sqrt(p / 2))),
	}
}

func depolarizingOperators(p float64) []*Matrix {
	share := real2c(math.Sqrt(p / 3))
	return []*Matrix{
		pauli("I").Scale(real2c(math.Sqrt(1 - p))),
		pauli("X").Scale(share),
		pauli("Y").Scale(share),
		pauli("Z").Scale(share),
	}
}

// pauliChannel applies the given Pauli with probability p.
func pauliChannel(name string) KrausFamily {
	return func(p float64) []*Matrix {
		return []*Matrix{
			pauli("I").Scale(real2c(math.Sqrt(1 - p))),
			pauli(name).Scale(real2c(math.Sqrt(p))),
		}
	}
}

func pauli(name string) *Matrix {
	m, err := GateMatrix(name)
	if err != nil {
		panic(err)
	}
	return m
}

func real2c(x float64) complex128 {
	return complex(x, 0)
}
