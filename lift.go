package qsim

import (
	"github.com/pkg/errors"
)

/*
LiftMatrix embeds an operator acting on the given qubits into the full
2^n-dimensional space of nQubits qubits.

The operator is tensored with the identity over every untouched qubit, and the
basis of the result is then permuted so that qubits[0] is the most significant
bit of the operator's own index and qubits[len(qubits)-1] the least. The
qubits need not be sorted or contiguous. Nothing here cares about unitarity:
gates, measurement projectors and Kraus operators are lifted the same way.
*/
func LiftMatrix(m *Matrix, qubits []int, nQubits int) (*Matrix, error) {
	if err := checkOperator(m, qubits, nQubits); err != nil {
		return nil, err
	}

	k := len(qubits)
	rest := untouchedQubits(qubits, nQubits)
	full := m.Kron(Identity(dimension(nQubits - k)))

	perm := basisPermutation(qubits, rest, nQubits)
	dim := dimension(nQubits)
	out := NewMatrix(dim, dim, nil)

	for row := 0; row < dim; row++ {
		src := full.Row(perm[row])
		dst := out.Row(row)
		for col := 0; col < dim; col++ {
			dst[col] = src[perm[col]]
		}
	}

	return out, nil
}

// LiftGate resolves a named gate and lifts it onto its qubits.
func LiftGate(gate Gate, nQubits int) (*Matrix, error) {
	m, err := GateMatrix(gate.Name, gate.Params...)
	if err != nil {
		return nil, err
	}
	return LiftMatrix(m, gate.Qubits, nQubits)
}

/*
basisPermutation maps every full-space basis index to its index in the
arranged space m ⊗ I, where the acted-on qubits occupy the high bits in the
declared order and the untouched qubits fill the low bits in ascending order.
*/
func basisPermutation(qubits, rest []int, nQubits int) []int {
	perm := make([]int, dimension(nQubits))
	low := len(rest)

	for index := range perm {
		arranged := 0
		for j, q := range qubits {
			arranged |= qubitBit(index, q) << (nQubits - 1 - j)
		}
		for j, q := range rest {
			arranged |= qubitBit(index, q) << (low - 1 - j)
		}
		perm[index] = arranged
	}

	return perm
}

func untouchedQubits(qubits []int, nQubits int) []int {
	touched := make(map[int]struct{}, len(qubits))
	for _, q := range qubits {
		touched[q] = struct{}{}
	}

	rest := make([]int, 0, nQubits-len(qubits))
	for q := 0; q < nQubits; q++ {
		if _, ok := touched[q]; !ok {
			rest = append(rest, q)
		}
	}
	return rest
}

func checkOperator(m *Matrix, qubits []int, nQubits int) error {
	if m == nil {
		return errors.Wrap(ErrDimensionMismatch, "nil operator")
	}
	if len(qubits) == 0 || len(qubits) > nQubits {
		return errors.Wrapf(ErrDimensionMismatch, "operator on %d qubits in a %d-qubit system", len(qubits), nQubits)
	}
	if !m.IsSquare() || m.Rows != dimension(len(qubits)) || len(m.Data) != m.Rows*m.Cols {
		return errors.Wrapf(ErrDimensionMismatch, "%dx%d operator for %d qubits", m.Rows, m.Cols, len(qubits))
	}

	seen := make(map[int]struct{}, len(qubits))
	for _, q := range qubits {
		if q < 0 || q >= nQubits {
			return errors.Wrapf(ErrDimensionMismatch, "qubit %d outside [0, %d)", q, nQubits)
		}
		if _, dup := seen[q]; dup {
			return errors.Wrapf(ErrDimensionMismatch, "qubit %d listed twice", q)
		}
		seen[q] = struct{}{}
	}

	return nil
}

// checkQubit validates a single qubit index against the system size.
func checkQubit(qubit, nQubits int) error {
	if qubit < 0 || qubit >= nQubits {
		return errors.Wrapf(ErrDimensionMismatch, "qubit %d outside [0, %d)", qubit, nQubits)
	}
	return nil
}
