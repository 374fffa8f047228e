package qsim

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// PauliOp is a single-qubit Pauli operator label.
type PauliOp string

const (
	PauliI PauliOp = "I"
	PauliX PauliOp = "X"
	PauliY PauliOp = "Y"
	PauliZ PauliOp = "Z"
)

// Observable is anything that can be written as a weighted sum of Pauli terms.
type Observable interface {
	Terms() []PauliTerm
}

/*
PauliTerm is a coefficient times a tensor product of single-qubit Paulis.
Qubits missing from Ops carry the identity.
*/
type PauliTerm struct {
	Coefficient complex128
	Ops         map[int]PauliOp
}

// PauliSum is a weighted sum of Pauli terms.
type PauliSum []PauliTerm

// NewPauliTerm returns coeff * op on qubit.
func NewPauliTerm(op PauliOp, qubit int, coeff complex128) PauliTerm {
	term := PauliTerm{Coefficient: coeff, Ops: map[int]PauliOp{}}
	if op != PauliI {
		term.Ops[qubit] = op
	}
	return term
}

// Terms lets a single term be used wherever an Observable is expected.
func (t PauliTerm) Terms() []PauliTerm {
	return []PauliTerm{t}
}

// Times multiplies two terms, reducing Paulis that share a qubit.
func (t PauliTerm) Times(other PauliTerm) PauliTerm {
	out := PauliTerm{
		Coefficient: t.Coefficient * other.Coefficient,
		Ops:         make(map[int]PauliOp, len(t.Ops)+len(other.Ops)),
	}
	for q, op := range t.Ops {
		out.Ops[q] = op
	}
	for q, op := range other.Ops {
		phase, product := pauliProduct(out.Ops[q], op)
		out.Coefficient *= phase
		if product == PauliI {
			delete(out.Ops, q)
			continue
		}
		out.Ops[q] = product
	}
	return out
}

// Plus returns the sum of two terms.
func (t PauliTerm) Plus(other Observable) PauliSum {
	return PauliSum{t}.Plus(other)
}

func (t PauliTerm) String() string {
	qubits := make([]int, 0, len(t.Ops))
	for q := range t.Ops {
		qubits = append(qubits, q)
	}
	sort.Ints(qubits)

	parts := []string{fmt.Sprintf("%v", t.Coefficient)}
	for _, q := range qubits {
		parts = append(parts, fmt.Sprintf("%s%d", t.Ops[q], q))
	}
	return strings.Join(parts, "*")
}

func (s PauliSum) Terms() []PauliTerm {
	return s
}

func (s PauliSum) Plus(other Observable) PauliSum {
	out := make(PauliSum, 0, len(s)+len(other.Terms()))
	out = append(out, s...)
	return append(out, other.Terms()...)
}

func (s PauliSum) String() string {
	parts := make([]string, len(s))
	for i, term := range s {
		parts[i] = term.String()
	}
	return strings.Join(parts, " + ")
}

// pauliProduct returns phase and P such that a·b = phase·P.
func pauliProduct(a, b PauliOp) (complex128, PauliOp) {
	switch {
	case a == "" || a == PauliI:
		return 1, b
	case b == PauliI:
		return 1, a
	case a == b:
		return 1, PauliI
	}

	cyclic := map[[2]PauliOp]PauliOp{
		{PauliX, PauliY}: PauliZ,
		{PauliY, PauliZ}: PauliX,
		{PauliZ, PauliX}: PauliY,
	}
	if p, ok := cyclic[[2]PauliOp{a, b}]; ok {
		return 1i, p
	}
	return -1i, cyclic[[2]PauliOp{b, a}]
}

// liftedPauli returns the full-space matrix of one Pauli factor.
func liftedPauli(op PauliOp, qubit, nQubits int) (*Matrix, error) {
	switch op {
	case PauliI, PauliX, PauliY, PauliZ:
	default:
		return nil, errors.Wrapf(ErrUnsupportedOperation, "unknown Pauli operator %q", op)
	}
	return LiftMatrix(pauli(string(op)), []int{qubit}, nQubits)
}
