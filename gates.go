package qsim

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/pkg/errors"
)

// Gate is a named gate applied to an ordered list of qubits.
type Gate struct {
	Name   string
	Params []float64
	Qubits []int
}

type gateDef struct {
	qubits int
	params int
	build  func(params []float64) *Matrix
}

var (
	// P0 projects a single qubit onto |0⟩.
	P0 = NewMatrixFromRows([][]complex128{{1, 0}, {0, 0}})
	// P1 projects a single qubit onto |1⟩.
	P1 = NewMatrixFromRows([][]complex128{{0, 0}, {0, 1}})
)

var gateTable = map[string]gateDef{
	"I": fixed(1, [][]complex128{{1, 0}, {0, 1}}),
	"X": fixed(1, [][]complex128{{0, 1}, {1, 0}}),
	"Y": fixed(1, [][]complex128{{0, -1i}, {1i, 0}}),
	"Z": fixed(1, [][]complex128{{1, 0}, {0, -1}}),
	// H = 1/√2 * [1  1]
	//           [1 -1]
	"H": fixed(1, [][]complex128{
		{complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0)},
		{complex(1/math.Sqrt2, 0), complex(-1/math.Sqrt2, 0)},
	}),
	"S": fixed(1, [][]complex128{{1, 0}, {0, 1i}}),
	"T": fixed(1, [][]complex128{{1, 0}, {0, cmplx.Exp(complex(0, math.Pi/4))}}),

	"PHASE": angled(1, func(phi float64) [][]complex128 {
		return [][]complex128{{1, 0}, {0, phase(phi)}}
	}),
	"RX": angled(1, func(phi float64) [][]complex128 {
		c, s := math.Cos(phi/2), math.Sin(phi/2)
		return [][]complex128{{complex(c, 0), complex(0, -s)}, {complex(0, -s), complex(c, 0)}}
	}),
	"RY": angled(1, func(phi float64) [][]complex128 {
		c, s := math.Cos(phi/2), math.Sin(phi/2)
		return [][]complex128{{complex(c, 0), complex(-s, 0)}, {complex(s, 0), complex(c, 0)}}
	}),
	"RZ": angled(1, func(phi float64) [][]complex128 {
		return [][]complex128{{phase(-phi / 2), 0}, {0, phase(phi / 2)}}
	}),

	"CZ":   fixed(2, diagonal(1, 1, 1, -1)),
	"CNOT": fixed(2, permutation(0, 1, 3, 2)),
	"SWAP": fixed(2, permutation(0, 2, 1, 3)),
	"ISWAP": fixed(2, [][]complex128{
		{1, 0, 0, 0},
		{0, 0, 1i, 0},
		{0, 1i, 0, 0},
		{0, 0, 0, 1},
	}),

	"CPHASE00": angled(2, func(phi float64) [][]complex128 { return diagonal(phase(phi), 1, 1, 1) }),
	"CPHASE01": angled(2, func(phi float64) [][]complex128 { return diagonal(1, phase(phi), 1, 1) }),
	"CPHASE10": angled(2, func(phi float64) [][]complex128 { return diagonal(1, 1, phase(phi), 1) }),
	"CPHASE":   angled(2, func(phi float64) [][]complex128 { return diagonal(1, 1, 1, phase(phi)) }),
	"PSWAP": angled(2, func(phi float64) [][]complex128 {
		return [][]complex128{
			{1, 0, 0, 0},
			{0, 0, phase(phi), 0},
			{0, phase(phi), 0, 0},
			{0, 0, 0, 1},
		}
	}),

	"CCNOT": fixed(3, permutation(0, 1, 2, 3, 4, 5, 7, 6)),
	"CSWAP": fixed(3, permutation(0, 1, 2, 3, 4, 6, 5, 7)),
}

/*
GateMatrix returns the matrix of a named gate. The qubit order of the matrix
follows the gate's qubit list: for CNOT the first qubit is the control.
*/
func GateMatrix(name string, params ...float64) (*Matrix, error) {
	def, ok := gateTable[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedOperation, "unknown gate %q", name)
	}
	if len(params) != def.params {
		return nil, errors.Wrapf(ErrUnsupportedOperation, "gate %s takes %d parameters, got %d", name, def.params, len(params))
	}
	return def.build(params), nil
}

// GateArity returns how many qubits a named gate acts on.
func GateArity(name string) (int, bool) {
	def, ok := gateTable[name]
	return def.qubits, ok
}

// GateNames lists the registered gates in sorted order.
func GateNames() []string {
	names := make([]string, 0, len(gateTable))
	for name := range gateTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func NewGate(name string, qubits []int, params ...float64) Gate {
	return Gate{Name: name, Params: params, Qubits: qubits}
}

func H(q int) Gate       { return NewGate("H", []int{q}) }
func X(q int) Gate       { return NewGate("X", []int{q}) }
func Y(q int) Gate       { return NewGate("Y", []int{q}) }
func Z(q int) Gate       { return NewGate("Z", []int{q}) }
func S(q int) Gate       { return NewGate("S", []int{q}) }
func T(q int) Gate       { return NewGate("T", []int{q}) }
func CNOT(c, t int) Gate { return NewGate("CNOT", []int{c, t}) }
func CZ(c, t int) Gate   { return NewGate("CZ", []int{c, t}) }
func SWAP(a, b int) Gate { return NewGate("SWAP", []int{a, b}) }

func RX(angle float64, q int) Gate { return NewGate("RX", []int{q}, angle) }
func RY(angle float64, q int) Gate { return NewGate("RY", []int{q}, angle) }
func RZ(angle float64, q int) Gate { return NewGate("RZ", []int{q}, angle) }

func CCNOT(c1, c2, t int) Gate { return NewGate("CCNOT", []int{c1, c2, t}) }

func fixed(qubits int, rows [][]complex128) gateDef {
	m := NewMatrixFromRows(rows)
	return gateDef{
		qubits: qubits,
		build:  func([]float64) *Matrix { return m.Clone() },
	}
}

func angled(qubits int, rows func(phi float64) [][]complex128) gateDef {
	return gateDef{
		qubits: qubits,
		params: 1,
		build: func(params []float64) *Matrix {
			return NewMatrixFromRows(rows(params[0]))
		},
	}
}

func phase(phi float64) complex128 {
	return cmplx.Exp(complex(0, phi))
}

func diagonal(entries ...complex128) [][]complex128 {
	rows := make([][]complex128, len(entries))
	for i, v := range entries {
		rows[i] = make([]complex128, len(entries))
		rows[i][i] = v
	}
	return rows
}

// permutation builds the matrix sending basis state target[i] to row i.
func permutation(target ...int) [][]complex128 {
	rows := make([][]complex128, len(target))
	for i, j := range target {
		rows[i] = make([]complex128, len(target))
		rows[i][j] = 1
	}
	return rows
}
