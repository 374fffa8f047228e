package qsim

import (
	"fmt"
	"math/cmplx"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/cmplxs"
)

/*
Matrix is a dense, row-major complex matrix. It carries operators (gates,
projectors, Kraus operators) and density matrices. Like gonum's mat.Dense,
the constructors panic on malformed backing data since that is a programmer
error; shape mismatches between operands at the API boundary are returned as
ErrDimensionMismatch instead.
*/
type Matrix struct {
	Rows int
	Cols int
	Data []complex128
}

// NewMatrix wraps data as a rows x cols matrix. A nil data slice allocates
// a zero matrix.
func NewMatrix(rows, cols int, data []complex128) *Matrix {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("qsim: bad matrix shape %dx%d", rows, cols))
	}
	if data == nil {
		data = make([]complex128, rows*cols)
	}
	if len(data) != rows*cols {
		panic(fmt.Sprintf("qsim: %d elements for a %dx%d matrix", len(data), rows, cols))
	}
	return &Matrix{Rows: rows, Cols: cols, Data: data}
}

// NewMatrixFromRows copies a slice of equal-length rows into a Matrix.
func NewMatrixFromRows(rows [][]complex128) *Matrix {
	if len(rows) == 0 {
		panic("qsim: empty matrix")
	}
	m := NewMatrix(len(rows), len(rows[0]), nil)
	for i, row := range rows {
		if len(row) != m.Cols {
			panic(fmt.Sprintf("qsim: ragged matrix row %d", i))
		}
		copy(m.Row(i), row)
	}
	return m
}

func Identity(n int) *Matrix {
	m := NewMatrix(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

func (m *Matrix) At(i, j int) complex128 {
	return m.Data[i*m.Cols+j]
}

func (m *Matrix) Set(i, j int, v complex128) {
	m.Data[i*m.Cols+j] = v
}

// Row returns a view of row i; writes go through to the matrix.
func (m *Matrix) Row(i int) []complex128 {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}

func (m *Matrix) IsSquare() bool {
	return m.Rows == m.Cols
}

func (m *Matrix) Clone() *Matrix {
	data := make([]complex128, len(m.Data))
	copy(data, m.Data)
	return &Matrix{Rows: m.Rows, Cols: m.Cols, Data: data}
}

// Mul returns m·b.
func (m *Matrix) Mul(b *Matrix) (*Matrix, error) {
	if m.Cols != b.Rows {
		return nil, errors.Wrapf(ErrDimensionMismatch, "multiply %dx%d by %dx%d", m.Rows, m.Cols, b.Rows, b.Cols)
	}
	out := NewMatrix(m.Rows, b.Cols, nil)
	for i := 0; i < m.Rows; i++ {
		dst := out.Row(i)
		for k, a := range m.Row(i) {
			if a == 0 {
				continue
			}
			cmplxs.AddScaled(dst, a, b.Row(k))
		}
	}
	return out, nil
}

// MulVec returns m·v.
func (m *Matrix) MulVec(v []complex128) ([]complex128, error) {
	if m.Cols != len(v) {
		return nil, errors.Wrapf(ErrDimensionMismatch, "multiply %dx%d by vector of %d", m.Rows, m.Cols, len(v))
	}
	out := make([]complex128, m.Rows)
	for i := range out {
		var sum complex128
		for j, a := range m.Row(i) {
			sum += a * v[j]
		}
		out[i] = sum
	}
	return out, nil
}

// Dagger returns the conjugate transpose.
func (m *Matrix) Dagger() *Matrix {
	out := NewMatrix(m.Cols, m.Rows, nil)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out.Set(j, i, cmplx.Conj(m.At(i, j)))
		}
	}
	return out
}

// Kron returns the tensor product m ⊗ b.
func (m *Matrix) Kron(b *Matrix) *Matrix {
	out := NewMatrix(m.Rows*b.Rows, m.Cols*b.Cols, nil)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			a := m.At(i, j)
			if a == 0 {
				continue
			}
			for k := 0; k < b.Rows; k++ {
				for l := 0; l < b.Cols; l++ {
					out.Set(i*b.Rows+k, j*b.Cols+l, a*b.At(k, l))
				}
			}
		}
	}
	return out
}

func (m *Matrix) Trace() complex128 {
	var tr complex128
	for i := 0; i < m.Rows && i < m.Cols; i++ {
		tr += m.At(i, i)
	}
	return tr
}

// Scale returns c·m.
func (m *Matrix) Scale(c complex128) *Matrix {
	out := m.Clone()
	cmplxs.Scale(c, out.Data)
	return out
}

// Sandwich returns k·m·k†, the conjugation used for gate application,
// measurement collapse and Kraus channels on density matrices.
func (m *Matrix) Sandwich(k *Matrix) (*Matrix, error) {
	left, err := k.Mul(m)
	if err != nil {
		return nil, err
	}
	return left.Mul(k.Dagger())
}

// EqualApprox reports whether m and b have the same shape and every element
// is within tol.
func (m *Matrix) EqualApprox(b *Matrix, tol float64) bool {
	if m.Rows != b.Rows || m.Cols != b.Cols {
		return false
	}
	return cmplxs.EqualApprox(m.Data, b.Data, tol)
}

func (m *Matrix) String() string {
	return fmt.Sprintf("Matrix(%dx%d)%v", m.Rows, m.Cols, m.Data)
}
