package qsim

import (
	"fmt"
	"math/cmplx"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

/*
ValidateState checks that a candidate density matrix is a legal quantum
state. The checks run in order and stop at the first failure:

 1. Hermitian: every element within tolerance of the conjugate transpose.
 2. Trace one.
 3. Positive semi-definite: no eigenvalue below -atol.

Tolerances follow allclose semantics, |a - b| <= atol + rtol*|b|. A nil
return means the state passed; otherwise the error is an *InvalidStateError
naming the violated invariant.
*/
func ValidateState(m *Matrix, rtol, atol float64) error {
	if m == nil || !m.IsSquare() {
		return &InvalidStateError{Reason: NotHermitian, Detail: "matrix is not square"}
	}

	n := m.Rows
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a, b := m.At(i, j), cmplx.Conj(m.At(j, i))
			if !closeTo(a, b, rtol, atol) {
				return &InvalidStateError{
					Reason: NotHermitian,
					Detail: fmt.Sprintf("element (%d,%d)=%v, conjugate of (%d,%d)=%v", i, j, a, j, i, b),
				}
			}
		}
	}

	if tr := m.Trace(); !closeTo(tr, 1, rtol, atol) {
		return &InvalidStateError{Reason: NotTraceOne, Detail: fmt.Sprintf("trace is %v", tr)}
	}

	evals, err := hermitianEigenvalues(m)
	if err != nil {
		return &InvalidStateError{Reason: NegativeEigenvalue, Detail: err.Error()}
	}
	for _, ev := range evals {
		if ev < -atol {
			return &InvalidStateError{
				Reason: NegativeEigenvalue,
				Detail: fmt.Sprintf("eigenvalue %g below -%g", ev, atol),
			}
		}
	}

	return nil
}

// IsValidState reports whether ValidateState accepts m.
func IsValidState(m *Matrix, rtol, atol float64) bool {
	return ValidateState(m, rtol, atol) == nil
}

func closeTo(a, b complex128, rtol, atol float64) bool {
	return cmplx.Abs(a-b) <= atol+rtol*cmplx.Abs(b)
}

/*
hermitianEigenvalues returns the eigenvalues of the Hermitian part of m.
A Hermitian H = A + iB has the same spectrum as the real symmetric matrix

	[ A  -B ]
	[ B   A ]

with every eigenvalue doubled, so gonum's symmetric solver does the work and
every other value is dropped.
*/
func hermitianEigenvalues(m *Matrix) ([]float64, error) {
	n := m.Rows
	sym := mat.NewSymDense(2*n, nil)

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			h := (m.At(i, j) + cmplx.Conj(m.At(j, i))) / 2
			a, b := real(h), imag(h)
			sym.SetSym(i, j, a)
			sym.SetSym(i+n, j+n, a)
			sym.SetSym(i, j+n, -b)
			if i != j {
				sym.SetSym(j, i+n, b)
			}
		}
	}

	var es mat.EigenSym
	if !es.Factorize(sym, false) {
		return nil, errors.New("eigendecomposition did not converge")
	}

	doubled := es.Values(nil)
	out := make([]float64, 0, n)
	for i := 0; i < len(doubled); i += 2 {
		out = append(out, doubled[i])
	}
	return out, nil
}
