package qsim

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPauliTerm(t *testing.T) {
	Convey("Given single-qubit Pauli terms", t, func() {
		x0 := NewPauliTerm(PauliX, 0, 1)
		y0 := NewPauliTerm(PauliY, 0, 1)
		z1 := NewPauliTerm(PauliZ, 1, 2)

		Convey("X·Y on one qubit is iZ", func() {
			product := x0.Times(y0)
			So(product.Coefficient, ShouldEqual, complex128(1i))
			So(product.Ops, ShouldResemble, map[int]PauliOp{0: PauliZ})
		})

		Convey("Y·X on one qubit is -iZ", func() {
			product := y0.Times(x0)
			So(product.Coefficient, ShouldEqual, complex128(-1i))
			So(product.Ops[0], ShouldEqual, PauliZ)
		})

		Convey("X·X cancels to the identity", func() {
			product := x0.Times(x0)
			So(product.Coefficient, ShouldEqual, complex128(1))
			So(product.Ops, ShouldBeEmpty)
		})

		Convey("Paulis on different qubits are kept side by side", func() {
			product := x0.Times(z1)
			So(product.Coefficient, ShouldEqual, complex128(2))
			So(product.Ops, ShouldResemble, map[int]PauliOp{0: PauliX, 1: PauliZ})
			So(product.String(), ShouldEqual, "(2+0i)*X0*Z1")
		})

		Convey("An identity term has no factors", func() {
			So(NewPauliTerm(PauliI, 3, 0.5).Ops, ShouldBeEmpty)
		})

		Convey("Plus collects terms into a sum", func() {
			sum := x0.Plus(z1).Plus(y0)
			So(len(sum.Terms()), ShouldEqual, 3)
			So(sum[1].Ops[1], ShouldEqual, PauliZ)
		})
	})
}
