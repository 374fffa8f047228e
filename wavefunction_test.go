package qsim

import (
	"errors"
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewWavefunctionSimulator(t *testing.T) {
	Convey("Given a qubit count", t, func() {
		Convey("When it is positive", func() {
			sim, err := NewWavefunctionSimulator(3, nil)
			So(err, ShouldBeNil)

			Convey("Then the state is |000>", func() {
				wf := sim.Wavefunction()
				So(len(wf), ShouldEqual, 8)
				So(wf[0], ShouldEqual, complex128(1))
				So(norm(wf), ShouldAlmostEqual, 1, tolerance)
				So(sim.NumQubits(), ShouldEqual, 3)
			})
		})

		Convey("When it is zero", func() {
			_, err := NewWavefunctionSimulator(0, nil)
			So(errors.Is(err, ErrInvalidQubitCount), ShouldBeTrue)
		})
	})
}

func TestWavefunctionGates(t *testing.T) {
	Convey("Given a three-qubit wavefunction", t, func() {
		sim, err := NewWavefunctionSimulator(3, newRNG(1))
		So(err, ShouldBeNil)

		circuit := []Gate{H(0), CNOT(0, 2), RX(0.3, 1), T(2), CCNOT(2, 0, 1), RY(1.1, 0), SWAP(1, 2), RZ(-0.4, 1)}

		Convey("When applying a sequence of unitaries", func() {
			for _, gate := range circuit {
				So(sim.DoGate(gate), ShouldBeNil)
				So(norm(sim.Wavefunction()), ShouldAlmostEqual, 1, tolerance)
			}
		})

		Convey("When applying a gate and then its inverse", func() {
			for _, gate := range circuit[:4] {
				So(sim.DoGate(gate), ShouldBeNil)
			}
			before := sim.Wavefunction()

			u := NewMatrixFromRows([][]complex128{
				{0.6, 0.8i},
				{0.8i, 0.6},
			})
			So(sim.DoGateMatrix(u, []int{1}), ShouldBeNil)
			So(sim.DoGateMatrix(u.Dagger(), []int{1}), ShouldBeNil)

			Convey("Then the state is restored", func() {
				after := sim.Wavefunction()
				So(vectorsClose(before, after, tolerance), ShouldBeTrue)
			})
		})

		Convey("When a gate names an unknown operation", func() {
			before := sim.Wavefunction()
			err := sim.DoGate(NewGate("FROB", []int{0}))

			Convey("Then it is unsupported and the state is unchanged", func() {
				So(errors.Is(err, ErrUnsupportedOperation), ShouldBeTrue)
				So(sim.Wavefunction(), ShouldResemble, before)
			})
		})

		Convey("When a matrix does not fit its qubits", func() {
			err := sim.DoGateMatrix(Identity(2), []int{0, 1})
			So(errors.Is(err, ErrDimensionMismatch), ShouldBeTrue)
		})

		Convey("When applying a non-unitary matrix", func() {
			So(sim.DoGateMatrix(Identity(2).Scale(2), []int{0}), ShouldBeNil)

			Convey("Then the norm is not corrected", func() {
				So(norm(sim.Wavefunction()), ShouldAlmostEqual, 2, tolerance)
			})
		})
	})
}

func TestWavefunctionMeasurement(t *testing.T) {
	Convey("Given a single qubit flipped to |1>", t, func() {
		sim, _ := NewWavefunctionSimulator(1, newRNG(7))
		So(sim.DoGate(X(0)), ShouldBeNil)

		Convey("Then measuring always returns 1", func() {
			for i := 0; i < 50; i++ {
				bit, err := sim.DoMeasurement(0)
				So(err, ShouldBeNil)
				So(bit, ShouldEqual, 1)
			}
		})
	})

	Convey("Given an equal superposition", t, func() {
		sim, _ := NewWavefunctionSimulator(1, newRNG(42))

		Convey("Then 10 000 measurements split 50/50 within 3 sigma", func() {
			zeros := 0
			for i := 0; i < 10000; i++ {
				sim.Reset()
				So(sim.DoGate(H(0)), ShouldBeNil)
				bit, err := sim.DoMeasurement(0)
				So(err, ShouldBeNil)
				if bit == 0 {
					zeros++
				}
			}
			So(math.Abs(float64(zeros)-5000), ShouldBeLessThan, 3*50)
		})

		Convey("Then a measurement collapses the state", func() {
			So(sim.DoGate(H(0)), ShouldBeNil)
			bit, err := sim.DoMeasurement(0)
			So(err, ShouldBeNil)

			wf := sim.Wavefunction()
			So(norm(wf), ShouldAlmostEqual, 1, tolerance)
			So(real(wf[bit])*real(wf[bit])+imag(wf[bit])*imag(wf[bit]), ShouldAlmostEqual, 1, tolerance)
		})
	})

	Convey("Given a Bell pair", t, func() {
		sim, _ := NewWavefunctionSimulator(2, newRNG(3))

		Convey("Then both qubits always read the same value", func() {
			for i := 0; i < 25; i++ {
				sim.Reset()
				So(sim.DoGate(H(0)), ShouldBeNil)
				So(sim.DoGate(CNOT(0, 1)), ShouldBeNil)

				first, err := sim.DoMeasurement(0)
				So(err, ShouldBeNil)
				second, err := sim.DoMeasurement(1)
				So(err, ShouldBeNil)
				So(second, ShouldEqual, first)
			}
		})
	})

	Convey("Given no random source", t, func() {
		sim, _ := NewWavefunctionSimulator(1, nil)

		Convey("Then stochastic operations fail", func() {
			_, err := sim.DoMeasurement(0)
			So(errors.Is(err, ErrMissingRandomSource), ShouldBeTrue)
			_, err = sim.SampleBitstrings(10)
			So(errors.Is(err, ErrMissingRandomSource), ShouldBeTrue)
		})
	})

	Convey("Given a qubit outside the system", t, func() {
		sim, _ := NewWavefunctionSimulator(1, newRNG(1))
		_, err := sim.DoMeasurement(3)
		So(errors.Is(err, ErrDimensionMismatch), ShouldBeTrue)
	})
}

func TestWavefunctionSampling(t *testing.T) {
	Convey("Given a Bell pair", t, func() {
		sim, _ := NewWavefunctionSimulator(2, newRNG(11))
		So(sim.DoGate(H(0)), ShouldBeNil)
		So(sim.DoGate(CNOT(0, 1)), ShouldBeNil)
		before := sim.Wavefunction()

		samples, err := sim.SampleBitstrings(2000)
		So(err, ShouldBeNil)
		counts := CountBitstrings(samples)

		Convey("Then only 00 and 11 appear, about equally", func() {
			So(len(samples), ShouldEqual, 2000)
			So(counts["01"]+counts["10"], ShouldEqual, 0)
			So(counts["00"], ShouldBeBetween, 850, 1150)
			So(counts["11"], ShouldBeBetween, 850, 1150)
		})

		Convey("Then the state is untouched", func() {
			So(sim.Wavefunction(), ShouldResemble, before)
			again, err := sim.SampleBitstrings(10)
			So(err, ShouldBeNil)
			So(len(again), ShouldEqual, 10)
			So(sim.Wavefunction(), ShouldResemble, before)
		})
	})

	Convey("Given qubit 0 flipped in a three-qubit register", t, func() {
		sim, _ := NewWavefunctionSimulator(3, newRNG(5))
		So(sim.DoGate(X(0)), ShouldBeNil)

		Convey("Then qubit 0 is reported in the first column", func() {
			samples, err := sim.SampleBitstrings(5)
			So(err, ShouldBeNil)
			for _, row := range samples {
				So(row, ShouldResemble, []int{1, 0, 0})
			}
		})
	})

	Convey("Given two simulators sharing a seed", t, func() {
		a, _ := NewWavefunctionSimulator(2, newRNG(99))
		b, _ := NewWavefunctionSimulator(2, newRNG(99))
		for _, sim := range []*WavefunctionSimulator{a, b} {
			So(sim.DoGate(H(0)), ShouldBeNil)
			So(sim.DoGate(H(1)), ShouldBeNil)
		}

		Convey("Then they draw identical samples", func() {
			first, _ := a.SampleBitstrings(100)
			second, _ := b.SampleBitstrings(100)
			So(first, ShouldResemble, second)
		})
	})
}

func TestWavefunctionExpectation(t *testing.T) {
	Convey("Given a single qubit", t, func() {
		sim, _ := NewWavefunctionSimulator(1, nil)
		z := NewPauliTerm(PauliZ, 0, 1)

		Convey("Then <0|Z|0> is +1", func() {
			value, err := sim.Expectation(z)
			So(err, ShouldBeNil)
			So(real(value), ShouldAlmostEqual, 1, tolerance)
			So(imag(value), ShouldAlmostEqual, 0, tolerance)
		})

		Convey("Then <1|Z|1> is -1", func() {
			So(sim.DoGate(X(0)), ShouldBeNil)
			value, err := sim.Expectation(z)
			So(err, ShouldBeNil)
			So(real(value), ShouldAlmostEqual, -1, tolerance)
		})

		Convey("Then <+|X|+> is +1 and <+|Z|+> is 0", func() {
			So(sim.DoGate(H(0)), ShouldBeNil)
			x, err := sim.Expectation(NewPauliTerm(PauliX, 0, 1))
			So(err, ShouldBeNil)
			So(real(x), ShouldAlmostEqual, 1, tolerance)
			value, err := sim.Expectation(z)
			So(err, ShouldBeNil)
			So(real(value), ShouldAlmostEqual, 0, tolerance)
		})
	})

	Convey("Given a Bell pair", t, func() {
		sim, _ := NewWavefunctionSimulator(2, nil)
		So(sim.DoGate(H(0)), ShouldBeNil)
		So(sim.DoGate(CNOT(0, 1)), ShouldBeNil)

		zz := NewPauliTerm(PauliZ, 0, 1).Times(NewPauliTerm(PauliZ, 1, 1))
		xx := NewPauliTerm(PauliX, 0, 1).Times(NewPauliTerm(PauliX, 1, 1))

		Convey("Then the correlators are +1 and a sum is weighted", func() {
			value, err := sim.Expectation(zz)
			So(err, ShouldBeNil)
			So(real(value), ShouldAlmostEqual, 1, tolerance)

			value, err = sim.Expectation(xx)
			So(err, ShouldBeNil)
			So(real(value), ShouldAlmostEqual, 1, tolerance)

			sum := zz.Plus(xx.Times(NewPauliTerm(PauliI, 0, 0.5))).Plus(NewPauliTerm(PauliZ, 0, 3))
			value, err = sim.Expectation(sum)
			So(err, ShouldBeNil)
			So(real(value), ShouldAlmostEqual, 1.5, tolerance)
		})
	})

	Convey("Given a term on a missing qubit", t, func() {
		sim, _ := NewWavefunctionSimulator(1, nil)
		_, err := sim.Expectation(NewPauliTerm(PauliX, 4, 1))
		So(errors.Is(err, ErrDimensionMismatch), ShouldBeTrue)
	})
}

func TestWavefunctionResetAndNoise(t *testing.T) {
	Convey("Given a wavefunction that has been evolved", t, func() {
		sim, _ := NewWavefunctionSimulator(2, newRNG(2))
		So(sim.DoGate(H(0)), ShouldBeNil)
		So(sim.DoGate(CNOT(0, 1)), ShouldBeNil)

		Convey("When reset", func() {
			sim.Reset()

			Convey("Then it is back to |00>", func() {
				So(sim.Wavefunction(), ShouldResemble, []complex128{1, 0, 0, 0})
			})
		})

		Convey("When noise is requested", func() {
			before := sim.Wavefunction()
			err := sim.DoPostGateNoise("depolarizing", 0.1, []int{0})

			Convey("Then it is unsupported and nothing changes", func() {
				So(errors.Is(err, ErrUnsupportedOperation), ShouldBeTrue)
				So(sim.Wavefunction(), ShouldResemble, before)
			})
		})
	})
}

func TestWavefunctionGHZ(t *testing.T) {
	Convey("Given a GHZ state", t, func() {
		sim, _ := NewWavefunctionSimulator(3, nil)
		for _, gate := range []Gate{H(0), CNOT(0, 1), CNOT(1, 2)} {
			So(sim.DoGate(gate), ShouldBeNil)
		}

		wf := sim.Wavefunction()
		t.Logf("GHZ amplitudes:\n%s", spew.Sdump(wf))

		Convey("Then only |000> and |111> carry amplitude", func() {
			So(real(wf[0]), ShouldAlmostEqual, 1/math.Sqrt2, tolerance)
			So(real(wf[7]), ShouldAlmostEqual, 1/math.Sqrt2, tolerance)
			for i := 1; i < 7; i++ {
				So(wf[i], ShouldEqual, complex128(0))
			}
		})
	})
}
