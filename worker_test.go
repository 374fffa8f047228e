package qsim

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestWorker(t *testing.T) {
	Convey("Given a worker", t, func() {
		w := &worker{id: 0}

		Convey("It should run a job on a fresh simulator", func() {
			result := w.processJob(context.Background(), Job{
				ID:     "flip",
				Kind:   Wavefunction,
				Qubits: 2,
				Seed:   1,
				Gates:  []Gate{X(1)},
				Shots:  4,
			})

			So(result.Err, ShouldBeNil)
			So(result.ID, ShouldEqual, "flip")
			So(result.Counts, ShouldResemble, map[string]int{"01": 4})
			So(result.Duration, ShouldBeGreaterThan, 0)
		})

		Convey("It should report a bad gate with the job id", func() {
			result := w.processJob(context.Background(), Job{
				ID:     "broken",
				Kind:   Density,
				Qubits: 1,
				Gates:  []Gate{CNOT(0, 1)},
			})

			So(errors.Is(result.Err, ErrDimensionMismatch), ShouldBeTrue)
			So(result.Err.Error(), ShouldContainSubstring, "broken")
		})

		Convey("It should stop when the context is done", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			result := w.processJob(ctx, Job{ID: "late", Kind: Wavefunction, Qubits: 1, Gates: []Gate{H(0)}})
			So(errors.Is(result.Err, context.Canceled), ShouldBeTrue)
		})

		Convey("It should drain its queue and mark results done", func() {
			queue := make(chan indexedJob, 2)
			w.results = make([]Result, 2)
			w.done = make([]bool, 2)
			queue <- indexedJob{index: 1, job: Job{ID: "b", Kind: Wavefunction, Qubits: 1}}
			queue <- indexedJob{index: 0, job: Job{ID: "a", Kind: Wavefunction, Qubits: 1}}
			close(queue)
			w.jobs = queue

			w.start(context.Background())

			So(w.done, ShouldResemble, []bool{true, true})
			So(w.results[0].ID, ShouldEqual, "a")
			So(w.results[1].ID, ShouldEqual, "b")
		})
	})
}
