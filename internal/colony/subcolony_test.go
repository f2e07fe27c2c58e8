package colony

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/leeyyyl/Multi-threaded-Ant-Colony-System-with-Constraint-Propagation-for-Solving-Sudoku/internal/board"
)

func emptyPuzzle(n int) []int { return make([]int, n*n) }

func newTestColony(t *testing.T) (*SubColony, *board.Board) {
	initial, err := board.New(board.Size9, emptyPuzzle(board.Size9))
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.NumAnts = 4
	sc := New(0, initial, cfg)
	return sc, initial
}

func TestRunIteration(t *testing.T) {
	Convey("Given a sub-colony on an empty 9x9 board", t, func() {
		sc, initial := newTestColony(t)

		Convey("RunIteration keeps bestSolScore consistent with bestSol's fill count", func() {
			sc.RunIteration(initial)
			bestSol, bestScore := sc.BestSol()
			So(bestScore, ShouldEqual, bestSol.CellsFilled())
		})

		Convey("Pheromone entries never go negative across several iterations", func() {
			for i := 0; i < 5; i++ {
				sc.RunIteration(initial)
				sc.UpdatePheromoneStandard()
				sc.DecayBestPher()
			}
			for cell := 0; cell < sc.numCells; cell++ {
				for d := 1; d <= sc.n; d++ {
					So(sc.Pher(cell, d), ShouldBeGreaterThanOrEqualTo, 0.0)
				}
			}
		})
	})
}

func TestUpdatePheromoneStandard(t *testing.T) {
	Convey("Given a sub-colony with a known bestSol", t, func() {
		sc, initial := newTestColony(t)
		sc.RunIteration(initial)
		bestSol, _ := sc.BestSol()

		before := make([]float64, sc.numCells*sc.n)
		for cell := 0; cell < sc.numCells; cell++ {
			for d := 1; d <= sc.n; d++ {
				before[cell*sc.n+d-1] = sc.Pher(cell, d)
			}
		}

		sc.UpdatePheromoneStandard()

		Convey("Only bestSol's fixed (cell, digit) pairs change", func() {
			for cell := 0; cell < sc.numCells; cell++ {
				for d := 1; d <= sc.n; d++ {
					changed := sc.Pher(cell, d) != before[cell*sc.n+d-1]
					shouldChange := bestSol.CellIsFixed(cell) && bestSol.CellValue(cell) == d
					So(changed, ShouldEqual, shouldChange)
				}
			}
		})
	})
}

func TestUpdatePheromoneWithCommunication(t *testing.T) {
	Convey("Given a sub-colony that has run an iteration and received peer state", t, func() {
		sc, initial := newTestColony(t)
		sc.RunIteration(initial)

		peerBest := initial.Clone()
		peerBest.SetCell(0, 1)
		sc.ReceiveIterationBest(peerBest, peerBest.CellsFilled())

		peerSol := initial.Clone()
		peerSol.SetCell(1, 2)
		sc.ReceiveBestSol(peerSol, peerSol.CellsFilled())

		before := make([]float64, sc.numCells*sc.n)
		for cell := 0; cell < sc.numCells; cell++ {
			for d := 1; d <= sc.n; d++ {
				before[cell*sc.n+d-1] = sc.Pher(cell, d)
			}
		}

		sc.UpdatePheromoneWithCommunication()

		Convey("Only the union of the three sources' fixed pairs change", func() {
			iterBest, iterScore := sc.IterationBest()
			touched := map[[2]int]bool{}
			if iterScore > 0 {
				for cell := 0; cell < sc.numCells; cell++ {
					if iterBest.CellIsFixed(cell) {
						touched[[2]int{cell, iterBest.CellValue(cell)}] = true
					}
				}
			}
			touched[[2]int{0, 1}] = true
			touched[[2]int{1, 2}] = true

			for cell := 0; cell < sc.numCells; cell++ {
				for d := 1; d <= sc.n; d++ {
					changed := sc.Pher(cell, d) != before[cell*sc.n+d-1]
					So(changed, ShouldEqual, touched[[2]int{cell, d}])
				}
			}
		})
	})
}

func TestCommunicationAndStandardAreMutuallyExclusivePerIteration(t *testing.T) {
	Convey("Given a sub-colony, a coordinator picks exactly one update per iteration", t, func() {
		sc, initial := newTestColony(t)
		sc.RunIteration(initial)
		pherBefore := sc.bestPher

		sc.UpdatePheromoneWithCommunication()

		Convey("bestPher is not decayed on the communication branch", func() {
			So(sc.bestPher, ShouldEqual, pherBefore)
		})

		Convey("DecayBestPher still works correctly when invoked on the standard branch", func() {
			sc.UpdatePheromoneStandard()
			sc.DecayBestPher()
			So(sc.bestPher, ShouldEqual, pherBefore*(1-sc.cfg.BestEvap))
		})
	})
}

func TestIsSolved(t *testing.T) {
	Convey("Given a fresh sub-colony", t, func() {
		sc, _ := newTestColony(t)

		Convey("IsSolved is false before any fully-filled bestSol exists", func() {
			So(sc.IsSolved(), ShouldBeFalse)
		})

		Convey("IsSolved is true once bestSolScore reaches numCells", func() {
			sc.SetBestSolScore(sc.numCells)
			So(sc.IsSolved(), ShouldBeTrue)
		})
	})
}
