// Package colony implements the per-worker ACS instance: its ants, its
// pheromone matrix, the iteration-best/best-so-far tracking, and the two
// mutually exclusive global pheromone updates (§4.3).
package colony

import (
	"math/rand"
	"sync"

	"github.com/leeyyyl/Multi-threaded-Ant-Colony-System-with-Constraint-Propagation-for-Solving-Sudoku/internal/ant"
	"github.com/leeyyyl/Multi-threaded-Ant-Colony-System-with-Constraint-Propagation-for-Solving-Sudoku/internal/board"
	"github.com/leeyyyl/Multi-threaded-Ant-Colony-System-with-Constraint-Propagation-for-Solving-Sudoku/internal/rng"
)

// solvedSentinel stands in for "n / (n - score)" when score == n: a value
// guaranteed to dominate any real pherToAdd (whose max over an unsolved
// board is n, since the smallest possible (n-score) is 1).
const solvedSentinel = 1e18

// pherToAdd computes n/(n-score) for a board of n cells with score of them
// filled, or the solved sentinel when score == n.
func pherToAdd(n, score int) float64 {
	if score >= n {
		return solvedSentinel
	}
	return float64(n) / float64(n-score)
}

// sourceValue is pherToAdd gated by "this source actually has data": a
// score of zero means the source slot hasn't been populated yet (e.g. no
// exchange has happened), in which case it contributes nothing.
func sourceValue(n, score int) float64 {
	if score <= 0 {
		return 0
	}
	return pherToAdd(n, score)
}

// SubColony is one worker's independent ACS instance: its ant pool, its
// pheromone matrix τ, and the iteration-best / best-so-far state the
// Coordinator reads and writes during ring/random exchanges.
type SubColony struct {
	id       int
	n        int
	numCells int
	cfg      Config
	pher0    float64

	ants []*ant.Ant
	tau  *matrix
	rng  *rand.Rand

	iterationBest      *board.Board
	iterationBestScore int

	bestSol      *board.Board
	bestSolScore int
	bestPher     float64

	receivedIterationBest      *board.Board
	receivedIterationBestScore int

	receivedBestSol      *board.Board
	receivedBestSolScore int
}

// New builds a sub-colony of cfg.NumAnts ants, all initialized against the
// shared initial puzzle, with τ set to pher0 = 1/numCells everywhere.
func New(id int, initial *board.Board, cfg Config) *SubColony {
	numCells := initial.NumCells()
	n := initial.N()
	pher0 := 1.0 / float64(numCells)

	sc := &SubColony{
		id:       id,
		n:        n,
		numCells: numCells,
		cfg:      cfg,
		pher0:    pher0,
		tau:      newMatrix(numCells, n, pher0),
		rng:      rng.New(id),

		iterationBest: initial.Clone(),
		bestSol:       initial.Clone(),

		receivedIterationBest: initial.Clone(),
		receivedBestSol:       initial.Clone(),
	}

	// Ants of this sub-colony construct concurrently (RunIteration spawns
	// one goroutine per ant), so each needs its own *rand.Rand rather than
	// sharing sc.rng across goroutines. sc.rng is consumed here, in a
	// single-threaded pass before any ant goroutine runs, purely as a seed
	// source for the per-ant RNGs.
	sc.ants = make([]*ant.Ant, cfg.NumAnts)
	for i := range sc.ants {
		sc.ants[i] = ant.New(i, initial, rand.New(rand.NewSource(sc.rng.Int63())))
	}
	return sc
}

// ID returns the sub-colony's index, used to break join-time ties and to
// seed its RNG distinctly from its siblings.
func (sc *SubColony) ID() int { return sc.id }

// --- ant.Env -----------------------------------------------------------

// Q0 returns the exploitation threshold.
func (sc *SubColony) Q0() float64 { return sc.cfg.Q0 }

// Pher returns τ[cell][digit].
func (sc *SubColony) Pher(cell, digit int) float64 { return sc.tau.get(cell, digit) }

// LocalUpdate applies an ant's local pheromone update at (cell, digit).
func (sc *SubColony) LocalUpdate(cell, digit int) { sc.tau.localUpdate(cell, digit, sc.pher0) }

// --- iteration / state accessors ----------------------------------------

// IterationBest returns the current iteration's winning board and score.
func (sc *SubColony) IterationBest() (*board.Board, int) {
	return sc.iterationBest, sc.iterationBestScore
}

// BestSol returns the best-so-far board and score (by pheromone value, §4.3).
func (sc *SubColony) BestSol() (*board.Board, int) {
	return sc.bestSol, sc.bestSolScore
}

// IsSolved reports whether this sub-colony's best-so-far is a complete grid.
func (sc *SubColony) IsSolved() bool { return sc.bestSolScore == sc.numCells }

// ReceivedIterationBest returns the board most recently delivered by
// ReceiveIterationBest, and its score. Exposed for exchange-correctness
// tests (§8 scenario S5); production code never needs to read it back.
func (sc *SubColony) ReceivedIterationBest() (*board.Board, int) {
	return sc.receivedIterationBest, sc.receivedIterationBestScore
}

// ReceivedBestSol returns the board most recently delivered by
// ReceiveBestSol, and its score. Exposed for exchange-correctness tests
// (§8 scenario S5); production code never needs to read it back.
func (sc *SubColony) ReceivedBestSol() (*board.Board, int) {
	return sc.receivedBestSol, sc.receivedBestSolScore
}

// SetBestSolScore forcibly overrides the best-so-far score. It exists for
// testing the stop-propagation path (§8 scenario S6: force a sub-colony to
// report solved mid-run) and must never be called by production code.
func (sc *SubColony) SetBestSolScore(score int) { sc.bestSolScore = score }

// --- per-iteration algorithm ---------------------------------------------

// RunIteration runs every ant's construction (concurrently — ants of the
// same sub-colony race harmlessly on τ, §4.2), finds the iteration-best by
// fill count (ties broken by ant index), and applies the best-so-far update
// by pheromone value (§4.3, not by raw score — this is intentional and must
// be preserved, see the design notes' Open Question).
func (sc *SubColony) RunIteration(initial *board.Board) {
	var wg sync.WaitGroup
	wg.Add(len(sc.ants))
	for _, a := range sc.ants {
		a := a
		go func() {
			defer wg.Done()
			ant.Construct(a, initial, sc)
		}()
	}
	wg.Wait()

	bestIdx := 0
	bestScore := sc.ants[0].NumCellsFilled()
	for i := 1; i < len(sc.ants); i++ {
		if s := sc.ants[i].NumCellsFilled(); s > bestScore {
			bestScore = s
			bestIdx = i
		}
	}
	sc.iterationBest.CopyFrom(sc.ants[bestIdx].Board())
	sc.iterationBestScore = bestScore

	if pta := sourceValue(sc.numCells, bestScore); pta > sc.bestPher {
		sc.bestSol.CopyFrom(sc.iterationBest)
		sc.bestSolScore = bestScore
		sc.bestPher = pta
	}
}

// UpdatePheromoneStandard reinforces exactly the (cell, digit) pairs fixed
// in bestSol: τ ← (1−ρ)·τ + ρ·bestPher. Every other entry is untouched.
func (sc *SubColony) UpdatePheromoneStandard() {
	for i := 0; i < sc.numCells; i++ {
		if sc.bestSol.CellIsFixed(i) {
			sc.tau.standardReinforce(i, sc.bestSol.CellValue(i), sc.cfg.Rho, sc.bestPher)
		}
	}
}

// DecayBestPher applies bestPher ← bestPher·(1−bestEvap). Called only on
// non-communication iterations, immediately after UpdatePheromoneStandard.
func (sc *SubColony) DecayBestPher() {
	sc.bestPher *= 1 - sc.cfg.BestEvap
}

// ReceiveIterationBest copies src into receivedIterationBest. It never
// touches bestSol — received boards influence search only through the
// three-source pheromone update.
func (sc *SubColony) ReceiveIterationBest(src *board.Board, score int) {
	sc.receivedIterationBest.CopyFrom(src)
	sc.receivedIterationBestScore = score
}

// ReceiveBestSol copies src into receivedBestSol. Like ReceiveIterationBest,
// it never touches bestSol directly.
func (sc *SubColony) ReceiveBestSol(src *board.Board, score int) {
	sc.receivedBestSol.CopyFrom(src)
	sc.receivedBestSolScore = score
}

// UpdatePheromoneWithCommunication replaces the standard update on
// communication iterations: per cell, every digit that at least one of
// iterationBest/receivedIterationBest/receivedBestSol agrees on has its entry
// evaporated by the light ρ_comm and then additively reinforced by the sum of
// those sources' pheromone values. bestPher is not decayed here — it is not
// used as a reinforcement value in this update.
func (sc *SubColony) UpdatePheromoneWithCommunication() {
	v1 := sourceValue(sc.numCells, sc.iterationBestScore)
	v2 := sourceValue(sc.numCells, sc.receivedIterationBestScore)
	v3 := sourceValue(sc.numCells, sc.receivedBestSolScore)

	contrib := make([]float64, sc.n+1)
	touched := make([]bool, sc.n+1)

	for i := 0; i < sc.numCells; i++ {
		for d := 1; d <= sc.n; d++ {
			touched[d] = false
			contrib[d] = 0
		}

		if v1 > 0 && sc.iterationBest.CellIsFixed(i) {
			d := sc.iterationBest.CellValue(i)
			contrib[d] += v1
			touched[d] = true
		}
		if v2 > 0 && sc.receivedIterationBest.CellIsFixed(i) {
			d := sc.receivedIterationBest.CellValue(i)
			contrib[d] += v2
			touched[d] = true
		}
		if v3 > 0 && sc.receivedBestSol.CellIsFixed(i) {
			d := sc.receivedBestSol.CellValue(i)
			contrib[d] += v3
			touched[d] = true
		}

		for d := 1; d <= sc.n; d++ {
			if touched[d] {
				sc.tau.commReinforce(i, d, sc.cfg.RhoComm, contrib[d])
			}
		}
	}
}
