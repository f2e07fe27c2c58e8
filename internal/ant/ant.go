// Package ant implements the stochastic solution constructor. An Ant never
// holds a back-pointer to its owning sub-colony (per the no-pointer-cycles
// design note): construction takes an Env capability set instead, so the
// colony and rng packages can stay fully decoupled from this one.
package ant

import (
	"math/rand"

	"github.com/leeyyyl/Multi-threaded-Ant-Colony-System-with-Constraint-Propagation-for-Solving-Sudoku/internal/board"
)

// Env is the small capability set an Ant needs from its owning sub-colony:
// the exploitation threshold and read/write access to that colony's
// pheromone matrix. A SubColony implements this directly, so construction
// never needs its own pointer back to the colony.
type Env interface {
	Q0() float64
	Pher(cell, digit int) float64
	LocalUpdate(cell, digit int)
}

// Ant is a single stochastic constructor: a working board copy, its own RNG,
// and the count of cells it could not fill because their candidate set was
// already empty when visited. Every ant in a sub-colony constructs
// concurrently against the same pheromone matrix and Env, so each needs a
// private *rand.Rand — math/rand.Rand is not safe for concurrent use, and a
// shared one would race across sibling ants' goroutines.
type Ant struct {
	ID        int
	sol       *board.Board
	rng       *rand.Rand
	failCells int
}

// New returns an ant whose working board is a clone of initial and whose RNG
// is rng. The clone is overwritten by CopyFrom at the start of every
// iteration, so the board passed here only fixes the grid size.
func New(id int, initial *board.Board, rng *rand.Rand) *Ant {
	return &Ant{ID: id, sol: initial.Clone(), rng: rng}
}

// Board returns the ant's current working board.
func (a *Ant) Board() *board.Board { return a.sol }

// FailCells returns the number of cells the ant skipped this iteration
// because they had no remaining candidates — a diagnostic count only, never
// a hard failure.
func (a *Ant) FailCells() int { return a.failCells }

// NumCellsFilled returns the ant's fitness: how many cells its working board
// has filled.
func (a *Ant) NumCellsFilled() int { return a.sol.CellsFilled() }

// Construct resets the ant to the initial puzzle and walks every cell once,
// starting from a uniformly random cell, picking a value for each unfixed,
// non-empty-candidate cell via exploitation/exploration (§4.2) and applying
// the owning colony's local pheromone update after each placement.
func Construct(a *Ant, initial *board.Board, env Env) {
	a.sol.CopyFrom(initial)
	a.failCells = 0

	numCells := a.sol.NumCells()
	current := a.rng.Intn(numCells)
	for step := 0; step < numCells; step++ {
		switch {
		case a.sol.CellIsFixed(current):
			// skip
		case a.sol.CandidatesEmpty(current):
			a.failCells++
		default:
			v := selectValue(a.sol, current, env, a.rng)
			a.sol.SetCell(current, v)
			env.LocalUpdate(current, v)
		}
		current = (current + 1) % numCells
	}
}

// selectValue draws u ~ U[0,1) and exploits (argmax pheromone, ties broken
// by ascending digit) when u > q0, else explores via roulette-wheel
// selection weighted by pheromone. The inverted comparison (u > q0 rather
// than the textbook u < q0) is intentional — see §9 of the design notes —
// and must not be "corrected".
func selectValue(sol *board.Board, cell int, env Env, rng *rand.Rand) int {
	cands := sol.Candidates(cell)
	u := rng.Float64()
	if u > env.Q0() {
		best := cands[0]
		bestPher := env.Pher(cell, best)
		for _, c := range cands[1:] {
			p := env.Pher(cell, c)
			if p > bestPher {
				bestPher = p
				best = c
			}
		}
		return best
	}

	sum := 0.0
	weights := make([]float64, len(cands))
	for i, c := range cands {
		w := env.Pher(cell, c)
		weights[i] = w
		sum += w
	}
	r := rng.Float64() * sum
	cum := 0.0
	for i, w := range weights {
		cum += w
		if cum > r {
			return cands[i]
		}
	}
	// Floating-point rounding can leave cum just short of r; the last
	// candidate is the correct fallback.
	return cands[len(cands)-1]
}
