package colony

import (
	"github.com/leeyyyl/Multi-threaded-Ant-Colony-System-with-Constraint-Propagation-for-Solving-Sudoku/internal/atomicfloat"
)

// matrix is one sub-colony's pheromone matrix τ: numCells × n entries, all
// initialized to pher0 and never reset except by evaporation. Every ant of
// the owning colony writes into this same matrix during construction; two
// ants racing on the same (cell, digit) entry is tolerated (§4.2's
// concurrency note), so entries are atomic floats rather than
// mutex-guarded.
type matrix struct {
	n        int
	numCells int
	entries  []*atomicfloat.Float64
}

func newMatrix(numCells, n int, pher0 float64) *matrix {
	m := &matrix{n: n, numCells: numCells, entries: make([]*atomicfloat.Float64, numCells*n)}
	for i := range m.entries {
		m.entries[i] = atomicfloat.New(pher0)
	}
	return m
}

func (m *matrix) index(cell, digit int) int { return cell*m.n + (digit - 1) }

// get reads τ[cell][digit].
func (m *matrix) get(cell, digit int) float64 {
	return m.entries[m.index(cell, digit)].Load()
}

// localUpdate applies an ant's local pheromone update at (cell, digit):
// τ ← 0.9·τ + 0.1·pher0. A single CAS attempt is used, not a retry loop —
// under concurrent writers from sibling ants a lost update is acceptable,
// per §4.2.
func (m *matrix) localUpdate(cell, digit int, pher0 float64) {
	e := m.entries[m.index(cell, digit)]
	old := e.Load()
	e.CompareAndSwap(old, 0.9*old+0.1*pher0)
}

// standardReinforce applies the standard-update formula to one entry:
// τ ← (1−ρ)·τ + ρ·value.
func (m *matrix) standardReinforce(cell, digit int, rho, value float64) {
	e := m.entries[m.index(cell, digit)]
	old := e.Load()
	e.CompareAndSwap(old, (1-rho)*old+rho*value)
}

// commReinforce applies the three-source update formula to one entry:
// τ ← τ·(1−ρ_comm) + c, where c is the caller's accumulated contribution
// from whichever of s1/s2/s3 agreed on this digit.
func (m *matrix) commReinforce(cell, digit int, rhoComm, contribution float64) {
	e := m.entries[m.index(cell, digit)]
	old := e.Load()
	e.CompareAndSwap(old, old*(1-rhoComm)+contribution)
}
