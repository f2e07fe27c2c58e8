// Package coordinator owns the barrier, stop-flag, and exchange logic that
// turns K independent SubColony workers into a cooperating parallel search:
// it spawns them, rendezvouses them at communication iterations, performs
// ring/random exchanges as barrier-master, enforces the wall-clock timeout,
// and joins on the global best board.
package coordinator

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/leeyyyl/Multi-threaded-Ant-Colony-System-with-Constraint-Propagation-for-Solving-Sudoku/internal/board"
	"github.com/leeyyyl/Multi-threaded-Ant-Colony-System-with-Constraint-Propagation-for-Solving-Sudoku/internal/colony"
)

// minSubColonies is the floor below which both exchange topologies
// degenerate; K is clamped up to this value with a warning.
const minSubColonies = 3

// barrierPollInterval is how long a non-master worker sleeps between checks
// of barrierCount/stopFlag while waiting at the barrier.
const barrierPollInterval = 100 * time.Millisecond

// Config carries the coordinator's own knobs, distinct from colony.Config's
// per-sub-colony ACS hyperparameters.
type Config struct {
	NumSubColonies int
	Timeout        time.Duration
	Verbose        bool
	Colony         colony.Config
}

// ProgressFunc is called by the coordinator after every iteration, if
// non-nil, so a caller (CLI console output, dashboard) can observe progress
// without the coordinator depending on any particular presentation layer.
type ProgressFunc func(subColonyID, iteration, bestScore, numCells int)

// Coordinator owns the barrier/stop-flag/condition shared by all workers and
// the exchange logic performed by whichever worker happens to arrive last.
type Coordinator struct {
	subColonies []*colony.SubColony
	initial     *board.Board
	cfg         Config
	onProgress  ProgressFunc

	mu           sync.Mutex
	cond         *sync.Cond
	barrierCount int
	stopFlag     int32

	startTime time.Time
	rng       *rand.Rand
}

// New builds a Coordinator over cfg.NumSubColonies workers, all seeded from
// the same initial puzzle. K < minSubColonies is clamped with a warning
// (§4.4's validation rule).
func New(initial *board.Board, cfg Config, onProgress ProgressFunc) *Coordinator {
	if cfg.NumSubColonies < minSubColonies {
		log.Printf("coordinator: --subcolonies=%d is below the minimum of %d; clamping", cfg.NumSubColonies, minSubColonies)
		cfg.NumSubColonies = minSubColonies
	}

	c := &Coordinator{
		initial:    initial,
		cfg:        cfg,
		onProgress: onProgress,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	c.cond = sync.NewCond(&c.mu)

	c.subColonies = make([]*colony.SubColony, cfg.NumSubColonies)
	for i := range c.subColonies {
		c.subColonies[i] = colony.New(i, initial, cfg.Colony)
	}
	return c
}

func (c *Coordinator) stopped() bool { return atomic.LoadInt32(&c.stopFlag) != 0 }

func (c *Coordinator) setStop() { atomic.StoreInt32(&c.stopFlag, 1) }

// interval implements §4.4's communication schedule: every 100 iterations
// while iter < 200, every 10 thereafter.
func interval(iter int) int {
	if iter < 200 {
		return 100
	}
	return 10
}

// Run drives every sub-colony's main loop to completion (solved, stopped by
// a sibling, or timed out) and returns the best board found across all of
// them. It fans workers out via errgroup, per the coordinator's domain-stack
// wiring, even though workerLoop never returns a non-nil error: on ctx
// cancellation each worker simply returns nil and Run reports the best board
// found so far.
func (c *Coordinator) Run(ctx context.Context) (solved bool, best *board.Board, err error) {
	c.startTime = time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for _, sc := range c.subColonies {
		sc := sc
		g.Go(func() error {
			return c.workerLoop(ctx, sc)
		})
	}
	if err := g.Wait(); err != nil {
		return false, nil, fmt.Errorf("coordinator: worker loop failed: %w", err)
	}

	bestIdx := 0
	_, bestScore := c.subColonies[0].BestSol()
	for i := 1; i < len(c.subColonies); i++ {
		if _, s := c.subColonies[i].BestSol(); s > bestScore {
			bestScore = s
			bestIdx = i
		}
	}
	winner, winnerScore := c.subColonies[bestIdx].BestSol()
	return winnerScore == winner.NumCells(), winner, nil
}

// workerLoop is one sub-colony's main loop: run an iteration, then either
// the standard update+decay or a barrier-gated communication update,
// checking the stop flag and the wall-clock timeout at each boundary.
func (c *Coordinator) workerLoop(ctx context.Context, sc *colony.SubColony) error {
	iter := 1
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if c.stopped() {
			return nil
		}
		if time.Since(c.startTime) >= c.cfg.Timeout {
			c.setStop()
			return nil
		}

		sc.RunIteration(c.initial)

		if c.onProgress != nil {
			_, score := sc.BestSol()
			c.onProgress(sc.ID(), iter, score, c.initial.NumCells())
		}

		if sc.IsSolved() {
			c.setStop()
			return nil
		}

		if iter%interval(iter) != 0 {
			sc.UpdatePheromoneStandard()
			sc.DecayBestPher()
		} else {
			c.barrier()
			if c.stopped() {
				return nil
			}
			sc.UpdatePheromoneWithCommunication()
		}

		if sc.IsSolved() {
			c.setStop()
			return nil
		}

		iter++
	}
}

// barrier implements §5's deadlock-free barrier protocol. The last arriving
// worker becomes master for this round and performs both exchanges plus the
// post-exchange stop check while every other worker is parked on the
// condition variable, so peer-state access needs no further synchronization.
func (c *Coordinator) barrier() {
	if c.stopped() {
		return
	}

	c.mu.Lock()
	if c.stopped() {
		c.barrierCount = 0
		c.cond.Broadcast()
		c.mu.Unlock()
		return
	}

	c.barrierCount++
	arrived := c.barrierCount

	if arrived == len(c.subColonies) {
		c.performExchange()
		if time.Since(c.startTime) >= c.cfg.Timeout {
			c.setStop()
		}
		c.barrierCount = 0
		c.cond.Broadcast()
		c.mu.Unlock()
		return
	}

	for c.barrierCount != 0 && !c.stopped() {
		timer := time.AfterFunc(barrierPollInterval, c.wakeWaiters)
		c.cond.Wait()
		timer.Stop()

		if time.Since(c.startTime) >= c.cfg.Timeout {
			c.setStop()
			c.barrierCount = 0
			c.cond.Broadcast()
			break
		}
	}
	c.mu.Unlock()
}

// wakeWaiters broadcasts on cond so a barrier waiter's 100ms tick (§5 step 5)
// re-checks barrierCount/stopFlag/timeout instead of sleeping past a
// completed exchange or a sibling's timeout-triggered stop.
func (c *Coordinator) wakeWaiters() {
	c.mu.Lock()
	c.cond.Broadcast()
	c.mu.Unlock()
}

// performExchange runs the ring exchange, the random exchange, and the
// post-exchange stop check. It is called with c.mu held and must only be
// called by the barrier master — every other worker is blocked on cond.Wait
// at this point, so peer sub-colony state can be read and written without
// further locking (§5's "exchange under barrier" contract).
func (c *Coordinator) performExchange() {
	c.ringExchange()
	c.randomExchange()

	for _, sc := range c.subColonies {
		if sc.IsSolved() {
			c.setStop()
			break
		}
	}
}

// ringExchange snapshots every sub-colony's iterationBest, then distributes
// so that sub-colony (i+1) mod K receives sub-colony i's snapshot. The
// snapshot-then-distribute order prevents one colony's received slot from
// feeding the next colony within the same round.
func (c *Coordinator) ringExchange() {
	k := len(c.subColonies)
	snapshot := make([]*board.Board, k)
	scores := make([]int, k)
	for i, sc := range c.subColonies {
		ib, score := sc.IterationBest()
		snapshot[i] = ib.Clone()
		scores[i] = score
	}
	for i := 0; i < k; i++ {
		recv := (i + 1) % k
		c.subColonies[recv].ReceiveIterationBest(snapshot[i], scores[i])
	}
}

// randomExchange snapshots every sub-colony's bestSol, draws a random
// permutation m of 0..K-1, and for each position pos has sub-colony m[pos]
// receive sub-colony m[(pos-1+K) mod K]'s snapshot.
func (c *Coordinator) randomExchange() {
	k := len(c.subColonies)
	snapshot := make([]*board.Board, k)
	scores := make([]int, k)
	for i, sc := range c.subColonies {
		bs, score := sc.BestSol()
		snapshot[i] = bs.Clone()
		scores[i] = score
	}

	perm := c.rng.Perm(k)
	for pos := 0; pos < k; pos++ {
		donorPos := (pos - 1 + k) % k
		recvColony := perm[pos]
		donorColony := perm[donorPos]
		c.subColonies[recvColony].ReceiveBestSol(snapshot[donorColony], scores[donorColony])
	}
}

// NumSubColonies returns K, after any startup clamping.
func (c *Coordinator) NumSubColonies() int { return len(c.subColonies) }
