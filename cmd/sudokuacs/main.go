// Command sudokuacs runs the parallel Ant Colony System engine against a
// Sudoku puzzle file and prints the best board found.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/leeyyyl/Multi-threaded-Ant-Colony-System-with-Constraint-Propagation-for-Solving-Sudoku/internal/colony"
	"github.com/leeyyyl/Multi-threaded-Ant-Colony-System-with-Constraint-Propagation-for-Solving-Sudoku/internal/config"
	"github.com/leeyyyl/Multi-threaded-Ant-Colony-System-with-Constraint-Propagation-for-Solving-Sudoku/internal/coordinator"
	"github.com/leeyyyl/Multi-threaded-Ant-Colony-System-with-Constraint-Propagation-for-Solving-Sudoku/internal/dashboard"
	"github.com/leeyyyl/Multi-threaded-Ant-Colony-System-with-Constraint-Propagation-for-Solving-Sudoku/internal/puzzle"
)

const defaultYamlPath = "./engine.yaml"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	base := config.Default()
	if loaded, err := config.FromYaml(defaultYamlPath); err == nil {
		base = loaded
	}

	fs := flag.NewFlagSet("sudokuacs", flag.ExitOnError)
	dashboardOn := fs.Bool("dashboard", false, "serve a realtime progress dashboard")
	dashboardAddr := fs.String("dashboardaddr", ":8090", "dashboard listen address")
	cfg, err := config.ParseFlags(fs, args, base)
	if err != nil {
		return err
	}

	if cfg.Algorithm != 2 {
		return fmt.Errorf("sudokuacs: --alg=%d is not supported, only 2 (parallel ACS) is implemented", cfg.Algorithm)
	}
	if cfg.PuzzleFile == "" {
		return fmt.Errorf("sudokuacs: --file is required")
	}

	initial, err := puzzle.Load(cfg.PuzzleFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var hub *dashboard.Hub
	if *dashboardOn {
		hub = dashboard.NewHub(ctx, cfg.SubColonies)
		srv := dashboard.NewServer(*dashboardAddr, hub)
		go func() {
			if err := srv.ListenAndServe(ctx); err != nil {
				fmt.Fprintln(os.Stderr, "dashboard:", err)
			}
		}()
		fmt.Printf("dashboard listening on %s\n", *dashboardAddr)
	}

	onProgress := func(subColonyID, iteration, bestScore, numCells int) {
		if cfg.Verbose && iteration%10 == 0 {
			fmt.Printf("sub-colony %d: iteration %d, best %d/%d\n", subColonyID, iteration, bestScore, numCells)
		}
		if hub != nil {
			hub.Publish(subColonyID, dashboard.Snapshot{
				SubColonyID: subColonyID,
				Iteration:   iteration,
				BestScore:   bestScore,
				NumCells:    numCells,
				Solved:      bestScore == numCells,
			})
		}
	}

	coordCfg := coordinator.Config{
		NumSubColonies: cfg.SubColonies,
		Timeout:        time.Duration(cfg.TimeoutSec * float64(time.Second)),
		Verbose:        cfg.Verbose,
		Colony: colony.Config{
			NumAnts:  cfg.Ants,
			Q0:       cfg.Q0,
			Rho:      cfg.Rho,
			RhoComm:  cfg.RhoComm,
			BestEvap: cfg.Evap,
		},
	}

	coord := coordinator.New(initial, coordCfg, onProgress)
	runCtx, cancel := context.WithTimeout(ctx, coordCfg.Timeout+time.Second)
	defer cancel()

	solved, best, err := coord.Run(runCtx)
	if err != nil {
		return err
	}

	fmt.Print(puzzle.Format(best))
	if !solved {
		fmt.Fprintln(os.Stderr, "sudokuacs: no solution found within the timeout")
		os.Exit(1)
	}
	return nil
}
