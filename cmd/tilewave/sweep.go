package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"tilewave/internal/catalog"
	"tilewave/internal/driver"
)

type sweepResult struct {
	seed    int64
	solved  bool
	steps   int
	resets  int
	elapsed time.Duration
}

func newSweepCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Solve many seeds concurrently and summarise restarts",
		Long: `sweep solves --runs grids with consecutive seeds starting at --seed, each on
its own grid, and reports how many steps and restarts every seed needed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			defer c.flushMetrics(&err)

			set, err := c.loadSet()
			if err != nil {
				return err
			}
			workers := c.cfg.Sweep.Workers
			if workers <= 0 {
				workers = runtime.GOMAXPROCS(0)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Sweeping %d seeds of %s on %dx%d (%d workers)\n",
				c.cfg.Sweep.Runs, set.Name, c.cfg.Width, c.cfg.Height, workers)

			start := time.Now()
			results, err := runSweep(cmd.Context(), c, set, workers)
			if err != nil {
				return err
			}
			printSweep(cmd, results, time.Since(start))
			return nil
		},
	}
	c.flags.BindSweep(cmd.Flags())
	return cmd
}

func runSweep(ctx context.Context, c *cli, set *catalog.Set, workers int) ([]sweepResult, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	results := make([]sweepResult, 0, c.cfg.Sweep.Runs)

	for i := 0; i < c.cfg.Sweep.Runs; i++ {
		seed := c.cfg.Seed + int64(i)
		g.Go(func() error {
			runner, err := c.newRunner(set, seed)
			if err != nil {
				return err
			}
			err = runner.Run(ctx, c.cfg.MaxResets)
			if err != nil && !errors.Is(err, driver.ErrGaveUp) {
				return err
			}
			stats := runner.Stats()
			mu.Lock()
			results = append(results, sweepResult{
				seed:    seed,
				solved:  err == nil,
				steps:   stats.Steps,
				resets:  stats.Resets,
				elapsed: stats.Elapsed,
			})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(results, func(i, j int) bool { return results[i].seed < results[j].seed })
	return results, nil
}

func printSweep(cmd *cobra.Command, results []sweepResult, elapsed time.Duration) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "seed\tsolved\tsteps\tresets\telapsed")
	solved, steps, resets := 0, 0, 0
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%t\t%d\t%d\t%s\n", r.seed, r.solved, r.steps, r.resets, r.elapsed.Round(time.Microsecond))
		if r.solved {
			solved++
		}
		steps += r.steps
		resets += r.resets
	}
	w.Flush()

	n := len(results)
	if n == 0 {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nsolved %d/%d, mean steps %.1f, mean resets %.2f (elapsed %s)\n",
		solved, n, float64(steps)/float64(n), float64(resets)/float64(n), elapsed.Round(time.Millisecond))
}
