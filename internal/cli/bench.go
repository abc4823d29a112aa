package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/pltr/metrics"
	"github.com/katalvlaran/pltr/pltr"
)

type benchOpts struct {
	dataset     string
	workers     int
	metricsAddr string
	repeat      int
}

// benchReport summarizes one bench run. Mean, StdDev, Median and Max are
// taken over solved instances only.
type benchReport struct {
	RunID      string
	Instances  int
	Solved     int
	Infeasible int
	Failed     int
	Total      time.Duration
	Mean       time.Duration
	StdDev     time.Duration
	Median     time.Duration
	Max        time.Duration

	seconds []float64
}

// record tallies one outcome. Infeasible and failed runs stop early, so
// their durations stay out of the timing statistics.
func (r *benchReport) record(elapsed time.Duration, err error) {
	switch {
	case err == nil:
		r.Solved++
		r.seconds = append(r.seconds, elapsed.Seconds())
	case errors.Is(err, pltr.ErrInfeasibleInstance):
		r.Infeasible++
	default:
		r.Failed++
	}
}

func (c *CLI) benchCommand() *cobra.Command {
	var opts benchOpts
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Solve every instance of a dataset and report timings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runBench(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.dataset, "dataset", "", "dataset CSV file")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "instances solved concurrently (default from config)")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	cmd.Flags().IntVar(&opts.repeat, "repeat", 1, "solve the dataset this many times")
	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}

func (c *CLI) runBench(cmd *cobra.Command, opts benchOpts) error {
	ctx := cmd.Context()
	insts, err := c.loadDataset(opts.dataset)
	if err != nil {
		return err
	}
	workers := opts.workers
	if workers <= 0 {
		workers = c.cfg.Bench.Workers
	}
	repeat := max(1, opts.repeat)

	solverOpts, err := c.cfg.SolverOptions()
	if err != nil {
		return err
	}
	solverOpts.Logger = &c.log

	runID := uuid.NewString()
	log := c.log.With().Str("run", runID).Logger()

	addr := opts.metricsAddr
	if addr == "" && c.cfg.Metrics.Enabled {
		addr = c.cfg.Metrics.Addr
	}
	if addr != "" {
		reg := prometheus.NewRegistry()
		obs, err := metrics.NewPromObserver(reg, c.cfg.Metrics.Namespace)
		if err != nil {
			return err
		}
		solverOpts.Observer = obs
		mctx, stop := context.WithCancel(ctx)
		defer stop()
		go func() {
			if err := metrics.Serve(mctx, addr, reg); err != nil {
				log.Error().Err(err).Str("addr", addr).Msg("metrics server")
			}
		}()
		log.Info().Str("addr", addr).Msg("serving metrics")
	}

	log.Info().Int("instances", len(insts)).Int("workers", workers).Int("repeat", repeat).Msg("bench started")

	var (
		mu     sync.Mutex
		report = benchReport{RunID: runID, Instances: len(insts) * repeat}
	)
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for r := 0; r < repeat; r++ {
		for i, inst := range insts {
			i, inst := i, inst
			g.Go(func() error {
				t0 := time.Now()
				_, err := pltr.Solve(gctx, inst, solverOpts)
				elapsed := time.Since(t0)

				if err != nil && !errors.Is(err, pltr.ErrInfeasibleInstance) {
					if gctx.Err() != nil {
						return gctx.Err()
					}
					log.Error().Err(err).Int("instance", i).Msg("solve failed")
				}

				mu.Lock()
				defer mu.Unlock()
				report.record(elapsed, err)

				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}
	report.Total = time.Since(start)
	summarize(&report, report.seconds)

	log.Info().
		Int("solved", report.Solved).
		Int("infeasible", report.Infeasible).
		Int("failed", report.Failed).
		Dur("total", report.Total).
		Msg("bench finished")
	writeReport(c, report)
	if report.Failed > 0 {
		return fmt.Errorf("%d of %d instances failed", report.Failed, report.Instances)
	}

	return nil
}

// summarize fills the statistics of r from per-instance seconds.
func summarize(r *benchReport, seconds []float64) {
	if len(seconds) == 0 {
		return
	}
	sort.Float64s(seconds)
	mean, std := stat.MeanStdDev(seconds, nil)
	if len(seconds) < 2 {
		std = 0
	}
	r.Mean = secs(mean)
	r.StdDev = secs(std)
	r.Median = secs(stat.Quantile(0.5, stat.Empirical, seconds, nil))
	r.Max = secs(seconds[len(seconds)-1])
}

func secs(s float64) time.Duration { return time.Duration(s * float64(time.Second)) }

func writeReport(c *CLI, r benchReport) {
	fmt.Fprintf(c.out, "run:        %s\n", r.RunID)
	fmt.Fprintf(c.out, "instances:  %d\n", r.Instances)
	fmt.Fprintf(c.out, "solved:     %d\n", r.Solved)
	fmt.Fprintf(c.out, "infeasible: %d\n", r.Infeasible)
	fmt.Fprintf(c.out, "failed:     %d\n", r.Failed)
	fmt.Fprintf(c.out, "total:      %s\n", r.Total)
	fmt.Fprintf(c.out, "mean:       %s\n", r.Mean)
	fmt.Fprintf(c.out, "stddev:     %s\n", r.StdDev)
	fmt.Fprintf(c.out, "median:     %s\n", r.Median)
	fmt.Fprintf(c.out, "max:        %s\n", r.Max)
}
