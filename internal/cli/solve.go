package cli

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pltr/core"
	"github.com/katalvlaran/pltr/pltr"
)

type solveOpts struct {
	dataset string
	index   int
	gen     genFlags
}

func (c *CLI) solveCommand() *cobra.Command {
	var opts solveOpts
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve instances and print their schedules",
		Long: `Solve one or all instances of a dataset, or a generated instance when no
dataset is given, and print each instance followed by its schedule.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runSolve(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.dataset, "dataset", "", "dataset CSV file")
	cmd.Flags().IntVar(&opts.index, "index", -1, "solve only this dataset record (0-based)")
	opts.gen.register(cmd)

	return cmd
}

func (c *CLI) runSolve(cmd *cobra.Command, opts solveOpts) error {
	var insts []*core.Instance
	if opts.dataset != "" {
		all, err := c.loadDataset(opts.dataset)
		if err != nil {
			return err
		}
		insts = all
		if opts.index >= 0 {
			if opts.index >= len(all) {
				return fmt.Errorf("index %d out of range: dataset has %d instances", opts.index, len(all))
			}
			insts = all[opts.index : opts.index+1]
		}
	} else {
		inst, err := opts.gen.draw(rand.New(rand.NewSource(opts.gen.seed)))
		if err != nil {
			return err
		}
		insts = []*core.Instance{inst}
	}

	solverOpts, err := c.cfg.SolverOptions()
	if err != nil {
		return err
	}
	solverOpts.Logger = &c.log

	for i, inst := range insts {
		fmt.Fprintf(c.out, "instance %d\n%s\n\n", i, inst)
		sched, err := pltr.Solve(cmd.Context(), inst, solverOpts)
		if errors.Is(err, pltr.ErrInfeasibleInstance) {
			fmt.Fprintf(c.out, "not schedulable\n\n")
			continue
		}
		if err != nil {
			return fmt.Errorf("instance %d: %w", i, err)
		}
		fmt.Fprintf(c.out, "%s\n\n", sched)
	}

	return nil
}
