package cli

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pltr/core"
	"github.com/katalvlaran/pltr/dataset"
	"github.com/katalvlaran/pltr/generate"
	"github.com/katalvlaran/pltr/pltr"
)

// maxDrawsPerInstance bounds generator retries under --feasible-only.
const maxDrawsPerInstance = 100

type generateOpts struct {
	output       string
	count        int
	feasibleOnly bool
	gen          genFlags
}

func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write random instances as a dataset CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runGenerate(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().IntVar(&opts.count, "count", 1, "number of instances")
	cmd.Flags().BoolVar(&opts.feasibleOnly, "feasible-only", false, "keep only schedulable instances")
	opts.gen.register(cmd)

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, opts generateOpts) error {
	solverOpts, err := c.cfg.SolverOptions()
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(opts.gen.seed))

	insts := make([]*core.Instance, 0, opts.count)
	for draws := 0; len(insts) < opts.count; draws++ {
		if draws >= opts.count*maxDrawsPerInstance {
			return fmt.Errorf("generated %d of %d feasible instances in %d draws", len(insts), opts.count, draws)
		}
		inst, err := opts.gen.draw(rng)
		if errors.Is(err, generate.ErrHorizonTooShort) {
			c.log.Debug().Err(err).Msg("redrawing")
			continue
		}
		if err != nil {
			return err
		}
		if opts.feasibleOnly {
			ok, err := pltr.Feasible(cmd.Context(), inst, solverOpts.Flow)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
		}
		insts = append(insts, inst)
	}

	var w io.Writer = c.out
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := dataset.Write(w, insts); err != nil {
		return err
	}
	c.log.Info().Int("instances", len(insts)).Str("output", opts.output).Msg("generated dataset")

	return nil
}
