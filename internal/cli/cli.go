// Package cli implements the pltr command-line interface.
package cli

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/pltr/config"
	"github.com/katalvlaran/pltr/core"
	"github.com/katalvlaran/pltr/dataset"
	"github.com/katalvlaran/pltr/generate"
	"github.com/katalvlaran/pltr/logger"
)

const appName = "pltr"

// CLI holds state shared by all commands. Results go to out, logs to
// logOut.
type CLI struct {
	out     io.Writer
	logOut  io.Writer
	cfgPath string
	verbose bool

	cfg *config.Config
	log zerolog.Logger
}

// New returns a CLI writing results to out and logs to logOut.
func New(out, logOut io.Writer) *CLI {
	return &CLI{out: out, logOut: logOut, cfg: config.Default(), log: zerolog.Nop()}
}

// RootCommand creates the root command with every subcommand registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Schedule jobs with time windows on parallel machines",
		Long: `pltr computes feasible schedules for jobs with release times, deadlines and
processing volumes on identical parallel machines, using the level-by-level
left-to-right max-flow sweep.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}
	root.PersistentFlags().StringVarP(&c.cfgPath, "config", "c", "", "config file (.yaml, .yml or .json)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.benchCommand())
	root.AddCommand(c.generateCommand())

	return root
}

func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.cfgPath)
	if err != nil {
		return err
	}
	if c.verbose {
		cfg.Logging.Level = zerolog.DebugLevel.String()
	}
	c.cfg = cfg
	c.log = logger.NewWithWriter(c.logOut, appName, cfg.Logging).With().Str("command", cmd.Name()).Logger()

	return nil
}

// genFlags are the generator flags shared by solve and generate.
type genFlags struct {
	jobs        int
	horizon     int
	avgInterval int
	machines    int
	lowerBound  int
	valleys     int
	seed        int64
}

func (g *genFlags) register(cmd *cobra.Command) {
	d := generate.DefaultParams()
	cmd.Flags().IntVar(&g.jobs, "jobs", d.Jobs, "number of generated jobs")
	cmd.Flags().IntVar(&g.horizon, "horizon", d.Horizon, "generated time horizon")
	cmd.Flags().IntVar(&g.avgInterval, "avg-interval", d.AvgInterval, "mean window length")
	cmd.Flags().IntVar(&g.machines, "machines", d.Machines, "machine count m")
	cmd.Flags().IntVar(&g.lowerBound, "lower-bound", d.LowerBound, "lower-bound parameter q")
	cmd.Flags().IntVar(&g.valleys, "valleys", 0, "split the horizon into this many valleys (0 = uniform)")
	cmd.Flags().Int64Var(&g.seed, "seed", 1, "random seed")
}

func (g genFlags) params() generate.Params {
	return generate.Params{
		Jobs:        g.jobs,
		Horizon:     g.horizon,
		AvgInterval: g.avgInterval,
		Machines:    g.machines,
		LowerBound:  g.lowerBound,
	}
}

// draw returns the next generated instance from rng.
func (g genFlags) draw(rng *rand.Rand) (*core.Instance, error) {
	if g.valleys > 0 {
		return generate.Valley(rng, g.params(), g.valleys)
	}

	return generate.Random(rng, g.params())
}

// loadDataset parses path, logging and skipping malformed records.
func (c *CLI) loadDataset(path string) ([]*core.Instance, error) {
	insts, err := dataset.Load(path, core.NewIDGenerator(0), dataset.WithSkipInvalid(func(re *dataset.RecordError) {
		c.log.Warn().Err(re).Int("record", re.Record).Msg("skipping record")
	}))
	if err != nil {
		return nil, err
	}
	if len(insts) == 0 {
		return nil, fmt.Errorf("%s: no instances", path)
	}
	c.log.Debug().Str("path", path).Int("instances", len(insts)).Msg("loaded dataset")

	return insts, nil
}
