package config

import (
	"fmt"

	"github.com/katalvlaran/pltr/flow"
	"github.com/katalvlaran/pltr/pltr"
)

// SolverConfig selects the max-flow strategy and sweep options.
type SolverConfig struct {
	// Algorithm is "edmonds-karp", "dinic" or "ford-fulkerson".
	Algorithm string `json:"algorithm"`
	// LevelRebuildInterval caps Dinic pushes per level graph; 0 means none.
	LevelRebuildInterval int `json:"level_rebuild_interval"`
	// Probes is the number of concurrent feasibility probes per search step.
	Probes int `json:"probes"`
	// LowerBound is "ignore" or "strict".
	LowerBound string `json:"lower_bound"`
}

// SetDefaults selects Edmonds-Karp, one probe and the ignore policy.
func (c *SolverConfig) SetDefaults() {
	if c.Algorithm == "" {
		c.Algorithm = flow.EdmondsKarp.String()
	}
	if c.Probes == 0 {
		c.Probes = 1
	}
	if c.LowerBound == "" {
		c.LowerBound = pltr.LowerBoundIgnore.String()
	}
}

// Validate rejects unknown names and out-of-range counts.
func (c SolverConfig) Validate() error {
	if _, err := flow.ParseAlgorithm(c.Algorithm); err != nil {
		return fmt.Errorf("config: solver.algorithm: %w", err)
	}
	if _, err := pltr.ParseLowerBoundPolicy(c.LowerBound); err != nil {
		return fmt.Errorf("config: solver.lower_bound: %w", err)
	}
	if c.Probes < 1 {
		return fmt.Errorf("config: solver.probes must be at least 1, got %d", c.Probes)
	}
	if c.LevelRebuildInterval < 0 {
		return fmt.Errorf("config: solver.level_rebuild_interval must not be negative, got %d", c.LevelRebuildInterval)
	}

	return nil
}

// Options maps the section onto pltr.Options. Logger and Observer are left
// for the caller.
func (c SolverConfig) Options() (pltr.Options, error) {
	alg, err := flow.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return pltr.Options{}, fmt.Errorf("config: solver.algorithm: %w", err)
	}
	lb, err := pltr.ParseLowerBoundPolicy(c.LowerBound)
	if err != nil {
		return pltr.Options{}, fmt.Errorf("config: solver.lower_bound: %w", err)
	}

	opts := pltr.DefaultOptions()
	opts.Flow.Algorithm = alg
	opts.Flow.LevelRebuildInterval = c.LevelRebuildInterval
	opts.Probes = c.Probes
	opts.LowerBound = lb

	return opts, nil
}

// SolverOptions is a shorthand for c.Solver.Options().
func (c Config) SolverOptions() (pltr.Options, error) { return c.Solver.Options() }
