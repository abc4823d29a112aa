// Package pltr is the root of a module that computes feasible schedules
// for jobs with time windows on identical parallel machines.
//
// Every job j has a release time r_j, an exclusive deadline d_j and a
// processing volume p_j: the number of unit time slots in [r_j, d_j) it
// must occupy. At most m jobs run in one slot. The module builds the
// scheduling flow network of an instance and sweeps processor levels
// m, m−1, …, 1 from left to right, keeping each level idle or busy over
// the longest range that still admits a saturating flow.
//
// Packages:
//
//	core/      - Job, Instance, Schedule, validation and text rendering
//	flow/      - incremental max flow (Edmonds–Karp, Dinic, Ford–Fulkerson)
//	pltr/      - network construction, the level sweep, schedule extraction
//	generate/  - random, valley and fixed test instances
//	dataset/   - CSV ingestion and export of benchmark instances
//	config/    - koanf-based configuration
//	logger/    - zerolog setup
//	metrics/   - Prometheus observer for sweep events
//	cmd/pltr   - command line: solve, bench, generate
//
// Quick example:
//
//	inst, _ := core.NewInstance([]core.Job{
//		{ID: 0, Release: 0, Deadline: 2, Volume: 1},
//		{ID: 1, Release: 0, Deadline: 2, Volume: 2},
//	}, 2, 0)
//	sched, err := pltr.Solve(ctx, inst, pltr.DefaultOptions())
//	// job 1 occupies both slots, job 0 one of them
package pltr
