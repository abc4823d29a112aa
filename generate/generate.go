package generate

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/katalvlaran/pltr/core"
)

var (
	// ErrHorizonTooShort is returned when a drawn window leaves no room for
	// at least two release times inside the horizon.
	ErrHorizonTooShort = errors.New("generate: horizon too short for drawn window")

	// ErrInvalidParams is returned for non-positive counts.
	ErrInvalidParams = errors.New("generate: invalid parameters")
)

// Params describes a random instance.
type Params struct {
	// Jobs is the number of jobs drawn.
	Jobs int
	// Horizon bounds the deadlines (exclusive upper end for releases).
	Horizon int
	// AvgInterval is the mean window length; windows are uniform in
	// [1, max(2, 2·AvgInterval)).
	AvgInterval int
	// Machines is m.
	Machines int
	// LowerBound is q.
	LowerBound int
}

// DefaultParams mirrors the benchmark driver's defaults.
func DefaultParams() Params {
	return Params{Jobs: 10, Horizon: 20, AvgInterval: 3, Machines: 5, LowerBound: 1}
}

func (p Params) validate() error {
	switch {
	case p.Jobs < 0:
		return fmt.Errorf("%w: jobs=%d", ErrInvalidParams, p.Jobs)
	case p.Horizon < 1:
		return fmt.Errorf("%w: horizon=%d", ErrInvalidParams, p.Horizon)
	case p.Machines < 1:
		return fmt.Errorf("%w: machines=%d", ErrInvalidParams, p.Machines)
	case p.AvgInterval < 0:
		return fmt.Errorf("%w: avg interval=%d", ErrInvalidParams, p.AvgInterval)
	}

	return nil
}

// Random draws p.Jobs jobs with ids 0..Jobs−1 over [0, p.Horizon), sorted
// by deadline (stable, so equal deadlines keep draw order).
//
// Per job: window length w uniform in [1, max(2, 2·AvgInterval)), release
// uniform in [0, Horizon−w), volume uniform in [1, max(1, w/2)].
//
// Errors: ErrInvalidParams; ErrHorizonTooShort when Horizon − w ≤ 1.
func Random(rng *rand.Rand, p Params) (*core.Instance, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	jobs, err := randomJobs(rng, p.Jobs, p.Horizon, p.AvgInterval)
	if err != nil {
		return nil, err
	}
	byDeadline(jobs)

	return core.NewInstance(jobs, p.Machines, p.LowerBound)
}

// Valley splits [0, p.Horizon) into valleys equal parts, draws every job as
// Random does within one part and shifts job i into part i mod valleys.
func Valley(rng *rand.Rand, p Params, valleys int) (*core.Instance, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if valleys < 1 {
		return nil, fmt.Errorf("%w: valleys=%d", ErrInvalidParams, valleys)
	}
	size := p.Horizon / valleys
	jobs, err := randomJobs(rng, p.Jobs, size, p.AvgInterval)
	if err != nil {
		return nil, err
	}
	for i := range jobs {
		offset := size * (i % valleys)
		jobs[i].Release += offset
		jobs[i].Deadline += offset
	}
	byDeadline(jobs)

	return core.NewInstance(jobs, p.Machines, p.LowerBound)
}

// SmallDeterministic returns four fixed jobs on one machine with q = 1 and
// a horizon one slot past the latest deadline.
func SmallDeterministic() *core.Instance {
	jobs := []core.Job{
		{ID: 1, Release: 1, Deadline: 3, Volume: 1},
		{ID: 2, Release: 1, Deadline: 10, Volume: 2},
		{ID: 3, Release: 6, Deadline: 7, Volume: 1},
		{ID: 4, Release: 7, Deadline: 9, Volume: 2},
	}
	byDeadline(jobs)
	inst, err := core.NewInstance(jobs, 1, 1, core.WithHorizon(11))
	if err != nil {
		panic(err) // fixed data
	}

	return inst
}

func randomJobs(rng *rand.Rand, n, horizon, avg int) ([]core.Job, error) {
	jobs := make([]core.Job, 0, n)
	for i := 0; i < n; i++ {
		w := 1 + rng.Intn(max(2, 2*avg)-1)
		if horizon-w <= 1 {
			return nil, fmt.Errorf("%w: horizon %d, window %d", ErrHorizonTooShort, horizon, w)
		}
		r := rng.Intn(horizon - w)
		jobs = append(jobs, core.Job{
			ID:       i,
			Release:  r,
			Deadline: r + w,
			Volume:   1 + rng.Intn(max(1, w/2)),
		})
	}

	return jobs, nil
}

func byDeadline(jobs []core.Job) {
	sort.SliceStable(jobs, func(a, b int) bool { return jobs[a].Deadline < jobs[b].Deadline })
}
