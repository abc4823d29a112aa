package core

import "fmt"

// InstanceOption configures an Instance before its derived values are fixed.
type InstanceOption func(*instanceConfig)

type instanceConfig struct {
	horizon int
}

// WithHorizon extends the time horizon d_max to h slots. h must not be
// shorter than the latest deadline; extra slots stay empty.
func WithHorizon(h int) InstanceOption {
	return func(c *instanceConfig) { c.horizon = h }
}

// Instance is an immutable scheduling problem: ordered jobs, m machines per
// slot and the lower-bound parameter q, with the horizon d_max and total
// volume p_total derived once.
type Instance struct {
	jobs     []Job
	machines int
	lower    int
	horizon  int
	volume   int
}

// NewInstance validates jobs, m and q and derives d_max and p_total.
// The jobs slice is copied; later changes by the caller do not leak in.
//
// Errors: *JobError (ErrInvalidJob), ErrDuplicateJobID, ErrNoMachines,
// ErrNegativeLowerBound, ErrHorizonTooShort.
//
// Complexity: O(n).
func NewInstance(jobs []Job, m, q int, opts ...InstanceOption) (*Instance, error) {
	if m < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNoMachines, m)
	}
	if q < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeLowerBound, q)
	}

	inst := &Instance{
		jobs:     make([]Job, len(jobs)),
		machines: m,
		lower:    q,
	}
	seen := make(map[int]struct{}, len(jobs))
	for i, j := range jobs {
		if err := j.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[j.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateJobID, j.ID)
		}
		seen[j.ID] = struct{}{}
		inst.jobs[i] = j
		if j.Deadline > inst.horizon {
			inst.horizon = j.Deadline
		}
		inst.volume += j.Volume
	}

	var cfg instanceConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.horizon != 0 {
		if cfg.horizon < inst.horizon {
			return nil, fmt.Errorf("%w: %d < %d", ErrHorizonTooShort, cfg.horizon, inst.horizon)
		}
		inst.horizon = cfg.horizon
	}

	return inst, nil
}

// Jobs returns a copy of the jobs in instance order.
func (in *Instance) Jobs() []Job {
	out := make([]Job, len(in.jobs))
	copy(out, in.jobs)

	return out
}

// Job returns the j-th job in instance order.
func (in *Instance) Job(j int) Job { return in.jobs[j] }

// NumJobs returns n.
func (in *Instance) NumJobs() int { return len(in.jobs) }

// Machines returns m.
func (in *Instance) Machines() int { return in.machines }

// LowerBound returns q.
func (in *Instance) LowerBound() int { return in.lower }

// Horizon returns d_max; slots are numbered 0 … d_max−1.
func (in *Instance) Horizon() int { return in.horizon }

// TotalVolume returns p_total.
func (in *Instance) TotalVolume() int { return in.volume }

// AlphaNode returns the flow network source.
func (in *Instance) AlphaNode() int { return 0 }

// UNode returns the network node of the j-th job.
func (in *Instance) UNode(j int) int { return 1 + j }

// VNode returns the network node of slot t.
func (in *Instance) VNode(t int) int { return 1 + len(in.jobs) + t }

// GammaNode returns the auxiliary budget node.
func (in *Instance) GammaNode() int { return 1 + len(in.jobs) + in.horizon }

// OmegaNode returns the flow network sink.
func (in *Instance) OmegaNode() int { return in.GammaNode() + 1 }

// NodeCount returns the number of network nodes, n + d_max + 3.
func (in *Instance) NodeCount() int { return in.OmegaNode() + 1 }
