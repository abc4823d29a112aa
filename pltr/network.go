package pltr

import (
	"context"

	"github.com/katalvlaran/pltr/core"
	"github.com/katalvlaran/pltr/flow"
)

// Network is the max-flow capability the sweep needs. N is the concrete
// type itself, so Snapshot returns something the sweep can keep mutating.
// *flow.Network satisfies Network[*flow.Network].
type Network[N any] interface {
	// Capacity returns flow plus residual on u→v.
	Capacity(u, v int) int
	// Flow returns the current flow on u→v.
	Flow(u, v int) int
	// SetCapacity replaces the capacity of u→v without re-solving.
	SetCapacity(u, v, c int) error
	// MaximizeFlow augments the existing flow to a maximum and returns its value.
	MaximizeFlow(ctx context.Context) (int, error)
	// Snapshot returns an independent copy of capacities and flow.
	Snapshot() N
}

var _ Network[*flow.Network] = (*flow.Network)(nil)

// BuildNetwork constructs the scheduling network of inst with zero flow.
//
// Edges are declared in this order, which fixes the tie-breaks of the
// augmenting-path searches (later declarations are tried first):
//  1. alpha → u_j with capacity p_j, for every job j;
//  2. u_j → v_t with capacity 1, for every job j and r_j ≤ t < d_j;
//  3. v_t → omega with capacity m and v_t → gamma with capacity 0, per slot;
//  4. gamma → omega with capacity p_total.
//
// Complexity: O(n + Σ(d_j − r_j) + d_max).
func BuildNetwork(inst *core.Instance, opts flow.Options) (*flow.Network, error) {
	alpha, gamma, omega := inst.AlphaNode(), inst.GammaNode(), inst.OmegaNode()
	b := flow.NewBuilder(inst.NodeCount(), alpha, omega)

	for j := 0; j < inst.NumJobs(); j++ {
		if err := b.AddEdge(alpha, inst.UNode(j), inst.Job(j).Volume); err != nil {
			return nil, err
		}
	}
	for j := 0; j < inst.NumJobs(); j++ {
		job := inst.Job(j)
		for t := job.Release; t < job.Deadline; t++ {
			if err := b.AddEdge(inst.UNode(j), inst.VNode(t), 1); err != nil {
				return nil, err
			}
		}
	}
	for t := 0; t < inst.Horizon(); t++ {
		if err := b.AddEdge(inst.VNode(t), omega, inst.Machines()); err != nil {
			return nil, err
		}
		if err := b.AddEdge(inst.VNode(t), gamma, 0); err != nil {
			return nil, err
		}
	}
	if err := b.AddEdge(gamma, omega, inst.TotalVolume()); err != nil {
		return nil, err
	}

	return b.Build(opts)
}

// Feasible reports whether inst has any schedule: whether the freshly
// built network carries a flow of p_total.
func Feasible(ctx context.Context, inst *core.Instance, opts flow.Options) (bool, error) {
	net, err := BuildNetwork(inst, opts)
	if err != nil {
		return false, err
	}
	value, err := net.MaximizeFlow(ctx)
	if err != nil {
		return false, err
	}

	return value == inst.TotalVolume(), nil
}
