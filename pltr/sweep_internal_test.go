package pltr

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pltr/flow"
	"github.com/katalvlaran/pltr/generate"
)

// TestExtensionPredicatesAreMonotone replays the sweep on generated
// instances and, before every step, evaluates the step's predicate on the
// whole domain [from, d_max]: it must hold on a prefix and fail afterwards,
// which is what the binary search relies on.
func TestExtensionPredicatesAreMonotone(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(5))
	checked := 0
	for i := 0; i < 40 && checked < 12; i++ {
		inst, err := generate.Random(rng, generate.Params{Jobs: 3 + rng.Intn(6), Horizon: 14, AvgInterval: 3, Machines: 1 + rng.Intn(3)})
		require.NoError(t, err)
		net, err := BuildNetwork(inst, flow.DefaultOptions())
		require.NoError(t, err)

		opts := DefaultOptions()
		opts.normalize()
		s := &sweep[*flow.Network]{inst: inst, net: net, opts: opts}
		if err := s.saturate(ctx); err != nil {
			require.ErrorIs(t, err, ErrInfeasibleInstance)
			continue
		}
		checked++

		monotone := func(step Step, k, from int) {
			falseSeen := false
			for upto := from; upto <= inst.Horizon(); upto++ {
				ok, err := s.apply(ctx, s.net.Snapshot(), step, k, from, upto)
				require.NoError(t, err)
				if upto == from {
					require.True(t, ok, "%s: empty extension at level %d slot %d", step, k, from)
				}
				if falseSeen {
					require.False(t, ok, "%s: level %d, from %d, upto %d after a failing prefix", step, k, from, upto)
				}
				falseSeen = falseSeen || !ok
			}
		}

		for k := inst.Machines(); k >= 1; k-- {
			for cur := 0; cur < inst.Horizon(); {
				monotone(StepKeepIdle, k, cur)
				cur, err = s.extend(ctx, StepKeepIdle, k, cur)
				require.NoError(t, err)
				if cur < inst.Horizon() {
					monotone(StepKeepBusy, k, cur)
					cur, err = s.extend(ctx, StepKeepBusy, k, cur)
					require.NoError(t, err)
				}
			}
		}
		_, err = Extract(inst, net)
		require.NoError(t, err)
	}
	require.Positive(t, checked)
}

// TestKeepBusyBudgetExhaustion drains the gamma→omega pool by hand and
// checks that keep-busy then reports infeasible instead of going negative.
func TestKeepBusyBudgetExhaustion(t *testing.T) {
	inst := mustInstanceInternal(t)
	net, err := BuildNetwork(inst, flow.DefaultOptions())
	require.NoError(t, err)
	opts := DefaultOptions()
	opts.normalize()
	s := &sweep[*flow.Network]{inst: inst, net: net, opts: opts}

	// Lower slot 0's allotment so keep-busy at level 2 must raise it by one.
	require.NoError(t, net.SetCapacity(inst.VNode(0), inst.OmegaNode(), 1))
	ok, err := s.keepBusy(net.Snapshot(), 2, 0, 1)
	require.NoError(t, err)
	require.False(t, ok, "slot 0 has no idle budget to convert")

	require.NoError(t, net.SetCapacity(inst.VNode(0), inst.GammaNode(), 1))
	require.NoError(t, net.SetCapacity(inst.GammaNode(), inst.OmegaNode(), 0))
	ok, err = s.keepBusy(net.Snapshot(), 2, 0, 1)
	require.NoError(t, err)
	require.False(t, ok, "global pool is empty")

	require.NoError(t, net.SetCapacity(inst.GammaNode(), inst.OmegaNode(), 1))
	snap := net.Snapshot()
	ok, err = s.keepBusy(snap, 2, 0, 1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 2, snap.Capacity(inst.VNode(0), inst.OmegaNode()))
	require.Zero(t, snap.Capacity(inst.VNode(0), inst.GammaNode()))
	require.Zero(t, snap.Capacity(inst.GammaNode(), inst.OmegaNode()))
}

// TestKeepIdleChecksSlotBudget breaks the slot budget and expects an
// invariant violation naming the slot.
func TestKeepIdleChecksSlotBudget(t *testing.T) {
	inst := mustInstanceInternal(t)
	net, err := BuildNetwork(inst, flow.DefaultOptions())
	require.NoError(t, err)
	opts := DefaultOptions()
	opts.normalize()
	s := &sweep[*flow.Network]{inst: inst, net: net, opts: opts}

	require.NoError(t, net.SetCapacity(inst.VNode(1), inst.OmegaNode(), 0))
	ok, err := s.keepIdle(net.Snapshot(), 2, 1, 2)
	require.False(t, ok)
	var ie *InvariantError
	require.ErrorAs(t, err, &ie)
	require.Equal(t, StepKeepIdle, ie.Step)
	require.Equal(t, 1, ie.Slot)
	require.Equal(t, 2, ie.Level)

	require.NoError(t, net.SetCapacity(inst.VNode(1), inst.GammaNode(), 2))
	snap := net.Snapshot()
	ok, err = s.keepIdle(snap, 2, 1, 2)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, snap.Capacity(inst.VNode(1), inst.GammaNode()))
}
