package pltr

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/pltr/core"
)

// Solve builds the scheduling network of inst with opts.Flow and runs the
// sweep on it. See Run.
func Solve(ctx context.Context, inst *core.Instance, opts Options) (core.Schedule, error) {
	if err := opts.checkLowerBound(inst); err != nil {
		return core.Schedule{}, err
	}
	net, err := BuildNetwork(inst, opts.Flow)
	if err != nil {
		return core.Schedule{}, fmt.Errorf("pltr: build network: %w", err)
	}

	return Run(ctx, inst, net, opts)
}

// Run executes the level sweep on net, which must be the zero-flow network
// BuildNetwork produces for inst (or an equivalent implementation), and
// extracts the resulting schedule.
//
// Steps:
//  1. Saturate net; a maximum flow below p_total yields ErrInfeasibleInstance.
//  2. For k = m … 1, starting at slot 0, alternate keep-idle and keep-busy
//     until the cursor reaches d_max. Each step binary-searches the largest
//     feasible boundary on snapshots and commits it once on net.
//  3. Read the schedule off the final flow and validate it.
//
// Errors: ErrInfeasibleInstance is an ordinary outcome; anything matching
// ErrInvariantViolation is a defect of the engine or of net. ctx errors are
// returned as is. No partial schedule is ever returned.
//
// Complexity: O(m · d_max · log d_max) max-flow re-solves.
func Run[N Network[N]](ctx context.Context, inst *core.Instance, net N, opts Options) (sched core.Schedule, err error) {
	opts.normalize()
	if err = opts.checkLowerBound(inst); err != nil {
		return core.Schedule{}, err
	}

	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		opts.Observer.ObserveSolve(inst.NumJobs(), inst.Horizon(), elapsed, err)
		if err != nil {
			opts.Logger.Warn().Err(err).Int("jobs", inst.NumJobs()).Dur("elapsed", elapsed).Msg("instance failed")

			return
		}
		opts.Logger.Info().
			Int("jobs", inst.NumJobs()).
			Int("horizon", inst.Horizon()).
			Int("machines", inst.Machines()).
			Dur("elapsed", elapsed).
			Msg("finished instance")
	}()

	s := &sweep[N]{inst: inst, net: net, opts: opts}
	if err = s.saturate(ctx); err != nil {
		return core.Schedule{}, err
	}

	horizon := inst.Horizon()
	for k := inst.Machines(); k >= 1; k-- {
		for t := 0; t < horizon; {
			from := t
			if t, err = s.extend(ctx, StepKeepIdle, k, t); err != nil {
				return core.Schedule{}, err
			}
			if t < horizon {
				if t, err = s.extend(ctx, StepKeepBusy, k, t); err != nil {
					return core.Schedule{}, err
				}
			}
			if t == from {
				return core.Schedule{}, &InvariantError{
					Step:   StepKeepBusy,
					Level:  k,
					Slot:   t,
					Detail: "neither keep-idle nor keep-busy advanced the cursor",
				}
			}
		}
	}

	return Extract(inst, net)
}

// sweep holds the committed network of one Run.
type sweep[N Network[N]] struct {
	inst *core.Instance
	net  N
	opts Options
}

// saturate maximizes the committed flow before the first step, so that the
// empty extension of every later step is known to be feasible.
func (s *sweep[N]) saturate(ctx context.Context) error {
	ok, err := s.saturated(ctx, s.net, StepKeepIdle, s.inst.Machines())
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: max flow below p_total=%d", ErrInfeasibleInstance, s.inst.TotalVolume())
	}

	return nil
}

// extend finds the largest upto in [from, d_max] for which step can be
// applied to [from, upto), commits it on the network and returns upto.
func (s *sweep[N]) extend(ctx context.Context, step Step, k, from int) (int, error) {
	if err := ctx.Err(); err != nil {
		return from, err
	}

	probe := func(ctx context.Context, upto int) (bool, error) {
		ok, err := s.apply(ctx, s.net.Snapshot(), step, k, from, upto)
		if err != nil {
			return false, err
		}
		s.opts.Observer.ObserveProbe(step, k, from, upto, ok)

		return ok, nil
	}
	upto, found, err := SearchMaximum(ctx, probe, from, s.inst.Horizon()+1, s.opts.Probes)
	if err != nil {
		return from, err
	}
	if !found {
		return from, &InvariantError{
			Step:   step,
			Level:  k,
			Slot:   from,
			Detail: "empty extension is infeasible on a saturated network",
		}
	}
	if upto == from {
		return from, nil
	}

	ok, err := s.apply(ctx, s.net, step, k, from, upto)
	if err != nil {
		return from, err
	}
	if !ok {
		return from, &InvariantError{
			Step:   step,
			Level:  k,
			Slot:   from,
			Detail: fmt.Sprintf("commit of [%d, %d) lost saturation after a feasible probe", from, upto),
		}
	}
	s.opts.Observer.ObserveCommit(step, k, from, upto)
	s.opts.Logger.Debug().
		Str("step", string(step)).
		Int("level", k).
		Int("from", from).
		Int("upto", upto).
		Msg("committed extension")

	return upto, nil
}

// apply mutates net for step over [from, upto) and reports whether net
// still carries a saturating flow.
func (s *sweep[N]) apply(ctx context.Context, net N, step Step, k, from, upto int) (bool, error) {
	var (
		ok  bool
		err error
	)
	switch step {
	case StepKeepIdle:
		ok, err = s.keepIdle(net, k, from, upto)
	case StepKeepBusy:
		ok, err = s.keepBusy(net, k, from, upto)
	default:
		return false, fmt.Errorf("pltr: unknown step %q", step)
	}
	if err != nil || !ok {
		return false, err
	}

	return s.saturated(ctx, net, step, k)
}

// keepIdle marks processor k idle on [from, upto): the slot budget
// capacity(v_t, gamma) + capacity(v_t, omega) drops from k to k−1.
func (s *sweep[N]) keepIdle(net N, k, from, upto int) (bool, error) {
	gamma, omega := s.inst.GammaNode(), s.inst.OmegaNode()
	for t := from; t < upto; t++ {
		v := s.inst.VNode(t)
		busy := net.Capacity(v, omega)
		if busy >= k {
			return false, nil
		}
		if idle := net.Capacity(v, gamma); idle+busy != k {
			return false, &InvariantError{
				Step:   StepKeepIdle,
				Level:  k,
				Slot:   t,
				Detail: fmt.Sprintf("slot budget %d+%d != %d", idle, busy, k),
			}
		}
		if err := net.SetCapacity(v, gamma, k-1-busy); err != nil {
			return false, &InvariantError{Step: StepKeepIdle, Level: k, Slot: t, Detail: "set v→gamma", Err: err}
		}
	}

	return true, nil
}

// keepBusy forces processor k busy on [from, upto), paying for every raised
// slot allotment from that slot's idle budget and the global gamma→omega pool.
func (s *sweep[N]) keepBusy(net N, k, from, upto int) (bool, error) {
	gamma, omega := s.inst.GammaNode(), s.inst.OmegaNode()
	total := 0
	for t := from; t < upto; t++ {
		v := s.inst.VNode(t)
		old := net.Capacity(v, omega)
		raised := max(k, old)
		increase := raised - old
		idle := net.Capacity(v, gamma) - increase
		if idle < 0 {
			return false, nil
		}
		if err := net.SetCapacity(v, omega, raised); err != nil {
			return false, &InvariantError{Step: StepKeepBusy, Level: k, Slot: t, Detail: "set v→omega", Err: err}
		}
		if err := net.SetCapacity(v, gamma, idle); err != nil {
			return false, &InvariantError{Step: StepKeepBusy, Level: k, Slot: t, Detail: "set v→gamma", Err: err}
		}
		total += increase
	}

	pool := net.Capacity(gamma, omega) - total
	if pool < 0 {
		return false, nil
	}
	if err := net.SetCapacity(gamma, omega, pool); err != nil {
		return false, &InvariantError{Step: StepKeepBusy, Level: k, Slot: -1, Detail: "set gamma→omega", Err: err}
	}

	return true, nil
}

// saturated re-solves net and reports whether its flow equals p_total.
func (s *sweep[N]) saturated(ctx context.Context, net N, step Step, k int) (bool, error) {
	value, err := net.MaximizeFlow(ctx)
	if err != nil {
		return false, err
	}
	if total := s.inst.TotalVolume(); value > total {
		return false, &InvariantError{
			Step:   step,
			Level:  k,
			Slot:   -1,
			Detail: fmt.Sprintf("flow %d > p_total %d", value, total),
			Err:    ErrMaxFlowExceedsBound,
		}
	}

	return value == s.inst.TotalVolume(), nil
}
