// Package pltr computes feasible parallel-machine schedules for jobs with
// time windows using the Parallel Left-to-Right (PLTR) sweep over a
// maximum-flow network.
//
// # Network
//
// BuildNetwork turns an Instance with n jobs, m machines and horizon d_max
// into a flow network (node numbering in package core):
//
//	alpha ──p_j──▶ u_j ──1──▶ v_t ──m──▶ omega        (r_j ≤ t < d_j)
//	                          v_t ──0──▶ gamma ──p_total──▶ omega
//
// The instance is schedulable iff the maximum flow equals p_total.
//
// # Sweep
//
// For every processor level k = m … 1 the sweep moves a cursor over the
// slots, alternating two extensions until the cursor reaches d_max:
//
//	keep-idle(k, from)  leave processor k idle on [from, upto)
//	keep-busy(k, from)  force processor k busy on [from, upto)
//
// Each extension binary-searches the largest upto in [from, d_max] for
// which the mutated network still carries a saturating flow, probing on
// snapshots, then commits once at that boundary. The final flow is read
// off the u_j→v_t edges by Extract and validated.
//
// Binary search relies on the extension predicates being monotone
// (true for a prefix of candidates, then false). SearchMaximum can
// evaluate several candidates of one step concurrently (Options.Probes).
//
// # Errors
//
//	ErrInfeasibleInstance     - the instance is not schedulable (recoverable).
//	ErrInvariantViolation     - engine defect; see *InvariantError for
//	                            step, level and slot.
//	ErrMaxFlowExceedsBound    - wrapped by *InvariantError.
//	ErrLowerBoundNotEnforced  - LowerBoundStrict with q > 0.
//
// Callers get either a validated core.Schedule or an error, never a
// partial schedule.
package pltr
