// Package core defines the problem data shared by every other package:
// Job, Instance and Schedule, plus the validity predicate that ties a
// Schedule back to the Instance it was computed for.
//
// A Job is a value: an identifier, an inclusive release time r, an
// exclusive deadline d and a processing volume p (the number of unit
// time slots it must occupy). An Instance owns an ordered copy of its
// jobs together with the machine count m and the lower-bound parameter q,
// and derives the time horizon d_max and the total volume p_total once,
// at construction.
//
// Instance also fixes the node numbering of the scheduling flow network:
//
//	alpha = 0
//	u_j   = 1 + j              (one node per job, in instance order)
//	v_t   = 1 + n + t          (one node per slot t in [0, d_max))
//	gamma = 1 + n + d_max
//	omega = gamma + 1
//
// Errors:
//
//	ErrInvalidJob          - job window or volume violates r < d, 0 < p ≤ d−r (see JobError).
//	ErrDuplicateJobID      - two jobs share an identifier.
//	ErrNoMachines          - machine count below one.
//	ErrNegativeLowerBound  - q below zero.
//	ErrHorizonTooShort     - WithHorizon shorter than the latest deadline.
//	ErrInvalidSchedule     - schedule fails validation (see ValidationError).
//
// Jobs and Instances are immutable after construction and safe to share
// between goroutines. IDGenerator is the only stateful type and uses an
// atomic counter.
package core
