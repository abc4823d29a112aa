package core

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// Sentinel errors for instance and schedule construction.
var (
	// ErrInvalidJob indicates a job whose window or volume is malformed.
	ErrInvalidJob = errors.New("core: invalid job")

	// ErrDuplicateJobID indicates two jobs of one instance share an ID.
	ErrDuplicateJobID = errors.New("core: duplicate job id")

	// ErrNoMachines indicates a machine count below one.
	ErrNoMachines = errors.New("core: machine count must be at least 1")

	// ErrNegativeLowerBound indicates a negative lower-bound parameter q.
	ErrNegativeLowerBound = errors.New("core: lower bound must not be negative")

	// ErrHorizonTooShort indicates WithHorizon cut off a job's window.
	ErrHorizonTooShort = errors.New("core: horizon ends before the latest deadline")

	// ErrInvalidSchedule indicates a schedule that violates its instance.
	ErrInvalidSchedule = errors.New("core: invalid schedule")
)

// JobError reports which job failed validation and why.
type JobError struct {
	ID                        int
	Release, Deadline, Volume int
	Reason                    string
}

func (e *JobError) Error() string {
	return fmt.Sprintf("core: job %d [r=%d, d=%d, p=%d]: %s",
		e.ID, e.Release, e.Deadline, e.Volume, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidJob.
func (e *JobError) Unwrap() error { return ErrInvalidJob }

// Job is a unit of work that must occupy Volume distinct unit time slots
// inside the half-open window [Release, Deadline).
type Job struct {
	// ID identifies the job within its Instance.
	ID int

	// Release is the first slot the job may occupy.
	Release int

	// Deadline is one past the last slot the job may occupy.
	Deadline int

	// Volume is the number of slots the job must occupy.
	Volume int
}

// NewJob returns a validated Job with a caller-assigned id.
func NewJob(id, release, deadline, volume int) (Job, error) {
	j := Job{ID: id, Release: release, Deadline: deadline, Volume: volume}
	if err := j.Validate(); err != nil {
		return Job{}, err
	}

	return j, nil
}

// Validate checks 0 ≤ r < d and 0 < p ≤ d − r.
func (j Job) Validate() error {
	var reason string
	switch {
	case j.Release < 0:
		reason = "release time is negative"
	case j.Release >= j.Deadline:
		reason = "release time must precede the deadline"
	case j.Volume <= 0:
		reason = "processing volume must be positive"
	case j.Volume > j.Deadline-j.Release:
		reason = "processing volume exceeds the window"
	default:
		return nil
	}

	return &JobError{ID: j.ID, Release: j.Release, Deadline: j.Deadline, Volume: j.Volume, Reason: reason}
}

// Window returns the number of slots in [Release, Deadline).
func (j Job) Window() int { return j.Deadline - j.Release }

// Covers reports whether slot t lies inside the job's window.
func (j Job) Covers(t int) bool { return j.Release <= t && t < j.Deadline }

// IDGenerator hands out increasing job identifiers. It replaces any
// implicit global counter: callers thread one generator through every
// construction site that needs fresh ids.
type IDGenerator struct {
	next atomic.Int64
}

// NewIDGenerator returns a generator whose first id is start.
func NewIDGenerator(start int) *IDGenerator {
	g := &IDGenerator{}
	g.next.Store(int64(start))

	return g
}

// Next returns the next unused id.
func (g *IDGenerator) Next() int {
	return int(g.next.Add(1) - 1)
}

// NewJob returns a validated Job carrying the next id. The id is consumed
// even if validation fails.
func (g *IDGenerator) NewJob(release, deadline, volume int) (Job, error) {
	return NewJob(g.Next(), release, deadline, volume)
}
