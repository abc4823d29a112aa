package core

import (
	"fmt"
	"slices"
)

// ValidationError describes the first violation found by Schedule.Validate.
// Slot is -1 when the violation is not tied to a single slot.
type ValidationError struct {
	JobID  int
	Slot   int
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Slot < 0 {
		return fmt.Sprintf("core: job %d not feasibly scheduled: %s", e.JobID, e.Reason)
	}

	return fmt.Sprintf("core: slot %d: %s", e.Slot, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidSchedule.
func (e *ValidationError) Unwrap() error { return ErrInvalidSchedule }

// Schedule assigns job ids to unit time slots on up to Machines() machines.
// It is immutable: accessors return copies.
type Schedule struct {
	slots    [][]int
	machines int
}

// NewSchedule copies slots into a Schedule for m machines.
func NewSchedule(slots [][]int, m int) Schedule {
	s := Schedule{slots: make([][]int, len(slots)), machines: m}
	for t, ids := range slots {
		s.slots[t] = append(make([]int, 0, len(ids)), ids...)
	}

	return s
}

// Len returns the number of slots.
func (s Schedule) Len() int { return len(s.slots) }

// Machines returns the machine count the schedule was built for.
func (s Schedule) Machines() int { return s.machines }

// Slot returns a copy of the job ids occupying slot t.
func (s Schedule) Slot(t int) []int {
	return append(make([]int, 0, len(s.slots[t])), s.slots[t]...)
}

// Slots returns a deep copy of all slots. Empty slots are empty, non-nil
// slices.
func (s Schedule) Slots() [][]int {
	out := make([][]int, len(s.slots))
	for t := range s.slots {
		out[t] = s.Slot(t)
	}

	return out
}

// TimeslotsOf returns, in increasing order, the slots that hold job id.
func (s Schedule) TimeslotsOf(id int) []int {
	var out []int
	for t, ids := range s.slots {
		for _, scheduled := range ids {
			if scheduled == id {
				out = append(out, t)
			}
		}
	}

	return out
}

// Equal reports whether both schedules hold the same ids in the same order.
func (s Schedule) Equal(o Schedule) bool {
	if s.machines != o.machines || len(s.slots) != len(o.slots) {
		return false
	}
	for t := range s.slots {
		if !slices.Equal(s.slots[t], o.slots[t]) {
			return false
		}
	}

	return true
}

// Validate checks the schedule against inst:
//  1. it spans exactly d_max slots;
//  2. every job occupies exactly Volume slots, all inside [Release, Deadline);
//  3. no slot holds more than m jobs, an id foreign to inst or the same id
//     twice.
//
// The first violation is returned as a *ValidationError.
//
// Complexity: O(d_max · m² + n · d_max).
func (s Schedule) Validate(inst *Instance) error {
	if len(s.slots) != inst.Horizon() {
		return &ValidationError{Slot: len(s.slots), Reason: fmt.Sprintf("schedule spans %d slots, horizon is %d", len(s.slots), inst.Horizon())}
	}

	for _, job := range inst.jobs {
		slots := s.TimeslotsOf(job.ID)
		if len(slots) != job.Volume {
			return &ValidationError{
				JobID:  job.ID,
				Slot:   -1,
				Reason: fmt.Sprintf("%d of %d units scheduled", len(slots), job.Volume),
			}
		}
		for _, t := range slots {
			if !job.Covers(t) {
				return &ValidationError{
					JobID:  job.ID,
					Slot:   -1,
					Reason: fmt.Sprintf("slot %d outside window [%d, %d)", t, job.Release, job.Deadline),
				}
			}
		}
	}

	known := make(map[int]struct{}, len(inst.jobs))
	for _, job := range inst.jobs {
		known[job.ID] = struct{}{}
	}
	for t, ids := range s.slots {
		if len(ids) > inst.Machines() {
			return &ValidationError{Slot: t, Reason: fmt.Sprintf("%d jobs on %d machines", len(ids), inst.Machines())}
		}
		for i, id := range ids {
			if _, ok := known[id]; !ok {
				return &ValidationError{JobID: id, Slot: t, Reason: fmt.Sprintf("unknown job %d", id)}
			}
			if slices.Contains(ids[:i], id) {
				return &ValidationError{JobID: id, Slot: t, Reason: fmt.Sprintf("job %d listed twice", id)}
			}
		}
	}

	return nil
}
