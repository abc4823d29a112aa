package pltr

import (
	"github.com/katalvlaran/pltr/core"
)

// FlowReader is the read side of a solved network.
type FlowReader interface {
	Flow(u, v int) int
}

// Extract reads the schedule off the job→slot flow of net: slot t holds job
// j iff Flow(u_j, v_t) == 1, jobs in instance order. The schedule is then
// validated against inst; a failure is an *InvariantError wrapping the
// *core.ValidationError, since a saturating integral flow always encodes a
// valid schedule.
//
// Complexity: O(Σ(d_j − r_j) + validation).
func Extract(inst *core.Instance, net FlowReader) (core.Schedule, error) {
	slots := make([][]int, inst.Horizon())
	for j := 0; j < inst.NumJobs(); j++ {
		job := inst.Job(j)
		u := inst.UNode(j)
		for t := job.Release; t < job.Deadline; t++ {
			if net.Flow(u, inst.VNode(t)) == 1 {
				slots[t] = append(slots[t], job.ID)
			}
		}
	}

	sched := core.NewSchedule(slots, inst.Machines())
	if err := sched.Validate(inst); err != nil {
		return core.Schedule{}, &InvariantError{
			Step:   StepExtract,
			Level:  0,
			Slot:   -1,
			Detail: "extracted schedule is invalid",
			Err:    err,
		}
	}

	return sched, nil
}
