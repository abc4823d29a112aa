package core

import (
	"fmt"
	"strings"
)

// cell is the width of one slot column, including its right border.
const cell = 4

// String draws the job's window as a bar offset by its release time:
//
//	[---|---|---]p:2, id:7
func (j Job) String() string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", cell*j.Release))
	if w := j.Window(); w > 1 {
		b.WriteString("[---")
		b.WriteString(strings.Repeat("|---", w-2))
		b.WriteString("|---]")
	} else {
		b.WriteString("[---]")
	}
	fmt.Fprintf(&b, "p:%d, id:%d", j.Volume, j.ID)

	return b.String()
}

// String prints the derived values, a slot ruler and one bar per job.
func (in *Instance) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "d_max: %d, m: %d, p_total: %d, q: %d\n", in.horizon, in.machines, in.volume, in.lower)
	b.WriteString(ruler(in.horizon))
	for _, j := range in.jobs {
		b.WriteByte('\n')
		b.WriteString(j.String())
	}

	return b.String()
}

// String draws the schedule as a grid: the slot ruler at the bottom and one
// row per machine above it, "---" marking an idle cell.
func (s Schedule) String() string {
	rows := []string{ruler(len(s.slots)), blankRow(len(s.slots), "   ")}

	busiest := 0
	for _, ids := range s.slots {
		busiest = max(busiest, len(ids))
	}
	for k := 0; k < busiest; k++ {
		var b strings.Builder
		b.WriteByte('|')
		for _, ids := range s.slots {
			if k < len(ids) {
				fmt.Fprintf(&b, "%03d|", ids[k])
			} else {
				b.WriteString("---|")
			}
		}
		rows = append(rows, b.String())
	}
	for k := busiest; k < s.machines; k++ {
		rows = append(rows, blankRow(len(s.slots), "---"))
	}

	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}

	return strings.Join(rows, "\n")
}

func ruler(n int) string {
	var b strings.Builder
	b.WriteByte('|')
	for t := 0; t < n; t++ {
		fmt.Fprintf(&b, "%03d|", t)
	}

	return b.String()
}

func blankRow(n int, fill string) string {
	return "|" + strings.Repeat(fill+"|", n)
}
