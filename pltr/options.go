package pltr

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/pltr/core"
	"github.com/katalvlaran/pltr/flow"
)

// Step names a phase of the sweep in logs, metrics and errors.
type Step string

const (
	StepKeepIdle Step = "keep-idle"
	StepKeepBusy Step = "keep-busy"
	StepExtract  Step = "extract"
)

// LowerBoundPolicy decides what Solve does with an instance's q.
type LowerBoundPolicy int

const (
	// LowerBoundIgnore stores q on the instance and otherwise ignores it.
	LowerBoundIgnore LowerBoundPolicy = iota
	// LowerBoundStrict refuses instances with q > 0.
	LowerBoundStrict
)

func (p LowerBoundPolicy) String() string {
	switch p {
	case LowerBoundIgnore:
		return "ignore"
	case LowerBoundStrict:
		return "strict"
	default:
		return fmt.Sprintf("LowerBoundPolicy(%d)", int(p))
	}
}

// ParseLowerBoundPolicy maps "ignore" or "strict" to a policy.
func ParseLowerBoundPolicy(s string) (LowerBoundPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ignore":
		return LowerBoundIgnore, nil
	case "strict":
		return LowerBoundStrict, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLowerBoundPolicy, s)
	}
}

// Observer receives sweep events. Implementations must be safe for
// concurrent use when Options.Probes > 1, since probes report from
// several goroutines.
type Observer interface {
	// ObserveProbe is called after every feasibility probe on a snapshot.
	ObserveProbe(step Step, level, from, upto int, feasible bool)
	// ObserveCommit is called after an extension is committed.
	ObserveCommit(step Step, level, from, upto int)
	// ObserveSolve is called once per Run with its outcome.
	ObserveSolve(jobs, horizon int, elapsed time.Duration, err error)
}

// NopObserver ignores all events.
type NopObserver struct{}

func (NopObserver) ObserveProbe(Step, int, int, int, bool)      {}
func (NopObserver) ObserveCommit(Step, int, int, int)           {}
func (NopObserver) ObserveSolve(int, int, time.Duration, error) {}

// Options configures Solve and Run.
type Options struct {
	// Flow selects the augmenting strategy of the network built by Solve.
	Flow flow.Options

	// Probes is the number of candidates evaluated concurrently per binary
	// search step. Values below 2 search sequentially.
	Probes int

	// LowerBound decides how q is treated.
	LowerBound LowerBoundPolicy

	// Logger receives a debug event per committed extension and an info
	// event per solved instance. Nil disables logging.
	Logger *zerolog.Logger

	// Observer receives probe, commit and solve events. Nil means NopObserver.
	Observer Observer
}

// DefaultOptions returns Edmonds–Karp, sequential search, q ignored,
// no logging and no observer.
func DefaultOptions() Options {
	return Options{
		Flow:     flow.DefaultOptions(),
		Probes:   1,
		Observer: NopObserver{},
	}
}

func (o *Options) normalize() {
	if o.Probes < 1 {
		o.Probes = 1
	}
	if o.Logger == nil {
		nop := zerolog.Nop()
		o.Logger = &nop
	}
	if o.Observer == nil {
		o.Observer = NopObserver{}
	}
}

func (o Options) checkLowerBound(inst *core.Instance) error {
	if o.LowerBound == LowerBoundStrict && inst.LowerBound() > 0 {
		return fmt.Errorf("%w: q=%d", ErrLowerBoundNotEnforced, inst.LowerBound())
	}

	return nil
}
