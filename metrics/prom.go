// Package metrics exports sweep events to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/pltr/pltr"
)

// Solve outcomes used as the "outcome" label.
const (
	OutcomeOK         = "ok"
	OutcomeInfeasible = "infeasible"
	OutcomeInvariant  = "invariant"
	OutcomeCanceled   = "canceled"
	OutcomeError      = "error"
)

// PromObserver implements pltr.Observer with Prometheus collectors. It is
// safe for concurrent use.
type PromObserver struct {
	probes   *prometheus.CounterVec
	commits  *prometheus.CounterVec
	slots    *prometheus.CounterVec
	solves   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ pltr.Observer = (*PromObserver)(nil)

// NewPromObserver registers the sweep collectors under namespace on reg.
// A nil reg means prometheus.DefaultRegisterer. Collectors that are already
// registered are reused, so several observers may share one registry.
func NewPromObserver(reg prometheus.Registerer, namespace string) (*PromObserver, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	o := &PromObserver{
		probes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "probes_total",
			Help:      "Feasibility probes evaluated on network snapshots.",
		}, []string{"step", "feasible"}),
		commits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commits_total",
			Help:      "Extensions committed on the solver network.",
		}, []string{"step"}),
		slots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "committed_slots_total",
			Help:      "Time slots covered by committed extensions.",
		}, []string{"step"}),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Instances processed, by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Wall time of one solver run.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"outcome"}),
	}

	var err error
	if o.probes, err = register(reg, o.probes); err != nil {
		return nil, err
	}
	if o.commits, err = register(reg, o.commits); err != nil {
		return nil, err
	}
	if o.slots, err = register(reg, o.slots); err != nil {
		return nil, err
	}
	if o.solves, err = register(reg, o.solves); err != nil {
		return nil, err
	}
	if o.duration, err = register(reg, o.duration); err != nil {
		return nil, err
	}

	return o, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}

		return c, err
	}

	return c, nil
}

func (o *PromObserver) ObserveProbe(step pltr.Step, _, _, _ int, feasible bool) {
	o.probes.WithLabelValues(string(step), strconv.FormatBool(feasible)).Inc()
}

func (o *PromObserver) ObserveCommit(step pltr.Step, _, from, upto int) {
	o.commits.WithLabelValues(string(step)).Inc()
	o.slots.WithLabelValues(string(step)).Add(float64(upto - from))
}

func (o *PromObserver) ObserveSolve(_, _ int, elapsed time.Duration, err error) {
	outcome := Outcome(err)
	o.solves.WithLabelValues(outcome).Inc()
	o.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// Outcome classifies a Solve error for the "outcome" label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, pltr.ErrInfeasibleInstance):
		return OutcomeInfeasible
	case errors.Is(err, pltr.ErrInvariantViolation):
		return OutcomeInvariant
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeError
	}
}

// Serve exposes g on addr under /metrics until ctx is canceled.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
