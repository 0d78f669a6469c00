// Package metrics counts engine activity on a private Prometheus registry.
// Batch commands dump it in the text exposition format at exit.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Run outcomes reported through RunFinished.
const (
	OutcomeSolved    = "solved"
	OutcomeGaveUp    = "gave_up"
	OutcomeCancelled = "cancelled"
)

// Recorder collects counters for collapses, contradictions and runs.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry       *prometheus.Registry
	collapses      prometheus.Counter
	contradictions prometheus.Counter
	resets         prometheus.Counter
	runs           *prometheus.CounterVec
	steps          prometheus.Histogram
	duration       prometheus.Histogram
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		collapses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tilewave",
			Name:      "collapses_total",
			Help:      "Cells collapsed to a single tile.",
		}),
		contradictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tilewave",
			Name:      "contradictions_total",
			Help:      "Collapses that found a cell with no options left.",
		}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tilewave",
			Name:      "resets_total",
			Help:      "Grid resets after a contradiction.",
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tilewave",
			Name:      "runs_total",
			Help:      "Finished runs by outcome.",
		}, []string{"outcome"}),
		steps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tilewave",
			Name:      "run_steps",
			Help:      "Steps taken per finished run.",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 8),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tilewave",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock time per finished run.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	r.registry.MustRegister(r.collapses, r.contradictions, r.resets, r.runs, r.steps, r.duration)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Collapse counts one successful collapse.
func (r *Recorder) Collapse() {
	if r != nil {
		r.collapses.Inc()
	}
}

// Contradiction counts one failed collapse.
func (r *Recorder) Contradiction() {
	if r != nil {
		r.contradictions.Inc()
	}
}

// Reset counts one grid reset.
func (r *Recorder) Reset() {
	if r != nil {
		r.resets.Inc()
	}
}

// RunFinished records the outcome, step count and duration of a run.
func (r *Recorder) RunFinished(outcome string, steps int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(outcome).Inc()
	r.steps.Observe(float64(steps))
	r.duration.Observe(elapsed.Seconds())
}

// WriteTextfile writes every metric to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	return nil
}
