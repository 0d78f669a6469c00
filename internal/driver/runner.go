// Package driver steps a wave-function-collapse grid to completion, restarting
// it whenever a collapse hits a contradiction.
package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"tilewave/internal/core"
	"tilewave/internal/logger"
	"tilewave/internal/metrics"
	pcore "tilewave/pkg/core"
	"tilewave/pkg/wfc"
)

// ErrGaveUp is returned by Run when the reset budget is exhausted.
var ErrGaveUp = errors.New("driver: gave up after too many contradictions")

// Observer receives engine events. *metrics.Recorder implements it.
type Observer interface {
	Collapse()
	Contradiction()
	Reset()
	RunFinished(outcome string, steps int, elapsed time.Duration)
}

// Stats summarises a run since the last Reset.
type Stats struct {
	Steps          int
	Collapses      int
	Contradictions int
	Resets         int
	Elapsed        time.Duration
}

// Runner owns a grid and its random source and drives it one collapse at a time.
type Runner struct {
	name     string
	grid     *wfc.Grid
	rng      *pcore.RNG
	seed     int64
	id       uuid.UUID
	log      *slog.Logger
	observer Observer

	stats    Stats
	started  time.Time
	finished time.Time
	lastErr  error
}

// Option configures a Runner.
type Option func(*Runner)

// WithName labels the runner in logs and the HUD.
func WithName(name string) Option {
	return func(r *Runner) { r.name = name }
}

// WithObserver reports collapses, contradictions and resets to o.
func WithObserver(o Observer) Option {
	return func(r *Runner) {
		if o != nil {
			r.observer = o
		}
	}
}

// New builds a w x h grid over catalog seeded with seed.
func New(catalog wfc.Catalog, w, h int, seed int64, opts ...Option) (*Runner, error) {
	grid, err := wfc.New(catalog, w, h)
	if err != nil {
		return nil, fmt.Errorf("driver: %w", err)
	}
	r := &Runner{
		name: "wfc",
		grid: grid,
		rng:  pcore.NewRNG(seed),
		seed: seed,
		// A nil recorder drops every event.
		observer: (*metrics.Recorder)(nil),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.begin()
	return r, nil
}

func (r *Runner) begin() {
	r.id = uuid.New()
	r.log = logger.With("run", r.id.String(), "set", r.name, "seed", r.seed)
	r.stats = Stats{}
	r.started = time.Now()
	r.finished = time.Time{}
	r.lastErr = nil
}

// Name returns the runner label.
func (r *Runner) Name() string { return r.name }

// Size returns the grid dimensions.
func (r *Runner) Size() core.Size { return core.Size{W: r.grid.Width(), H: r.grid.Height()} }

// ID identifies the current run; it changes on every Reset.
func (r *Runner) ID() uuid.UUID { return r.id }

// Seed returns the seed of the current run.
func (r *Runner) Seed() int64 { return r.seed }

// Grid exposes the grid being solved.
func (r *Runner) Grid() *wfc.Grid { return r.grid }

// Done reports whether every cell is collapsed.
func (r *Runner) Done() bool { return r.grid.Done() }

// LastError returns the most recent contradiction, if any.
func (r *Runner) LastError() error { return r.lastErr }

// Reset reseeds the random source and starts a fresh run.
func (r *Runner) Reset(seed int64) {
	r.seed = seed
	r.rng.Reseed(seed)
	r.grid.Reset()
	r.begin()
	r.log.Debug("run reset")
}

// Restart clears the grid but keeps the random sequence and the counters.
func (r *Runner) Restart() {
	r.grid.Reset()
	r.stats.Resets++
	r.observer.Reset()
}

// Step performs one collapse, restarting the grid on contradiction.
func (r *Runner) Step() {
	_, _ = r.Advance()
}

// Advance performs one collapse and reports whether the grid was still
// unsolved. A contradiction restarts the grid and is returned.
func (r *Runner) Advance() (bool, error) {
	if r.grid.Done() {
		return false, nil
	}
	r.stats.Steps++
	err := r.grid.CollapseLowestEntropy(r.rng)
	if err != nil {
		if !errors.Is(err, wfc.ErrContradiction) {
			return true, err
		}
		r.stats.Contradictions++
		r.lastErr = err
		r.observer.Contradiction()
		r.log.Debug("contradiction, restarting", "error", err, "step", r.stats.Steps)
		r.Restart()
		return true, err
	}
	r.stats.Collapses++
	r.observer.Collapse()
	if r.grid.Done() {
		r.finished = time.Now()
		r.log.Info("grid solved", "steps", r.stats.Steps, "resets", r.stats.Resets)
	}
	return true, nil
}

// Run steps until the grid is solved, ctx is cancelled, or maxResets restarts
// have happened. maxResets <= 0 never gives up.
func (r *Runner) Run(ctx context.Context, maxResets int) error {
	for !r.grid.Done() {
		if err := ctx.Err(); err != nil {
			r.finish(metrics.OutcomeCancelled)
			return err
		}
		if maxResets > 0 && r.stats.Resets >= maxResets {
			r.finish(metrics.OutcomeGaveUp)
			r.log.Warn("giving up", "resets", r.stats.Resets)
			return fmt.Errorf("%w (%d resets)", ErrGaveUp, r.stats.Resets)
		}
		r.Step()
	}
	r.finish(metrics.OutcomeSolved)
	return nil
}

func (r *Runner) finish(outcome string) {
	if r.finished.IsZero() {
		r.finished = time.Now()
	}
	r.observer.RunFinished(outcome, r.stats.Steps, r.finished.Sub(r.started))
}

// Stats returns the counters of the current run.
func (r *Runner) Stats() Stats {
	s := r.stats
	end := r.finished
	if end.IsZero() {
		end = time.Now()
	}
	s.Elapsed = end.Sub(r.started)
	return s
}

// Parameters describes the run for the HUD.
func (r *Runner) Parameters() core.ParameterSnapshot {
	s := r.Stats()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Run",
			Params: []core.Parameter{
				stringParam("set", "Tile set", r.name),
				intParam("tiles", "Tiles", len(r.grid.Catalog())),
				intParam("w", "Width", r.grid.Width()),
				intParam("h", "Height", r.grid.Height()),
				int64Param("seed", "Seed", r.seed),
				stringParam("run", "Run", r.id.String()[:8]),
			},
		},
		{
			Name: "Progress",
			Params: []core.Parameter{
				intParam("collapsed", "Collapsed", r.grid.CollapsedCount()),
				intParam("entropy", "Total entropy", r.grid.TotalEntropy()),
				intParam("steps", "Steps", s.Steps),
				intParam("contradictions", "Contradictions", s.Contradictions),
				intParam("resets", "Resets", s.Resets),
				boolParam("done", "Done", r.grid.Done()),
			},
		},
	}}
}

func intParam(key, label string, v int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(v)}
}

func int64Param(key, label string, v int64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.FormatInt(v, 10)}
}

func boolParam(key, label string, v bool) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeBool, Value: strconv.FormatBool(v)}
}

func stringParam(key, label, v string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeString, Value: v}
}
