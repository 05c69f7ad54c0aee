package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/welcome/internal/scene"
)

// Runner steps a scene without a display, feeding metrics and observers.
type Runner struct {
	metrics   []Metric
	observers []Observer
}

func New() *Runner {
	return &Runner{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run advances sc by cfg.Ticks frames. On cancellation the partial result is
// returned together with the context error.
func (r *Runner) Run(ctx context.Context, sc *scene.Scene, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Message: sc.Message(),
		Seed:    cfg.Seed,
		Phasing: sc.Phasing(),
		Metrics: make(map[string]float64),
	}
	if !cfg.SkipRecords {
		result.Records = make([]Record, 0, cfg.Ticks+1)
		result.Records = append(result.Records, Record{
			Frame:  scene.Frame{Index: sc.Frames(), Time: sc.Time(), Spread: sc.Spread()},
			Glyphs: Snapshot(sc.Glyphs()),
		})
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			r.collect(result)
			return result, ctx.Err()
		default:
		}

		f := sc.Step()
		result.StepsTaken++

		for _, m := range r.metrics {
			m.Observe(sc, f)
		}
		for _, obs := range r.observers {
			obs.OnStep(sc, f)
		}

		if !cfg.SkipRecords {
			result.Records = append(result.Records, Record{Frame: f, Glyphs: Snapshot(sc.Glyphs())})
		}
	}

	r.collect(result)
	return result, nil
}

func (r *Runner) collect(result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validateConfig(cfg Config) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	return nil
}
