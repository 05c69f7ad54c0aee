package optim

import (
	"context"
	"math"
	"math/rand"

	"github.com/san-kum/welcome/internal/metrics"
	"github.com/san-kum/welcome/internal/scene"
	"github.com/san-kum/welcome/internal/sim"
)

const (
	ParamTightness = "tightness"
	ParamCurve     = "curve"
)

// PacingTuner searches tightness and curve so that a message spends a
// target fraction of its ticks near the slow-motion floor.
type PacingTuner struct {
	Message string
	Scene   scene.Config
	Seed    int64
	Ticks   int
	// Target is the wanted slow_motion metric, in [0, 1].
	Target float64
}

// Objective runs the scene with the candidate pacing and scores the
// distance from Target.
func (p *PacingTuner) Objective(ctx context.Context, params map[string]float64) (float64, error) {
	cfg := p.Scene
	cfg.Pacing.Tightness = params[ParamTightness]
	cfg.Pacing.Curve = params[ParamCurve]

	sc, err := scene.New(p.Message, cfg, rand.New(rand.NewSource(p.Seed)), nil)
	if err != nil {
		return 0, err
	}
	slow := metrics.NewSlowMotion(cfg.Pacing, metrics.DefaultSlowMotionTolerance)
	r := sim.New()
	r.AddMetric(slow)
	if _, err := r.Run(ctx, sc, sim.Config{Ticks: p.Ticks, Seed: p.Seed, SkipRecords: true}); err != nil {
		return 0, err
	}
	return math.Abs(slow.Value() - p.Target), nil
}

// Tune runs the grid and returns the best pacing, its score and the number
// of points tried.
func (p *PacingTuner) Tune(ctx context.Context, tightness, curve []float64) (scene.Pacing, float64, error) {
	grid := NewGridSearch([]string{ParamTightness, ParamCurve}, [][]float64{tightness, curve})
	params, score, err := grid.Search(ctx, p.Objective)
	if params == nil {
		return scene.Pacing{}, score, err
	}
	best := p.Scene.Pacing
	best.Tightness = params[ParamTightness]
	best.Curve = params[ParamCurve]
	return best, score, err
}
