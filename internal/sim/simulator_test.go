package sim

import (
	"context"
	"math/rand"
	"testing"

	"github.com/san-kum/welcome/internal/scene"
)

func newScene(t *testing.T, message string, seed int64) *scene.Scene {
	t.Helper()
	sc, err := scene.New(message, scene.DefaultConfig(), rand.New(rand.NewSource(seed)), nil)
	if err != nil {
		t.Fatalf("scene: %v", err)
	}
	return sc
}

func TestRunnerRun(t *testing.T) {
	sc := newScene(t, "hi", 1)
	runner := New()

	result, err := runner.Run(context.Background(), sc, Config{Ticks: 10, Seed: 1})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Records) != 11 {
		t.Errorf("expected 11 records, got %d", len(result.Records))
	}
	if result.StepsTaken != 10 {
		t.Errorf("expected 10 steps, got %d", result.StepsTaken)
	}
	if result.Message != "hi" {
		t.Errorf("expected message hi, got %q", result.Message)
	}

	for i, rec := range result.Records {
		if rec.Index != i {
			t.Errorf("record %d has index %d", i, rec.Index)
		}
		if len(rec.Glyphs) != 2 {
			t.Fatalf("record %d: expected 2 glyphs, got %d", i, len(rec.Glyphs))
		}
		if i > 0 && rec.Time <= result.Records[i-1].Time {
			t.Errorf("record %d: time did not advance", i)
		}
	}
	if result.Records[0].Glyphs[0].Rune != 'h' || result.Records[0].Glyphs[1].Rune != 'i' {
		t.Error("glyph order not preserved")
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero ticks", Config{Ticks: 0}},
		{"negative ticks", Config{Ticks: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Run(context.Background(), newScene(t, "hi", 1), tt.cfg)
			if err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRunnerCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New().Run(ctx, newScene(t, "hi", 1), Config{Ticks: 100})
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result == nil || result.StepsTaken != 0 {
		t.Errorf("expected an empty partial result, got %+v", result)
	}
}

type testMetric struct {
	count int
	sum   float64
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(sc *scene.Scene, f scene.Frame) {
	t.count++
	t.sum += f.Dt
}
func (t *testMetric) Value() float64 {
	if t.count == 0 {
		return 0
	}
	return t.sum / float64(t.count)
}
func (t *testMetric) Reset() {
	t.count = 0
	t.sum = 0
}

type countingObserver struct{ steps int }

func (c *countingObserver) OnStep(sc *scene.Scene, f scene.Frame) { c.steps++ }

func TestRunnerMetrics(t *testing.T) {
	runner := New()
	metric := &testMetric{}
	obs := &countingObserver{}
	runner.AddMetric(metric)
	runner.AddObserver(obs)

	result, err := runner.Run(context.Background(), newScene(t, "macalester", 3), Config{Ticks: 10, SkipRecords: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := result.Metrics["test"]; !ok {
		t.Error("metric not found in result")
	}
	if metric.count != 10 {
		t.Errorf("expected 10 observations, got %d", metric.count)
	}
	if obs.steps != 10 {
		t.Errorf("expected 10 observer calls, got %d", obs.steps)
	}
	if len(result.Records) != 0 {
		t.Errorf("expected no records, got %d", len(result.Records))
	}
	mean := result.Metrics["test"]
	if mean < scene.DefaultSlowMoSpeed || mean >= scene.DefaultSlowMoSpeed+scene.DefaultRegularSpeed {
		t.Errorf("mean dt %f outside pacing bounds", mean)
	}
}

func TestEnsembleRun(t *testing.T) {
	ens := NewEnsemble("hi", scene.DefaultConfig(), 4, 100, func() []Metric {
		return []Metric{&testMetric{}}
	})

	results, err := ens.Run(context.Background(), Config{Ticks: 50})
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Seed != int64(100+i) {
			t.Errorf("result %d: expected seed %d, got %d", i, 100+i, r.Seed)
		}
		if r.StepsTaken != 50 {
			t.Errorf("result %d: expected 50 steps, got %d", i, r.StepsTaken)
		}
	}

	again, _ := NewEnsemble("hi", scene.DefaultConfig(), 1, 100, nil).Run(context.Background(), Config{Ticks: 50})
	last := len(again[0].Records) - 1
	if again[0].Records[last].Time != results[0].Records[last].Time {
		t.Error("same seed should reproduce the same run")
	}
}

func TestEnsembleInvalidScene(t *testing.T) {
	cfg := scene.DefaultConfig()
	cfg.Width = -1
	if _, err := NewEnsemble("hi", cfg, 2, 0, nil).Run(context.Background(), Config{Ticks: 5}); err == nil {
		t.Error("expected error for invalid scene config")
	}
}
