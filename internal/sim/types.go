package sim

import (
	"github.com/san-kum/welcome/internal/glyph"
	"github.com/san-kum/welcome/internal/scene"
)

// Sample is one letter's render state after a tick.
type Sample struct {
	Rune rune    `json:"rune"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Hue  float64 `json:"hue"`
}

// Record is a tick together with the state of every letter after it.
type Record struct {
	scene.Frame
	Glyphs []Sample
}

type Metric interface {
	Name() string
	Observe(sc *scene.Scene, f scene.Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(sc *scene.Scene, f scene.Frame)
}

type Config struct {
	Ticks int
	Seed  int64
	// SkipRecords keeps only metrics, for long sweeps.
	SkipRecords bool
}

type Result struct {
	Message    string
	Seed       int64
	Phasing    float64
	Records    []Record
	Metrics    map[string]float64
	StepsTaken int
}

// Snapshot reads the current render state of every glyph.
func Snapshot(gs []*glyph.Glyph) []Sample {
	out := make([]Sample, len(gs))
	for i, g := range gs {
		x, y := g.Position()
		out[i] = Sample{Rune: g.Rune(), X: x, Y: y, Hue: g.Hue()}
	}
	return out
}
