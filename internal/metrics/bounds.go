package metrics

import "github.com/san-kum/welcome/internal/scene"

// Bounds is the fraction of ticks on which every letter center stayed inside
// the scene margins. Anything below 1 is a bug.
type Bounds struct {
	name       string
	violations int
	samples    int
}

func NewBounds() *Bounds {
	return &Bounds{name: "in_bounds"}
}

func (b *Bounds) Name() string { return b.name }

func (b *Bounds) Observe(sc *scene.Scene, f scene.Frame) {
	b.samples++
	minX, maxX, minY, maxY := sc.Bounds()
	for _, g := range sc.Glyphs() {
		x, y := g.Position()
		if x < minX || x > maxX || y < minY || y > maxY {
			b.violations++
			break
		}
	}
}

func (b *Bounds) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *Bounds) Reset() {
	b.violations = 0
	b.samples = 0
}
